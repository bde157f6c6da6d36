package syntax

// SingleType is a plain type reference: a built-in name, a user class name,
// or a fully qualified inner-class path.
type SingleType struct{ Node }

func AsSingleType(n Node) SingleType { return SingleType{n} }
func (t SingleType) Name() (string, bool) {
	tok, ok := t.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}

// ArrayOfType is `Array[Element]`.
type ArrayOfType struct{ Node }

func AsArrayOfType(n Node) ArrayOfType { return ArrayOfType{n} }
func (t ArrayOfType) Element() Node    { return t.Child("Element") }

// DictionaryOfType is `Dictionary[Key, Value]`.
type DictionaryOfType struct{ Node }

func AsDictionaryOfType(n Node) DictionaryOfType { return DictionaryOfType{n} }
func (t DictionaryOfType) Key() Node              { return t.Child("Key") }
func (t DictionaryOfType) Value() Node            { return t.Child("Value") }
