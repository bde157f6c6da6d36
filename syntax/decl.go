package syntax

// This file gives typed, named-accessor views over the generic Node/Slot
// arena for every Declaration form in spec's Polymorphic node families.
// Each accessor is a thin wrapper: the ground truth is always the slot
// sequence stored in the arena, printed in that order by the printer.

// ClassDecl is the root node of a parsed file.
type ClassDecl struct{ Node }

func AsClassDecl(n Node) ClassDecl { return ClassDecl{n} }

func (c ClassDecl) Name() (string, bool) {
	tok, ok := c.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (c ClassDecl) Extends() (string, bool) {
	tok, ok := c.Token("Extends")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (c ClassDecl) Members() []Node { return c.List("Members") }

// MethodDecl is a `func` declaration, at class level or nested inside an
// inner class.
type MethodDecl struct{ Node }

func AsMethodDecl(n Node) MethodDecl { return MethodDecl{n} }

func (m MethodDecl) Name() (string, bool) {
	tok, ok := m.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (m MethodDecl) Parameters() []Node  { return m.List("Parameters") }
func (m MethodDecl) ReturnType() Node    { return m.Child("ReturnType") }
func (m MethodDecl) Body() Node          { return m.Child("Body") }
func (m MethodDecl) IsStatic() bool      { _, ok := m.Token("Static"); return ok }
func (m MethodDecl) Statements() []Node  { return AsStatementsList(m.Body()).Items() }

// ParameterDecl is one formal parameter in a method's parameter list.
type ParameterDecl struct{ Node }

func AsParameterDecl(n Node) ParameterDecl { return ParameterDecl{n} }

func (p ParameterDecl) Name() (string, bool) {
	tok, ok := p.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (p ParameterDecl) Type() Node    { return p.Child("Type") }
func (p ParameterDecl) Default() Node { return p.Child("Default") }

// VariableDecl is a class-level `var` declaration (as opposed to a local
// variable-decl-stmt inside a method body).
type VariableDecl struct{ Node }

func AsVariableDecl(n Node) VariableDecl { return VariableDecl{n} }

func (v VariableDecl) Name() (string, bool) {
	tok, ok := v.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (v VariableDecl) Type() Node        { return v.Child("Type") }
func (v VariableDecl) Initializer() Node { return v.Child("Initializer") }
func (v VariableDecl) IsOnready() bool   { _, ok := v.Token("Onready"); return ok }
func (v VariableDecl) IsExport() bool    { _, ok := v.Token("Export"); return ok }

// ConstantDecl is a class-level `const` declaration.
type ConstantDecl struct{ Node }

func AsConstantDecl(n Node) ConstantDecl { return ConstantDecl{n} }

func (c ConstantDecl) Name() (string, bool) {
	tok, ok := c.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (c ConstantDecl) Type() Node        { return c.Child("Type") }
func (c ConstantDecl) Initializer() Node { return c.Child("Initializer") }

// SignalDecl is a `signal` declaration with an optional parameter list.
type SignalDecl struct{ Node }

func AsSignalDecl(n Node) SignalDecl { return SignalDecl{n} }

func (s SignalDecl) Name() (string, bool) {
	tok, ok := s.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (s SignalDecl) Parameters() []Node { return s.List("Parameters") }

// EnumDecl is an `enum` declaration, optionally named.
type EnumDecl struct{ Node }

func AsEnumDecl(n Node) EnumDecl { return EnumDecl{n} }

func (e EnumDecl) Name() (string, bool) {
	tok, ok := e.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (e EnumDecl) Values() []Node { return e.List("Values") }

// EnumValueDecl is one member of an enum body.
type EnumValueDecl struct{ Node }

func AsEnumValueDecl(n Node) EnumValueDecl { return EnumValueDecl{n} }

func (e EnumValueDecl) Name() (string, bool) {
	tok, ok := e.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (e EnumValueDecl) Value() Node { return e.Child("Value") }

// InnerClassDecl is a nested `class` declaration.
type InnerClassDecl struct{ Node }

func AsInnerClassDecl(n Node) InnerClassDecl { return InnerClassDecl{n} }

func (c InnerClassDecl) Name() (string, bool) {
	tok, ok := c.Token("Name")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (c InnerClassDecl) Extends() (string, bool) {
	tok, ok := c.Token("Extends")
	if !ok {
		return "", false
	}
	return tok.Text, true
}
func (c InnerClassDecl) Members() []Node { return c.List("Members") }
