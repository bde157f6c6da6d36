// Package runtime defines the pluggable collaborator that answers questions
// about the GDScript/Godot built-in type universe: class hierarchy,
// members, and global symbols. Validation and type inference consult a
// Provider instead of hardcoding engine knowledge, so the same analysis
// core works against any engine version a host supplies a Provider for.
package runtime

// MemberKind classifies what GetMember resolved to.
type MemberKind int

const (
	MemberUnknown MemberKind = iota
	MemberField
	MemberMethod
	MemberSignal
	MemberConstant
)

// Member describes one built-in class member.
type Member struct {
	Name string
	Kind MemberKind
	Type string
}

// TypeInfo describes a built-in engine type.
type TypeInfo struct {
	Name     string
	BaseType string
	Members  []Member
}

// Provider answers questions about the engine's built-in type universe. It
// is supplied when an analysis is set up (incremental.NewPipeline,
// validate.ValidateCode) and consulted read-only from every validation and
// inference pass.
type Provider interface {
	// IsKnownType reports whether name identifies a built-in engine class.
	IsKnownType(name string) bool

	// GetTypeInfo resolves a built-in class's metadata, or ok=false if name
	// is not a built-in type.
	GetTypeInfo(name string) (TypeInfo, bool)

	// GetMember resolves a member of a built-in type by name, searching the
	// inheritance chain.
	GetMember(typeName, memberName string) (Member, bool)

	// GetBaseType resolves the immediate base class of a built-in type, or
	// ok=false at the root of the hierarchy (Object) or for unknown types.
	GetBaseType(typeName string) (string, bool)

	// IsAssignableTo reports whether a value of type from can be assigned
	// to a variable of type to, following the built-in inheritance chain.
	IsAssignableTo(from, to string) bool

	// GetGlobalFunction resolves a global built-in function (e.g. `print`,
	// `randi`) by name.
	GetGlobalFunction(name string) (Member, bool)

	// GetGlobalClass resolves a global built-in singleton or class (e.g.
	// `Input`, `OS`) by name.
	GetGlobalClass(name string) (TypeInfo, bool)

	// IsBuiltIn reports whether name is any recognized built-in identifier:
	// type, global function, or global class.
	IsBuiltIn(name string) bool
}

// NopProvider is a Provider that recognizes nothing, for callers that run
// analysis without engine knowledge (every reference falls back to the
// project's own declarations). It is the default when no Provider is
// configured.
type NopProvider struct{}

func (NopProvider) IsKnownType(string) bool                        { return false }
func (NopProvider) GetTypeInfo(string) (TypeInfo, bool)             { return TypeInfo{}, false }
func (NopProvider) GetMember(string, string) (Member, bool)         { return Member{}, false }
func (NopProvider) GetBaseType(string) (string, bool)               { return "", false }
func (NopProvider) IsAssignableTo(string, string) bool              { return false }
func (NopProvider) GetGlobalFunction(string) (Member, bool)         { return Member{}, false }
func (NopProvider) GetGlobalClass(string) (TypeInfo, bool)          { return TypeInfo{}, false }
func (NopProvider) IsBuiltIn(string) bool                           { return false }
