package apidoc

import "strings"

// Kind classifies an introspected object.
type Kind int

const (
	// KindUnknown is never documented.
	KindUnknown Kind = iota
	// KindModule is a module or package.
	KindModule
	// KindClass is a type.
	KindClass
	// KindFunction is a function or constructor.
	KindFunction
	// KindValue is a constant or variable.
	KindValue
)

// String returns the configuration name of k.
func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "module", "package":
		return KindModule
	case "class", "type":
		return KindClass
	case "function", "func":
		return KindFunction
	case "value", "const", "var":
		return KindValue
	default:
		return KindUnknown
	}
}

// Client is a read-only handle to an introspected module or member.
//
// DeclaringPath is the dotted path of the module that declares the object.
// A module returns its own path.
type Client interface {
	Name() string
	Kind() Kind
	DeclaringPath() string
	IsPackage() bool
	MemberNames() []string
	Member(name string) (Client, bool)
}

// Resolver turns a dotted path into a live module client.
type Resolver interface {
	Resolve(path string) (Client, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(path string) (Client, error)

func (f ResolverFunc) Resolve(path string) (Client, error) {
	return f(path)
}

// IsUnderscorePrivate reports whether name is private by the leading
// underscore convention.
func IsUnderscorePrivate(name string) bool {
	return strings.HasPrefix(name, "_")
}

// JoinPath appends name to a dotted path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// LastSegment returns the final dotted segment of path.
func LastSegment(path string) string {
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// ReferenceName derives a cross-reference anchor from a dotted path.
func ReferenceName(path string) string {
	return strings.ReplaceAll(strings.ReplaceAll(path, "_", "-"), ".", "--")
}
