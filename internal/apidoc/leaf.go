package apidoc

// Leaf documents a single module member.
type Leaf interface {
	PackagePath() string
	Section() string
	String() string
}

// Sections used by the built-in leaves.
const (
	SectionClasses   = "Classes"
	SectionFunctions = "Functions"
	SectionValues    = "Values"
)

// ClassDocumenter renders an autoclass directive.
type ClassDocumenter struct {
	path string
}

// NewClassDocumenter documents the member at path.
func NewClassDocumenter(path string) *ClassDocumenter {
	return &ClassDocumenter{path: path}
}

// PackagePath returns the member's dotted path.
func (d *ClassDocumenter) PackagePath() string { return d.path }

// Section returns SectionClasses.
func (d *ClassDocumenter) Section() string { return SectionClasses }

// String returns the autoclass directive for the member's short name.
func (d *ClassDocumenter) String() string {
	return ".. autoclass:: " + LastSegment(d.path)
}

// FunctionDocumenter renders an autofunction directive.
type FunctionDocumenter struct {
	path string
}

// NewFunctionDocumenter documents the member at path.
func NewFunctionDocumenter(path string) *FunctionDocumenter {
	return &FunctionDocumenter{path: path}
}

// PackagePath returns the member's dotted path.
func (d *FunctionDocumenter) PackagePath() string { return d.path }

// Section returns SectionFunctions.
func (d *FunctionDocumenter) Section() string { return SectionFunctions }

// String returns the autofunction directive for the member's short name.
func (d *FunctionDocumenter) String() string {
	return ".. autofunction:: " + LastSegment(d.path)
}

// ValueDocumenter renders an autodata directive for constants and variables.
type ValueDocumenter struct {
	path string
}

// NewValueDocumenter documents the member at path.
func NewValueDocumenter(path string) *ValueDocumenter {
	return &ValueDocumenter{path: path}
}

// PackagePath returns the member's dotted path.
func (d *ValueDocumenter) PackagePath() string { return d.path }

// Section returns SectionValues.
func (d *ValueDocumenter) Section() string { return SectionValues }

// String returns the autodata directive for the member's short name.
func (d *ValueDocumenter) String() string {
	return ".. autodata:: " + LastSegment(d.path)
}
