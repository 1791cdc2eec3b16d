// Package example demonstrates API page generation for go-apirst tests.
package example

const (
	// Answer documents an exported constant.
	Answer = 42

	// hidden constant should be available with private members.
	internalConstant = 0
)

// Greeter produces greeting messages.
type Greeter struct {
	// Name is included in every greeting.
	Name string
}

// NewGreeter constructs a Greeter.
func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}

// Greet returns a friendly message.
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

// Hello greets the world.
func Hello() string {
	return NewGreeter("world").Greet()
}

func shout(s string) string {
	return s + "!"
}
