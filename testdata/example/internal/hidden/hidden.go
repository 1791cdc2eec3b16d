// Package hidden is private to the example module.
package hidden

// Secret is not documented unless private modules are enabled.
func Secret() string {
	return "shh"
}
