// Package inner lives below a directory without Go files.
package inner

// Option selects a mode.
type Option int

// DefaultOption is used when nothing is configured.
const DefaultOption Option = 1
