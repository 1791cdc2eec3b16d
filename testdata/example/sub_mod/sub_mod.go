// Package sub_mod exercises underscore anchors.
package sub_mod

import "strings"

// Split breaks s on commas.
func Split(s string) []string {
	return strings.Split(s, ",")
}

func join(parts []string) string {
	return strings.Join(parts, ",")
}
