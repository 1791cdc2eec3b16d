// Package discover assembles documenter nodes from a flat set of module
// paths. It is the glue between a resolver that knows which modules exist
// and the apidoc tree, which only accepts pre-built children.
package discover

import (
	"sort"
	"strings"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
)

// Parent returns the dotted parent of path, or "" for a top-level path.
func Parent(path string) string {
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		return path[:idx]
	}
	return ""
}

// Namespaces returns the intermediate paths that are implied by paths but
// not present in it, sorted. A path is only implied below a present
// top-level ancestor, so unrelated roots are not joined together.
func Namespaces(paths []string) []string {
	present := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		present[p] = struct{}{}
	}
	missing := make(map[string]struct{})
	for _, p := range paths {
		var chain []string
		for parent := Parent(p); parent != ""; parent = Parent(parent) {
			if _, ok := present[parent]; ok {
				for _, m := range chain {
					missing[m] = struct{}{}
				}
				break
			}
			chain = append(chain, parent)
		}
	}
	result := make([]string, 0, len(missing))
	for m := range missing {
		result = append(result, m)
	}
	sort.Strings(result)
	return result
}

// IsPrivateModule reports whether any segment of path is private: a leading
// underscore or a Go internal directory.
func IsPrivateModule(path string) bool {
	for _, seg := range strings.Split(path, ".") {
		if seg == "internal" || strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}

// FilterPrivate drops private module paths unless keep is set.
func FilterPrivate(paths []string, keep bool) []string {
	if keep {
		return append([]string(nil), paths...)
	}
	var result []string
	for _, p := range paths {
		if !IsPrivateModule(p) {
			result = append(result, p)
		}
	}
	return result
}

// Tree builds one node per path, bottom-up, with children sorted by path.
// Every path and every parent implied by Namespaces must be resolvable by r.
// The returned top-level nodes are sorted by path.
func Tree(r apidoc.Resolver, paths []string, opts apidoc.Options) ([]*apidoc.Node, error) {
	all := append(append([]string(nil), paths...), Namespaces(paths)...)
	sort.Strings(all)
	present := make(map[string]struct{}, len(all))
	children := make(map[string][]string)
	var roots []string
	for _, p := range all {
		if _, dup := present[p]; dup {
			continue
		}
		present[p] = struct{}{}
	}
	for _, p := range all {
		parent := Parent(p)
		if _, ok := present[parent]; ok && parent != "" {
			children[parent] = appendUnique(children[parent], p)
		} else {
			roots = appendUnique(roots, p)
		}
	}
	var build func(string) (*apidoc.Node, error)
	build = func(p string) (*apidoc.Node, error) {
		kids := make([]*apidoc.Node, 0, len(children[p]))
		for _, c := range children[p] {
			n, err := build(c)
			if err != nil {
				return nil, err
			}
			kids = append(kids, n)
		}
		return apidoc.NewNode(r, p, opts, kids...)
	}
	nodes := make([]*apidoc.Node, 0, len(roots))
	for _, p := range roots {
		n, err := build(p)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func appendUnique(list []string, s string) []string {
	if n := len(list); n > 0 && list[n-1] == s {
		return list
	}
	return append(list, s)
}
