package apidoc

import (
	"fmt"
	"sort"
	"strings"
)

// Section groups leaves that share a documentation section.
type Section struct {
	Name    string
	Members []Leaf
}

// MembersBySection groups the node's leaves by section name. Sections are
// sorted by name; leaves keep their classification order.
func (n *Node) MembersBySection() []Section {
	index := make(map[string]int)
	var sections []Section
	for _, leaf := range n.members {
		i, ok := index[leaf.Section()]
		if !ok {
			i = len(sections)
			index[leaf.Section()] = i
			sections = append(sections, Section{Name: leaf.Section()})
		}
		sections[i].Members = append(sections[i].Members, leaf)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Name < sections[j].Name
	})
	return sections
}

// NodeSections pairs a node with its grouped members.
type NodeSections struct {
	Node     *Node
	Sections []Section
}

// RecursiveSections walks the trees rooted at nodes in pre-order and yields
// every node that is not nominative. Children of nominative nodes are still
// visited.
func RecursiveSections(nodes ...*Node) []NodeSections {
	var result []NodeSections
	Walk(nodes, func(n *Node) error {
		if !n.IsNominative() {
			result = append(result, NodeSections{Node: n, Sections: n.MembersBySection()})
		}
		return nil
	})
	return result
}

// Walk visits the trees rooted at nodes in pre-order. It stops at the first
// error returned by fn.
func Walk(nodes []*Node, fn func(*Node) error) error {
	for _, n := range nodes {
		if err := fn(n); err != nil {
			return err
		}
		if err := Walk(n.children, fn); err != nil {
			return err
		}
	}
	return nil
}

// DefaultTitle is the heading of the root page.
const DefaultTitle = "API"

// Root is the synthetic parent of the top-level nodes.
type Root struct {
	Title    string
	Children []*Node
}

// NewRoot validates that no node path appears twice in the tree and that
// no top-level node lies inside another.
func NewRoot(title string, children ...*Node) (*Root, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	for _, outer := range children {
		for _, inner := range children {
			if outer == nil || inner == nil {
				continue
			}
			if strings.HasPrefix(inner.path, outer.path+".") {
				return nil, &TreeError{Path: inner.path, Reason: fmt.Sprintf("overlaps top-level module %q", outer.path)}
			}
		}
	}
	seen := make(map[string]struct{})
	err := Walk(children, func(n *Node) error {
		if n == nil {
			return &TreeError{Path: "", Reason: "nil node"}
		}
		if _, dup := seen[n.path]; dup {
			return &TreeError{Path: n.path, Reason: "appears more than once"}
		}
		seen[n.path] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Root{Title: title, Children: append([]*Node(nil), children...)}, nil
}

// TableOfContents lists the top-level children as slash-separated paths.
func (r *Root) TableOfContents() []string {
	entries := make([]string, 0, len(r.Children))
	for _, child := range r.Children {
		entry := strings.ReplaceAll(child.path, ".", "/")
		if child.IsPackage() {
			entry += "/index"
		}
		entries = append(entries, entry)
	}
	return entries
}
