package apidoc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// heading underlines title with one = per character.
func heading(title string) []string {
	return []string{title, strings.Repeat("=", utf8.RuneCountInString(title))}
}

// RenderPage renders one node as a standalone page. Lines are joined by a
// single newline with no trailing newline.
func RenderPage(n *Node) string {
	lines := []string{
		fmt.Sprintf(".. _%s:", n.ReferenceName()),
		"",
	}
	lines = append(lines, heading(n.PackageName())...)
	lines = append(lines,
		"",
		".. automodule:: "+n.path,
		"",
		".. currentmodule:: "+n.path,
	)
	if toc := n.TableOfContents(); len(toc) > 0 {
		lines = append(lines, "", ".. toctree::", "")
		for _, entry := range toc {
			lines = append(lines, "   "+entry)
		}
	}
	for _, leaf := range n.members {
		lines = append(lines, "", leaf.String())
	}
	return strings.Join(lines, "\n")
}

// RenderSummary renders the whole tree as one overview page: a hidden
// table of contents of the top-level nodes followed by one section per
// non-nominative node with its members in autosummary tables.
func RenderSummary(root *Root) string {
	lines := heading(root.Title)
	lines = append(lines, "", ".. toctree::", "   :hidden:", "")
	for _, entry := range root.TableOfContents() {
		lines = append(lines, "   "+entry)
	}
	for _, ns := range RecursiveSections(root.Children...) {
		lines = append(lines,
			"",
			".. raw:: html",
			"",
			"   <hr/>",
			"",
			fmt.Sprintf(".. rubric:: :ref:`%s <%s>`", ns.Node.path, ns.Node.ReferenceName()),
			"   :class: section-header",
		)
		for _, section := range ns.Sections {
			lines = append(lines,
				"",
				"-  "+section.Name,
				"",
				"   .. autosummary::",
				"      :nosignatures:",
				"",
			)
			for _, leaf := range section.Members {
				lines = append(lines, "      ~"+leaf.PackagePath())
			}
		}
	}
	return strings.Join(lines, "\n")
}

// RenderIndex renders the plain root page: the title and a visible table
// of contents of the top-level nodes.
func RenderIndex(root *Root) string {
	lines := heading(root.Title)
	lines = append(lines, "", ".. toctree::", "")
	for _, entry := range root.TableOfContents() {
		lines = append(lines, "   "+entry)
	}
	return strings.Join(lines, "\n")
}
