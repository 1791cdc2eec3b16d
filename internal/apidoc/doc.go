// Package apidoc models a package tree as documenter nodes and renders
// reStructuredText reference pages from it.
//
// A [Node] wraps one resolved module. At construction it classifies the
// module's members with an ordered list of [Classifier] values; the first
// classifier that recognizes a member produces its [Leaf]. Children are
// supplied by the caller. Nodes never change after construction, so the
// renderers ([RenderPage], [RenderSummary], [RenderIndex]) are pure reads.
package apidoc
