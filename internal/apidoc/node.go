package apidoc

import (
	"fmt"
	"path"
	"strings"
)

// Options controls how a node classifies its members.
type Options struct {
	DocumentPrivateMembers bool
	// Classifiers in priority order. Nil selects DefaultClassifiers.
	Classifiers []Classifier
	// IsPrivate reports private member names. Nil selects IsUnderscorePrivate.
	IsPrivate func(name string) bool
}

func (o Options) withDefaults() Options {
	if o.Classifiers == nil {
		o.Classifiers = DefaultClassifiers()
	} else {
		o.Classifiers = append([]Classifier(nil), o.Classifiers...)
	}
	if o.IsPrivate == nil {
		o.IsPrivate = IsUnderscorePrivate
	}
	return o
}

// Node documents one module or package. A Node is immutable once built.
type Node struct {
	path     string
	client   Client
	opts     Options
	children []*Node
	members  []Leaf
}

// NewNode resolves path, classifies the module's members and adopts the
// given children. Children are not discovered here; callers supply them,
// usually sorted by path.
func NewNode(r Resolver, packagePath string, opts Options, children ...*Node) (*Node, error) {
	if r == nil {
		return nil, &ResolutionError{Path: packagePath, Err: fmt.Errorf("%w: no resolver", ErrUnresolved)}
	}
	client, err := r.Resolve(packagePath)
	if err != nil {
		return nil, &ResolutionError{Path: packagePath, Err: err}
	}
	if client == nil || client.Kind() != KindModule {
		return nil, &ResolutionError{Path: packagePath, Err: fmt.Errorf("%w: not a module", ErrUnresolved)}
	}
	for _, child := range children {
		if child == nil {
			return nil, &TreeError{Path: packagePath, Reason: "nil child"}
		}
		if !isDirectChild(packagePath, child.path) {
			return nil, &TreeError{Path: child.path, Reason: fmt.Sprintf("not a direct child of %q", packagePath)}
		}
	}
	opts = opts.withDefaults()
	members, err := classify(client, packagePath, opts)
	if err != nil {
		return nil, err
	}
	return &Node{
		path:     packagePath,
		client:   client,
		opts:     opts,
		children: append([]*Node(nil), children...),
		members:  members,
	}, nil
}

func isDirectChild(parent, child string) bool {
	rest, ok := strings.CutPrefix(child, parent+".")
	return ok && rest != "" && !strings.Contains(rest, ".")
}

func (n *Node) PackagePath() string { return n.path }

func (n *Node) PackageName() string { return LastSegment(n.path) }

func (n *Node) IsPackage() bool { return n.client.IsPackage() }

func (n *Node) DocumentPrivateMembers() bool { return n.opts.DocumentPrivateMembers }

func (n *Node) Classifiers() []Classifier {
	return append([]Classifier(nil), n.opts.Classifiers...)
}

func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) Members() []Leaf {
	return append([]Leaf(nil), n.members...)
}

// ReferenceName is the anchor used to cross-reference this node.
func (n *Node) ReferenceName() string { return ReferenceName(n.path) }

// DocumentationPath is the slash-separated location of the node's page.
func (n *Node) DocumentationPath() string {
	p := strings.ReplaceAll(n.path, ".", "/")
	if n.IsPackage() {
		p = path.Join(p, "index")
	}
	return p + ".rst"
}

// IsNominative reports whether the node is a module that exists only to
// host one symbol of the same name. Only the final segment is compared.
func (n *Node) IsNominative() bool {
	if n.IsPackage() || len(n.members) != 1 {
		return false
	}
	return LastSegment(n.members[0].PackagePath()) == n.PackageName()
}

// TableOfContents lists the children relative to n, in supplied order.
func (n *Node) TableOfContents() []string {
	entries := make([]string, 0, len(n.children))
	for _, child := range n.children {
		entry := strings.TrimPrefix(child.path, n.path+".")
		if child.IsPackage() {
			entry += "/index"
		}
		entries = append(entries, entry)
	}
	return entries
}

func (n *Node) String() string { return RenderPage(n) }
