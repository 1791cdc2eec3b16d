package gopkg

import (
	"go/doc"
	"sort"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
)

type packageClient struct {
	mod *module
	pkg bool
}

func (c *packageClient) Name() string          { return apidoc.LastSegment(c.mod.path) }
func (c *packageClient) Kind() apidoc.Kind     { return apidoc.KindModule }
func (c *packageClient) DeclaringPath() string { return c.mod.path }
func (c *packageClient) IsPackage() bool       { return c.pkg }

func (c *packageClient) MemberNames() []string {
	names := make([]string, 0, len(c.mod.members))
	for name := range c.mod.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *packageClient) Member(name string) (apidoc.Client, bool) {
	m, ok := c.mod.members[name]
	return m, ok
}

// symbol is a package-level declaration.
type symbol struct {
	name      string
	kind      apidoc.Kind
	declaring string
}

func (s symbol) Name() string                        { return s.name }
func (s symbol) Kind() apidoc.Kind                   { return s.kind }
func (s symbol) DeclaringPath() string               { return s.declaring }
func (s symbol) IsPackage() bool                     { return false }
func (s symbol) MemberNames() []string               { return nil }
func (s symbol) Member(string) (apidoc.Client, bool) { return nil, false }

func membersOf(dotted string, pkg *doc.Package) map[string]apidoc.Client {
	members := make(map[string]apidoc.Client)
	add := func(name string, kind apidoc.Kind) {
		if name == "_" {
			return
		}
		members[name] = symbol{name: name, kind: kind, declaring: dotted}
	}
	addValues := func(values []*doc.Value) {
		for _, v := range values {
			for _, name := range v.Names {
				add(name, apidoc.KindValue)
			}
		}
	}
	addValues(pkg.Consts)
	addValues(pkg.Vars)
	for _, f := range pkg.Funcs {
		add(f.Name, apidoc.KindFunction)
	}
	for _, t := range pkg.Types {
		add(t.Name, apidoc.KindClass)
		addValues(t.Consts)
		addValues(t.Vars)
		for _, f := range t.Funcs {
			add(f.Name, apidoc.KindFunction)
		}
	}
	return members
}
