// Package manifest resolves modules from a precomputed YAML description of
// a package tree, for sources that cannot be introspected directly.
//
//	modules:
//	  - path: pkg.io
//	    package: true
//	    members:
//	      - {name: walk, kind: function}
//	      - {name: Timer, kind: class, declared_in: pkg.io.Timer}
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
	"github.com/agentflare-ai/go-apirst/internal/discover"
)

// Manifest lists every module in a tree.
type Manifest struct {
	Modules []Module `yaml:"modules"`

	byPath     map[string]*Module
	namespaces map[string]struct{}
}

// Module is one documented module.
type Module struct {
	Path    string   `yaml:"path"`
	Package bool     `yaml:"package"`
	Members []Member `yaml:"members"`
}

// Member is an attribute of a module. DeclaredIn and DeclaredName default
// to the owning module and Name; set them for re-exports and aliases.
type Member struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	DeclaredIn   string `yaml:"declared_in,omitempty"`
	DeclaredName string `yaml:"declared_name,omitempty"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a manifest.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty manifest")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.index(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) index() error {
	m.byPath = make(map[string]*Module, len(m.Modules))
	for i := range m.Modules {
		mod := &m.Modules[i]
		mod.Path = strings.TrimSpace(mod.Path)
		if mod.Path == "" {
			return fmt.Errorf("module %d: missing path", i)
		}
		if strings.Contains(mod.Path, "..") || strings.HasPrefix(mod.Path, ".") || strings.HasSuffix(mod.Path, ".") {
			return fmt.Errorf("module %q: malformed dotted path", mod.Path)
		}
		if _, dup := m.byPath[mod.Path]; dup {
			return fmt.Errorf("module %q: listed more than once", mod.Path)
		}
		seen := make(map[string]struct{}, len(mod.Members))
		for _, member := range mod.Members {
			if member.Name == "" {
				return fmt.Errorf("module %q: member without name", mod.Path)
			}
			if _, dup := seen[member.Name]; dup {
				return fmt.Errorf("module %q: member %q listed more than once", mod.Path, member.Name)
			}
			seen[member.Name] = struct{}{}
			if apidoc.ParseKind(member.Kind) == apidoc.KindUnknown {
				return fmt.Errorf("module %q: member %q has unknown kind %q", mod.Path, member.Name, member.Kind)
			}
		}
		m.byPath[mod.Path] = mod
	}
	m.namespaces = make(map[string]struct{})
	for _, ns := range discover.Namespaces(m.Paths()) {
		m.namespaces[ns] = struct{}{}
	}
	return nil
}

// Paths returns the module paths in manifest order.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Modules))
	for _, mod := range m.Modules {
		paths = append(paths, mod.Path)
	}
	return paths
}

// Resolve implements apidoc.Resolver. Parents implied by deeper modules
// resolve to empty namespace packages.
func (m *Manifest) Resolve(path string) (apidoc.Client, error) {
	if mod, ok := m.byPath[path]; ok {
		return &moduleClient{mod: mod, pkg: mod.Package || m.hasChildren(path)}, nil
	}
	if _, ok := m.namespaces[path]; ok {
		return &moduleClient{mod: &Module{Path: path, Package: true}, pkg: true}, nil
	}
	return nil, fmt.Errorf("%w: module %q is not in the manifest", apidoc.ErrUnresolved, path)
}

func (m *Manifest) hasChildren(path string) bool {
	for p := range m.byPath {
		if discover.Parent(p) == path {
			return true
		}
	}
	for p := range m.namespaces {
		if discover.Parent(p) == path {
			return true
		}
	}
	return false
}

// Tree builds the documenter nodes for every module in the manifest.
func (m *Manifest) Tree(opts apidoc.Options, documentPrivateModules bool) ([]*apidoc.Node, error) {
	return discover.Tree(m, discover.FilterPrivate(m.Paths(), documentPrivateModules), opts)
}

type moduleClient struct {
	mod *Module
	pkg bool
}

func (c *moduleClient) Name() string          { return apidoc.LastSegment(c.mod.Path) }
func (c *moduleClient) Kind() apidoc.Kind     { return apidoc.KindModule }
func (c *moduleClient) DeclaringPath() string { return c.mod.Path }
func (c *moduleClient) IsPackage() bool       { return c.pkg }

func (c *moduleClient) MemberNames() []string {
	names := make([]string, 0, len(c.mod.Members))
	for _, member := range c.mod.Members {
		names = append(names, member.Name)
	}
	sort.Strings(names)
	return names
}

func (c *moduleClient) Member(name string) (apidoc.Client, bool) {
	for _, member := range c.mod.Members {
		if member.Name != name {
			continue
		}
		mc := memberClient{
			name:      member.Name,
			kind:      apidoc.ParseKind(member.Kind),
			declaring: c.mod.Path,
		}
		if member.DeclaredIn != "" {
			mc.declaring = member.DeclaredIn
		}
		if member.DeclaredName != "" {
			mc.name = member.DeclaredName
		}
		return mc, true
	}
	return nil, false
}

type memberClient struct {
	name      string
	kind      apidoc.Kind
	declaring string
}

func (c memberClient) Name() string                        { return c.name }
func (c memberClient) Kind() apidoc.Kind                   { return c.kind }
func (c memberClient) DeclaringPath() string               { return c.declaring }
func (c memberClient) IsPackage() bool                     { return false }
func (c memberClient) MemberNames() []string               { return nil }
func (c memberClient) Member(string) (apidoc.Client, bool) { return nil, false }
