// Package gopkg exposes a tree of Go packages as apidoc modules.
//
// Import paths are mapped to dotted paths relative to the parent of the
// tree's root package: loading example.com/lib/... yields lib, lib.sub and
// so on. Types become classes, functions (including constructors grouped
// under a type) become functions, and package-level constants and
// variables become values. Methods are left to the type's own page.
package gopkg

import (
	"context"
	"fmt"
	"go/doc"
	"go/token"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
	"github.com/agentflare-ai/go-apirst/internal/discover"
	"github.com/agentflare-ai/go-apirst/internal/logfields"
)

const loadMode = packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
	packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports

// IsPrivate reports unexported Go identifiers.
func IsPrivate(name string) bool {
	return !token.IsExported(name)
}

// Index holds the loaded packages of one tree keyed by dotted path.
type Index struct {
	base       string
	modules    map[string]*module
	namespaces map[string]struct{}
}

type module struct {
	path    string
	dir     string
	members map[string]apidoc.Client
}

// Load loads root and every package below it.
func Load(ctx context.Context, root string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pkgs, err := loadPackageTree(ctx, root, logger)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", root)
	}
	importPaths := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		importPaths = append(importPaths, pkg.PkgPath)
	}
	idx := &Index{
		base:    path.Dir(commonImportPrefix(importPaths)),
		modules: make(map[string]*module, len(pkgs)),
	}
	if idx.base == "." {
		idx.base = ""
	}
	for _, pkg := range pkgs {
		dotted, ok := idx.dottedPath(pkg.PkgPath)
		if !ok {
			logger.Warn("skipping package that cannot be expressed as a dotted path", logfields.Source(pkg.PkgPath))
			continue
		}
		docPkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, doc.AllDecls)
		if err != nil {
			return nil, fmt.Errorf("read documentation for %s: %w", pkg.PkgPath, err)
		}
		idx.modules[dotted] = &module{
			path:    dotted,
			dir:     packageDir(pkg),
			members: membersOf(dotted, docPkg),
		}
		logger.Debug("loaded package", logfields.Module(dotted), logfields.Source(pkg.PkgPath))
	}
	idx.namespaces = make(map[string]struct{})
	for _, ns := range discover.Namespaces(idx.Paths()) {
		idx.namespaces[ns] = struct{}{}
	}
	return idx, nil
}

func (idx *Index) dottedPath(importPath string) (string, bool) {
	rel := importPath
	if idx.base != "" {
		var ok bool
		rel, ok = strings.CutPrefix(importPath, idx.base+"/")
		if !ok {
			return "", false
		}
	}
	if strings.Contains(rel, ".") {
		return "", false
	}
	return strings.ReplaceAll(rel, "/", "."), true
}

// Paths returns the dotted paths of the loaded packages, sorted.
func (idx *Index) Paths() []string {
	paths := make([]string, 0, len(idx.modules))
	for p := range idx.modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Dirs returns the source directories of the loaded packages, sorted.
func (idx *Index) Dirs() []string {
	var dirs []string
	for _, m := range idx.modules {
		if m.dir != "" {
			dirs = append(dirs, m.dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// Resolve implements apidoc.Resolver. Directories without Go files that
// sit between loaded packages resolve to empty namespace packages.
func (idx *Index) Resolve(dotted string) (apidoc.Client, error) {
	if m, ok := idx.modules[dotted]; ok {
		return &packageClient{mod: m, pkg: idx.hasChildren(dotted)}, nil
	}
	if _, ok := idx.namespaces[dotted]; ok {
		return &packageClient{mod: &module{path: dotted}, pkg: true}, nil
	}
	return nil, fmt.Errorf("%w: no loaded Go package for %q", apidoc.ErrUnresolved, dotted)
}

func (idx *Index) hasChildren(dotted string) bool {
	for p := range idx.modules {
		if discover.Parent(p) == dotted {
			return true
		}
	}
	for p := range idx.namespaces {
		if discover.Parent(p) == dotted {
			return true
		}
	}
	return false
}

// Tree builds documenter nodes for the loaded packages. A nil privacy rule
// in opts selects IsPrivate.
func (idx *Index) Tree(opts apidoc.Options, documentPrivateModules bool) ([]*apidoc.Node, error) {
	if opts.IsPrivate == nil {
		opts.IsPrivate = IsPrivate
	}
	return discover.Tree(idx, discover.FilterPrivate(idx.Paths(), documentPrivateModules), opts)
}

func loadPackageTree(ctx context.Context, root string, logger *slog.Logger) ([]*packages.Package, error) {
	patterns := buildPatterns(root)
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, err
	}
	unique := make(map[string]*packages.Package)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			if len(pkg.GoFiles) == 0 && len(pkg.CompiledGoFiles) == 0 {
				logger.Debug("skipping directory without Go files", logfields.Source(pkg.PkgPath), logfields.Error(pkg.Errors[0]))
				continue
			}
			return nil, fmt.Errorf("%s", pkg.Errors[0])
		}
		key := pkg.PkgPath
		if key == "" {
			key = packageDir(pkg)
		}
		unique[key] = pkg
	}
	result := make([]*packages.Package, 0, len(unique))
	for _, pkg := range unique {
		result = append(result, pkg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PkgPath < result[j].PkgPath
	})
	return result, nil
}

func buildPatterns(root string) []string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = filepath.ToSlash(root)
	patterns := []string{root}
	if !strings.Contains(root, "...") {
		recursive := root
		if recursive == "." {
			recursive = "./..."
		} else if strings.HasSuffix(recursive, "/") {
			recursive = recursive + "..."
		} else {
			recursive = recursive + "/..."
		}
		patterns = append(patterns, recursive)
	}
	return patterns
}

func commonImportPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	prefix := strings.Split(paths[0], "/")
	for _, p := range paths[1:] {
		parts := strings.Split(p, "/")
		n := 0
		for n < len(prefix) && n < len(parts) && prefix[n] == parts[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return strings.Join(prefix, "/")
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return ""
}
