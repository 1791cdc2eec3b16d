// Package builder writes the rendered API pages of a documentation tree to
// disk, leaving unchanged files alone and removing pages that no longer
// belong to the tree.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
	"github.com/agentflare-ai/go-apirst/internal/logfields"
)

// IndexFile is the root page, relative to the target directory.
const IndexFile = "index.rst"

// Builder renders a tree into Target.
type Builder struct {
	Target    string
	Title     string
	Summarize bool
	Logger    *slog.Logger
}

// Report lists what a build did, relative to the target directory.
type Report struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

type page struct {
	rel     string
	content []byte
}

// Plan renders every page without touching the filesystem. Paths are
// slash-separated and relative to the target directory.
func (b *Builder) Plan(nodes []*apidoc.Node) (map[string]string, error) {
	pages, err := b.plan(nodes)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(pages))
	for _, p := range pages {
		result[p.rel] = string(p.content)
	}
	return result, nil
}

func (b *Builder) plan(nodes []*apidoc.Node) ([]page, error) {
	root, err := apidoc.NewRoot(b.Title, nodes...)
	if err != nil {
		return nil, err
	}
	index := apidoc.RenderIndex(root)
	if b.Summarize {
		index = apidoc.RenderSummary(root)
	}
	pages := []page{{rel: IndexFile, content: withNewline(index)}}
	err = apidoc.Walk(root.Children, func(n *apidoc.Node) error {
		rel := n.DocumentationPath()
		if rel == IndexFile {
			return fmt.Errorf("module %q would overwrite the root page", n.PackagePath())
		}
		pages = append(pages, page{rel: rel, content: withNewline(apidoc.RenderPage(n))})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func withNewline(s string) []byte {
	return []byte(s + "\n")
}

// Build renders nodes and synchronizes Target with the result.
func (b *Builder) Build(ctx context.Context, nodes []*apidoc.Node) (Report, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if b.Target == "" {
		return Report{}, errors.New("missing target directory")
	}
	started := time.Now()
	pages, err := b.plan(nodes)
	if err != nil {
		return Report{}, err
	}
	if err := os.MkdirAll(b.Target, 0o755); err != nil {
		return Report{}, err
	}
	var report Report
	keep := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		keep[p.rel] = struct{}{}
		target := filepath.Join(b.Target, filepath.FromSlash(p.rel))
		changed, err := writeIfChanged(target, p.content)
		if err != nil {
			return report, err
		}
		if changed {
			logger.Debug("wrote page", logfields.File(p.rel))
			report.Written = append(report.Written, p.rel)
		} else {
			report.Unchanged = append(report.Unchanged, p.rel)
		}
	}
	removed, err := removeStale(b.Target, keep)
	if err != nil {
		return report, err
	}
	for _, rel := range removed {
		logger.Debug("removed stale page", logfields.File(rel))
	}
	report.Removed = removed
	sort.Strings(report.Written)
	sort.Strings(report.Unchanged)
	logger.Info("api pages generated",
		logfields.Path(b.Target),
		logfields.Count(len(pages)),
		slog.Int("written", len(report.Written)),
		slog.Int("removed", len(report.Removed)),
		logfields.Elapsed(time.Since(started).Milliseconds()),
	)
	return report, nil
}

func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func removeStale(target string, keep map[string]struct{}) ([]string, error) {
	var removed []string
	var dirs []string
	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != target {
				dirs = append(dirs, path)
			}
			return nil
		}
		if filepath.Ext(path) != ".rst" {
			return nil
		}
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := keep[rel]; ok {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Deepest first so parents empty out before they are checked.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) > strings.Count(dirs[j], string(os.PathSeparator))
	})
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err == nil && len(entries) == 0 {
			_ = os.Remove(dir)
		}
	}
	sort.Strings(removed)
	return removed, nil
}
