package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
	"github.com/agentflare-ai/go-apirst/internal/builder"
	"github.com/agentflare-ai/go-apirst/internal/config"
	"github.com/agentflare-ai/go-apirst/internal/gopkg"
	"github.com/agentflare-ai/go-apirst/internal/logfields"
	"github.com/agentflare-ai/go-apirst/internal/manifest"
)

type options struct {
	configFile string
	verbose    bool
	watch      bool
	dryRun     bool
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.ExecuteContext(ctx)
}

func (app *cliApp) logger() *slog.Logger {
	handler := log.NewWithOptions(app.stderr, log.Options{
		Prefix: "go-apirst",
		Level:  log.InfoLevel,
	})
	if app.opts.verbose {
		handler.SetLevel(log.DebugLevel)
	}
	return slog.New(handler)
}

// loadConfig merges the config file, environment and flags; positional
// sources replace the configured source paths.
func (app *cliApp) loadConfig(cmd *cobra.Command, sources []string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.Load(config.LoadOptions{
		ConfigFile: app.opts.configFile,
		Dir:        wd,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		cfg.SourcePaths = sources
	}
	if len(cfg.SourcePaths) == 0 && cfg.Manifest == "" {
		cfg.SourcePaths = []string{"."}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTree builds the documenter nodes for every configured source and
// returns the directories worth watching.
func loadTree(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*apidoc.Node, []string, error) {
	classifiers, err := cfg.Classifiers()
	if err != nil {
		return nil, nil, err
	}
	opts := apidoc.Options{
		DocumentPrivateMembers: cfg.DocumentPrivateMembers,
		Classifiers:            classifiers,
	}
	var nodes []*apidoc.Node
	var watchDirs []string
	for _, src := range cfg.SourcePaths {
		idx, err := gopkg.Load(ctx, src, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", src, err)
		}
		tree, err := idx.Tree(opts, cfg.DocumentPrivateModules)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, tree...)
		watchDirs = append(watchDirs, idx.Dirs()...)
	}
	if cfg.Manifest != "" {
		m, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return nil, nil, err
		}
		tree, err := m.Tree(opts, cfg.DocumentPrivateModules)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, tree...)
		watchDirs = append(watchDirs, filepath.Dir(cfg.Manifest))
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].PackagePath() < nodes[j].PackagePath()
	})
	logger.Debug("documentation tree loaded", logfields.Count(len(nodes)))
	return nodes, watchDirs, nil
}

func (app *cliApp) newBuilder(cfg *config.Config, logger *slog.Logger) *builder.Builder {
	return &builder.Builder{
		Target:    cfg.TargetDirectory(),
		Title:     cfg.Title,
		Summarize: cfg.RootDocumenter == config.RootSummarizing,
		Logger:    logger,
	}
}

func (app *cliApp) execute(ctx context.Context, cmd *cobra.Command, positionals []string) error {
	if app.opts.watch && app.opts.dryRun {
		return errors.New("--watch cannot be combined with --dry-run")
	}
	logger := app.logger()
	cfg, err := app.loadConfig(cmd, positionals)
	if err != nil {
		return err
	}
	b := app.newBuilder(cfg, logger)

	if app.opts.dryRun {
		nodes, _, err := loadTree(ctx, cfg, logger)
		if err != nil {
			return err
		}
		pages, err := b.Plan(nodes)
		if err != nil {
			return err
		}
		paths := make([]string, 0, len(pages))
		for rel := range pages {
			paths = append(paths, filepath.ToSlash(filepath.Join(cfg.TargetDirectory(), rel)))
		}
		sort.Strings(paths)
		_, err = fmt.Fprintln(app.stdout, strings.Join(paths, "\n"))
		return err
	}

	var watchDirs []string
	rebuild := func(ctx context.Context) error {
		nodes, dirs, err := loadTree(ctx, cfg, logger)
		if err != nil {
			return err
		}
		watchDirs = dirs
		_, err = b.Build(ctx, nodes)
		return err
	}
	if err := rebuild(ctx); err != nil {
		return err
	}
	if !app.opts.watch {
		return nil
	}
	logger.Info("watching for changes", logfields.Count(len(watchDirs)))
	return builder.Watch(ctx, watchDirs, rebuild, logger)
}

func (app *cliApp) printPage(ctx context.Context, cmd *cobra.Command, module string, sources []string, outputPath string) error {
	logger := app.logger()
	cfg, err := app.loadConfig(cmd, sources)
	if err != nil {
		return err
	}
	nodes, _, err := loadTree(ctx, cfg, logger)
	if err != nil {
		return err
	}
	node := findNode(nodes, module)
	if node == nil {
		return fmt.Errorf("no module %q in the documentation tree", module)
	}
	return writeOutput(outputPath, app.stdout, renderDocument(apidoc.RenderPage(node)))
}

func (app *cliApp) printRoot(ctx context.Context, cmd *cobra.Command, sources []string, outputPath string) error {
	logger := app.logger()
	cfg, err := app.loadConfig(cmd, sources)
	if err != nil {
		return err
	}
	nodes, _, err := loadTree(ctx, cfg, logger)
	if err != nil {
		return err
	}
	text, err := renderRoot(cfg, nodes)
	if err != nil {
		return err
	}
	return writeOutput(outputPath, app.stdout, renderDocument(text))
}

func findNode(nodes []*apidoc.Node, path string) *apidoc.Node {
	var found *apidoc.Node
	errFound := errors.New("found")
	_ = apidoc.Walk(nodes, func(n *apidoc.Node) error {
		if n.PackagePath() == path {
			found = n
			return errFound
		}
		return nil
	})
	return found
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"config":          {},
	"verbose":         {},
	"output":          {},
	"directory-name":  {},
	"title":           {},
	"manifest":        {},
	"root-documenter": {},
	"classifiers":     {},
	"private-members": {},
	"private-modules": {},
	"watch":           {},
	"dry-run":         {},
	"to":              {},
}

// normalizeLegacyArgs accepts single-dash long flags (-title=API) by
// rewriting them to their double-dash form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" || len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		name := arg[1:]
		suffix := ""
		if idx := strings.Index(name, "="); idx > 0 {
			name, suffix = name[:idx], name[idx:]
		}
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name+suffix)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
