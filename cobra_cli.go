package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
	"github.com/agentflare-ai/go-apirst/internal/config"
)

// Version is reported by --version.
var Version = "dev"

const rootLongDesc = `
go-apirst generates reStructuredText API reference pages for a package tree.
It loads every package below the given source paths (or a YAML manifest),
classifies each package's members, and writes:

  • one page per package with an automodule directive, a toctree of its
    subpackages and one directive per documented member
  • an index page that summarizes the whole tree in autosummary tables

Settings come from .apirst.yaml, APIRST_* environment variables and flags.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "go-apirst [flags] [source...]",
		Short:         "Generate reStructuredText API pages for a package tree",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.opts.configFile, "config", "", "configuration file (default "+config.DefaultFileName+" when present)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringP("output", "o", "", "documentation source directory the API directory is created in")
	flags.String("directory-name", "", "name of the API directory below --output")
	flags.String("title", "", "title of the root page")
	flags.String("manifest", "", "YAML manifest describing modules instead of Go sources")
	flags.String("root-documenter", "", "root page style: summarizing or plain")
	flags.StringSlice("classifiers", nil, "member classifiers in priority order ("+strings.Join(apidoc.ClassifierNames(), ", ")+")")
	flags.Bool("private-members", false, "document members with private names")
	flags.Bool("private-modules", false, "document private (internal, _-prefixed) packages")

	local := cmd.Flags()
	local.BoolVar(&app.opts.watch, "watch", false, "regenerate pages whenever sources change")
	local.BoolVar(&app.opts.dryRun, "dry-run", false, "list the pages that would be written without writing them")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.execute(commandContext(cmd), cmd, args)
	}

	cmd.AddCommand(newPageCmd(app))
	cmd.AddCommand(newSummaryCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newPageCmd(app *cliApp) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "page <module> [source...]",
		Short: "Print the API page of one module",
		Long: strings.TrimSpace(`
Render a single module page, for example:

  go-apirst page example.sub_mod ./testdata/example
`),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&outputPath, "to", "", "write the page to FILE instead of stdout")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.printPage(commandContext(cmd), cmd, args[0], args[1:], outputPath)
	}
	return cmd
}

func newSummaryCmd(app *cliApp) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:           "summary [source...]",
		Short:         "Print the root page summarizing the whole tree",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&outputPath, "to", "", "write the summary to FILE instead of stdout")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.printRoot(commandContext(cmd), cmd, args, outputPath)
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for go-apirst.

The output should be evaluated by your shell. For example:

  # bash
  go-apirst completion bash > /usr/local/etc/bash_completion.d/go-apirst

  # zsh
  go-apirst completion zsh > "${fpath[1]}/_go-apirst"

  # fish
  go-apirst completion fish | source

  # PowerShell
  go-apirst completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-apirst gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
