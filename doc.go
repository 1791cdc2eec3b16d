// # go-apirst
//
// `go-apirst` generates reStructuredText API reference pages for a package
// tree. It loads packages with `golang.org/x/tools/go/packages`, reads their
// declarations with `go/doc`, and writes one page per package plus a root
// page that summarizes the whole tree. The output is meant to be consumed by
// Sphinx-style tooling (`automodule`, `autosummary`, `toctree`).
//
// Key capabilities:
//
//   - classify package members with an ordered list of classifiers
//     (`class`, `function`, `value`); the first match wins.
//   - emit one page per package with an anchor, a title, an `automodule`
//     directive, a toctree of subpackages and one directive per member.
//   - emit a root page that either lists the top-level packages (`plain`) or
//     summarizes every package in autosummary tables (`summarizing`).
//   - collapse modules that only host one symbol of the same name out of the
//     summary.
//   - document trees that cannot be loaded from Go sources via a YAML
//     manifest.
//   - rewrite only pages whose content changed and remove stale pages.
//   - watch sources and regenerate on change.
//
// ## Usage
//
//	go run . [flags] [source...]
//
// Examples:
//
//   - Generate docs/api for the current module:
//
//     go run . .
//
//   - Print a single page:
//
//     go run . page example.sub_mod ./testdata/example
//
//   - Print the summary page:
//
//     go run . summary ./testdata/example
//
// ## Configuration
//
// Settings are read from `.apirst.yaml` (or `--config FILE`), then from
// `APIRST_*` environment variables, then from flags:
//
//   - `directory_name` (`--directory-name`, default `api`)
//   - `document_private_members` (`--private-members`, default `false`)
//   - `document_private_modules` (`--private-modules`, default `false`)
//   - `member_classifiers` (`--classifiers`, default `[class, function]`)
//   - `source_paths` (positional arguments)
//   - `manifest` (`--manifest`)
//   - `title` (`--title`, default `API`)
//   - `root_documenter` (`--root-documenter`, `summarizing` or `plain`)
//   - `output` (`-o`, default `docs`)
//
// ## Shell Completion
//
//	go run . completion bash        # bash
//	go run . completion zsh         # zsh
//	go run . completion fish | source
//	go run . completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	go run . gen-docs ./docs/cli
package main
