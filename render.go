package main

import (
	"github.com/agentflare-ai/go-apirst/internal/apidoc"
	"github.com/agentflare-ai/go-apirst/internal/config"
)

// renderRoot renders the root page in the configured style.
func renderRoot(cfg *config.Config, nodes []*apidoc.Node) (string, error) {
	root, err := apidoc.NewRoot(cfg.Title, nodes...)
	if err != nil {
		return "", err
	}
	if cfg.RootDocumenter == config.RootPlain {
		return apidoc.RenderIndex(root), nil
	}
	return apidoc.RenderSummary(root), nil
}

// renderDocument terminates rendered text the way pages are written to disk.
func renderDocument(text string) []byte {
	return []byte(text + "\n")
}
