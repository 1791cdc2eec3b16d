// Package config loads go-apirst settings from defaults, an optional YAML
// file, APIRST_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
)

const (
	// DefaultFileName is looked up in the working directory when no
	// explicit config file is given.
	DefaultFileName = ".apirst.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "APIRST"

	RootSummarizing = "summarizing"
	RootPlain       = "plain"
)

// Config mirrors the options of the API builder.
type Config struct {
	DirectoryName          string   `mapstructure:"directory_name"`
	DocumentPrivateMembers bool     `mapstructure:"document_private_members"`
	DocumentPrivateModules bool     `mapstructure:"document_private_modules"`
	MemberClassifiers      []string `mapstructure:"member_classifiers"`
	SourcePaths            []string `mapstructure:"source_paths"`
	Manifest               string   `mapstructure:"manifest"`
	Title                  string   `mapstructure:"title"`
	RootDocumenter         string   `mapstructure:"root_documenter"`
	Output                 string   `mapstructure:"output"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DirectoryName:     "api",
		MemberClassifiers: []string{"class", "function"},
		SourcePaths:       []string{},
		Title:             apidoc.DefaultTitle,
		RootDocumenter:    RootSummarizing,
		Output:            "docs",
	}
}

// FlagNames maps config keys to the command-line flags that override them.
var FlagNames = map[string]string{
	"directory_name":           "directory-name",
	"document_private_members": "private-members",
	"document_private_modules": "private-modules",
	"member_classifiers":       "classifiers",
	"manifest":                 "manifest",
	"title":                    "title",
	"root_documenter":          "root-documenter",
	"output":                   "output",
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is used exclusively when set and must exist.
	ConfigFile string
	// Dir is searched for DefaultFileName when ConfigFile is empty.
	Dir string
	// Flags, when non-nil, override file and environment values for any
	// flag the user changed.
	Flags *pflag.FlagSet
}

// Load resolves the configuration and returns it with the path of the file
// that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("directory_name", defaults.DirectoryName)
	v.SetDefault("document_private_members", defaults.DocumentPrivateMembers)
	v.SetDefault("document_private_modules", defaults.DocumentPrivateModules)
	v.SetDefault("member_classifiers", defaults.MemberClassifiers)
	v.SetDefault("source_paths", defaults.SourcePaths)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("title", defaults.Title)
	v.SetDefault("root_documenter", defaults.RootDocumenter)
	v.SetDefault("output", defaults.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	resolved := ""
	switch {
	case opts.ConfigFile != "":
		if !fileExists(opts.ConfigFile) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
		}
		resolved = opts.ConfigFile
	default:
		candidate := filepath.Join(opts.Dir, DefaultFileName)
		if fileExists(candidate) {
			resolved = candidate
		}
	}
	if resolved != "" {
		v.SetConfigFile(resolved)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", resolved, err)
		}
	}

	if opts.Flags != nil {
		for key, name := range FlagNames {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, "", fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return &cfg, resolved, nil
}

func (c *Config) normalize() {
	c.RootDocumenter = strings.ToLower(strings.TrimSpace(c.RootDocumenter))
	c.DirectoryName = strings.TrimSpace(c.DirectoryName)
	var sources []string
	for _, s := range c.SourcePaths {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}
	c.SourcePaths = sources
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DirectoryName == "" {
		return errors.New("directory_name must not be empty")
	}
	if filepath.IsAbs(c.DirectoryName) || strings.HasPrefix(filepath.Clean(c.DirectoryName), "..") {
		return fmt.Errorf("directory_name %q must be relative to the output directory", c.DirectoryName)
	}
	// The API directory must sit below the output directory, never be it.
	if filepath.Clean(c.DirectoryName) == "." {
		return fmt.Errorf("directory_name %q must name a directory below the output directory", c.DirectoryName)
	}
	if len(c.MemberClassifiers) == 0 {
		return errors.New("member_classifiers must name at least one classifier")
	}
	if _, err := apidoc.ClassifiersByName(c.MemberClassifiers); err != nil {
		return err
	}
	switch c.RootDocumenter {
	case RootSummarizing, RootPlain:
	default:
		return fmt.Errorf("unknown root_documenter %q (want %s or %s)", c.RootDocumenter, RootSummarizing, RootPlain)
	}
	if len(c.SourcePaths) == 0 && c.Manifest == "" {
		return errors.New("no source_paths or manifest configured")
	}
	return nil
}

// Classifiers returns the configured classifiers in priority order.
func (c *Config) Classifiers() ([]apidoc.Classifier, error) {
	return apidoc.ClassifiersByName(c.MemberClassifiers)
}

// TargetDirectory is where generated pages are written.
func (c *Config) TargetDirectory() string {
	return filepath.Join(c.Output, c.DirectoryName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
