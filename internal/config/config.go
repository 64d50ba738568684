package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tangle/internal/web"
)

type Config struct {
	Weave struct {
		Language      string `yaml:"language"`       // fence tag to keep
		Section       string `yaml:"section"`        // key woven by default, "" is the root
		Strict        bool   `yaml:"strict"`         // fail on unresolved references
		Markers       bool   `yaml:"markers"`        // emit a comment line before inlined sections
		CommentPrefix string `yaml:"comment_prefix"` // line comment used by markers
	} `yaml:"weave"`
	Delimiters web.Delimiters `yaml:"delimiters"`
	Input      struct {
		Extensions []string `yaml:"extensions"`
		Ignore     []string `yaml:"ignore"`
	} `yaml:"input"`
	Storage struct {
		DBPath string `yaml:"db"`
	} `yaml:"storage"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Weave.Language = "rust"
	cfg.Weave.Markers = true
	cfg.Weave.CommentPrefix = "//"
	cfg.Delimiters = web.DefaultDelimiters()
	cfg.Input.Extensions = []string{".md", ".markdown"}
	cfg.Input.Ignore = []string{".git", "vendor", "node_modules"}
	cfg.Storage.DBPath = "tangle.db"
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config over the defaults
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if lang := os.Getenv("TANGLE_LANGUAGE"); lang != "" {
		cfg.Weave.Language = lang
	}
	if strict := os.Getenv("TANGLE_STRICT"); strict != "" {
		v, err := strconv.ParseBool(strict)
		if err != nil {
			return nil, fmt.Errorf("invalid TANGLE_STRICT %q: %w", strict, err)
		}
		cfg.Weave.Strict = v
	}
	if db := os.Getenv("TANGLE_DB"); db != "" {
		cfg.Storage.DBPath = db
	}

	return cfg, nil
}

// Patterns compiles the configured delimiters, falling back to the defaults
// for any delimiter left empty.
func (c *Config) Patterns() (*web.Patterns, error) {
	d := c.Delimiters
	def := web.DefaultDelimiters()
	if d.Open == "" {
		d.Open = def.Open
	}
	if d.Close == "" {
		d.Close = def.Close
	}
	if d.Define == "" {
		d.Define = def.Define
	}
	if d.Continue == "" {
		d.Continue = def.Continue
	}
	return web.NewPatterns(d)
}

// WeaverOptions translates the weave settings into weaver options.
func (c *Config) WeaverOptions() []web.Option {
	return []web.Option{
		web.WithStrict(c.Weave.Strict),
		web.WithMarkers(c.Weave.Markers),
		web.WithCommentPrefix(c.Weave.CommentPrefix),
	}
}
