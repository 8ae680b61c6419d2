// Package yaml loads sieve configuration from YAML files.
package yaml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/sieve"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched for when no
// path is given.
const DefaultConfigFile = ".sieve.yaml"

// File is the on-disk configuration. Unset fields keep their defaults.
type File struct {
	MinTokens           *int     `yaml:"min_tokens"`
	MaxTokens           *int     `yaml:"max_tokens"`
	SimilarityThreshold *float64 `yaml:"similarity_threshold"`
	BlockLimit          *int     `yaml:"block_limit"`
	AllowedFragments    []string `yaml:"allowed_fragments"`
	BlockedExtensions   []string `yaml:"blocked_extensions"`
	StopWords           []string `yaml:"stop_words"`
}

// Apply overlays the fields set in f onto cfg.
func (f *File) Apply(cfg *sieve.Config) {
	if f.MinTokens != nil {
		cfg.MinTokens = *f.MinTokens
	}
	if f.MaxTokens != nil {
		cfg.MaxTokens = *f.MaxTokens
	}
	if f.SimilarityThreshold != nil {
		cfg.SimilarityThreshold = *f.SimilarityThreshold
	}
	if f.BlockLimit != nil {
		cfg.BlockLimit = *f.BlockLimit
	}
	if f.AllowedFragments != nil {
		cfg.AllowedFragments = f.AllowedFragments
	}
	if f.BlockedExtensions != nil {
		cfg.BlockedExtensions = f.BlockedExtensions
	}
	if f.StopWords != nil {
		cfg.StopWords = f.StopWords
	}
}

// LoadConfig reads the file at path and returns the default configuration
// with the file's settings applied. A missing file is an ENOTFOUND error.
func LoadConfig(path string) (sieve.Config, error) {
	cfg := sieve.DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, sieve.Errorf(sieve.ENOTFOUND, "configuration file %q not found", path)
	}
	if err != nil {
		return cfg, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, sieve.Errorf(sieve.EINVALID, "parse %s: %v", path, err)
	}
	f.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FindConfigFile returns the configuration file to load: configPath when
// it is set and exists, otherwise DefaultConfigFile in the current
// directory, then in the home directory. It returns "" when none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
