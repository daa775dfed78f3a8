package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"avatar-combiner/internal/publish"
)

// Config holds all configurable paths and pipeline settings. Precedence:
// CLI flags > environment > config file > defaults.
type Config struct {
	// Paths
	ImportRoot string `json:"import_root" yaml:"import_root" env:"ACC_IMPORT_ROOT"`
	OutputDir  string `json:"output_dir" yaml:"output_dir" env:"ACC_OUTPUT_DIR"`

	// Pipeline settings
	Combinations int    `json:"combinations" yaml:"combinations" env:"ACC_COMBINATIONS"`
	Seed         int64  `json:"seed" yaml:"seed" env:"ACC_SEED"`
	Seeded       bool   `json:"seeded" yaml:"seeded" env:"ACC_SEEDED"`
	Ext          string `json:"ext" yaml:"ext" env:"ACC_EXT"`
	MaxTexSize   int    `json:"max_tex_size" yaml:"max_tex_size" env:"ACC_MAX_TEX_SIZE"`
	Workers      int    `json:"workers" yaml:"workers" env:"ACC_WORKERS"`

	S3 publish.Config `json:"s3" yaml:"s3"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto the config.
func (c *Config) FromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Flags holds CLI flag values that override everything else.
type Flags struct {
	ImportRoot   string
	OutputDir    string
	Combinations int
	Seed         int64
	Seeded       bool
	Workers      int
	Ext          string
}

// Resolve applies flag overrides and fills remaining empty fields with
// defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.ImportRoot != "" {
		c.ImportRoot = flags.ImportRoot
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Combinations >= 0 {
		// Explicit flag, including an explicit zero.
		c.Combinations = flags.Combinations
	} else if c.Combinations == 0 {
		c.Combinations = 10
	}
	if flags.Seeded {
		c.Seed = flags.Seed
		c.Seeded = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Ext != "" {
		c.Ext = flags.Ext
	}

	if c.Ext == "" {
		c.Ext = "fbx"
	}
	if c.MaxTexSize <= 0 {
		c.MaxTexSize = 2048
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" && c.ImportRoot != "" {
		c.OutputDir = filepath.Join(filepath.Dir(c.ImportRoot), "combinations")
	}
}
