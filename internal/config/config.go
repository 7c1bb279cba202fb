package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OtaniMakoto/CSV2img/internal/grid"
	"github.com/OtaniMakoto/CSV2img/internal/jpeg"
)

// Defaults for the batch entry point.
const (
	DefaultDataDir    = "data"
	DefaultOutputDir  = "output"
	DefaultInputFile  = "data/from_top_4.csv"
	DefaultOutputFile = "output/converted_image.jpg"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config holds conversion settings loaded from a JSON file. Fields omitted
// from the file are nil and fall back to the defaults returned by the Get*
// methods, so partial configs are safe.
type Config struct {
	Quality  *int    `json:"quality,omitempty"`
	Ragged   *string `json:"ragged,omitempty"` // "reject" or "pad"
	Scale    *int    `json:"scale,omitempty"`
	Optimize *bool   `json:"optimize,omitempty"`
	Sidecar  *bool   `json:"sidecar,omitempty"`

	// Batch entry point locations
	DataDir    *string `json:"data_dir,omitempty"`
	OutputDir  *string `json:"output_dir,omitempty"`
	InputFile  *string `json:"input_file,omitempty"`
	OutputFile *string `json:"output_file,omitempty"`
}

// Empty returns a Config with all fields set to nil.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The path must have a .json
// extension and the file must be under 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that every set field is in range.
func (c *Config) Validate() error {
	if c.Quality != nil && (*c.Quality < 0 || *c.Quality > 100) {
		return fmt.Errorf("quality must be in 0-100, got %d", *c.Quality)
	}
	if c.Ragged != nil {
		if _, err := grid.ParseRaggedPolicy(*c.Ragged); err != nil {
			return err
		}
	}
	if c.Scale != nil && *c.Scale < 1 {
		return fmt.Errorf("scale must be >= 1, got %d", *c.Scale)
	}
	return nil
}

func (c *Config) GetQuality() int {
	if c.Quality != nil {
		return *c.Quality
	}
	return jpeg.DefaultQuality
}

func (c *Config) GetRagged() grid.RaggedPolicy {
	if c.Ragged != nil {
		// Validate has already rejected unknown names.
		p, _ := grid.ParseRaggedPolicy(*c.Ragged)
		return p
	}
	return grid.RaggedReject
}

func (c *Config) GetScale() int {
	if c.Scale != nil {
		return *c.Scale
	}
	return 1
}

func (c *Config) GetOptimize() bool {
	return c.Optimize != nil && *c.Optimize
}

func (c *Config) GetSidecar() bool {
	return c.Sidecar != nil && *c.Sidecar
}

func (c *Config) GetDataDir() string {
	if c.DataDir != nil {
		return *c.DataDir
	}
	return DefaultDataDir
}

func (c *Config) GetOutputDir() string {
	if c.OutputDir != nil {
		return *c.OutputDir
	}
	return DefaultOutputDir
}

func (c *Config) GetInputFile() string {
	if c.InputFile != nil {
		return *c.InputFile
	}
	return DefaultInputFile
}

func (c *Config) GetOutputFile() string {
	if c.OutputFile != nil {
		return *c.OutputFile
	}
	return DefaultOutputFile
}
