// Package config loads planner configuration from TOML files and booth
// inventories from XLSX workbooks. The planning core never reads files
// itself; everything is converted to pipeline options up front.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/pipeline"
	"github.com/expogrid/hallplan/pkg/scoring"
)

// Config is the full planner configuration file.
type Config struct {
	Corridors CorridorConfig  `toml:"corridors"`
	Weights   scoring.Weights `toml:"weights"`
	Render    RenderConfig    `toml:"render"`
	Cache     CacheConfig     `toml:"cache"`
	Store     StoreConfig     `toml:"store"`

	// Inventory lines inline in the config file. Mutually exclusive with
	// InventoryFile.
	Inventory []InventoryLine `toml:"inventory"`

	// InventoryFile points to an XLSX workbook with area/count columns.
	InventoryFile string `toml:"inventory_file"`
}

// CorridorConfig tunes the secondary/tertiary corridor heuristics.
type CorridorConfig struct {
	SecondaryWidth  float64 `toml:"secondary_width"`
	MaxSpanDepth    float64 `toml:"max_span_depth"`
	StarvationWidth float64 `toml:"starvation_width"`
}

// RenderConfig controls artifact rendering.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis" or "none". Empty means "file".
	Backend string `toml:"backend"`

	// Dir is the directory of the file backend.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig holds MongoDB persistence settings. An empty URI disables
// persistence.
type StoreConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// InventoryLine is one booth spec in the config file.
type InventoryLine struct {
	Area  float64 `toml:"area"`
	Count int     `toml:"count"`
}

// Load reads and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects contradictory or malformed settings.
func (c *Config) Validate() error {
	if len(c.Inventory) > 0 && c.InventoryFile != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "inventory and inventory_file are mutually exclusive")
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if _, err := c.ResolveInventory(); err != nil {
		return err
	}
	return nil
}

// ResolveInventory returns the configured booth inventory: the inline table,
// the XLSX workbook, or nil for the fixed default.
func (c *Config) ResolveInventory() ([]hall.BoothSpec, error) {
	if c.InventoryFile != "" {
		return LoadInventoryXLSX(c.InventoryFile)
	}
	if len(c.Inventory) == 0 {
		return nil, nil
	}
	specs := make([]hall.BoothSpec, len(c.Inventory))
	for i, l := range c.Inventory {
		specs[i] = hall.BoothSpec{Area: l.Area, Count: l.Count}
	}
	if err := hall.ValidateInventory(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// PipelineOptions converts the configuration into pipeline options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	inventory, err := c.ResolveInventory()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		SecondaryWidth:  c.Corridors.SecondaryWidth,
		MaxSpanDepth:    c.Corridors.MaxSpanDepth,
		StarvationWidth: c.Corridors.StarvationWidth,
		Weights:         c.Weights,
		Inventory:       inventory,
		Formats:         c.Render.Formats,
		Scale:           c.Render.Scale,
	}, nil
}
