package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"

	"gopkg.in/yaml.v3"
)

// DefaultAddr is the listen address for `rxcalc serve`.
const DefaultAddr = ":8080"

// Config holds all runtime configuration for an rxcalc run.
type Config struct {
	DSN         string
	CatalogPath string // xlsx, csv or parquet; empty means the embedded catalog
	PolicyPath  string // optional YAML policy file
	LogFormat   string // "text" or "json"
	LogLevel    string
	Addr        string

	// import
	Force       bool // re-import even if file SHA already exists
	KeepImports int  // inactive imports kept after activation; <0 keeps all

	TitrationExceptions []TitrationException `yaml:"titration_exceptions"`
}

// TitrationException names an extra standard long-acting product titrated in
// 2 unit steps. Empty Concentration or DeviceForm match any.
type TitrationException struct {
	Insulin       string `yaml:"insulin"`
	Concentration string `yaml:"concentration"`
	DeviceForm    string `yaml:"device_form"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	CatalogPath         string               `yaml:"catalog_path"`
	TitrationExceptions []TitrationException `yaml:"titration_exceptions"`
}

// LoadFromFile reads a YAML policy file and merges its values into Config.
// A catalog_path in the file applies only when no path was given on the
// command line, and is resolved relative to the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.CatalogPath == "" && yc.CatalogPath != "" {
		c.CatalogPath = yc.CatalogPath
		if !filepath.IsAbs(c.CatalogPath) {
			c.CatalogPath = filepath.Join(filepath.Dir(path), c.CatalogPath)
		}
	}
	c.TitrationExceptions = yc.TitrationExceptions
	return c.validateExceptions()
}

// validateExceptions checks that every titration exception names a standard
// long-acting insulin and normalizes its concentration label.
func (c *Config) validateExceptions() error {
	for i, ex := range c.TitrationExceptions {
		if ex.Insulin == "" {
			return fmt.Errorf("titration_exceptions[%d]: insulin is required", i)
		}
		if class := model.ClassOf(ex.Insulin); class != model.ClassStandardLongActing {
			return fmt.Errorf("titration_exceptions[%d]: %q is %s, not a standard long-acting insulin", i, ex.Insulin, class)
		}
		if ex.Concentration != "" {
			label, err := normalize.ParseConcentration(ex.Concentration)
			if err != nil {
				return fmt.Errorf("titration_exceptions[%d]: %w", i, err)
			}
			c.TitrationExceptions[i].Concentration = label
		}
	}
	return nil
}

// TitrationOverrides converts the configured exceptions for the dosing engine.
func (c *Config) TitrationOverrides() []dosing.TitrationOverride {
	out := make([]dosing.TitrationOverride, 0, len(c.TitrationExceptions))
	for _, ex := range c.TitrationExceptions {
		out = append(out, dosing.TitrationOverride{
			Insulin:       ex.Insulin,
			Concentration: ex.Concentration,
			DeviceForm:    ex.DeviceForm,
		})
	}
	return out
}

// Validate checks that a configured catalog file is readable.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return nil
	}
	if _, err := os.Stat(c.CatalogPath); err != nil {
		return fmt.Errorf("catalog file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both the catalog file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or RXCALC_DSN is required")
	}
	return nil
}
