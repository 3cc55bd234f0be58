// Package config handles report engine configuration loading.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/logging"
	"github.com/BelalFares97/MultiTool/pkg/palette"
)

// AppName names the configuration directory under the XDG config home.
const AppName = "multitool"

// Config is the root configuration structure.
type Config struct {
	Meeting ReportConfig  `yaml:"meeting"`
	Risk    ReportConfig  `yaml:"risk"`
	Palette PaletteConfig `yaml:"palette"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// ReportConfig holds the page geometry and branding of one report type.
type ReportConfig struct {
	Layout   layout.Config `yaml:"layout"`
	Branding Branding      `yaml:"branding"`
}

// Branding holds the fixed strings printed in a report's chrome.
type Branding struct {
	// Product is the name in the header band.
	Product string `yaml:"product"`

	// Title is the large heading on the first page.
	Title string `yaml:"title"`

	// Tagline is printed under the title.
	Tagline string `yaml:"tagline"`

	// Footer is the left-hand footer text.
	Footer string `yaml:"footer"`

	// NarrativeTitle labels the free-text analysis section, if the report has one.
	NarrativeTitle string `yaml:"narrative_title"`

	// Author is written to the PDF metadata.
	Author string `yaml:"author"`
}

// PaletteConfig holds the speaker color palette.
type PaletteConfig struct {
	Speakers []string `yaml:"speakers"`
	Fallback string   `yaml:"fallback"`
}

// OutputConfig holds where and how reports are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Concurrency int    `yaml:"concurrency"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Meeting: ReportConfig{
			Layout: layout.DefaultConfig(),
			Branding: Branding{
				Product: "Mujaz",
				Title:   "Meeting Minutes Report",
				Tagline: "Powered by DataScience Middle East • Mujaz Platform",
				Footer:  "Confidential Meeting Report",
				Author:  "DataScience Middle East",
			},
		},
		Risk: ReportConfig{
			Layout: RiskLayout(),
			Branding: Branding{
				Product:        "MIQYAS CREDIT",
				Title:          "Credit Risk Assessment",
				Footer:         "Confidential Risk Assessment Report • Aafaq MultiTool",
				NarrativeTitle: "Miqyas Discrepancy Detection",
				Author:         "Aafaq MultiTool",
			},
		},
		Palette: PaletteConfig{
			Speakers: append([]string(nil), palette.DefaultSpeakerHex...),
			Fallback: palette.DefaultFallback,
		},
		Output: OutputConfig{
			Dir:         ".",
			Concurrency: 4,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// RiskLayout returns the risk report geometry: a taller 19.5mm header band,
// a 12mm footer band and content kept 20mm clear of the bottom edge.
func RiskLayout() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.ContentTop = 28
	cfg.BottomGap = 20
	cfg.HeaderHeight = 19.5
	cfg.FooterHeight = 12
	return cfg
}

// Validate checks every section and returns a CONFIG_INVALID error for the first problem.
func (c *Config) Validate() error {
	if err := c.Meeting.Layout.Validate(); err != nil {
		return rerrors.ConfigInvalid("meeting.layout", err.Error())
	}
	if err := c.Risk.Layout.Validate(); err != nil {
		return rerrors.ConfigInvalid("risk.layout", err.Error())
	}
	for i, h := range c.Palette.Speakers {
		if _, err := palette.ParseHex(h); err != nil {
			return rerrors.ConfigInvalid("palette.speakers", err.Error()).
				WithContext("index", strconv.Itoa(i))
		}
	}
	if c.Output.Concurrency < 0 {
		return rerrors.ConfigInvalid("output.concurrency", "concurrency must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return rerrors.ConfigInvalid("log.level", err.Error()).
			WithContext("valid_options", "debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return rerrors.ConfigInvalid("log.format", "unknown log format "+c.Log.Format).
			WithContext("valid_options", "text, json")
	}
	return nil
}

// Assigner returns the speaker color assigner described by the palette section.
func (c *Config) Assigner() *palette.Assigner {
	return palette.NewAssigner(c.Palette.Speakers, c.Palette.Fallback)
}

// Load loads configuration from a file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rerrors.ConfigNotFound(path)
		}
		return nil, rerrors.ConfigWrap(err, rerrors.ErrConfigNotFound, "failed to read config").
			WithContext("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, rerrors.ConfigParseError(path, err)
	}
	if err := cfg.Validate(); err != nil {
		if re, ok := rerrors.AsReportError(err); ok {
			return nil, re.WithContext("path", path)
		}
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigWriteFailed, "failed to create config directory").
			WithContext("path", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigWriteFailed, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigWriteFailed, "failed to write config file").
			WithContext("path", path)
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
// A config.yaml in the working directory wins over the per-user one.
func DefaultConfigPath() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// InitConfig creates a default config file if it doesn't exist.
// With force set an existing file is overwritten.
func InitConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return nil // Already exists
	}

	cfg := Default()
	return cfg.Save(path)
}
