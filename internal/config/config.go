// Package config loads cardcreator settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/youruser/cardcreator/internal/deck"
	imagepkg "github.com/youruser/cardcreator/internal/image"
)

// Config holds all settings. Zero values are replaced by defaults.
type Config struct {
	Server struct {
		Port    string `yaml:"port"`     // HTTP port, overridden by PORT
		DataDir string `yaml:"data_dir"` // card files served by the API live here
	} `yaml:"server"`
	Page struct {
		WidthInch     float64 `yaml:"width_inch"`
		HeightInch    float64 `yaml:"height_inch"`
		MarginPts     float64 `yaml:"margin_pts"`      // page edge to first card
		CellMarginPts float64 `yaml:"cell_margin_pts"` // gap between cards
	} `yaml:"page"`
	Render struct {
		FontsDir string  `yaml:"fonts_dir"` // extra .ttf/.otf files, overridden by CARDCREATOR_FONTS
		FitStep  float64 `yaml:"fit_step"`  // font size decrement while fitting text
		Border   *bool   `yaml:"border"`    // black frame around each card
	} `yaml:"render"`
	Preview struct {
		GridColor string `yaml:"grid_color"`
	} `yaml:"preview"`
	Images struct {
		DPI int `yaml:"dpi"` // resolution of image sets turned into PDFs
	} `yaml:"images"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path, if any, fills in defaults and applies
// environment overrides. An empty path falls back to CARDCREATOR_CONFIG.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CARDCREATOR_CONFIG")
	}
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CARDCREATOR_FONTS"); v != "" {
		c.Render.FontsDir = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data"
	}
	if c.Page.WidthInch == 0 {
		c.Page.WidthInch = deck.A4WidthInch
	}
	if c.Page.HeightInch == 0 {
		c.Page.HeightInch = deck.A4HeightInch
	}
	if c.Page.MarginPts == 0 {
		c.Page.MarginPts = 20
	}
	if c.Page.CellMarginPts == 0 {
		c.Page.CellMarginPts = 10
	}
	if c.Render.FitStep == 0 {
		c.Render.FitStep = imagepkg.DefaultFitStep
	}
	if c.Render.Border == nil {
		on := true
		c.Render.Border = &on
	}
	if c.Preview.GridColor == "" {
		c.Preview.GridColor = "#ff000080"
	}
	if c.Images.DPI == 0 {
		c.Images.DPI = 300
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("server.port %q is not a number", c.Server.Port))
	}
	if c.Page.WidthInch < 0 || c.Page.HeightInch < 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}
	if c.Page.MarginPts < 0 || c.Page.CellMarginPts < 0 {
		errs = append(errs, errors.New("page margins must not be negative"))
	}
	if c.Render.FitStep < 0 {
		errs = append(errs, errors.New("render.fit_step must be positive"))
	}
	if c.Images.DPI < 0 {
		errs = append(errs, errors.New("images.dpi must be positive"))
	}
	return errors.Join(errs...)
}

// PrintPage returns the print page in points.
func (c *Config) PrintPage() deck.Page {
	return deck.Page{
		Width:      c.Page.WidthInch * deck.PointsPerInch,
		Height:     c.Page.HeightInch * deck.PointsPerInch,
		Margin:     c.Page.MarginPts,
		CellMargin: c.Page.CellMarginPts,
	}
}

// Renderer builds a renderer with the Go fonts plus any in FontsDir.
func (c *Config) Renderer() (*imagepkg.Renderer, error) {
	fonts := imagepkg.NewFontRegistry()
	if c.Render.FontsDir != "" {
		if _, err := fonts.LoadDir(c.Render.FontsDir); err != nil {
			return nil, fmt.Errorf("loading fonts: %w", err)
		}
	}
	r := imagepkg.NewRenderer(fonts)
	r.FitStep = c.Render.FitStep
	r.Border = *c.Render.Border
	return r, nil
}
