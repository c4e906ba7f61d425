// Package config loads the shared YAML configuration used by the viewer,
// the daemon and the reader. Every field has a default; a missing config
// file is not an error, and flags override whatever the file provides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leeric92/SalaryHistogramExplorer/src/dataset"
	"github.com/leeric92/SalaryHistogramExplorer/src/render"
)

// Config is the full on-disk configuration.
type Config struct {
	Data struct {
		// Path to the salary CSV.
		Path string `yaml:"path"`
		// Columns overrides the default normalization mapping when set.
		Columns []dataset.Column `yaml:"columns"`
	} `yaml:"data"`

	Histogram struct {
		// Field is the numeric field to bin on.
		Field string `yaml:"field"`
		// Bins is the bin count; 0 selects a data-driven count.
		Bins int `yaml:"bins"`
	} `yaml:"histogram"`

	Chart struct {
		Width          int            `yaml:"width"`
		Height         int            `yaml:"height"`
		Margins        render.Margins `yaml:"margins"`
		MinLabelHeight float64        `yaml:"min_label_height"`
	} `yaml:"chart"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	// Groups declares which fields drive the control panel.
	Groups struct {
		YearField   string `yaml:"year_field"`
		StringField string `yaml:"string_field"`
	} `yaml:"groups"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Data.Path = "salaries.csv"
	c.Histogram.Field = "salary"
	c.Histogram.Bins = 10
	opts := render.DefaultOptions()
	c.Chart.Width = opts.Width
	c.Chart.Height = opts.Height
	c.Chart.Margins = opts.Margins
	c.Chart.MinLabelHeight = opts.MinLabelHeight
	c.Server.Port = 8087
	c.Groups.YearField = "year"
	c.Groups.StringField = "experience"
	c.LogLevel = "info"
	return c
}

// Load reads path over the defaults. A missing file returns the defaults;
// a malformed file is an error.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Mapping returns the configured normalization mapping, falling back to
// the default salary-survey shape.
func (c Config) Mapping() dataset.Mapping {
	if len(c.Data.Columns) > 0 {
		return dataset.Mapping{Columns: c.Data.Columns}
	}
	return dataset.DefaultMapping()
}

// RenderOptions converts the chart section into layout options.
func (c Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	if c.Chart.Width > 0 {
		opts.Width = c.Chart.Width
	}
	if c.Chart.Height > 0 {
		opts.Height = c.Chart.Height
	}
	if c.Chart.Margins != (render.Margins{}) {
		opts.Margins = c.Chart.Margins
	}
	if c.Chart.MinLabelHeight > 0 {
		opts.MinLabelHeight = c.Chart.MinLabelHeight
	}
	return opts
}
