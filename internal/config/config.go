// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format    string `yaml:"format"`
		NoColor   bool   `yaml:"no_color"`
		Debug     bool   `yaml:"debug"`
		ShowMatch bool   `yaml:"show_match"`
		Anonymize bool   `yaml:"anonymize"`
	} `yaml:"defaults"`

	// Category priorities: 1 is highest. Every category must be present.
	Priorities map[string]int `yaml:"priorities"`

	// Score thresholds below which findings are dropped before resolution.
	Thresholds struct {
		Default    float64            `yaml:"default"`
		Categories map[string]float64 `yaml:"categories"`
	} `yaml:"thresholds"`

	// OCR fragment merge tolerances, in pixels.
	Merge struct {
		LineTolerance int `yaml:"line_tolerance"`
		GapTolerance  int `yaml:"gap_tolerance"`
		RegionPadding int `yaml:"region_padding"`
	} `yaml:"merge"`

	// Name allow/deny lists for the extraction pass-through.
	Names struct {
		AllowList []string `yaml:"allow_list"`
		DenyList  []string `yaml:"deny_list"`
	} `yaml:"names"`

	// Address candidate filtering.
	Address struct {
		MinLength int `yaml:"min_length"`
	} `yaml:"address"`

	// Image redaction settings.
	Redaction struct {
		Style     string  `yaml:"style"` // pixelate, blur, fill
		PixelSize int     `yaml:"pixel_size"`
		BlurSigma float64 `yaml:"blur_sigma"`
		FillColor string  `yaml:"fill_color"` // hex RGB, e.g. "#000000"
	} `yaml:"redaction"`

	// Suppression rule file.
	Suppressions struct {
		File string `yaml:"file"`
	} `yaml:"suppressions"`
}

// LoadConfig loads configuration from a YAML file, starting from defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Map-valued sections are all-or-nothing: a file that names only some
	// categories must fail validation rather than silently inherit the rest.
	if config.Priorities == nil {
		config.Priorities = make(map[string]int)
		for c, p := range detector.DefaultPriorities() {
			config.Priorities[string(c)] = p
		}
	}
	if config.Thresholds.Categories == nil {
		config.Thresholds.Categories = defaultThresholds()
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func defaultConfig() *Config {
	config := &Config{}

	config.Defaults.Format = "text"

	config.Thresholds.Default = 0.35

	config.Merge.LineTolerance = 5
	config.Merge.GapTolerance = 20
	config.Merge.RegionPadding = 5

	config.Address.MinLength = 2

	config.Redaction.Style = "pixelate"
	config.Redaction.PixelSize = 12
	config.Redaction.BlurSigma = 4.0
	config.Redaction.FillColor = "#000000"

	return config
}

func defaultThresholds() map[string]float64 {
	return map[string]float64{
		string(detector.CategoryIDCard):   0.5,
		string(detector.CategoryBankCard): 0.5,
		string(detector.CategoryPhone):    0.5,
		string(detector.CategoryPassport): 0.5,
		string(detector.CategoryEmail):    0.5,
		string(detector.CategoryName):     0.3,
		string(detector.CategoryAddress):  0.3,
	}
}

// FindConfigFile looks for a config file in standard locations.
// Returns empty string if no config file is found.
func FindConfigFile() string {
	if path := os.Getenv("CN_PII_CONFIG"); path != "" && fileExists(path) {
		return path
	}
	for _, name := range []string{"cn-pii.yaml", ".cn-pii.yaml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

// LoadConfigOrDefault loads the given (or discovered) config file, falling
// back to defaults when it is missing or unreadable.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// ValidateConfig checks the configuration for fatal problems. A priority
// table missing a category would silently leak that category's findings,
// so validation fails instead of guessing.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	for _, c := range detector.Categories {
		if _, ok := config.Priorities[string(c)]; !ok {
			return fmt.Errorf("priorities: missing category %s", c)
		}
	}
	for name := range config.Priorities {
		if !detector.Category(name).Valid() {
			return fmt.Errorf("priorities: unknown category %s", name)
		}
	}

	if config.Thresholds.Default < 0 || config.Thresholds.Default > 1 {
		return fmt.Errorf("thresholds: default %v out of range [0,1]", config.Thresholds.Default)
	}
	for name, v := range config.Thresholds.Categories {
		if !detector.Category(name).Valid() {
			return fmt.Errorf("thresholds: unknown category %s", name)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("thresholds: %s threshold %v out of range [0,1]", name, v)
		}
	}

	if config.Merge.LineTolerance < 0 || config.Merge.GapTolerance < 0 || config.Merge.RegionPadding < 0 {
		return fmt.Errorf("merge: tolerances must not be negative")
	}

	switch config.Redaction.Style {
	case "pixelate", "blur", "fill":
	default:
		return fmt.Errorf("redaction: unknown style %q", config.Redaction.Style)
	}
	if config.Redaction.PixelSize < 1 {
		return fmt.Errorf("redaction: pixel_size must be at least 1")
	}

	return nil
}

// CategoryPriorities converts the string-keyed YAML table to the typed
// form consumed by the resolver.
func (c *Config) CategoryPriorities() map[detector.Category]int {
	out := make(map[detector.Category]int, len(c.Priorities))
	for name, p := range c.Priorities {
		out[detector.Category(name)] = p
	}
	return out
}

// ThresholdFor returns the score threshold for a category.
func (c *Config) ThresholdFor(category detector.Category) float64 {
	if v, ok := c.Thresholds.Categories[string(category)]; ok {
		return v
	}
	return c.Thresholds.Default
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
