package export

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/snapdown/snapexport/tabsource"
)

// Config is the top-level snapexport configuration.
type Config struct {
	Input   InputConfig             `yaml:"input"`
	Browser tabsource.BrowserConfig `yaml:"browser"`
	Confirm ConfirmConfig           `yaml:"confirm"`
	Output  OutputConfig            `yaml:"output"`
}

// InputConfig selects where the export document comes from. File wins over
// URL when both are set.
type InputConfig struct {
	URL  string `yaml:"url"`
	File string `yaml:"file"` // "-" reads stdin
}

// ConfirmConfig controls the confirmation workflow.
type ConfirmConfig struct {
	// Auto starts the run in bulk-accept mode with no prompts, as if the
	// operator answered "auto" at row zero.
	Auto bool `yaml:"auto"`
}

// OutputConfig controls artifact delivery.
type OutputConfig struct {
	Dir string `yaml:"dir"` // where snap_export.csv is written; "-" streams to stdout
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = 30 * time.Second
	}
	if len(c.Browser.ResourceBlocking) == 0 {
		c.Browser.ResourceBlocking = []string{"images", "fonts", "media"}
	}
}
