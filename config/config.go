package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/kold/ringicon"
)

const appName = "ringicon"

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// Directory prepended to relative icon paths
	OutDir string `yaml:"outDir,omitempty" json:"outDir,omitempty"`
	// Icons to generate. Defaults to the 192px and 512px PWA icons
	IconList []ringicon.Icon `yaml:"icons,omitempty" json:"icons,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/ringicon/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/ringicon/config.yml
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(b, cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config %s: %w", configPath, err)
				}
				return cfg, nil
			}
		}
	}
	return cfg, nil
}

// Icons returns the icons to generate with OutDir applied.
func (c *Config) Icons() ([]ringicon.Icon, error) {
	icons := c.IconList
	if len(icons) == 0 {
		icons = ringicon.DefaultIcons()
	}
	resolved := make([]ringicon.Icon, 0, len(icons))
	for _, i := range icons {
		if err := i.Validate(); err != nil {
			return nil, err
		}
		if c.OutDir != "" && !filepath.IsAbs(i.Path) {
			i.Path = filepath.Join(c.OutDir, i.Path)
		}
		resolved = append(resolved, i)
	}
	return resolved, nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else {
		configHomePath = filepath.Join(homePath, ".config", appName)
	}
	return configHomePath
}

func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", appName)
	}
	return stateHomePath
}
