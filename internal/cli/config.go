package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sitelen/pkg/render"
)

// configFileName is looked up in the config directory.
const configFileName = "config.toml"

// fileConfig is the on-disk CLI configuration:
//
//	max_siblings = 12
//	sprite = "~/glyphs.toml"
//
//	[render]
//	optimal_ratio = 1.0
//	shadow = true
//
//	[vocabulary]
//	path = "~/words.toml"
//
//	[cache]
//	redis = "redis://localhost:6379/0"
//	prefix = "staging:"
type fileConfig struct {
	MaxSiblings int           `toml:"max_siblings"`
	Sprite      string        `toml:"sprite"`
	Render      render.Config `toml:"render"`
	Vocabulary  struct {
		Path string `toml:"path"`
	} `toml:"vocabulary"`
	Cache struct {
		Dir    string `toml:"dir"`
		Redis  string `toml:"redis"`
		Prefix string `toml:"prefix"`
	} `toml:"cache"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{Render: render.DefaultConfig()}
}

// loadConfig reads the config file once. A missing default file yields the
// defaults; a missing file named by --config is an error.
func (c *CLI) loadConfig() (*fileConfig, error) {
	if c.config != nil {
		return c.config, nil
	}

	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			c.config = defaultFileConfig()
			return c.config, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	cfg, err := readConfigFile(expandHome(path))
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		c.config = defaultFileConfig()
		return c.config, nil
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path)
	c.config = cfg
	return cfg, nil
}

func readConfigFile(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Render.SetDefaults()
	if err := cfg.Render.Validate(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}
