package cmd

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the shape of an optional ferrite.toml, naming the ordered
// import search-path list spec.md §6 describes.
type Config struct {
	Import struct {
		SearchPaths []string `toml:"search_paths"`
	} `toml:"import"`
}

// loadConfig looks for ferrite.toml in dir and its ancestors, returning
// nil (not an error) if none is found.
func loadConfig(dir string) (*Config, error) {
	for {
		path := filepath.Join(dir, "ferrite.toml")
		if _, err := os.Stat(path); err == nil {
			var cfg Config
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
