// Package config holds tmxweb's settings file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"badc0de.net/pkg/go-tmx/imagecache"
)

// Config is the on-disk server configuration. Fields missing from the file
// keep their defaults.
type Config struct {
	ListenAddress string   `yaml:"listen_address"`
	MapDirs       []string `yaml:"map_dirs"`
	CacheCapacity int      `yaml:"cache_capacity"`
	// MaxRenderPx bounds the width and height of a rendered map.
	MaxRenderPx int `yaml:"max_render_px"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListenAddress: ":8080",
		MapDirs:       []string{"."},
		CacheCapacity: imagecache.DefaultCapacity,
		MaxRenderPx:   8192,
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config %q", path)
	}
	glog.Infof("config.Load(%q): listening on %s, %d map dirs", path, c.ListenAddress, len(c.MapDirs))
	return c, nil
}

// Read decodes a YAML document over the defaults and validates the result.
func Read(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c := Default()
	if len(bytes.TrimSpace(b)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return nil, errors.Wrap(err, "parsing yaml")
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listen_address is empty")
	}
	if len(c.MapDirs) == 0 {
		return errors.New("map_dirs is empty")
	}
	if c.CacheCapacity < 0 {
		return errors.Errorf("cache_capacity %d is negative", c.CacheCapacity)
	}
	if c.MaxRenderPx <= 0 {
		return errors.Errorf("max_render_px %d must be positive", c.MaxRenderPx)
	}
	return nil
}
