// Package config loads the storefront settings: the catalog endpoint,
// Telegram share target, image resolution rules, cache location, and the
// paging/render tunables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"SisStore/internal/share"
)

// Duration accepts YAML scalars in Go duration syntax ("10m", "90s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Telegram struct {
	Seller string `yaml:"seller"`
	Mode   string `yaml:"mode"`
}

type Assets struct {
	Base      string `yaml:"base"`
	DriveMode string `yaml:"drive_mode"`
	DriveURL  string `yaml:"drive_url"`
}

type Cache struct {
	Path string   `yaml:"path"`
	TTL  Duration `yaml:"ttl"`
}

type Paging struct {
	FirstPage int `yaml:"first_page"`
	PageStep  int `yaml:"page_step"`
	MaxItems  int `yaml:"max_items"`
}

type Render struct {
	Chunk int `yaml:"chunk"`
}

type Config struct {
	Endpoint string   `yaml:"endpoint"`
	PageURL  string   `yaml:"page_url"`
	Telegram Telegram `yaml:"telegram"`
	Assets   Assets   `yaml:"assets"`
	Cache    Cache    `yaml:"cache"`
	Paging   Paging   `yaml:"paging"`
	Render   Render   `yaml:"render"`
}

func Default() Config {
	return Config{
		Telegram: Telegram{Mode: share.ModeShare},
		Assets:   Assets{Base: "./assets/img/", DriveMode: "direct"},
		Cache:    Cache{Path: DefaultCachePath(), TTL: Duration(10 * time.Minute)},
		Paging:   Paging{FirstPage: 24, PageStep: 60, MaxItems: 100000},
		Render:   Render{Chunk: 32},
	}
}

// Load reads the YAML config at path over the defaults, then applies env
// overrides. A missing file is fine when path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults plus env are enough to run.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SISSTORE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SISSTORE_TELEGRAM_SELLER"); v != "" {
		cfg.Telegram.Seller = v
	}
	if v := os.Getenv("SISSTORE_TELEGRAM_MODE"); v != "" {
		cfg.Telegram.Mode = v
	}
	if v := os.Getenv("SISSTORE_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
}

func (c Config) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("endpoint %q is not an absolute URL", c.Endpoint)
		}
	}
	if c.Telegram.Mode != share.ModeDM && c.Telegram.Mode != share.ModeShare {
		return fmt.Errorf("telegram mode %q: want %q or %q", c.Telegram.Mode, share.ModeDM, share.ModeShare)
	}
	if c.Paging.FirstPage <= 0 || c.Paging.PageStep <= 0 || c.Paging.MaxItems <= 0 {
		return errors.New("paging sizes must be positive")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.Render.Chunk <= 0 {
		return errors.New("render chunk must be positive")
	}
	return nil
}
