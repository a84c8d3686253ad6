package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Environment variables recognised by googleit.
const (
	envDomain  = "GOOGLEIT_DOMAIN"
	envFetcher = "GOOGLEIT_FETCHER"
	envFormat  = "GOOGLEIT_FORMAT"
	envLinks   = "GOOGLEIT_LINKS"
	envWidth   = "GOOGLEIT_WIDTH"
	envDebug   = "GOOGLEIT_DEBUG"
	envConfig  = "GOOGLEIT_CONFIG"
)

const (
	defaultDomain = "google.com"
	defaultWidth  = 70
	minWidth      = 2
)

// Fetcher kinds.
const (
	fetcherBrowser = "browser"
	fetcherHTTP    = "http"
)

// Output formats.
const (
	formatTerminal = "terminal"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// linkStyle selects how renderLink encodes a clickable link.
type linkStyle string

const (
	linkOSC8   linkStyle = "osc8"
	linkMarkup linkStyle = "markup"
)

// config is resolved once at startup and passed to every component
// that needs it. Nothing below main reads the environment.
type config struct {
	Domain  string
	Fetcher string
	Format  string
	Links   linkStyle
	Width   int
	Debug   bool
}

// fileConfig is the schema of the optional YAML file named by GOOGLEIT_CONFIG.
type fileConfig struct {
	Domain  string `yaml:"domain"`
	Fetcher string `yaml:"fetcher"`
	Format  string `yaml:"format"`
	Links   string `yaml:"links"`
	Width   int    `yaml:"width"`
	Debug   bool   `yaml:"debug"`
}

func defaultConfig() config {
	return config{
		Domain:  defaultDomain,
		Fetcher: fetcherBrowser,
		Format:  formatTerminal,
		Links:   linkOSC8,
		Width:   defaultWidth,
	}
}

// loadConfig builds the configuration from defaults, then the optional YAML
// file, then the environment. getenv is usually os.Getenv.
func loadConfig(getenv func(string) string) (config, error) {
	cfg := defaultConfig()

	if path := getenv(envConfig); path != "" {
		if err := applyConfigFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if v := strings.TrimSpace(getenv(envDomain)); v != "" {
		cfg.Domain = v
	}
	if v := strings.TrimSpace(getenv(envFetcher)); v != "" {
		cfg.Fetcher = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(envFormat)); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(envLinks)); v != "" {
		cfg.Links = linkStyle(strings.ToLower(v))
	}
	if v := strings.TrimSpace(getenv(envWidth)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", envWidth, v, err)
		}
		cfg.Width = n
	}
	if v := strings.TrimSpace(getenv(envDebug)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", envDebug, v, err)
		}
		cfg.Debug = b
	}

	return cfg, cfg.validate()
}

// applyConfigFile overlays non-zero values from a YAML file onto cfg.
func applyConfigFile(cfg *config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Domain != "" {
		cfg.Domain = fc.Domain
	}
	if fc.Fetcher != "" {
		cfg.Fetcher = strings.ToLower(fc.Fetcher)
	}
	if fc.Format != "" {
		cfg.Format = strings.ToLower(fc.Format)
	}
	if fc.Links != "" {
		cfg.Links = linkStyle(strings.ToLower(fc.Links))
	}
	if fc.Width != 0 {
		cfg.Width = fc.Width
	}
	if fc.Debug {
		cfg.Debug = true
	}
	return nil
}

func (c config) validate() error {
	switch c.Fetcher {
	case fetcherBrowser, fetcherHTTP:
	default:
		return fmt.Errorf("unknown fetcher %q (supported: browser, http)", c.Fetcher)
	}
	switch c.Format {
	case formatTerminal, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown output format %q (supported: terminal, markdown, json)", c.Format)
	}
	switch c.Links {
	case linkOSC8, linkMarkup:
	default:
		return fmt.Errorf("unknown link style %q (supported: osc8, markup)", c.Links)
	}
	if c.Width < minWidth {
		return fmt.Errorf("wrap width must be at least %d, got %d", minWidth, c.Width)
	}
	if strings.Contains(c.Domain, "/") {
		return fmt.Errorf("search domain %q must be a bare host name", c.Domain)
	}
	return nil
}
