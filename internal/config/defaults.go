package config

import "time"

const (
	DefaultOutputDir   = "public"
	DefaultContentDir  = "content"
	DefaultTemplateDir = "templates"
	DefaultServeHost   = "127.0.0.1"
	DefaultServePort   = 3030
	DefaultDebounce    = 2 * time.Second
)

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = DefaultContentDir
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = DefaultTemplateDir
	}
	if cfg.Serve.Host == "" {
		cfg.Serve.Host = DefaultServeHost
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = DefaultServePort
	}
	if cfg.Serve.Debounce.Duration == 0 {
		cfg.Serve.Debounce.Duration = DefaultDebounce
	}
}
