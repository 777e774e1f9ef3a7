package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables overriding directory settings.
const (
	EnvOutputDir   = "SITEBUILDER_OUTPUT_DIR"
	EnvContentDir  = "SITEBUILDER_CONTENT_DIR"
	EnvTemplateDir = "SITEBUILDER_TEMPLATE_DIR"
)

// loadEnvFiles loads .env.local and .env from siteDir. godotenv never
// overwrites a variable that is already set, so the process environment wins
// over .env.local, which wins over .env.
func loadEnvFiles(siteDir string) error {
	var found []string
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(siteDir, name)
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return errors.New("no .env file found")
	}
	return godotenv.Load(found...)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvContentDir); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv(EnvTemplateDir); v != "" {
		cfg.TemplateDir = v
	}
}
