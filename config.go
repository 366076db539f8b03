package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/flockbooks/flockbooks/config"
)

const (
	appName         = "flockbooks"
	defaultPageSize = 50
)

// configSearchPaths returns the directories searched for flockbooks.toml,
// in order of precedence (first found wins).
func configSearchPaths() []string {
	// Current directory (highest precedence)
	paths := []string{"."}

	// User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, appName))
	}

	// User home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, homeDir, filepath.Join(homeDir, ".config", appName))
	}

	// System-wide config directory (lowest precedence)
	return append(paths, filepath.Join("/etc", appName))
}

// defaultTokenStorePath is where the token store lives unless configured.
func defaultTokenStorePath() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, appName, "tokens.toml")
	}
	return filepath.Join(".", ".flockbooks-tokens.toml")
}

// defaultOutputDir is where exports are written unless configured.
func defaultOutputDir() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, "Downloads", appName)
	}
	return "exports"
}

// currentConfig is the effective configuration after flags, environment
// and the config file have been merged by viper.
func currentConfig() config.Config {
	cfg := config.Config{
		Debug:                viper.GetBool("debug"),
		BaseURL:              viper.GetString("base_url"),
		Token:                viper.GetString("token"),
		Cookies:              viper.GetString("cookies"),
		TokenStore:           viper.GetString("token_store"),
		OutputDir:            viper.GetString("output_dir"),
		FiscalYearStartMonth: viper.GetInt("fiscal_year_start_month"),
		PageSize:             viper.GetInt("page_size"),
		UnresolvedParent:     viper.GetString("unresolved_parent"),
	}
	_ = viper.UnmarshalKey("colors", &cfg.Colors)

	if cfg.TokenStore == "" {
		cfg.TokenStore = defaultTokenStorePath()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir()
	}
	if cfg.FiscalYearStartMonth < 1 || cfg.FiscalYearStartMonth > 12 {
		cfg.FiscalYearStartMonth = int(time.April)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.UnresolvedParent == "" {
		cfg.UnresolvedParent = "promote"
	}

	return cfg
}
