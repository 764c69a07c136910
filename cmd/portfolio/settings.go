package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/profile"
	"github.com/jonathan/portfolio/internal/schemas"
	"github.com/jonathan/portfolio/internal/site"
	"github.com/jonathan/portfolio/internal/types"
)

// loadSettings merges the config file (if any) over the defaults, then the environment
func loadSettings(getenv func(string) string) (config.Config, error) {
	defaults := config.Defaults()
	cfg := defaults

	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded.MergeWithDefaults(defaults)
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}
	cfg.Verbose = cfg.Verbose || verbose
	return cfg, nil
}

// flagString overrides dst when the flag was given explicitly
func flagString(cmd *cobra.Command, name string, value string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

func flagInt(cmd *cobra.Command, name string, value int, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

// loadProfile validates the file against the schema, decodes it and runs the struct checks
func loadProfile(path string) (*types.Profile, error) {
	if err := schemas.ValidateProfileFile(path); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	p, err := profile.LoadProfile(path)
	if err != nil {
		return nil, err
	}
	if err := profile.Check(p); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// loadCatalog returns an empty catalog when path is empty or missing
func loadCatalog(path string) (*site.Catalog, error) {
	if path == "" {
		return site.NewCatalog(nil)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return site.NewCatalog(nil)
	}
	if err := schemas.ValidateProjectsFile(path); err != nil {
		return nil, fmt.Errorf("projects %s: %w", path, err)
	}
	c, err := profile.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return site.NewCatalog(c.Projects)
}
