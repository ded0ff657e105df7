package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/factory"
	"github.com/DjordjeVuckovic/echo-paginate/pkg/config/env"
	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
)

type AppConfig struct {
	Env           string
	CatalogConfig factory.CatalogConfig
}

type AppSettings struct {
	defaultEnvPath string
}

func NewAppConfig() *AppSettings {
	return &AppSettings{defaultEnvPath: "cmd/catalog_api/.env"}
}

func (s *AppSettings) LoadEnv() {
	appEnv := env.StringOr("APP_ENV", "local")
	if err := env.LoadDotEnv(appEnv, s.defaultEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}
}

func (s *AppSettings) Load() (*AppConfig, error) {
	catalogCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}

	return &AppConfig{
		Env:           env.StringOr("APP_ENV", "local"),
		CatalogConfig: *catalogCfg,
	}, nil
}

// paginationOptions reads the YAML options file when one is configured.
// A non-empty baseURI always wins over the file.
func paginationOptions(path, baseURI string) (pagination.Options, error) {
	opts := pagination.DefaultOptions()
	opts.Routes.Exclude = []string{"/health", "/swagger/*", "/articles/:id"}

	if path != "" {
		loaded, err := pagination.LoadOptionsFile(path)
		if err != nil {
			return pagination.Options{}, err
		}
		opts = loaded
		slog.Info("Loaded pagination options", "path", path)
	}

	if baseURI != "" {
		opts.Meta.BaseURI = baseURI
	}
	return opts, nil
}

func exitOnError(msg string, err error) {
	if err != nil {
		slog.Error(msg, "error", err)
		os.Exit(1)
	}
}
