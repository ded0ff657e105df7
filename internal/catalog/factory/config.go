package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/es"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/pg"
	"github.com/DjordjeVuckovic/echo-paginate/pkg/config/env"
)

type CatalogConfig struct {
	catalog.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
	// Seed fills an empty catalog with demo articles on startup.
	Seed int
}

func LoadEnv() (*CatalogConfig, error) {
	catalogType := catalog.Type(os.Getenv("STORAGE_TYPE"))
	if catalogType == "" {
		catalogType = catalog.InMem
		slog.Info("STORAGE_TYPE is not set, using in-memory catalog")
	}
	if catalogType != catalog.ES && catalogType != catalog.PG && catalogType != catalog.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", catalogType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			catalogType,
			[]catalog.Type{catalog.ES, catalog.PG, catalog.InMem})
	}

	cfg := &CatalogConfig{Type: catalogType}

	switch catalogType {
	case catalog.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: env.List("ES_ADDRESSES"),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}

	case catalog.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	if raw := os.Getenv("CATALOG_SEED"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &cfg.Seed); err != nil || cfg.Seed < 0 {
			return nil, fmt.Errorf("invalid CATALOG_SEED value: %q", raw)
		}
	}

	return cfg, nil
}
