package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/es"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/inmem"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/pg"
	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	pkgserver "github.com/DjordjeVuckovic/echo-paginate/pkg/server"
)

// Backend bundles a catalog source with its health check and cleanup.
type Backend struct {
	Source catalog.Source
	Storer catalog.Storer
	Health pkgserver.HealthChecker
	Close  func()
}

// NewBackend creates the catalog selected by cfg.Type.
func NewBackend(ctx context.Context, cfg CatalogConfig) (*Backend, error) {
	var b *Backend

	switch cfg.Type {
	case catalog.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		src := pg.NewSource(pool)
		b = &Backend{Source: src, Storer: src, Health: pool, Close: pool.Close}

	case catalog.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		src, err := es.NewSource(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		b = &Backend{Source: src, Storer: src, Health: src.HealthChecker(), Close: func() {}}

	case catalog.InMem:
		src := inmem.NewSource()
		b = &Backend{Source: src, Storer: src, Health: pkgserver.NewOkHealthChecker(), Close: func() {}}

	default:
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnsupported, cfg.Type)
	}

	if cfg.Seed > 0 {
		if err := seedIfEmpty(ctx, b, cfg.Seed); err != nil {
			b.Close()
			return nil, err
		}
	}

	slog.Info("Catalog ready", "type", cfg.Type, "seed", cfg.Seed)
	return b, nil
}

func seedIfEmpty(ctx context.Context, b *Backend, n int) error {
	page, err := b.Source.List(ctx, catalog.Query{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if page.Total > 0 {
		return nil
	}
	if err := b.Storer.SaveBulk(ctx, domain.DemoArticles(n)); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}
