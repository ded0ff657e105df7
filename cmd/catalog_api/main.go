// Package main Article Catalog API
// @title Article Catalog API
// @version 1.0
// @description An article catalog whose list endpoints are paginated by echo middleware
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"

	_ "github.com/DjordjeVuckovic/echo-paginate/docs"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog/factory"
	"github.com/DjordjeVuckovic/echo-paginate/internal/router"
	"github.com/DjordjeVuckovic/echo-paginate/internal/server"
	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	appSettings := NewAppConfig()
	appSettings.LoadEnv()

	sCfg, err := server.LoadConfig()
	exitOnError("Failed to load server config", err)

	cfg, err := appSettings.Load()
	exitOnError("Failed to load app configuration", err)

	opts, err := paginationOptions(sCfg.PaginationConfig, sCfg.BaseURI)
	exitOnError("Failed to load pagination options", err)

	paginator, err := pagination.New(opts)
	exitOnError("Invalid pagination options", err)

	backend, err := factory.NewBackend(context.Background(), cfg.CatalogConfig)
	exitOnError("Failed to create catalog", err)
	defer backend.Close()

	s := server.New(sCfg, backend.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Article Catalog API is running")
	})

	router.NewArticleRouter(s.Echo, backend.Source).Bind()

	err = s.SetupPagination(paginator)
	exitOnError("Failed to register pagination", err)

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
	}
}
