package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/echo-paginate/pkg/config/env"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// BaseURI prefixes pagination links. Empty means the request host.
	BaseURI string
	// PaginationConfig is an optional YAML file with pagination options.
	PaginationConfig string
}

func LoadConfig() (*Config, error) {
	port := env.StringOr("PORT", "8080")
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := env.List("CORS_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:             port,
		UseHttp2:         os.Getenv("USE_HTTP2") == "true",
		CorsOrigins:      origins,
		BaseURI:          os.Getenv("BASE_URI"),
		PaginationConfig: os.Getenv("PAGINATION_CONFIG"),
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
