package main

import (
	"testing"

	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := paginationOptions("", "")
		require.NoError(t, err)
		assert.Equal(t, pagination.DefaultLimit, opts.Query.Limit.Default)
		assert.Contains(t, opts.Routes.Exclude, "/articles/:id")

		_, err = pagination.New(opts)
		assert.NoError(t, err)
	})

	t.Run("shipped file", func(t *testing.T) {
		opts, err := paginationOptions("../../configs/pagination.yaml", "https://api.example.com")
		require.NoError(t, err)
		assert.Equal(t, 20, opts.Query.Limit.Default)
		assert.Equal(t, pagination.InvalidBadRequest, opts.Query.Invalid)
		assert.Equal(t, "https://api.example.com", opts.Meta.BaseURI)
		assert.True(t, opts.Meta.HasNext.Active)

		p, err := pagination.New(opts)
		require.NoError(t, err)
		assert.False(t, p.Config().IsPaginated("GET", "/health"))
		assert.True(t, p.Config().IsPaginated("GET", "/articles/feed"))
		assert.Equal(t, 10, *p.Config().Override("GET", "/articles/feed").Defaults.Limit)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := paginationOptions("does-not-exist.yaml", "")
		assert.Error(t, err)
	})
}
