package catalog

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	"github.com/google/uuid"
)

type Type string

const (
	InMem Type = "in_mem"
	PG    Type = "pg"
	ES    Type = "es"
)

var (
	ErrNotFound    = errors.New("article not found")
	ErrUnsupported = errors.New("unsupported catalog type")
)

// Unlimited as Query.Limit selects every article from Offset on.
const Unlimited = -1

// Query selects one window of the catalog. Text matches title and
// description; Category is an exact filter.
type Query struct {
	Text     string
	Category string
	Offset   int
	Limit    int
}

// Page is one window of articles and the size of the whole selection.
type Page struct {
	Items []domain.Article
	Total int64
}

type Source interface {
	List(ctx context.Context, q Query) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
}

type Storer interface {
	SaveBulk(ctx context.Context, articles []domain.Article) error
}

// Window clamps offset and limit to a slice of length n.
func Window(n, offset, limit int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end = offset + limit
	if limit < 0 || end > n {
		end = n
	}
	return offset, end
}
