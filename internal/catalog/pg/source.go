package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const articleColumns = `id, title, subtitle, description, author, category, language, url, published_at`

const filterClause = `
	WHERE ($1::text = '' OR title ILIKE '%' || $1::text || '%' OR description ILIKE '%' || $1::text || '%')
	  AND ($2::text = '' OR lower(category) = lower($2::text))`

type articleRow struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Subtitle    string    `db:"subtitle"`
	Description string    `db:"description"`
	Author      string    `db:"author"`
	Category    string    `db:"category"`
	Language    string    `db:"language"`
	URL         string    `db:"url"`
	PublishedAt time.Time `db:"published_at"`
}

func (r articleRow) toDomain() domain.Article {
	return domain.Article{
		ID:          r.ID,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Author:      r.Author,
		Category:    r.Category,
		Language:    r.Language,
		URL:         r.URL,
		PublishedAt: r.PublishedAt,
	}
}

type Source struct {
	db *pgxpool.Pool
}

func NewSource(pool *ConnectionPool) *Source {
	return &Source{db: pool.conn}
}

func (s *Source) List(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	slog.Debug("Listing pg articles", "text", q.Text, "category", q.Category, "offset", q.Offset, "limit", q.Limit)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM articles`+filterClause, q.Text, q.Category).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	offset := max(q.Offset, 0)
	if total == 0 || int64(offset) >= total {
		return &catalog.Page{Items: []domain.Article{}, Total: total}, nil
	}

	var limit *int
	if q.Limit >= 0 {
		limit = &q.Limit
	}

	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles`+filterClause+`
	ORDER BY published_at DESC, id DESC
	OFFSET $3 LIMIT $4`, q.Text, q.Category, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[articleRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", err)
	}

	items := make([]domain.Article, len(found))
	for i, r := range found {
		items[i] = r.toDomain()
	}
	return &catalog.Page{Items: items, Total: total}, nil
}

func (s *Source) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query article: %w", err)
	}

	r, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[articleRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	a := r.toDomain()
	return &a, nil
}

func (s *Source) SaveBulk(ctx context.Context, articles []domain.Article) error {
	rows := make([][]any, len(articles))
	now := time.Now()

	for i, a := range articles {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.Language == "" {
			a.Language = domain.ArticleDefaultLanguage
		}
		if a.PublishedAt.IsZero() {
			a.PublishedAt = now
		}

		rows[i] = []any{
			a.ID,
			a.Title,
			a.Subtitle,
			a.Description,
			a.Author,
			a.Category,
			a.Language,
			a.URL,
			a.PublishedAt,
		}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"articles"},
		[]string{"id", "title", "subtitle", "description", "author", "category", "language", "url", "published_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert articles: %w", err)
	}
	return nil
}
