package inmem

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	"github.com/google/uuid"
)

type Source struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Article
}

func NewSource() *Source {
	return &Source{
		storage: make(map[uuid.UUID]domain.Article),
	}
}

func (s *Source) SaveBulk(ctx context.Context, articles []domain.Article) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, article := range articles {
		if article.ID == uuid.Nil {
			article.ID = uuid.New()
		}
		s.storage[article.ID] = article
	}
	slog.Debug("Saved articles to in-memory catalog", "count", len(articles), "total", len(s.storage))

	return nil
}

func (s *Source) List(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	s.storageLock.RLock()
	matched := make([]domain.Article, 0, len(s.storage))
	for _, a := range s.storage {
		if matches(a, q) {
			matched = append(matched, a)
		}
	}
	s.storageLock.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Before(matched[j])
	})

	start, end := catalog.Window(len(matched), q.Offset, q.Limit)
	return &catalog.Page{
		Items: matched[start:end],
		Total: int64(len(matched)),
	}, nil
}

func (s *Source) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	a, ok := s.storage[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &a, nil
}

func matches(a domain.Article, q catalog.Query) bool {
	if q.Category != "" && !strings.EqualFold(a.Category, q.Category) {
		return false
	}
	if q.Text == "" {
		return true
	}
	text := strings.ToLower(q.Text)
	return strings.Contains(strings.ToLower(a.Title), text) ||
		strings.Contains(strings.ToLower(a.Description), text)
}
