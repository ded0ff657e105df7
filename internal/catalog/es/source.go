package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

type Source struct {
	client    *elasticsearch.TypedClient
	indexName string
}

// NewSource connects to the cluster and creates the index when missing.
func NewSource(ctx context.Context, config ClientConfig) (*Source, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	s := &Source{
		client:    client,
		indexName: config.IndexName,
	}
	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return s, nil
}

func (s *Source) HealthChecker() *HealthChecker {
	return &HealthChecker{client: s.client}
}

func (s *Source) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	settings := indexSettings()
	mappings := indexMapping()

	res, err := s.client.Indices.Create(s.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created", "index", s.indexName)
	return nil
}

func (s *Source) List(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	query := buildQuery(q)

	count, err := s.client.Count().Index(s.indexName).Query(query).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	offset := max(q.Offset, 0)
	if count.Count == 0 || int64(offset) >= count.Count {
		return &catalog.Page{Items: []domain.Article{}, Total: count.Count}, nil
	}

	size := q.Limit
	if size < 0 {
		size = int(count.Count) - offset
	}

	desc := sortorder.Desc
	res, err := s.client.Search().
		Index(s.indexName).
		Query(query).
		From(offset).
		Size(size).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"published_at": {Order: &desc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &desc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "text", q.Text, "offset", offset)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	items := make([]domain.Article, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc ArticleDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		a, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}

	return &catalog.Page{Items: items, Total: count.Count}, nil
}

func (s *Source) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	res, err := s.client.Get(s.indexName, id.String()).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusNotFound {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if !res.Found {
		return nil, catalog.ErrNotFound
	}

	var doc ArticleDocument
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	a, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Source) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    2,
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	for _, article := range articles {
		doc := toDocument(article)

		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document %s: %w", doc.ID, err)
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					return
				}
				slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
			},
		})
		if err != nil {
			return fmt.Errorf("failed to add document %s to bulk indexer: %w", doc.ID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("Bulk indexing completed", "indexed", stats.NumIndexed, "failed", stats.NumFailed, "index", s.indexName)
	if stats.NumFailed > 0 {
		return fmt.Errorf("failed to index %d out of %d articles", stats.NumFailed, len(articles))
	}
	return nil
}

func buildQuery(q catalog.Query) *types.Query {
	var must, filter []types.Query

	if q.Text != "" {
		must = append(must, types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  q.Text,
				Fields: []string{"title", "description"},
			},
		})
	}
	if q.Category != "" {
		filter = append(filter, types.Query{
			Match: map[string]types.MatchQuery{
				"category": {Query: q.Category},
			},
		})
	}

	if len(must) == 0 && len(filter) == 0 {
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	}
	return &types.Query{
		Bool: &types.BoolQuery{
			Must:   must,
			Filter: filter,
		},
	}
}
