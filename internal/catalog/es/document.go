package es

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

// ArticleDocument is the indexed form of domain.Article.
type ArticleDocument struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	IndexedAt   time.Time `json:"indexed_at"`
}

func toDocument(a domain.Article) ArticleDocument {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Language == "" {
		a.Language = domain.ArticleDefaultLanguage
	}
	return ArticleDocument{
		ID:          a.ID.String(),
		Title:       a.Title,
		Subtitle:    a.Subtitle,
		Description: a.Description,
		Author:      a.Author,
		Category:    a.Category,
		Language:    a.Language,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
		IndexedAt:   time.Now(),
	}
}

func (d ArticleDocument) toDomain() (domain.Article, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Article{}, fmt.Errorf("invalid document id %q: %w", d.ID, err)
	}
	return domain.Article{
		ID:          id,
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Description: d.Description,
		Author:      d.Author,
		Category:    d.Category,
		Language:    d.Language,
		URL:         d.URL,
		PublishedAt: d.PublishedAt,
	}, nil
}

func indexSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				"catalog_analyzer": types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func indexMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":           types.NewKeywordProperty(),
			"title":        textProperty("catalog_analyzer", true),
			"subtitle":     textProperty("catalog_analyzer", false),
			"description":  textProperty("catalog_analyzer", false),
			"author":       textProperty("", true),
			"category":     textProperty("", true),
			"language":     types.NewKeywordProperty(),
			"url":          types.NewKeywordProperty(),
			"published_at": types.NewDateProperty(),
			"indexed_at":   types.NewDateProperty(),
		},
	}
}

func textProperty(analyzer string, withKeyword bool) types.Property {
	prop := types.NewTextProperty()
	if analyzer != "" {
		prop.Analyzer = &analyzer
	}
	if withKeyword {
		prop.Fields = map[string]types.Property{
			"keyword": types.NewKeywordProperty(),
		}
	}
	return prop
}
