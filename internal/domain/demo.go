package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var demoCategories = []string{"technology", "science", "business", "sport", "culture"}

// DemoArticles returns n deterministic articles, one hour apart.
func DemoArticles(n int) []Article {
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	out := make([]Article, n)
	for i := range out {
		category := demoCategories[i%len(demoCategories)]
		out[i] = Article{
			ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("catalog-demo-%d", i))),
			Title:       fmt.Sprintf("%s briefing #%d", category, i+1),
			Description: fmt.Sprintf("Daily %s roundup number %d", category, i+1),
			Author:      "newsroom",
			Category:    category,
			Language:    ArticleDefaultLanguage,
			URL:         fmt.Sprintf("https://example.com/articles/%d", i+1),
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}
