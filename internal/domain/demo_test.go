package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoArticles(t *testing.T) {
	first := DemoArticles(7)
	second := DemoArticles(7)

	require.Len(t, first, 7)
	assert.Equal(t, first, second)
	assert.True(t, first[6].Before(first[0]))
	assert.Equal(t, "technology", first[5].Category)
	assert.Empty(t, DemoArticles(0))
}

func TestArticle_Before(t *testing.T) {
	articles := DemoArticles(2)
	older, newer := articles[0], articles[1]

	assert.True(t, newer.Before(older))
	assert.False(t, older.Before(newer))

	tied := newer
	tied.PublishedAt = older.PublishedAt
	assert.NotEqual(t, tied.Before(older), older.Before(tied))
}
