package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/romshelf-go/internal/domain"
)

func unrankedItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			Title:     fmt.Sprintf("Obscure Homebrew %03d", i+1),
			Platform:  "GBA",
			Thumbnail: "t.png",
		}
	}
	return items
}

func TestRank_ExactMatchFirst(t *testing.T) {
	ranker := NewRanker(nil)

	items := unrankedItems(10)
	emerald := domain.Item{
		Title:        "Pokemon - Emerald Version",
		Platform:     "GBA",
		Thumbnail:    "t.png",
		DownloadLink: "d.zip",
	}
	items = append(items[:5], append([]domain.Item{emerald}, items[5:]...)...)

	ranked := ranker.Rank(items)

	require.Len(t, ranked, 11)
	assert.Equal(t, "Pokemon - Emerald Version", ranked[0].Title)
}

func TestRank_Permutation(t *testing.T) {
	ranker := NewRanker(nil)

	items := unrankedItems(20)
	items[3].Title = "Golden Sun"
	items[15].Title = "Metroid - Zero Mission"

	ranked := ranker.Rank(items)

	require.Len(t, ranked, len(items))
	assert.ElementsMatch(t, items, ranked)
}

func TestRank_PriorityOrder(t *testing.T) {
	ranker := NewRanker([]string{"First Pick", "Second Pick", "Third Pick"})

	items := []domain.Item{
		{Title: "Third Pick", Platform: "GBA", Thumbnail: "t.png"},
		{Title: "Unknown Game", Platform: "GBA", Thumbnail: "t.png"},
		{Title: "First Pick", Platform: "GBA", Thumbnail: "t.png"},
		{Title: "Second Pick", Platform: "GBA", Thumbnail: "t.png"},
	}

	ranked := ranker.Rank(items)

	assert.Equal(t, "First Pick", ranked[0].Title)
	assert.Equal(t, "Second Pick", ranked[1].Title)
	assert.Equal(t, "Third Pick", ranked[2].Title)
	assert.Equal(t, "Unknown Game", ranked[3].Title)
}

func TestRank_SubstringMatchesBothDirections(t *testing.T) {
	ranker := NewRanker([]string{"Fire Emblem"})

	items := []domain.Item{
		{Title: "Totally Unrelated", Platform: "GBA", Thumbnail: "t.png"},
		// Priority entry is a substring of the item title
		{Title: "fire emblem - the sacred stones", Platform: "GBA", Thumbnail: "t.png"},
	}

	ranked := ranker.Rank(items)
	assert.Equal(t, "fire emblem - the sacred stones", ranked[0].Title)

	// Item title is a substring of the priority entry
	items = []domain.Item{
		{Title: "Totally Unrelated", Platform: "GBA", Thumbnail: "t.png"},
		{Title: "Emblem", Platform: "GBA", Thumbnail: "t.png"},
	}
	ranked = ranker.Rank(items)
	assert.Equal(t, "Emblem", ranked[0].Title)
}

func TestRank_NonPrioritizedKeepOrder(t *testing.T) {
	ranker := NewRanker(nil)

	items := unrankedItems(30)
	ranked := ranker.Rank(items)

	// No item matches the priority list, so order is untouched
	assert.Equal(t, items, ranked)
}

func TestRank_InputNotMutated(t *testing.T) {
	ranker := NewRanker(nil)

	items := unrankedItems(5)
	items[4].Title = "Pokemon - Emerald Version"
	original := make([]domain.Item, len(items))
	copy(original, items)

	_ = ranker.Rank(items)

	assert.Equal(t, original, items)
}

func TestIsPopular(t *testing.T) {
	ranker := NewRanker(nil)

	assert.True(t, ranker.IsPopular("Pokemon - Emerald Version"))
	assert.True(t, ranker.IsPopular("GOLDEN SUN"))
	assert.False(t, ranker.IsPopular("Obscure Homebrew 001"))
}
