package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGet_PrintsDetailsWithoutMarking(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		fmt.Fprint(w, `{"items": [
			{"title": "Golden Sun 2", "platform": "GBA", "region": "USA", "thumbnail": "gs2.png", "download_link": "gs2.zip", "popular": false, "downloaded": false},
			{"title": "Golden Sun", "platform": "GBA", "region": "USA", "thumbnail": "gs.png", "download_link": "gs.zip", "popular": true, "downloaded": true}
		], "total_items": 2, "total_pages": 1, "current_page": 1}`)
	}))
	defer server.Close()
	serverURL = server.URL

	var out bytes.Buffer
	runGet(&out, "golden sun")

	// Exact title match wins over the top-ranked hit
	assert.Contains(t, out.String(), "Golden Sun")
	assert.Contains(t, out.String(), "gs.zip")
	assert.NotContains(t, out.String(), "gs2.zip")
	assert.Contains(t, out.String(), "Popular:")

	// Only the catalog is queried; nothing is posted to /downloads
	require.Equal(t, []string{"GET /api/v1/catalog"}, requests)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "1234567...", truncate("12345678901", 10))
}

func TestTruncate_RuneBoundaries(t *testing.T) {
	got := truncate("Pokémon Édition Rouge Feu", 10)

	assert.Equal(t, "Pokémon...", got)
	assert.True(t, utf8.ValidString(got))
}
