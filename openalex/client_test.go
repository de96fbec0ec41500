package openalex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invertedIndex turns plain text into the wire form OpenAlex uses.
func invertedIndex(text string) map[string][]int {
	index := map[string][]int{}
	for i, word := range strings.Fields(text) {
		index[word] = append(index[word], i)
	}
	return index
}

func writeWorks(t *testing.T, w http.ResponseWriter, results []map[string]any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{"results": results})
	require.NoError(t, err)
}

func TestFindDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("returns decoded documents", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "abstract.search:BRCA1+breast cancer", r.URL.Query().Get("filter"))
			assert.Equal(t, "50", r.URL.Query().Get("per-page"))
			writeWorks(t, w, []map[string]any{
				{
					"id":                      "https://openalex.org/W1",
					"title":                   "BRCA1 in breast cancer",
					"doi":                     "https://doi.org/10.1/abc",
					"abstract_inverted_index": invertedIndex("BRCA1 is a tumor suppressor"),
				},
			})
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		docs, err := client.FindDocuments(ctx, "BRCA1+breast cancer", 50)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "BRCA1 in breast cancer", docs[0].Title)
		assert.Equal(t, "BRCA1 is a tumor suppressor", docs[0].Abstract)
		assert.Equal(t, "https://doi.org/10.1/abc", docs[0].URL)
		assert.False(t, docs[0].HasSimilarity())
	})

	t.Run("keyword relaxation drops terms until results appear", func(t *testing.T) {
		var filters []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			filter := r.URL.Query().Get("filter")
			filters = append(filters, filter)
			if filter == "abstract.search:A" {
				writeWorks(t, w, []map[string]any{
					{
						"id":                      "https://openalex.org/W2",
						"title":                   "A result",
						"doi":                     "https://doi.org/10.1/a",
						"abstract_inverted_index": invertedIndex("about A"),
					},
				})
				return
			}
			writeWorks(t, w, nil)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		docs, err := client.FindDocuments(ctx, "A+B+C", 10)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "A result", docs[0].Title)
		assert.Equal(t, []string{
			"abstract.search:A+B+C",
			"abstract.search:A+B",
			"abstract.search:A",
		}, filters)
	})

	t.Run("exhausted relaxation is no-results, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeWorks(t, w, nil)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		docs, err := client.FindDocuments(ctx, "A+B", 10)
		require.NoError(t, err)
		assert.Nil(t, docs)
	})

	t.Run("empty keywords is no-results", func(t *testing.T) {
		client := NewClient(WithBaseURL("http://127.0.0.1:0"))
		docs, err := client.FindDocuments(ctx, "   ", 10)
		require.NoError(t, err)
		assert.Nil(t, docs)
	})

	t.Run("server error propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.FindDocuments(ctx, "A", 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "openalex http 500")
	})

	t.Run("page size clamped to API maximum", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("per-page"))
			writeWorks(t, w, nil)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.FindDocuments(ctx, "A", 500)
		require.NoError(t, err)
	})

	t.Run("duplicate DOIs and incomplete works filtered", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeWorks(t, w, []map[string]any{
				{
					"id":                      "https://openalex.org/W1",
					"title":                   "kept",
					"doi":                     "https://doi.org/10.1/dup",
					"abstract_inverted_index": invertedIndex("first copy"),
				},
				{
					"id":                      "https://openalex.org/W2",
					"title":                   "dropped duplicate",
					"doi":                     "https://doi.org/10.1/dup",
					"abstract_inverted_index": invertedIndex("second copy"),
				},
				{
					"id":    "https://openalex.org/W3",
					"title": "no abstract",
				},
				{
					"id":                      "https://openalex.org/W4",
					"title":                   "no doi falls back to id",
					"abstract_inverted_index": invertedIndex("still usable"),
				},
			})
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		docs, err := client.FindDocuments(ctx, "A", 10)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "kept", docs[0].Title)
		assert.Equal(t, "https://openalex.org/W4", docs[1].URL)
	})

	t.Run("mailto joins the polite pool", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "team@example.org", r.URL.Query().Get("mailto"))
			writeWorks(t, w, nil)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL), WithMailto("team@example.org"))
		_, err := client.FindDocuments(ctx, "A", 10)
		require.NoError(t, err)
	})
}
