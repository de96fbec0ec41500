package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trangdata/askalex/ai/mock"
	"github.com/trangdata/askalex/core"
)

// wordCounter counts whitespace-separated words; deterministic and offline.
type wordCounter struct{}

func (wordCounter) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

type failingCounter struct{ err error }

func (c failingCounter) Count(string) (int, error) { return 0, c.err }

func TestNewSearcher(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("with custom logger", func(t *testing.T) {
		s, err := NewSearcher(embedder, wordCounter{}, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		s, err := NewSearcher(embedder, wordCounter{}, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSearcher(nil, wordCounter{})
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("nil counter", func(t *testing.T) {
		_, err := NewSearcher(embedder, nil)
		assert.Equal(t, ErrCounterRequired, err)
	})
}

func TestEmbedDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches tokens and embeddings sequentially", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		docs := core.Collection{
			core.NewDocument("t1", "one two three", "u1"),
			core.NewDocument("t2", "four five", "u2"),
		}
		kept, err := s.EmbedDocuments(ctx, docs)
		require.NoError(t, err)
		require.Len(t, kept, 2)
		assert.Equal(t, 3, kept[0].NTokens)
		assert.Equal(t, 2, kept[1].NTokens)
		assert.NotEmpty(t, kept[0].Embedding)
		assert.NotEmpty(t, kept[1].Embedding)
		assert.Equal(t, 2, embedder.CallCount(), "one embedding call per document")
	})

	t.Run("skips abstracts over the embedding ceiling", func(t *testing.T) {
		counter := countFunc(func(text string) (int, error) {
			if strings.HasPrefix(text, "huge") {
				return maxEmbedTokens + 1, nil
			}
			return 10, nil
		})
		s, err := NewSearcher(mock.NewMockEmbedder(), counter)
		require.NoError(t, err)

		docs := core.Collection{
			core.NewDocument("t1", "huge abstract", "u1"),
			core.NewDocument("t2", "small abstract", "u2"),
		}
		kept, err := s.EmbedDocuments(ctx, docs)
		require.NoError(t, err)
		require.Len(t, kept, 1)
		assert.Equal(t, "u2", kept[0].URL)
	})

	t.Run("embedding failure aborts the pass", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("quota exceeded")
		}
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		_, err = s.EmbedDocuments(ctx, core.Collection{core.NewDocument("t", "a", "u")})
		require.Error(t, err)
	})

	t.Run("counter failure aborts the pass", func(t *testing.T) {
		s, err := NewSearcher(mock.NewMockEmbedder(), failingCounter{err: errors.New("bad encoding")})
		require.NoError(t, err)

		_, err = s.EmbedDocuments(ctx, core.Collection{core.NewDocument("t", "a", "u")})
		require.Error(t, err)
	})
}

// countFunc adapts a function to the TokenCounter interface.
type countFunc func(text string) (int, error)

func (f countFunc) Count(text string) (int, error) { return f(text) }

func TestRank(t *testing.T) {
	query := []float32{1, 0, 0}

	t.Run("sorts by similarity descending", func(t *testing.T) {
		docs := core.Collection{
			&core.Document{Title: "far", Embedding: []float32{0, 1, 0}},
			&core.Document{Title: "near", Embedding: []float32{1, 0.1, 0}},
			&core.Document{Title: "middle", Embedding: []float32{0.5, 0.5, 0}},
		}
		ranked := Rank(query, docs)
		require.Len(t, ranked, 3)
		assert.Equal(t, "near", ranked[0].Title)
		assert.Equal(t, "middle", ranked[1].Title)
		assert.Equal(t, "far", ranked[2].Title)
		for _, doc := range ranked {
			assert.True(t, doc.HasSimilarity())
		}
	})

	t.Run("stable on ties", func(t *testing.T) {
		docs := core.Collection{
			&core.Document{Title: "first", Embedding: []float32{1, 0}},
			&core.Document{Title: "second", Embedding: []float32{2, 0}}, // same direction, same cosine
			&core.Document{Title: "third", Embedding: []float32{3, 0}},
		}
		ranked := Rank([]float32{1, 0}, docs)
		assert.Equal(t, "first", ranked[0].Title)
		assert.Equal(t, "second", ranked[1].Title)
		assert.Equal(t, "third", ranked[2].Title)
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		docs := core.Collection{
			&core.Document{Title: "degenerate", Embedding: []float32{0, 0, 0}},
		}
		ranked := Rank(query, docs)
		assert.Equal(t, 0.0, ranked[0].Similarity)
	})

	t.Run("input order preserved in original collection", func(t *testing.T) {
		docs := core.Collection{
			&core.Document{Title: "a", Embedding: []float32{0, 1}},
			&core.Document{Title: "b", Embedding: []float32{1, 0}},
		}
		Rank([]float32{1, 0}, docs)
		assert.Equal(t, "a", docs[0].Title, "ranking returns a new ordering, input untouched")
	})
}

type recordingMonitor struct {
	started     string
	embedded    bool
	rankedN     int
	finished    int
	finishCalls int
}

func (m *recordingMonitor) Start(query string)                  { m.started = query }
func (m *recordingMonitor) AfterQueryEmbedding(_ []float32)     { m.embedded = true }
func (m *recordingMonitor) AfterRanking(ranked core.Collection) { m.rankedN = len(ranked) }
func (m *recordingMonitor) Finish(results core.Collection) {
	m.finished = len(results)
	m.finishCalls++
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	newDocs := func() core.Collection {
		return core.Collection{
			&core.Document{Title: "a", Abstract: "a", Embedding: []float32{1, 0}},
			&core.Document{Title: "b", Abstract: "b", Embedding: []float32{0.9, 0.1}},
			&core.Document{Title: "c", Abstract: "c", Embedding: []float32{0, 1}},
		}
	}

	t.Run("keeps topN", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		ranked, err := s.Search(ctx, "query", newDocs(), 2)
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, "a", ranked[0].Title)
		assert.Equal(t, "b", ranked[1].Title)
	})

	t.Run("empty collection short-circuits", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		ranked, err := s.Search(ctx, "query", nil, 5)
		require.NoError(t, err)
		assert.Nil(t, ranked)
		assert.Zero(t, embedder.CallCount(), "no embedding call without candidates")
	})

	t.Run("query embedding failure propagates", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("connection refused")
		}
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		_, err = s.Search(ctx, "query", newDocs(), 5)
		require.Error(t, err)
	})

	t.Run("monitor observes every stage", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		ranked, err := s.SearchWithMonitor(ctx, "the query", newDocs(), 2, monitor)
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, "the query", monitor.started)
		assert.True(t, monitor.embedded)
		assert.Equal(t, 3, monitor.rankedN, "ranking sees the full collection")
		assert.Equal(t, 2, monitor.finished, "finish sees the top-n cut")
		assert.Equal(t, 1, monitor.finishCalls)
	})

	t.Run("monitor finishes on query embedding failure", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("connection refused")
		}
		s, err := NewSearcher(embedder, wordCounter{})
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		_, err = s.SearchWithMonitor(ctx, "the query", newDocs(), 2, monitor)
		require.Error(t, err)
		assert.Equal(t, 1, monitor.finishCalls, "every started search finishes")
		assert.Zero(t, monitor.finished)
	})
}
