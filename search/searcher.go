package search

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/trangdata/askalex/ai"
	"github.com/trangdata/askalex/core"
)

const (
	// maxEmbedTokens is the ceiling for a single embedding input; the
	// model limit for text-embedding-ada-002 is 8191.
	maxEmbedTokens = 8000

	// DefaultTopN is how many ranked documents Search keeps.
	DefaultTopN = 10
)

// Searcher ranks candidate documents against a question by embedding
// similarity.
type Searcher struct {
	embedder ai.Embedder
	counter  TokenCounter
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embedder ai.Embedder, counter TokenCounter, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if counter == nil {
		return nil, ErrCounterRequired
	}

	s := &Searcher{
		embedder: embedder,
		counter:  counter,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// EmbedDocuments attaches a token count and an embedding to every document
// in turn and returns the documents that fit under the embedding ceiling.
// Calls are strictly sequential: each embedding is fetched after the prior
// one finishes, so latency is linear in the number of candidates. Any
// embedding failure aborts the whole pass.
func (s *Searcher) EmbedDocuments(ctx context.Context, docs core.Collection) (core.Collection, error) {
	kept := make(core.Collection, 0, len(docs))
	for _, doc := range docs {
		n, err := s.counter.Count(doc.Abstract)
		if err != nil {
			return nil, err
		}
		if n > maxEmbedTokens {
			s.logger.Warn("abstract over embedding ceiling, skipping", "url", doc.URL, "tokens", n)
			continue
		}
		doc.NTokens = n

		vector, err := s.embedder.EmbedText(ctx, doc.Abstract)
		if err != nil {
			s.logger.Error("error embedding abstract", "url", doc.URL, "err", err)
			return nil, err
		}
		doc.Embedding = vector
		kept = append(kept, doc)
	}

	s.logger.Debug("embedded documents", "total", len(docs), "kept", len(kept))
	return kept, nil
}

// Search embeds the query and returns the topN most similar documents,
// ranked by descending cosine similarity.
func (s *Searcher) Search(ctx context.Context, query string, docs core.Collection, topN int) (core.Collection, error) {
	return s.SearchWithMonitor(ctx, query, docs, topN, nil)
}

// SearchWithMonitor is Search with observation hooks. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, docs core.Collection, topN int, monitor Monitor) (core.Collection, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	if len(docs) == 0 {
		monitor.Finish(nil)
		return nil, nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		monitor.Finish(nil)
		return nil, err
	}
	monitor.AfterQueryEmbedding(embedding)

	ranked := Rank(embedding, docs)
	monitor.AfterRanking(ranked)

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	monitor.Finish(ranked)
	return ranked, nil
}

// Rank assigns each document its cosine similarity to the query embedding
// and returns the collection sorted by similarity, highest first. The sort
// is stable: documents with identical scores keep their insertion order.
func Rank(queryEmbedding []float32, docs core.Collection) core.Collection {
	for _, doc := range docs {
		doc.Similarity = cosineSimilarity(queryEmbedding, doc.Embedding)
	}

	ranked := make(core.Collection, len(docs))
	copy(ranked, docs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return ranked
}

// cosineSimilarity is dot(a,b) / (norm(a) * norm(b)). A zero vector has no
// direction; it scores 0 so the ordering stays total. Real embedding
// output never hits that branch.
func cosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	var normA, normB float64
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
