package core

import "math"

// Document is one candidate publication retrieved for a question.
// It is created by the document source, enriched with a token count and
// an embedding during indexing, and scored against the query during
// ranking. Documents live for a single request and are never persisted.
type Document struct {
	Title     string
	Abstract  string
	URL       string    // DOI-style identifier of the publication
	NTokens   int       // token count of Abstract (populated by the searcher)
	Embedding []float32 // embedding vector of Abstract (populated by the searcher)

	// Similarity is the query-dependent cosine similarity assigned during
	// ranking. Until then it is NaN, so renderers can tell an unranked
	// document from one that genuinely scored zero.
	Similarity float64
}

// NewDocument creates a document with no similarity assigned yet.
func NewDocument(title, abstract, url string) *Document {
	return &Document{
		Title:      title,
		Abstract:   abstract,
		URL:        url,
		Similarity: math.NaN(),
	}
}

// HasSimilarity reports whether ranking has assigned a similarity score.
func (d *Document) HasSimilarity() bool {
	return !math.IsNaN(d.Similarity)
}

// Collection is an insertion-ordered set of documents sharing one search
// query.
type Collection []*Document

// AddUnique appends doc unless a document with the same URL is already
// present. The search service does not guarantee distinct identifiers, so
// deduplication is best-effort: the first occurrence wins.
func (c Collection) AddUnique(doc *Document) Collection {
	for _, existing := range c {
		if existing.URL == doc.URL {
			return c
		}
	}
	return append(c, doc)
}

// Abstracts returns the abstract text of every document in order.
func (c Collection) Abstracts() []string {
	out := make([]string, len(c))
	for i, doc := range c {
		out[i] = doc.Abstract
	}
	return out
}
