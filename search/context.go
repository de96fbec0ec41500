package search

import (
	"strings"

	"github.com/trangdata/askalex/core"
)

const (
	// DefaultMaxContextLen is the default token budget for an assembled
	// context.
	DefaultMaxContextLen = 1800

	// documentOverheadTokens approximates the separator and formatting
	// tokens each admitted abstract adds to the prompt.
	documentOverheadTokens = 4

	contextDelimiter = "\n\n###\n\n"
)

// AssembleContext walks ranked documents in descending-similarity order
// and admits abstracts until the token budget would be exceeded. Each
// document costs NTokens plus a fixed per-document overhead; the first
// document that overflows the budget stops the walk entirely, even if a
// later, shorter document would still fit (first-fit-by-rank, not
// best-fit). Admitted abstracts are joined with a fixed delimiter. Returns
// the empty string when nothing fits.
func AssembleContext(ranked core.Collection, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxContextLen
	}

	var admitted []string
	curLen := 0
	for _, doc := range ranked {
		curLen += doc.NTokens + documentOverheadTokens
		if curLen > maxLen {
			break
		}
		admitted = append(admitted, doc.Abstract)
	}

	return strings.Join(admitted, contextDelimiter)
}
