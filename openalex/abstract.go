package openalex

import "strings"

const (
	// maxAbstractWords triggers truncation; truncateToWords is how much
	// survives it. The asymmetry is deliberate: an abstract between 301
	// and 500 words passes through unmodified.
	maxAbstractWords = 500
	truncateToWords  = 300
)

// DecodeInvertedAbstract rebuilds plain abstract text from OpenAlex's
// abstract_inverted_index form, which maps each word to the list of
// positions it occupies in the original text.
func DecodeInvertedAbstract(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}

	maxPos := -1
	for _, positions := range index {
		for _, p := range positions {
			if p > maxPos {
				maxPos = p
			}
		}
	}
	if maxPos < 0 {
		return ""
	}

	slots := make([]string, maxPos+1)
	for word, positions := range index {
		for _, p := range positions {
			if p >= 0 && p < len(slots) {
				slots[p] = word
			}
		}
	}

	// Some records have gaps in their position lists; skip the holes so
	// the text doesn't pick up doubled spaces.
	words := slots[:0]
	for _, w := range slots {
		if w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

// ShortenAbstract truncates oversized abstracts to bound downstream token
// cost. Abstracts of up to maxAbstractWords words are returned unchanged;
// longer ones are cut to their first truncateToWords words, joined by
// single spaces.
func ShortenAbstract(text string) string {
	words := strings.Fields(text)
	if len(words) > maxAbstractWords {
		return strings.Join(words[:truncateToWords], " ")
	}
	return text
}
