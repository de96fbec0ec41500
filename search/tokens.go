package search

import "github.com/pkoukk/tiktoken-go"

// embeddingEncoding is the tokenizer used by text-embedding-ada-002.
const embeddingEncoding = "cl100k_base"

// TokenCounter reports the token length of a text.
type TokenCounter interface {
	Count(text string) (int, error)
}

// TiktokenCounter counts tokens with the embedding model's real BPE
// encoding. Used for abstracts, where the count feeds the context budget
// and must match what the model will see.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the cl100k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	encoding, err := tiktoken.GetEncoding(embeddingEncoding)
	if err != nil {
		return nil, err
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text.
func (c *TiktokenCounter) Count(text string) (int, error) {
	return len(c.encoding.Encode(text, nil, nil)), nil
}

// EstimatePromptTokens approximates a tokenizer count for a prompt with
// the cheap one-token-per-four-characters heuristic. Prompts only need a
// rough remaining-budget figure, not an exact count.
func EstimatePromptTokens(prompt string) int {
	return len(prompt) / 4
}
