package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// ranking. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// One request is made per text; callers batch abstracts and the query
	// as separate calls.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Completer submits a single-message prompt to a chat-completion endpoint.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete runs one deterministic completion call and returns the
	// generated text together with the token-usage metadata needed for
	// cost estimation.
	// Returns an error if the completion fails.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Completer instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Completer returns the chat-completion service.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
