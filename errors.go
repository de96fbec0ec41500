package askalex

import "errors"

var (
	// ErrSourceRequired is returned when a document source is not provided.
	ErrSourceRequired = errors.New("document source required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrCounterRequired is returned when a token counter is not provided.
	ErrCounterRequired = errors.New("token counter required")
)
