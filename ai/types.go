package ai

// CompletionRequest describes one completion call. Sampling parameters are
// not configurable: implementations pin temperature to 0, top_p to 1, and
// leave frequency and presence penalties untouched, so that the same
// prompt yields the same answer.
type CompletionRequest struct {
	// Prompt is the full single-message prompt text.
	Prompt string

	// Model identifies the completion model. Empty means the provider's
	// configured default.
	Model string

	// MaxTokens caps the completion length. Zero leaves the cap to the
	// endpoint.
	MaxTokens int

	// Stop is an optional stop sequence.
	Stop string
}

// Completion is the raw result of one completion call. The token counts
// come from the endpoint's usage metadata and feed cost estimation.
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}
