// Copyright 2026 the askalex authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/trangdata/askalex/ai"
)

var (
	// ErrEmptyResponse is returned when the completion endpoint yields no
	// choices.
	ErrEmptyResponse = errors.New("completion returned no choices")

	// ErrMissingUsage is returned when the completion endpoint reports no
	// token usage. Cost estimation needs the counts, so the result is
	// unusable.
	ErrMissingUsage = errors.New("completion returned no token usage")
)

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client       llms.Model
	defaultModel string
	logger       *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:       client,
		defaultModel: config.CompletionModel,
		logger:       slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete submits one single-message prompt. Sampling is pinned for
// deterministic output: temperature 0, top_p 1, no penalties.
func (c *Completer) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(req.Prompt),
			},
		},
	}

	opts := []llms.CallOption{
		llms.WithModel(model),
		llms.WithTemperature(0.0),
		llms.WithTopP(1.0),
		llms.WithFrequencyPenalty(0),
		llms.WithPresencePenalty(0),
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Stop != "" {
		opts = append(opts, llms.WithStopWords([]string{req.Stop}))
	}

	response, err := c.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		c.logger.Error("completion failed", "model", model, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model", "model", model)
		return nil, ErrEmptyResponse
	}

	choice := response.Choices[0]
	promptTokens, promptOK := usageCount(choice.GenerationInfo, "PromptTokens")
	completionTokens, completionOK := usageCount(choice.GenerationInfo, "CompletionTokens")
	if !promptOK && !completionOK {
		c.logger.Warn("no token usage returned from model", "model", model)
		return nil, ErrMissingUsage
	}

	result := &ai.Completion{
		Text:             choice.Content,
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	}

	c.logger.Debug("completion succeeded",
		"model", model,
		"promptTokens", result.PromptTokens,
		"completionTokens", result.CompletionTokens)

	return result, nil
}

// usageCount reads a token count out of the provider's generation info,
// which is typed map[string]any. The second return reports whether the
// key carried a usable number.
func usageCount(info map[string]any, key string) (int, bool) {
	switch v := info[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
