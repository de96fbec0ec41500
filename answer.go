package askalex

import (
	"context"
	"strings"

	"github.com/trangdata/askalex/ai"
	"github.com/trangdata/askalex/core"
	"github.com/trangdata/askalex/search"
)

const (
	// largeModelMaxTokens is the fixed completion ceiling for
	// large-context models.
	largeModelMaxTokens = 8000

	// smallModelBaseLimit is the context window assumed for smaller
	// models; the completion budget is whatever the prompt leaves of it.
	smallModelBaseLimit = 3880
)

// Answer pairs a synthesized answer with its estimated cost.
type Answer struct {
	Text string
	Cost CostEstimate
}

// Keywords asks the model to reduce a question to 2-3 "+"-joined search
// keywords, most important first. On any failure it returns the empty
// string: a failed extraction degrades to "no further search possible"
// rather than aborting the pipeline.
func (e *Engine) Keywords(ctx context.Context, question string) string {
	if question == "" {
		return ""
	}

	prompt := buildKeywordPrompt(question)
	result, err := e.completer.Complete(ctx, ai.CompletionRequest{
		Prompt:    prompt,
		Model:     e.keywordModel,
		MaxTokens: completionBudget(e.keywordModel, prompt),
		Stop:      e.stop,
	})
	if err != nil {
		e.logger.Error("keyword extraction failed", "err", err)
		return ""
	}
	return strings.TrimSpace(result.Text)
}

// Answer builds a context from the ranked documents and asks the model
// the question against it. A nil return means no answer could be
// synthesized: completion failures are logged and swallowed here so that
// retrieval results stay usable on their own.
func (e *Engine) Answer(ctx context.Context, question string, docs core.Collection, model string) *Answer {
	if question == "" {
		return nil
	}

	prompt := buildAnswerPrompt(search.AssembleContext(docs, e.contextLen), question)
	result, err := e.completer.Complete(ctx, ai.CompletionRequest{
		Prompt:    prompt,
		Model:     model,
		MaxTokens: completionBudget(model, prompt),
		Stop:      e.stop,
	})
	if err != nil {
		e.logger.Error("answer synthesis failed", "model", model, "err", err)
		return nil
	}

	cost, err := e.prices.EstimateCost(result)
	if err != nil {
		e.logger.Error("cost estimation failed", "model", model, "err", err)
		return nil
	}

	return &Answer{
		Text: trimIncompleteSentence(result.Text),
		Cost: cost,
	}
}

// completionBudget picks max_tokens for a completion call. Large-context
// models get a fixed ceiling; for the rest, the remaining budget is the
// base window minus a cheap estimate of the prompt's token count.
func completionBudget(model, prompt string) int {
	if strings.Contains(model, "gpt-4") {
		return largeModelMaxTokens
	}
	return smallModelBaseLimit - search.EstimatePromptTokens(prompt)
}

// trimIncompleteSentence drops a trailing sentence fragment cut off
// mid-word by the token limit and reattaches the terminating period.
func trimIncompleteSentence(paragraph string) string {
	sentences := strings.Split(paragraph, ". ")
	if strings.HasSuffix(sentences[len(sentences)-1], ".") {
		return paragraph
	}
	return strings.Join(sentences[:len(sentences)-1], ". ") + "."
}
