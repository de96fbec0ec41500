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

// Package askalex answers natural-language questions over biomedical
// literature. A question is reduced to search keywords, candidate
// abstracts are retrieved from a scholarly-works service, ranked by
// embedding similarity, packed into a token-budgeted context, and handed
// to a completion model for answer synthesis.
package askalex

import (
	"context"
	"log/slog"

	"github.com/trangdata/askalex/ai"
	"github.com/trangdata/askalex/core"
	"github.com/trangdata/askalex/search"
)

const (
	// defaultKeywordModel extracts search keywords from the question.
	defaultKeywordModel = "gpt-4-32k"

	// defaultPerPage is the page size requested from the document source.
	defaultPerPage = 100

	// defaultContextLen is the token budget handed to the context
	// assembler for answer synthesis.
	defaultContextLen = 4097
)

// DocumentSource finds candidate publications for a keyword expression.
// A nil collection with a nil error means no matching documents; that is
// an outcome the pipeline handles, not a failure.
type DocumentSource interface {
	FindDocuments(ctx context.Context, keywords string, perPage int) (core.Collection, error)
}

// Engine wires the retrieval pipeline together: document search,
// embedding, ranking, context assembly, answer synthesis, and cost
// estimation. All state is immutable after construction; every question
// builds its documents and context fresh.
type Engine struct {
	source    DocumentSource
	completer ai.Completer
	searcher  *search.Searcher
	prices    PriceTable

	keywordModel string
	perPage      int
	topN         int
	contextLen   int
	stop         string

	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPriceTable overrides the default per-model price table.
func WithPriceTable(prices PriceTable) Option {
	return func(e *Engine) {
		if prices != nil {
			e.prices = prices
		}
	}
}

// WithKeywordModel sets the model used for keyword extraction.
func WithKeywordModel(model string) Option {
	return func(e *Engine) {
		e.keywordModel = model
	}
}

// WithPerPage sets the page size requested from the document source.
func WithPerPage(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.perPage = n
		}
	}
}

// WithTopN sets how many ranked documents are kept for context assembly.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithContextBudget sets the token budget for the assembled context.
func WithContextBudget(tokens int) Option {
	return func(e *Engine) {
		if tokens > 0 {
			e.contextLen = tokens
		}
	}
}

// WithStopSequence sets an optional stop sequence for answer completions.
func WithStopSequence(stop string) Option {
	return func(e *Engine) {
		e.stop = stop
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEngine creates an engine from a document source, an AI provider, and
// a token counter.
func NewEngine(source DocumentSource, provider ai.Provider, counter search.TokenCounter, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if counter == nil {
		return nil, ErrCounterRequired
	}

	searcher, err := search.NewSearcher(provider.Embedder(), counter)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		source:       source,
		completer:    provider.Completer(),
		searcher:     searcher,
		prices:       DefaultPriceTable(),
		keywordModel: defaultKeywordModel,
		perPage:      defaultPerPage,
		topN:         search.DefaultTopN,
		contextLen:   defaultContextLen,
		logger:       slog.Default().With("component", "askalex"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Ask runs the whole pipeline for one question and returns the ranked
// documents alongside the synthesized answer. Retrieval and synthesis
// fail independently: a nil answer never invalidates the returned
// collection, and the caller should still display it. Search and
// embedding failures are fatal to the request and surface as errors; a
// nil collection with a nil error means nothing matched.
func (e *Engine) Ask(ctx context.Context, question, model string) (core.Collection, *Answer, error) {
	keywords := e.Keywords(ctx, question)
	if keywords == "" {
		e.logger.Warn("no keywords extracted, no further search possible", "question", question)
		return nil, nil, nil
	}

	docs, err := e.source.FindDocuments(ctx, keywords, e.perPage)
	if err != nil {
		return nil, nil, err
	}
	if len(docs) == 0 {
		return nil, nil, nil
	}

	docs, err = e.searcher.EmbedDocuments(ctx, docs)
	if err != nil {
		return nil, nil, err
	}

	ranked, err := e.searcher.Search(ctx, question, docs, e.topN)
	if err != nil {
		return nil, nil, err
	}

	return ranked, e.Answer(ctx, question, ranked, model), nil
}
