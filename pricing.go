package askalex

import (
	"errors"
	"fmt"

	"github.com/trangdata/askalex/ai"
)

var (
	// ErrUnsupportedModel is returned when a completion reports a model
	// that has no entry in the price table.
	ErrUnsupportedModel = errors.New("no cost information for that model")

	// ErrMalformedResult is returned when a completion's usage metadata
	// cannot be read.
	ErrMalformedResult = errors.New("unable to parse completion result")
)

// ModelPrice is the cost per 1000 tokens for one model. Completion tokens
// are priced higher than prompt tokens in every tier.
type ModelPrice struct {
	Prompt     float64
	Completion float64
}

// PriceTable maps model identifiers to per-1000-token prices. Rates are a
// configuration input; only the relative ordering of the tiers is fixed.
type PriceTable map[string]ModelPrice

// DefaultPriceTable covers the four supported model tiers, cheapest first.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		"gpt-35-turbo":     {Prompt: 0.0015, Completion: 0.002},
		"gpt-35-turbo-16k": {Prompt: 0.003, Completion: 0.004}, // 2x gpt-35-turbo
		"gpt-4":            {Prompt: 0.03, Completion: 0.06},   // 20x-30x
		"gpt-4-32k":        {Prompt: 0.06, Completion: 0.12},   // 40x-60x
	}
}

// CostEstimate is the derived monetary cost of one completion. It is
// computed per request and never persisted.
type CostEstimate struct {
	Amount           float64
	PromptTokens     int
	CompletionTokens int
}

// EstimateCost derives a cost estimate from a completion's reported token
// usage. An unknown model or unreadable usage metadata is a hard error.
func (p PriceTable) EstimateCost(result *ai.Completion) (CostEstimate, error) {
	if result == nil || result.Model == "" || result.PromptTokens < 0 || result.CompletionTokens < 0 {
		return CostEstimate{}, ErrMalformedResult
	}

	price, ok := p[result.Model]
	if !ok {
		return CostEstimate{}, fmt.Errorf("%w: %s", ErrUnsupportedModel, result.Model)
	}

	amount := (price.Prompt*float64(result.PromptTokens) + price.Completion*float64(result.CompletionTokens)) / 1000.0
	return CostEstimate{
		Amount:           amount,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}, nil
}

// FormatCost renders an amount for display. Sub-cent amounts show as
// "< $0.01"; everything else is two decimal places with a currency prefix.
func FormatCost(amount float64) string {
	if amount < 0.01 {
		return "< $0.01"
	}
	return fmt.Sprintf("$%.2f", amount)
}
