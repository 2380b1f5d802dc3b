// Package pricing maps model identifiers to per-token rates and computes
// message costs. Rates default to the built-in table and can be replaced by
// a YAML file supplied through config.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelPricing holds per-token USD rates for one model.
type ModelPricing struct {
	Input  float64 `yaml:"input_per_mtok"`
	Output float64 `yaml:"output_per_mtok"`
}

// Breakdown is the result of a cost computation.
type Breakdown struct {
	InputCost    float64
	OutputCost   float64
	TotalCost    float64
	InputTokens  int64
	OutputTokens int64
}

const mtok = 1_000_000

// Table resolves model ids to rates. The zero value knows no models; use
// Default for the built-in rates.
type Table struct {
	models map[string]ModelPricing
}

// Default returns the built-in table (USD per million tokens). The gateway
// prefixed ids are aliases of the bare ones.
func Default() *Table {
	rates := map[string]ModelPricing{
		"claude-sonnet-4-5": {Input: 3.0, Output: 15.0},
		"claude-haiku-4-5":  {Input: 1.0, Output: 5.0},
		"claude-opus-4-5":   {Input: 5.0, Output: 25.0},
	}
	for id, r := range rates {
		rates["anthropic/"+id] = r
	}
	return &Table{models: rates}
}

// LoadFile reads a YAML table of the form:
//
//	claude-sonnet-4-5:
//	  input_per_mtok: 3.0
//	  output_per_mtok: 15.0
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file: %w", err)
	}

	var models map[string]ModelPricing
	if err := yaml.Unmarshal(data, &models); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file: %w", err)
	}

	return &Table{models: models}, nil
}

// Cost computes the breakdown for the given model and token counts. The
// second return value is false when the model is unknown; the breakdown is
// then zero-cost but still carries the token counts, so callers can record
// usage without pricing.
func (t *Table) Cost(model string, inputTokens, outputTokens int64) (Breakdown, bool) {
	b := Breakdown{InputTokens: inputTokens, OutputTokens: outputTokens}

	p, ok := t.models[model]
	if !ok {
		return b, false
	}

	b.InputCost = float64(inputTokens) * p.Input / mtok
	b.OutputCost = float64(outputTokens) * p.Output / mtok
	b.TotalCost = b.InputCost + b.OutputCost
	return b, true
}

// Known reports whether the table has rates for model.
func (t *Table) Known(model string) bool {
	_, ok := t.models[model]
	return ok
}

// FormatCost renders a cost as a USD string. Very small amounts keep extra
// precision so sub-cent message costs stay legible.
func FormatCost(cost float64) string {
	if cost == 0 {
		return "$0.00"
	}
	if cost < 0.01 {
		// shown in cents
		return fmt.Sprintf("$%.4f", cost*100)
	}
	return fmt.Sprintf("$%.4f", cost)
}
