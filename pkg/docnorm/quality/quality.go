// Package quality drops sentences that carry too few meaningful words.
package quality

import (
	"strings"

	"github.com/cognicore/docnorm/pkg/docnorm/lexical"
)

// Filter keeps sentences whose meaningful word ratio reaches Threshold.
// A Threshold <= 0 disables the filter.
type Filter struct {
	Threshold float64
	// Report is called for every rejected sentence. Optional.
	Report func(sentence string, ratio float64)
}

// New creates a filter with the given threshold and rejection hook.
func New(threshold float64, report func(sentence string, ratio float64)) *Filter {
	return &Filter{Threshold: threshold, Report: report}
}

// Enabled reports whether the filter removes anything.
func (f *Filter) Enabled() bool {
	return f != nil && f.Threshold > 0
}

// Name implements rewrite.Pass.
func (f *Filter) Name() string { return "quality" }

// Rewrite implements rewrite.Pass.
func (f *Filter) Rewrite(text string) string {
	if !f.Enabled() || text == "" {
		return text
	}

	var out strings.Builder
	for _, sentence := range Split(text) {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}
		ratio := lexical.MeaningfulWordRatio(words)
		if ratio >= f.Threshold {
			out.WriteString(sentence)
			continue
		}
		if f.Report != nil {
			f.Report(sentence, ratio)
		}
	}
	return out.String()
}

// Split cuts text after every period that follows at least one character.
// Text after the last period is returned as a final fragment.
func Split(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '.' && i > start {
			sentences = append(sentences, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
