// Package javadoc models method documentation records and normalizes every
// text field of a record through a rewrite pipeline.
package javadoc

import (
	"regexp"
	"strings"

	"github.com/cognicore/docnorm/pkg/docnorm/rewrite"
)

var (
	wordStart  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ConvertName splits a camel-case identifier into lower-case words:
// getHTTPResponse → "get http response".
func ConvertName(name string) string {
	s := wordStart.ReplaceAllString(name, "${1}_${2}")
	s = lowerUpper.ReplaceAllString(s, "${1}_${2}")
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

// Applicator runs a pipeline over every text field of a record
type Applicator struct {
	pipeline *rewrite.Pipeline
}

// NewApplicator creates an applicator. A nil pipeline uses rewrite.New().
func NewApplicator(p *rewrite.Pipeline) *Applicator {
	if p == nil {
		p = rewrite.New()
	}
	return &Applicator{pipeline: p}
}

// Pipeline returns the pipeline used by the applicator.
func (a *Applicator) Pipeline() *rewrite.Pipeline {
	return a.pipeline
}

// Apply returns a normalized copy of r. Field cardinalities are kept.
func (a *Applicator) Apply(r Record) Record {
	params := r.ParamNames()

	out := Record{
		Params:            append([]Parameter(nil), r.Params...),
		Head:              a.pipeline.Apply(r.Head, params),
		ParamDescriptions: a.applyAll(r.ParamDescriptions, params),
		Results:           a.applyAll(r.Results, params),
		Throws:            a.applyAll(r.Throws, params),
		Sees:              a.applyAll(r.Sees, params),
	}

	out.Variables = make([]string, len(params))
	for i, name := range params {
		out.Variables[i] = a.pipeline.Apply(ConvertName(name), params)
	}
	return out
}

// Transform implements batch.Transformer.
func (a *Applicator) Transform(r Record) Record {
	return a.Apply(r)
}

func (a *Applicator) applyAll(texts []string, params []string) []string {
	if texts == nil {
		return nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = a.pipeline.Apply(t, params)
	}
	return out
}
