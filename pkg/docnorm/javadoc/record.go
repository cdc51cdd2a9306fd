package javadoc

import (
	"fmt"
	"strings"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/vocab"
)

// Parameter is a declared method parameter
type Parameter struct {
	Name string `json:"name"`
}

// Record is the documentation of one method
type Record struct {
	Params            []Parameter `json:"params"`
	Head              string      `json:"head"`
	ParamDescriptions []string    `json:"param_descriptions"`
	Variables         []string    `json:"variables,omitempty"`
	Results           []string    `json:"results"`
	Throws            []string    `json:"throws"`
	Sees              []string    `json:"sees"`
}

// ParamNames returns the parameter names in declaration order.
func (r Record) ParamNames() []string {
	names := make([]string, len(r.Params))
	for i, p := range r.Params {
		names[i] = p.Name
	}
	return names
}

// Validate checks that parameter names are present and unique; VARIABLE<i>
// would otherwise be ambiguous.
func (r Record) Validate() error {
	seen := make(map[string]int, len(r.Params))
	for i, p := range r.Params {
		name := strings.ToLower(p.Name)
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("parameter %d has no name: %w", i, internalerr.ErrInvalidInput)
		}
		if j, ok := seen[name]; ok {
			return fmt.Errorf("parameter %q repeats parameter %d: %w", p.Name, j, internalerr.ErrInvalidInput)
		}
		seen[name] = i
	}
	return nil
}

// IsEmpty reports whether the record carries no text at all. Sequences
// holding only blank entries count as empty.
func (r Record) IsEmpty() bool {
	if strings.TrimSpace(r.Head) != "" {
		return false
	}
	for _, seq := range [][]string{r.ParamDescriptions, r.Variables, r.Results, r.Throws, r.Sees} {
		if !blank(seq) {
			return false
		}
	}
	return true
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Field names of a flattened record
const (
	FieldHead      = "head"
	FieldParams    = "params"
	FieldVariables = "variables"
	FieldResults   = "results"
)

// Field is one named value of a flattened record
type Field struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Flatten turns a record into the ordered fields consumed downstream.
// Multi-valued fields are joined with the NEXT separator.
func Flatten(r Record) []Field {
	return []Field{
		{Name: FieldHead, Text: r.Head},
		{Name: FieldParams, Text: vocab.Join(r.ParamDescriptions)},
		{Name: FieldVariables, Text: vocab.Join(r.Variables)},
		{Name: FieldResults, Text: vocab.Join(r.Results)},
	}
}
