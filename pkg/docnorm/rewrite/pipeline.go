// Package rewrite turns raw documentation text into the placeholder
// vocabulary through an ordered list of passes.
//
// Order matters: the stable-reduction escape must run before path, URL and
// number masking, paths go before URLs so a file name keeps its segments,
// parameter names are substituted only after numbers and constants
// are gone, and the escape is undone after punctuation spacing.
package rewrite

// Pipeline is an ordered, immutable list of passes.
type Pipeline struct {
	stages []Pass
}

// Option configures optional stages of a Pipeline.
type Option func(*settings)

type settings struct {
	dotInvocation bool
	quality       Pass
}

// WithDotInvocation enables masking of dotted member chains.
func WithDotInvocation(enabled bool) Option {
	return func(s *settings) { s.dotInvocation = enabled }
}

// WithQualityFilter inserts a sentence filter after punctuation spacing.
// A nil pass leaves the stage out.
func WithQualityFilter(p Pass) Option {
	return func(s *settings) { s.quality = p }
}

// New builds the default pipeline.
func New(opts ...Option) *Pipeline {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	stages := []Pass{
		Lower,
		Strings,
		Tags,
		References,
		Links,
		StableReduction,
		Paths,
		URLs,
		Numbers,
		Constants,
		Parameters,
		Invocations,
	}
	if s.dotInvocation {
		stages = append(stages, DotInvocations)
	}
	stages = append(stages, Punctuation)
	if s.quality != nil {
		stages = append(stages, s.quality)
	}
	stages = append(stages, UnpackStableReduction, CollapseSpaces, TrimEdges)

	return &Pipeline{stages: stages}
}

// NewWithStages builds a pipeline from an explicit pass list.
func NewWithStages(stages ...Pass) *Pipeline {
	return &Pipeline{stages: append([]Pass(nil), stages...)}
}

// Stages returns the pass names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Apply runs every pass over text. params are the record's parameter names
// in declaration order; VARIABLE<i> refers to params[i].
func (p *Pipeline) Apply(text string, params []string) string {
	if len(text) == 0 {
		return text
	}
	for _, stage := range p.stages {
		if pa, ok := stage.(ParamAware); ok {
			if len(params) == 0 {
				continue
			}
			stage = pa.WithParams(params)
		}
		text = stage.Rewrite(text)
	}
	return text
}
