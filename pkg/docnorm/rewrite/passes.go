package rewrite

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/docnorm/pkg/docnorm/vocab"
)

// Pass is a single text-to-text rewrite.
type Pass interface {
	Name() string
	Rewrite(text string) string
}

// ParamAware passes need the record's parameter names before they can run.
type ParamAware interface {
	WithParams(params []string) Pass
}

// funcPass adapts a plain function to Pass.
type funcPass struct {
	name string
	fn   func(string) string
}

func (p funcPass) Name() string { return p.name }
func (p funcPass) Rewrite(text string) string { return p.fn(text) }

// regexPass replaces every match of re. Literal replacements are inserted
// as is; otherwise $1-style expansion applies.
type regexPass struct {
	name    string
	re      *regexp.Regexp
	repl    string
	literal bool
}

func (p regexPass) Name() string { return p.name }

func (p regexPass) Rewrite(text string) string {
	if p.literal {
		return p.re.ReplaceAllLiteralString(text, p.repl)
	}
	return p.re.ReplaceAllString(text, p.repl)
}

// chainPass runs several passes under one name.
type chainPass struct {
	name   string
	passes []Pass
}

func (p chainPass) Name() string { return p.name }

func (p chainPass) Rewrite(text string) string {
	for _, pass := range p.passes {
		text = pass.Rewrite(text)
	}
	return text
}

func mask(name, expr, token string) Pass {
	return regexPass{
		name:    name,
		re:      regexp.MustCompile(expr),
		repl:    vocab.Pad(token),
		literal: true,
	}
}

// guardedMask is mask for expressions whose first group is a one-character
// left boundary. The boundary is kept in front of the token.
func guardedMask(name, expr, token string) Pass {
	return regexPass{
		name: name,
		re:   regexp.MustCompile(expr),
		repl: "${1}" + vocab.Pad(token),
	}
}

var (
	space      = `(\s|\t)*`
	identifier = `(@|[a-zA-Z])\w*`
	argument   = `(` + space + identifier + space + `=)?` + space + identifier
)

var (
	// Lower folds the text to lower case. Tokens inserted later are upper
	// case, so no pass can mistake one for input text.
	Lower Pass = funcPass{name: "lower", fn: strings.ToLower}

	// Strings masks double-quoted literals; an escaped quote does not close one.
	Strings = mask("strings", `".*?[^\\]"`, vocab.String)

	// Tags masks HTML-like <...> spans.
	Tags = mask("tags", `<[^>]*>`, vocab.HTML)

	// References masks entity references such as &nbsp.
	References = mask("references", `&\w+`, vocab.Reference)

	// Links masks {@link ...} and @{...} spans.
	Links = mask("links", `(\{@|@\{)[^\}]*\}`, vocab.Link)

	// StableReduction hides single-letter abbreviations (e.g. i.e.) behind an
	// escape token. Longer abbreviations such as "etc." are not matched.
	StableReduction Pass = regexPass{
		name: "stable_reduction",
		re:   regexp.MustCompile(`([a-zA-Z])\.([a-zA-Z])\.`),
		repl: " " + vocab.StableReduction + "_${1}_${2}_ ",
	}

	// Paths masks unix paths of at least two segments and drive-letter
	// paths. A path glued to a word, a colon or a slash belongs to a URL.
	// A trailing period ends the sentence, not the file name.
	Paths = guardedMask("paths",
		`(^|[^\w:/])((/[a-zA-Z](\w|\\\s)*(\.\w+)*){2,}|[a-zA-Z]:(\\[\w-]+(\.\w+)*)+)`,
		vocab.Path)

	// URLs masks scheme-prefixed and domain-like strings.
	URLs = mask("urls",
		`((\w+:(//|\\\\))?(\w+[\w.@]*\.[a-z]{2,3})(\w|\.|/|\\|\?|=|-)*)|(\w+:(//|\\\\))`,
		vocab.URL)

	// Numbers masks integers and decimals with an optional sign. Digits
	// inside an identifier (arg0) are left for parameter substitution.
	Numbers = guardedMask("numbers", `(^|[^\w])((\+|-)?(\d+(\.|,)?\d+|\d+))`, vocab.Number)

	// Constants masks boolean and null literals written as whole words.
	Constants Pass = chainPass{
		name: "constants",
		passes: []Pass{
			mask("true", `\btrue\b`, vocab.True),
			mask("false", `\bfalse\b`, vocab.False),
			mask("null", `\b(null|nil|none)\b`, vocab.Null),
		},
	}

	// Parameters substitutes parameter names with VARIABLE<index>.
	Parameters Pass = ParameterPass{}

	// Invocations masks call expressions: an identifier followed by one or
	// more parenthesized argument lists, arguments optionally key=value.
	Invocations Pass = funcPass{name: "invocations", fn: maskInvocations}

	// DotInvocations masks dotted member chains (a.b.c). Disabled unless
	// requested with WithDotInvocation.
	DotInvocations = mask("dot_invocations",
		space+identifier+`(\.`+identifier+`)+`,
		vocab.DotInvocation)

	// Punctuation surrounds every punctuation symbol with spaces.
	Punctuation Pass = regexPass{
		name: "punctuation",
		re:   regexp.MustCompile(`(` + quoteAll(vocab.Punctuation()) + `)`),
		repl: " ${1} ",
	}

	// UnpackStableReduction restores the abbreviations escaped by
	// StableReduction.
	UnpackStableReduction Pass = regexPass{
		name: "unpack_stable_reduction",
		re:   regexp.MustCompile(vocab.StableReduction + `_([^_]+)_([^_]+)_`),
		repl: " ${1}.${2}. ",
	}

	// CollapseSpaces turns every whitespace run into a single space.
	CollapseSpaces Pass = regexPass{
		name:    "collapse_spaces",
		re:      regexp.MustCompile(`(\s|\t)+`),
		repl:    " ",
		literal: true,
	}

	// TrimEdges removes one leading and one trailing space.
	TrimEdges Pass = funcPass{name: "trim", fn: trimEdges}
)

var invocationRe = regexp.MustCompile(
	space + identifier + `(` + space + `\((` + argument + `(` + space + `,` + argument + `)*)?\))+`)

// maskInvocations leaves the abbreviation escape alone: "e.g.(x)" is an
// abbreviation before a parenthesis, not a call.
func maskInvocations(text string) string {
	return invocationRe.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasPrefix(strings.TrimLeftFunc(m, unicode.IsSpace), vocab.StableReduction+"_") {
			return m
		}
		return vocab.Pad(vocab.Invocation)
	})
}

func quoteAll(symbols []string) string {
	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

func trimEdges(text string) string {
	text = strings.TrimPrefix(text, " ")
	return strings.TrimSuffix(text, " ")
}

// ParameterPass replaces each parameter name, matched as a whole identifier,
// with VARIABLE<index>. Names that do not occur are skipped.
type ParameterPass struct {
	params []string
}

// Name implements Pass.
func (p ParameterPass) Name() string { return "parameters" }

// WithParams implements ParamAware.
func (p ParameterPass) WithParams(params []string) Pass {
	return ParameterPass{params: params}
}

// Rewrite implements Pass.
func (p ParameterPass) Rewrite(text string) string {
	for i, name := range p.params {
		name = strings.ToLower(name)
		if name == "" {
			continue
		}
		text = replaceWord(text, name, vocab.Pad(vocab.VariableAt(i)))
	}
	return text
}

// replaceWord replaces occurrences of word that are not part of a longer
// identifier.
func replaceWord(text, word, repl string) string {
	var out strings.Builder
	pos := 0
	for {
		idx := strings.Index(text[pos:], word)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(word)
		if identBefore(text[:start]) || identAfter(text[end:]) {
			out.WriteString(text[pos : start+1])
			pos = start + 1
			continue
		}
		out.WriteString(text[pos:start])
		out.WriteString(repl)
		pos = end
	}
	if pos == 0 {
		return text
	}
	out.WriteString(text[pos:])
	return out.String()
}

func identBefore(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return len(s) > 0 && isIdentRune(r)
}

func identAfter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return len(s) > 0 && isIdentRune(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
