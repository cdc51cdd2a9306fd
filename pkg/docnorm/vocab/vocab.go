// Package vocab holds the placeholder tokens shared by every rewrite pass.
// The token names are a wire contract with the downstream embedding step.
package vocab

import (
	"strconv"
	"strings"
)

// Placeholder tokens
const (
	HTML            = "HTML"
	Reference       = "REFERENCE"
	Link            = "LINK"
	URL             = "URL"
	Path            = "PATH"
	Number          = "NUMBER"
	True            = "TRUE"
	False           = "FALSE"
	Null            = "NULL"
	String          = "STRING"
	Variable        = "VARIABLE"
	Invocation      = "INVOCATION"
	DotInvocation   = "DOT_INVOCATION"
	StableReduction = "STABLE_REDUCTION"
	Next            = "NEXT"
)

var keywords = []string{
	HTML, Reference, Link, URL, Path, Number, True, False, Null, String,
	Variable, Invocation, DotInvocation, StableReduction, Next,
}

var punctuation = []string{
	".", ",", ";", ":", "!", "?", "(", ")", "[", "]", "{", "}", "<", ">",
	"=", "+", "-", "*", "/", "\\", "\"", "'", "`", "@", "#", "$", "%",
	"^", "&", "|", "~",
}

// Keywords returns a copy of the placeholder token list.
func Keywords() []string {
	return append([]string(nil), keywords...)
}

// Punctuation returns a copy of the punctuation symbol set.
// Underscore is not part of it: escape tokens rely on it staying intact.
func Punctuation() []string {
	return append([]string(nil), punctuation...)
}

// VariableAt returns the placeholder for the parameter at index i.
func VariableAt(i int) string {
	return Variable + strconv.Itoa(i)
}

// Pad surrounds a token with single spaces, the form every pass inserts.
func Pad(token string) string {
	return " " + token + " "
}

// Separator is the string used to join multi-valued fields.
func Separator() string {
	return Pad(Next)
}

// Join concatenates values with the NEXT separator.
func Join(values []string) string {
	return strings.Join(values, Separator())
}
