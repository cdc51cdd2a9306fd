package lexical

import "testing"

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"VARIABLE3", true},
		{"VARIABLE", true},
		{"VARIABLE12", true},
		{"VARIABLEX", false},
		{"NUMBER", true},
		{"NEXT", true},
		{"DOT_INVOCATION", true},
		{"XVARIABLE", false},
		{"variable", false},
		{"HTMLx", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsKeyword(tt.word); got != tt.want {
			t.Errorf("IsKeyword(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestIsPunctuation(t *testing.T) {
	for _, p := range []string{".", ",", "(", ")", "{", "}", "@"} {
		if !IsPunctuation(p) {
			t.Errorf("%q should be punctuation", p)
		}
	}
	for _, w := range []string{"a", "_", "..", "word", ""} {
		if IsPunctuation(w) {
			t.Errorf("%q should not be punctuation", w)
		}
	}
}

func TestMeaningfulWordRatio(t *testing.T) {
	words := []string{"returns", "the", "VARIABLE0", ".", "x1"}
	if got := MeaningfulWords(words); got != 3 {
		t.Errorf("expected 3 meaningful words, got %d", got)
	}
	if got := MeaningfulWordRatio(words); got != 0.6 {
		t.Errorf("expected ratio 0.6, got %f", got)
	}
}

func TestMeaningfulWordRatioEmpty(t *testing.T) {
	if got := MeaningfulWordRatio(nil); got != 0 {
		t.Errorf("expected 0 for no words, got %f", got)
	}
}
