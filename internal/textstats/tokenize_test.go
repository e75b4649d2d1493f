package textstats

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple words", "Hello World", []string{"hello", "world"}},
		{"contraction stays one token", "don't panic", []string{"don't", "panic"}},
		{"punctuation splits", "cat,dog;bird", []string{"cat", "dog", "bird"}},
		{"digits ignored", "abc123def", []string{"abc", "def"}},
		{"no alphabetic runs", "123 456 !!!", nil},
		{"empty text", "", nil},
		{"quoted word keeps inner apostrophe only", "'tis 'quoted'", []string{"tis", "quoted"}},
		{"mixed case lowered", "GPT Model", []string{"gpt", "model"}},
		{"double contraction splits", "y'all've", []string{"y'all", "ve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeProducesOnlyValidTokens(t *testing.T) {
	text := "It's a well-known fact: 42% of \"users\" don't read ... anything!"
	for _, w := range Tokenize(text) {
		if w == "" {
			t.Fatal("empty token produced")
		}
		if w[0] == '\'' || w[len(w)-1] == '\'' {
			t.Errorf("token %q has a leading or trailing apostrophe", w)
		}
		apostrophes := 0
		for _, r := range w {
			switch {
			case r >= 'a' && r <= 'z':
			case r == '\'':
				apostrophes++
			default:
				t.Errorf("token %q contains unexpected rune %q", w, r)
			}
		}
		if apostrophes > 1 {
			t.Errorf("token %q contains more than one apostrophe", w)
		}
	}
}

func TestIsNonCommon(t *testing.T) {
	tests := []struct {
		name string
		word string
		want bool
	}{
		{"regular word", "language", true},
		{"stopword", "the", false},
		{"contracted stopword", "don't", false},
		{"uppercase stopword", "THE", false},
		{"two letters", "go", false},
		{"one letter", "x", false},
		{"three letters", "cat", true},
		{"short non-stopword", "ml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNonCommon(tt.word); got != tt.want {
				t.Errorf("IsNonCommon(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestAccumulate(t *testing.T) {
	counts := make(map[string]int)
	Accumulate(counts, "The cat and the cat saw another cat.")
	Accumulate(counts, "A dog saw the cat.")

	want := map[string]int{"cat": 4, "saw": 2, "another": 1, "dog": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Accumulate produced %v, want %v", counts, want)
	}
}
