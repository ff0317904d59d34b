package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenizer_Terms(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Terms("What is Photosynthesis? Plants convert light.")
	expected := []string{"photosynthesis", "plants", "convert", "light"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_StopwordRemoval(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Terms("the quick brown fox")
	for _, token := range tokens {
		if token == "the" {
			t.Errorf("stopword 'the' should be removed, got %v", tokens)
		}
	}
}

func TestTokenizer_ShortWordRemoval(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Terms("ox go cat DNA")
	expected := []string{"cat", "dna"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_TermsLongerThan(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.TermsLongerThan("cell cells membrane", 3)
	expected := []string{"cell", "cells", "membrane"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}

	tokens = tok.TermsLongerThan("cell cells membrane", 4)
	expected = []string{"cells", "membrane"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_Counts(t *testing.T) {
	tok := NewTokenizer()

	counts := tok.Counts("Energy flows. Energy is conserved; energy!")
	if counts["energy"] != 3 {
		t.Errorf("expected energy=3, got %d", counts["energy"])
	}
	if counts["flows"] != 1 || counts["conserved"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts["is"]; ok {
		t.Errorf("stopword counted: %v", counts)
	}
}

func TestTokenizer_Deterministic(t *testing.T) {
	tok := NewTokenizer()
	text := "Mitochondria are the powerhouse of the cell. The cell needs energy."

	a := tok.Counts(text)
	b := tok.Counts(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("counts differ between runs: %v vs %v", a, b)
	}
}

func TestTokenizer_TermSet(t *testing.T) {
	tok := NewTokenizer()

	terms := tok.TermSet("cell energy cell light energy")
	expected := []string{"cell", "energy", "light"}
	if !reflect.DeepEqual(terms, expected) {
		t.Errorf("expected %v, got %v", expected, terms)
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Terms("")
	if len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", len(tokens))
	}

	if CountWords("") != 0 {
		t.Errorf("expected 0 words for empty input")
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 1},
		{"hello-world", 2},
		{"U.S. policy", 3},
		{"it's", 2},
		{"123numbers456", 1},
		{"état civil", 2},
	}

	for _, tt := range tests {
		words := SplitWords(tt.input)
		if len(words) != tt.expected {
			t.Errorf("SplitWords(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}
