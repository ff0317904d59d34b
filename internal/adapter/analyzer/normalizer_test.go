package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"collapses whitespace", "Cells   divide\n\n\nby   mitosis.", "Cells divide by mitosis."},
		{"tabs and newlines", "\tline one\r\nline two\n", "line one line two"},
		{"strips symbols", "Energy → work © 2021 #notes", "Energy work 2021 notes"},
		{"keeps safe punctuation", `Q: "why?" (see 5%); done!`, `Q: "why?" (see 5%); done!`},
		{"keeps hyphen and apostrophe", "cell-wall isn't rigid", "cell-wall isn't rigid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"basic",
			"Photosynthesis is a process. Is it fast? Yes!",
			[]string{"Photosynthesis is a process.", "Is it fast?", "Yes!"},
		},
		{
			"single capital abbreviation",
			"The U.S. economy grew quickly. Prices rose.",
			[]string{"The U.S. economy grew quickly.", "Prices rose."},
		},
		{
			"dotted initials",
			"Use a buffer, e.g. a queue. Then flush it.",
			[]string{"Use a buffer, e.g. a queue.", "Then flush it."},
		},
		{
			"title abbreviation",
			"Dr. Smith teaches biology. She is strict.",
			[]string{"Dr. Smith teaches biology.", "She is strict."},
		},
		{
			"decimal numbers",
			"Pi is roughly 3.14 in value. It is irrational.",
			[]string{"Pi is roughly 3.14 in value.", "It is irrational."},
		},
		{
			"trailing text without punctuation",
			"First sentence. trailing words",
			[]string{"First sentence.", "trailing words"},
		},
		{
			"closing quote",
			`He said "stop." Then he left.`,
			[]string{`He said "stop."`, "Then he left."},
		},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"process.", true},
		{"fast?", true},
		{"Yes!", true},
		{`"stop."`, true},
		{"(below).", true},
		{"end.)", true},
		{"U.S.", false},
		{"e.g.", false},
		{"Dr.", false},
		{"3.14", false},
		{"quickly", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := EndsSentence(tt.word); got != tt.want {
			t.Errorf("EndsSentence(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestEndsSentenceAgreesWithSplitSentences(t *testing.T) {
	text := `The U.S. economy grew quickly. Dr. Smith said "stop." Then e.g. a queue helps! Done (mostly). Pi is 3.14 today.`
	var sentence []string
	var got []string
	for _, w := range strings.Fields(text) {
		sentence = append(sentence, w)
		if EndsSentence(w) {
			got = append(got, strings.Join(sentence, " "))
			sentence = nil
		}
	}
	if !reflect.DeepEqual(got, SplitSentences(text)) {
		t.Errorf("boundaries %q, SplitSentences %q", got, SplitSentences(text))
	}
}

func TestPackSentences(t *testing.T) {
	text := "One short sentence. Another short sentence. A third one here."

	passages := PackSentences(text, 45)
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d: %q", len(passages), passages)
	}
	if passages[0] != "One short sentence. Another short sentence." {
		t.Errorf("unexpected first passage %q", passages[0])
	}

	long := strings.Repeat("word ", 30) + "end."
	passages = PackSentences(long, 10)
	if len(passages) != 1 {
		t.Errorf("oversized sentence should stay whole, got %d passages", len(passages))
	}
}

func TestIdentifyStructure(t *testing.T) {
	raw := `COURSE OVERVIEW
Some intro text here.

1. Introduction to Cells
Cells are small.

1.2 Cell Membranes
Chapter 2 covers energy. See Section 4 for more.

2. Energy
`
	st := IdentifyStructure(raw)

	expectedSections := []string{"1. Introduction to Cells", "1.2 Cell Membranes", "2. Energy", "COURSE OVERVIEW"}
	if !reflect.DeepEqual(st.Sections, expectedSections) {
		t.Errorf("sections = %q, want %q", st.Sections, expectedSections)
	}

	expectedChapters := []string{"Chapter 2", "Section 4"}
	if !reflect.DeepEqual(st.Chapters, expectedChapters) {
		t.Errorf("chapters = %q, want %q", st.Chapters, expectedChapters)
	}
}
