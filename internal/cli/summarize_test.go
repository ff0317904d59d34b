package cli

import (
	"strings"
	"testing"
	"time"

	"coursekit/internal/domain"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "<1s"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m5s"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSummariesMarkdown(t *testing.T) {
	md := summariesMarkdown("biology", domain.TopicSummaries{
		{Topic: "Photosynthesis", Text: "Plants convert light.", Outcome: domain.OutcomeFound},
		{Topic: "Quantum", Text: "No specific information about Quantum was found in the course materials.", Outcome: domain.OutcomeNoRelevantContent},
	})

	if !strings.HasPrefix(md, "# biology\n") {
		t.Errorf("missing title: %q", md)
	}
	if !strings.Contains(md, "## Photosynthesis\n\nPlants convert light.") {
		t.Errorf("missing found summary: %q", md)
	}
	if !strings.Contains(md, "_No specific information about Quantum") {
		t.Errorf("fallback summary should be emphasized: %q", md)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("unexpected %q", got)
	}
	if got := truncateText("ééééé", 3); got != "ééé..." {
		t.Errorf("unexpected %q", got)
	}
}
