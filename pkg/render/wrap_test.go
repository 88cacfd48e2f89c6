package render

import (
	"strings"
	"testing"
)

// charMeasure treats every rune as 10px wide, spaces included.
func charMeasure(s string) float64 {
	return float64(len(s)) * 10
}

func TestWrapBudget(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "hello world",
			maxWidth: 200,
			want:     []string{"hello world"},
		},
		{
			name:     "wraps at budget",
			text:     "one two three four",
			maxWidth: 80, // 8 chars
			want:     []string{"one two", "three", "four"},
		},
		{
			name:     "single overwide word unsplit",
			text:     "supercalifragilistic",
			maxWidth: 50,
			want:     []string{"supercalifragilistic"},
		},
		{
			name:     "overwide word mid-text",
			text:     "a supercalifragilistic b",
			maxWidth: 80,
			want:     []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:     "empty text",
			text:     "",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "collapses repeated spaces",
			text:     "one   two",
			maxWidth: 200,
			want:     []string{"one two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.maxWidth, charMeasure)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d lines %v, got %d lines %v", len(tt.want), tt.want, len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

// Property: no produced line exceeds the budget unless it is a single word.
func TestWrapBudgetProperty(t *testing.T) {
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"Discover FitTracker today and transform your workouts forever",
		"a b c d e f g h i j k l m n o p",
		"word antidisestablishmentarianism word",
	}

	for _, text := range texts {
		for _, budget := range []float64{50, 100, 150, 300} {
			for _, line := range Wrap(text, budget, charMeasure) {
				if charMeasure(line) > budget && strings.Contains(line, " ") {
					t.Errorf("budget %v: multi-word line %q exceeds budget", budget, line)
				}
			}
		}
	}
}

// Wrapping never loses or reorders words.
func TestWrapPreservesWords(t *testing.T) {
	text := "every single word must survive the wrapping pass intact"
	lines := Wrap(text, 120, charMeasure)
	if strings.Join(lines, " ") != text {
		t.Errorf("words lost or reordered: %v", lines)
	}
}
