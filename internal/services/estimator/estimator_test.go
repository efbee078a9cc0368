package estimator

import (
	"context"
	"testing"
)

func TestEstimateKeywordMatch(t *testing.T) {
	h := NewHeuristic(nil)

	tests := []struct {
		name        string
		description string
		base        int
	}{
		{"meeting keyword", "Team meeting", 30},
		{"email keyword", "Reply to email", 15},
		{"build keyword", "Build the landing page", 120},
		{"workout keyword", "Morning gym session", 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Estimate(context.Background(), tt.description)
			if err != nil {
				t.Fatalf("Estimate: %v", err)
			}
			words := lenFields(tt.description)
			variance := words * 2
			if variance > 15 {
				variance = 15
			}
			if got.Minutes != tt.base+variance {
				t.Fatalf("Minutes = %d, want %d", got.Minutes, tt.base+variance)
			}
			if got.Confidence != 0.6 {
				t.Fatalf("Confidence = %v, want 0.6", got.Confidence)
			}
		})
	}
}

func TestEstimateFallbackByLength(t *testing.T) {
	h := NewHeuristic(nil)

	got, err := h.Estimate(context.Background(), "misc errand downtown")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if got.Minutes != 24 { // 3 words * 8
		t.Fatalf("Minutes = %d, want 24", got.Minutes)
	}
	if got.Confidence != 0.5 {
		t.Fatalf("Confidence = %v, want 0.5", got.Confidence)
	}
}

func TestEstimateBounds(t *testing.T) {
	h := NewHeuristic(nil)

	short, err := h.Estimate(context.Background(), "x")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if short.Minutes < MinMinutes || short.Minutes > MaxMinutes {
		t.Fatalf("estimate %d outside [%d,%d]", short.Minutes, MinMinutes, MaxMinutes)
	}

	long := "follow up on the thing we discussed with everyone about all the various topics from last week and the week before that too"
	verbose, err := h.Estimate(context.Background(), long)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if verbose.Minutes > 90 {
		t.Fatalf("length fallback should cap at 90, got %d", verbose.Minutes)
	}
}

func lenFields(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}
