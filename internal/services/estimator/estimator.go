// Package estimator provides the local duration estimator used when no LLM
// collaborator is configured. It keyword-matches the task description against
// a table of typical activities.
package estimator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/plannery/backend/domain"
)

// Estimates are clamped to a 5 minute .. 8 hour window.
const (
	MinMinutes = 5
	MaxMinutes = 480
)

type pattern struct {
	keywords []string
	minutes  int
}

// Ordering matters: the first matching row wins.
var patterns = []pattern{
	{[]string{"meeting", "call", "standup", "sync", "interview"}, 30},
	{[]string{"review", "check", "approve", "feedback"}, 20},
	{[]string{"email", "reply", "respond", "message"}, 15},
	{[]string{"quick", "brief", "short", "simple"}, 10},
	{[]string{"write", "draft", "document", "report", "proposal"}, 60},
	{[]string{"research", "investigate", "analyze", "explore"}, 90},
	{[]string{"design", "create", "build", "develop", "implement"}, 120},
	{[]string{"deep", "thorough", "comprehensive", "detailed"}, 90},
	{[]string{"workout", "gym", "exercise", "run", "yoga"}, 45},
	{[]string{"lunch", "dinner", "breakfast", "break"}, 30},
	{[]string{"learn", "study", "course", "training", "tutorial"}, 60},
	{[]string{"plan", "schedule", "organize", "prepare"}, 25},
	{[]string{"fix", "debug", "troubleshoot", "resolve"}, 45},
	{[]string{"clean", "tidy", "declutter"}, 30},
	{[]string{"read", "book", "article", "paper"}, 30},
	{[]string{"test", "testing", "qa", "verify"}, 40},
	{[]string{"deploy", "release", "publish", "launch"}, 30},
}

// Heuristic implements usecase.Estimator without any network dependency.
type Heuristic struct {
	logger *zap.Logger
}

func NewHeuristic(logger *zap.Logger) *Heuristic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Heuristic{logger: logger}
}

func (h *Heuristic) Estimate(_ context.Context, description string) (domain.DurationEstimate, error) {
	lowered := strings.ToLower(description)
	wordCount := len(strings.Fields(description))

	for _, p := range patterns {
		for _, keyword := range p.keywords {
			if strings.Contains(lowered, keyword) {
				// longer descriptions usually mean more scope
				variance := wordCount * 2
				if variance > 15 {
					variance = 15
				}
				return domain.DurationEstimate{
					Minutes:    clamp(p.minutes + variance),
					Unit:       "minutes",
					Confidence: 0.6,
					Reasoning:  "estimated from task keywords",
				}, nil
			}
		}
	}

	base := wordCount * 8
	if base < 15 {
		base = 15
	}
	if base > 90 {
		base = 90
	}
	return domain.DurationEstimate{
		Minutes:    clamp(base),
		Unit:       "minutes",
		Confidence: 0.5,
		Reasoning:  "general estimate from description length",
	}, nil
}

func clamp(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}
