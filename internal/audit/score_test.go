package audit

import (
	"math"
	"testing"

	"doc_auditor/internal/issue"
)

func issuesOf(severities ...issue.Severity) []issue.Issue {
	out := make([]issue.Issue, len(severities))
	for i, s := range severities {
		out[i] = issue.Issue{Code: issue.CodeTypo, Severity: s}
	}
	return out
}

func TestImpactScoreEmpty(t *testing.T) {
	if got := ImpactScore(nil, DefaultWeights()); got != 0.0 {
		t.Errorf("ImpactScore(nil) = %v, want 0", got)
	}
}

func TestImpactScoreWeightedDensity(t *testing.T) {
	// one of each of high, medium, low: (0.7 + 0.3 + 0.1) / 3
	got := ImpactScore(issuesOf(issue.SeverityHigh, issue.SeverityMedium, issue.SeverityLow), DefaultWeights())
	want := (0.7 + 0.3 + 0.1) / 3
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ImpactScore = %v, want %v", got, want)
	}
}

func TestImpactScoreCriticalUnweightedByDefault(t *testing.T) {
	got := ImpactScore(issuesOf(issue.SeverityCritical), DefaultWeights())
	if got != 0.0 {
		t.Errorf("ImpactScore = %v, want 0 with the default critical weight", got)
	}
}

func TestImpactScoreCustomCriticalWeight(t *testing.T) {
	w := DefaultWeights()
	w.Critical = 1.0
	got := ImpactScore(issuesOf(issue.SeverityCritical, issue.SeverityLow), w)
	want := (1.0 + 0.1) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ImpactScore = %v, want %v", got, want)
	}
}

func TestImpactScoreClamped(t *testing.T) {
	w := Weights{Low: 0, Medium: 0, High: 2.0, Critical: 0}
	got := ImpactScore(issuesOf(issue.SeverityHigh), w)
	if got != 1.0 {
		t.Errorf("ImpactScore = %v, want clamp at 1", got)
	}
}
