package audit

import "doc_auditor/internal/issue"

// Weights prices each severity class in the impact score. The upstream
// formula carries no CRITICAL weight; the field exists so deployments can
// price it in without a code change.
type Weights struct {
	Low      float64 `yaml:"low"`
	Medium   float64 `yaml:"medium"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

func DefaultWeights() Weights {
	return Weights{Low: 0.1, Medium: 0.3, High: 0.7, Critical: 0}
}

// ImpactScore is the severity-weighted issue density:
// min(sum(weight_i * count_i) / max(n, 1), 1.0), or 0.0 for no issues.
func ImpactScore(issues []issue.Issue, w Weights) float64 {
	if len(issues) == 0 {
		return 0.0
	}
	var weight float64
	for _, it := range issues {
		switch it.Severity {
		case issue.SeverityLow:
			weight += w.Low
		case issue.SeverityMedium:
			weight += w.Medium
		case issue.SeverityHigh:
			weight += w.High
		case issue.SeverityCritical:
			weight += w.Critical
		}
	}
	score := weight / float64(len(issues))
	if score > 1.0 {
		score = 1.0
	}
	return score
}
