package semantic

import (
	"context"

	"doc_auditor/internal/issue"
	"doc_auditor/internal/rules"
)

// Detector combines the deterministic rule passes with the oracle-backed
// detector. Rule issues always come first.
type Detector struct {
	rules *rules.Detector
	llm   *LLMDetector
}

func NewDetector(ruleDetector *rules.Detector, llm *LLMDetector) *Detector {
	return &Detector{rules: ruleDetector, llm: llm}
}

func (d *Detector) Detect(ctx context.Context, text string) []issue.Issue {
	var out []issue.Issue
	if d.rules != nil {
		out = append(out, d.rules.Detect(text)...)
	}
	if d.llm != nil {
		out = append(out, d.llm.Detect(ctx, text)...)
	}
	return out
}
