package consistency

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"doc_auditor/internal/issue"
	"doc_auditor/internal/oracle"
	"doc_auditor/internal/prompts"
)

var wordToken = regexp.MustCompile(`[\p{L}\p{N}_]{4,}`)

// Finalize performs the summary/conclusion alignment check exactly once, when
// the scheduler reaches its terminal state. The oracle verdict is the primary
// path; on any failure it falls back to lexical token comparison. The
// alignment score itself is always lexical.
func (t *Tracker) Finalize(ctx context.Context) ([]issue.Issue, float64) {
	score := t.AlignmentScore()
	if t.summary == "" || t.conclusion == "" {
		return nil, score
	}

	if t.client.Enabled() {
		if issues, ok := t.oracleAlignment(ctx); ok {
			return issues, score
		}
	}
	return t.lexicalAlignment(), score
}

type alignmentResponse struct {
	Issues []struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Severity    string `json:"severity"`
	} `json:"issues"`
}

func (t *Tracker) oracleAlignment(ctx context.Context) ([]issue.Issue, bool) {
	raw, err := t.client.Generate(ctx, prompts.Alignment(t.summary, t.conclusion))
	if err != nil {
		return nil, false
	}
	jsonText := oracle.ExtractJSONObject(raw)
	if jsonText == "" {
		return nil, false
	}
	var parsed alignmentResponse
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, false
	}

	out := make([]issue.Issue, 0, len(parsed.Issues))
	for _, it := range parsed.Issues {
		code := it.Type
		if code == "" {
			code = "ALIGNMENT_ISSUE"
		}
		out = append(out, issue.Issue{
			Code:     code,
			Message:  it.Description,
			Severity: issue.ParseSeverity(it.Severity),
		})
	}
	return out, true
}

// lexicalAlignment flags summary topics that never resurface in the
// conclusion. At most 5 missing tokens are listed, sorted for determinism.
func (t *Tracker) lexicalAlignment() []issue.Issue {
	summaryTokens := tokenSet(t.summary)
	conclusionTokens := tokenSet(t.conclusion)

	var missing []string
	for tok := range summaryTokens {
		if _, ok := conclusionTokens[tok]; !ok {
			missing = append(missing, tok)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	if len(missing) > 5 {
		missing = missing[:5]
	}
	return []issue.Issue{{
		Code:     issue.CodeSummaryConclusionMismatch,
		Message:  fmt.Sprintf("topics present in the summary but missing from the conclusion: %s", strings.Join(missing, ", ")),
		Severity: issue.SeverityHigh,
	}}
}

// AlignmentScore is the share of summary tokens that recur in the conclusion,
// clamped to [0,1]. Zero when either text or the summary token set is empty.
func (t *Tracker) AlignmentScore() float64 {
	if t.summary == "" || t.conclusion == "" {
		return 0.0
	}
	summaryTokens := tokenSet(t.summary)
	if len(summaryTokens) == 0 {
		return 0.0
	}
	conclusionTokens := tokenSet(t.conclusion)
	overlap := 0
	for tok := range summaryTokens {
		if _, ok := conclusionTokens[tok]; ok {
			overlap++
		}
	}
	score := float64(overlap) / float64(len(summaryTokens))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func tokenSet(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, tok := range wordToken.FindAllString(strings.ToLower(text), -1) {
		out[tok] = struct{}{}
	}
	return out
}
