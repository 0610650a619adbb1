package refs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"doc_auditor/internal/issue"
	"doc_auditor/internal/oracle"
	"doc_auditor/internal/pipeline"
	"doc_auditor/internal/prompts"
)

// Record is one known bibliographic entry retrieved from the reference store.
type Record struct {
	Title   string
	Authors string
	Year    string
	Journal string
}

// Store retrieves candidate records similar to an extracted title. An empty
// or unreachable store yields no candidates, never a pipeline failure.
type Store interface {
	Similar(ctx context.Context, title string, topK int) ([]Record, error)
}

// NullStore is the adapter used when no reference store is configured.
type NullStore struct{}

func (NullStore) Similar(context.Context, string, int) ([]Record, error) { return nil, nil }

// CheckResult is the verdict for one citation.
type CheckResult struct {
	Reference   string        `json:"reference"`
	IsValid     bool          `json:"is_valid"`
	Confidence  float64       `json:"confidence_score"`
	Issues      []issue.Issue `json:"issues"`
	Explanation string        `json:"explanation,omitempty"`
}

// Verifier judges citation authenticity: pattern extraction, optional store
// retrieval, oracle judgment with a structural-completeness fallback.
type Verifier struct {
	store   Store
	client  oracle.Client
	workers int
}

func NewVerifier(store Store, client oracle.Client, workers int) *Verifier {
	if store == nil {
		store = NullStore{}
	}
	if client == nil {
		client = oracle.Disabled{}
	}
	if workers <= 0 {
		workers = 4
	}
	return &Verifier{store: store, client: client, workers: workers}
}

// CheckAll verifies every citation with a fixed-size worker pool, results in
// input order.
func (v *Verifier) CheckAll(ctx context.Context, citations []string) []CheckResult {
	results := make([]CheckResult, len(citations))
	_ = pipeline.Run(len(citations), v.workers, func(i int) error {
		results[i] = v.Check(ctx, citations[i])
		return nil
	})
	return results
}

func (v *Verifier) Check(ctx context.Context, citation string) CheckResult {
	fields := ExtractFields(citation)

	var records []Record
	if fields.Title != "" {
		if found, err := v.store.Similar(ctx, fields.Title, 5); err == nil {
			records = found
		}
	}

	if v.client.Enabled() {
		if result, ok := v.oracleCheck(ctx, citation, records); ok {
			return result
		}
	}
	return v.structuralCheck(citation, fields)
}

type factCheckResponse struct {
	IsValid    bool    `json:"is_valid"`
	Confidence float64 `json:"confidence_score"`
	Issues     []struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Severity    string `json:"severity"`
	} `json:"issues"`
	Explanation string `json:"explanation"`
}

// oracleCheck asks the oracle for an authenticity verdict. A transport
// failure falls through to the structural check (ok=false); a response that
// cannot be parsed is itself a finding.
func (v *Verifier) oracleCheck(ctx context.Context, citation string, records []Record) (CheckResult, bool) {
	raw, err := v.client.Generate(ctx, prompts.FactCheck(citation, formatRecords(records)))
	if err != nil {
		return CheckResult{}, false
	}

	jsonText := oracle.ExtractJSONObject(raw)
	if jsonText == "" {
		return parseFailure(citation, raw), true
	}
	var parsed factCheckResponse
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return parseFailure(citation, raw), true
	}

	issues := make([]issue.Issue, 0, len(parsed.Issues))
	for _, it := range parsed.Issues {
		code := it.Type
		if code == "" {
			code = "UNKNOWN"
		}
		issues = append(issues, issue.Issue{
			Code:     code,
			Message:  it.Description,
			Severity: issue.ParseSeverity(it.Severity),
		})
	}
	return CheckResult{
		Reference:   citation,
		IsValid:     parsed.IsValid,
		Confidence:  parsed.Confidence,
		Issues:      issues,
		Explanation: parsed.Explanation,
	}, true
}

func parseFailure(citation, raw string) CheckResult {
	return CheckResult{
		Reference:  citation,
		IsValid:    false,
		Confidence: 0.0,
		Issues: []issue.Issue{{
			Code:            issue.CodeParsingError,
			Message:         "could not parse the authenticity verdict",
			OriginalSnippet: truncate(raw, 220),
			Severity:        issue.SeverityLow,
		}},
	}
}

// structuralCheck is the oracle-free fallback: completeness of the extracted
// fields. Confidence is 0.5 with no findings, 0.2 otherwise.
func (v *Verifier) structuralCheck(citation string, fields Fields) CheckResult {
	var issues []issue.Issue
	if fields.Title == "" {
		issues = append(issues, issue.Issue{
			Code:     issue.CodeMissingTitle,
			Message:  "citation is missing a title",
			Severity: issue.SeverityMedium,
		})
	}
	if fields.Year == "" {
		issues = append(issues, issue.Issue{
			Code:     issue.CodeMissingYear,
			Message:  "citation is missing a year",
			Severity: issue.SeverityLow,
		})
	}
	if fields.Authors == "" {
		issues = append(issues, issue.Issue{
			Code:     issue.CodeMissingAuthors,
			Message:  "citation is missing authors",
			Severity: issue.SeverityMedium,
		})
	}

	confidence := 0.5
	if len(issues) > 0 {
		confidence = 0.2
	}
	return CheckResult{
		Reference:  citation,
		IsValid:    len(issues) == 0,
		Confidence: confidence,
		Issues:     issues,
	}
}

func formatRecords(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	lines := make([]string, 0, len(records))
	for i, r := range records {
		if i >= 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) by %s, %s", orUnknown(r.Title), orUnknown(r.Year), orUnknown(r.Authors), orUnknown(r.Journal)))
	}
	return strings.Join(lines, "\n")
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
