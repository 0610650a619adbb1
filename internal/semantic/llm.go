package semantic

import (
	"context"
	"encoding/json"

	"doc_auditor/internal/issue"
	"doc_auditor/internal/oracle"
	"doc_auditor/internal/prompts"
)

// DefaultMaxChunkRunes bounds the text length of a single oracle request.
// Longer sections are split at sentence boundaries.
const DefaultMaxChunkRunes = 2000

// LLMDetector asks the oracle for semantic defects the rule tables cannot
// see. It never returns an error: any transport, credential, or parsing
// failure yields an empty result for that chunk.
type LLMDetector struct {
	client   oracle.Client
	maxRunes int
}

func NewLLMDetector(client oracle.Client, maxRunes int) *LLMDetector {
	if client == nil {
		client = oracle.Disabled{}
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxChunkRunes
	}
	return &LLMDetector{client: client, maxRunes: maxRunes}
}

func (d *LLMDetector) Detect(ctx context.Context, text string) []issue.Issue {
	if !d.client.Enabled() || text == "" {
		return nil
	}
	var out []issue.Issue
	for _, chunk := range SplitSentences(text, d.maxRunes) {
		out = append(out, d.analyzeChunk(ctx, chunk)...)
	}
	return out
}

func (d *LLMDetector) analyzeChunk(ctx context.Context, text string) []issue.Issue {
	raw, err := d.client.Generate(ctx, prompts.SemanticAudit(text))
	if err != nil {
		return nil
	}
	return parseDetectorResponse(raw)
}

type detectorResponse struct {
	Issues []struct {
		Type      string `json:"type"`
		Original  string `json:"original"`
		Suggested string `json:"suggested"`
		Reason    string `json:"reason"`
		Severity  *int   `json:"severity"`
	} `json:"issues"`
}

// parseDetectorResponse maps the oracle's issue list onto the shared model.
// The type string gives a coarse severity default; an explicit numeric
// severity (1-5) overrides it. Malformed responses yield no issues.
func parseDetectorResponse(raw string) []issue.Issue {
	jsonText := oracle.ExtractJSONObject(raw)
	if jsonText == "" {
		return nil
	}
	var parsed detectorResponse
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil
	}

	out := make([]issue.Issue, 0, len(parsed.Issues))
	for _, it := range parsed.Issues {
		sev := severityForType(it.Type)
		if it.Severity != nil {
			sev = severityForScale(*it.Severity)
		}
		code := it.Type
		if code == "" {
			code = "UNKNOWN"
		}
		out = append(out, issue.Issue{
			Code:            code,
			Message:         it.Reason,
			OriginalSnippet: it.Original,
			Suggestion:      it.Suggested,
			Severity:        sev,
		})
	}
	return out
}

func severityForType(t string) issue.Severity {
	switch t {
	case "SEMANTIC":
		return issue.SeverityHigh
	case "TYPO", "STYLE":
		return issue.SeverityMedium
	case "PUNCTUATION":
		return issue.SeverityLow
	default:
		return issue.SeverityLow
	}
}

// severityForScale maps the oracle's 1-5 scale onto the wire scale.
func severityForScale(v int) issue.Severity {
	switch {
	case v >= 4:
		return issue.SeverityCritical
	case v >= 3:
		return issue.SeverityHigh
	case v >= 2:
		return issue.SeverityMedium
	default:
		return issue.SeverityLow
	}
}
