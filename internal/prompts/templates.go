package prompts

import (
	"fmt"
	"strings"
)

const semanticAuditTemplate = `# Role
You are a reviewer fluent in Chinese academic writing conventions, focused on
subtle semantic defects in manuscript text.

# Task
The input is one passage of manuscript body text. Return exactly this JSON:
{
  "issues": [
    {
      "type": "TYPO | PUNCTUATION | STYLE | SEMANTIC",
      "original": "offending text",
      "suggested": "corrected text",
      "reason": "why this violates convention",
      "severity": 1-5
    }
  ]
}

# Knowledge Base
- Follow the Table of General Standard Chinese Characters.
- Follow GB/T 15834 punctuation usage.
- Distinguish STEM and humanities terminology habits.

# Input Text
%s

# Output (JSON only)`

const alignmentTemplate = `# Role
You are an academic manuscript reviewer checking whether a paper's abstract and
conclusion tell the same story.

# Task
Compare the abstract and the conclusion below. Judge whether they agree on
research content, main findings, and final claims.

# Input
## Abstract
%s

## Conclusion
%s

# Output Instructions
Return exactly this JSON:
{
  "issues": [
    {
      "type": "CONTENT_MISMATCH | FINDING_MISMATCH | CONCLUSION_MISMATCH | MISSING_ELEMENT",
      "description": "the specific disagreement",
      "severity": "HIGH | MEDIUM | LOW"
    }
  ],
  "alignment_score": 0.0-1.0,
  "summary": "one-line verdict"
}

# Analysis`

const factCheckTemplate = `# Role
You are an academic librarian verifying that a cited reference really exists.

# Task
Compare the citation supplied by the author against the retrieved catalog
records and judge its authenticity.

# Input
## Citation
%s

## Retrieved records
%s

# Output Instructions
Return exactly this JSON:
{
  "is_valid": true/false,
  "confidence_score": 0.0-1.0,
  "issues": [
    {
      "type": "AUTHOR_MISMATCH | TITLE_MISMATCH | YEAR_MISMATCH | JOURNAL_MISMATCH | NOT_FOUND",
      "description": "the specific problem",
      "severity": "HIGH | MEDIUM | LOW"
    }
  ],
  "explanation": "basis for the judgment"
}

# Analysis`

func SemanticAudit(text string) string {
	return strings.TrimSpace(fmt.Sprintf(semanticAuditTemplate, text))
}

func Alignment(summary, conclusion string) string {
	return strings.TrimSpace(fmt.Sprintf(alignmentTemplate, summary, conclusion))
}

func FactCheck(citation, retrieved string) string {
	if strings.TrimSpace(retrieved) == "" {
		retrieved = "no matching records retrieved"
	}
	return strings.TrimSpace(fmt.Sprintf(factCheckTemplate, citation, retrieved))
}
