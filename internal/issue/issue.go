package issue

// Severity follows the wire scale used by the gateway: LOW=1 .. CRITICAL=4.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity maps the textual form used in oracle responses back to the
// scale. Unrecognized input falls back to MEDIUM.
func ParseSeverity(s string) Severity {
	switch s {
	case "LOW":
		return SeverityLow
	case "MEDIUM":
		return SeverityMedium
	case "HIGH":
		return SeverityHigh
	case "CRITICAL":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

// Detector codes. Oracle-originated issues may additionally carry the type
// string the oracle returned (SEMANTIC, CONTENT_MISMATCH, ...).
const (
	CodeTypo                      = "TYPO"
	CodePunctuation               = "PUNCTUATION"
	CodeStyle                     = "STYLE"
	CodeUndefinedAbbreviation     = "UNDEFINED_ABBREVIATION"
	CodeTermInconsistency         = "TERM_INCONSISTENCY"
	CodeSummaryConclusionMismatch = "SUMMARY_CONCLUSION_MISMATCH"
	CodeMissingTitle              = "MISSING_TITLE"
	CodeMissingYear               = "MISSING_YEAR"
	CodeMissingAuthors            = "MISSING_AUTHORS"
	CodeParsingError              = "PARSING_ERROR"
)

// Issue is one normalized finding. SectionID is 0 when the finding is not
// scoped to a single section (reference and alignment issues).
type Issue struct {
	Code            string   `json:"code"`
	Message         string   `json:"message"`
	OriginalSnippet string   `json:"original_snippet,omitempty"`
	Suggestion      string   `json:"suggestion,omitempty"`
	Severity        Severity `json:"severity"`
	SectionID       int      `json:"section_id"`
}
