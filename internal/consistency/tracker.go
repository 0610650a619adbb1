package consistency

import (
	"fmt"
	"strings"

	"doc_auditor/internal/document"
	"doc_auditor/internal/issue"
	"doc_auditor/internal/oracle"
)

// Tracker accumulates terminology usage and summary/conclusion text across a
// whole document. One Tracker belongs to exactly one audit run; it is not
// safe for concurrent use and is discarded when the run ends.
type Tracker struct {
	client oracle.Client

	// term usage, keyed by lowercase form; surface keeps the form first seen
	sections map[string][]int
	surface  map[string]string
	order    []string

	summary    string
	conclusion string

	flaggedPairs map[string]struct{}
}

func NewTracker(client oracle.Client) *Tracker {
	if client == nil {
		client = oracle.Disabled{}
	}
	return &Tracker{
		client:       client,
		sections:     map[string][]int{},
		surface:      map[string]string{},
		flaggedPairs: map[string]struct{}{},
	}
}

// TermUsage returns the accumulated term table: first-seen surface form to
// the ordered list of section ids it occurred in.
func (t *Tracker) TermUsage() map[string][]int {
	out := make(map[string][]int, len(t.order))
	for _, key := range t.order {
		ids := make([]int, len(t.sections[key]))
		copy(ids, t.sections[key])
		out[t.surface[key]] = ids
	}
	return out
}

// ObserveSections folds one window's sections into the term table. A newly
// seen all-uppercase token of length 2-4 with no previously recorded
// expansion is flagged UNDEFINED_ABBREVIATION. A term reaching its second
// section is checked against the table for variant surface forms.
func (t *Tracker) ObserveSections(sections []document.Section) []issue.Issue {
	var out []issue.Issue
	for _, sec := range sections {
		for _, term := range extractTerms(sec.Text) {
			key := strings.ToLower(term)
			if _, seen := t.sections[key]; !seen {
				if isAcronym(term) && !t.hasExpansion(term) {
					out = append(out, issue.Issue{
						Code:            issue.CodeUndefinedAbbreviation,
						Message:         fmt.Sprintf("section %d uses undefined abbreviation %q", sec.SectionID, term),
						OriginalSnippet: term,
						Suggestion:      fmt.Sprintf("spell out the full term at first use, e.g. %q", "... ("+term+")"),
						Severity:        issue.SeverityHigh,
						SectionID:       sec.SectionID,
					})
				}
				t.surface[key] = term
				t.order = append(t.order, key)
			}
			if ids := t.sections[key]; !containsInt(ids, sec.SectionID) {
				t.sections[key] = append(ids, sec.SectionID)
			}
			if len(t.sections[key]) > 1 {
				out = append(out, t.variantIssues(key)...)
			}
		}
	}
	return out
}

func (t *Tracker) hasExpansion(acronym string) bool {
	for _, key := range t.order {
		if isAbbreviationOf(acronym, t.surface[key]) {
			return true
		}
	}
	return false
}

// variantIssues flags alternate surface forms of an established term.
// Heuristic (an implementation choice, the upstream contract only states the
// intent): two recorded terms are variants when their lowercase forms are
// within edit distance 1 and both are at least 4 runes long. Terms sharing a
// lowercase form are one term; the table keeps the first-seen casing. Each
// pair is reported once.
func (t *Tracker) variantIssues(establishedKey string) []issue.Issue {
	established := t.surface[establishedKey]
	var out []issue.Issue
	for _, key := range t.order {
		if key == establishedKey {
			continue
		}
		candidate := t.surface[key]
		if !isVariant(establishedKey, key) {
			continue
		}
		pair := pairKey(establishedKey, key)
		if _, done := t.flaggedPairs[pair]; done {
			continue
		}
		t.flaggedPairs[pair] = struct{}{}
		out = append(out, issue.Issue{
			Code:            issue.CodeTermInconsistency,
			Message:         fmt.Sprintf("term %q also appears as %q", established, candidate),
			OriginalSnippet: candidate,
			Suggestion:      fmt.Sprintf("use %q consistently", established),
			Severity:        issue.SeverityMedium,
		})
	}
	return out
}

func isVariant(keyA, keyB string) bool {
	if runeCount(keyA) < 4 || runeCount(keyB) < 4 {
		return false
	}
	return editDistance(keyA, keyB) <= 1
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// CaptureNarrative records summary/abstract and conclusion section text.
// When several sections match, the last one wins.
func (t *Tracker) CaptureNarrative(sections []document.Section) {
	for _, sec := range sections {
		secType := strings.ToLower(sec.Type)
		switch {
		case strings.Contains(secType, "summary") || strings.Contains(secType, "abstract"):
			t.summary = sec.Text
		case strings.Contains(secType, "conclusion") || strings.Contains(secType, "conclude"):
			t.conclusion = sec.Text
		}
	}
}

func (t *Tracker) Summary() string    { return t.summary }
func (t *Tracker) Conclusion() string { return t.conclusion }

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
