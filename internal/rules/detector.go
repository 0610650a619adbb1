package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"doc_auditor/internal/issue"
)

//go:embed corrections.json
var correctionsJSON []byte

//go:embed colloquialisms.json
var colloquialismsJSON []byte

// Entry is one wrong-form to correct-form substitution.
type Entry struct {
	Wrong   string `json:"wrong"`
	Correct string `json:"correct"`
}

// Tables holds the read-only lexical data a Detector scans with. Injected at
// construction; never mutated afterwards.
type Tables struct {
	Corrections    []Entry
	Colloquialisms []Entry
}

// DefaultTables loads the embedded correction and colloquialism tables.
func DefaultTables() Tables {
	var corrections, colloquialisms []Entry
	_ = json.Unmarshal(correctionsJSON, &corrections)
	_ = json.Unmarshal(colloquialismsJSON, &colloquialisms)
	return Tables{Corrections: corrections, Colloquialisms: colloquialisms}
}

// halfToFull maps ASCII punctuation to its fullwidth equivalent.
var halfToFull = map[rune]rune{
	'!': '！', '"': '＂', '#': '＃', '$': '＄', '%': '％',
	'&': '＆', '\'': '＇', '(': '（', ')': '）', '*': '＊',
	'+': '＋', ',': '，', '-': '－', '.': '．', '/': '／',
	':': '：', ';': '；', '<': '＜', '=': '＝', '>': '＞',
	'?': '？', '@': '＠', '[': '［', '\\': '＼', ']': '］',
	'^': '＾', '_': '＿', '`': '｀', '{': '｛', '|': '｜',
	'}': '｝', '~': '～',
}

// Detector is a pure pattern matcher over one section's text. Safe for
// concurrent use across independent sections.
type Detector struct {
	tables Tables
}

func NewDetector(tables Tables) *Detector {
	return &Detector{tables: tables}
}

// Detect runs the three passes in fixed order and concatenates their output:
// lexical corrections, punctuation width, colloquial style. Each pass scans
// the full text independently, matches ordered left to right.
func (d *Detector) Detect(text string) []issue.Issue {
	var out []issue.Issue
	out = append(out, d.detectTypos(text)...)
	out = append(out, d.detectPunctuation(text)...)
	out = append(out, d.detectStyle(text)...)
	return out
}

func (d *Detector) detectTypos(text string) []issue.Issue {
	return scanTable(text, d.tables.Corrections, func(e Entry) issue.Issue {
		return issue.Issue{
			Code:            issue.CodeTypo,
			Message:         fmt.Sprintf("suspected wrong character form: %q should be %q", e.Wrong, e.Correct),
			OriginalSnippet: e.Wrong,
			Suggestion:      e.Correct,
			Severity:        issue.SeverityMedium,
		}
	})
}

func (d *Detector) detectStyle(text string) []issue.Issue {
	return scanTable(text, d.tables.Colloquialisms, func(e Entry) issue.Issue {
		return issue.Issue{
			Code:            issue.CodeStyle,
			Message:         fmt.Sprintf("colloquial expression: %q, prefer %q", e.Wrong, e.Correct),
			OriginalSnippet: e.Wrong,
			Suggestion:      e.Correct,
			Severity:        issue.SeverityMedium,
		}
	})
}

// detectPunctuation flags halfwidth punctuation adjacent to a CJK ideograph.
// The suggestion is the fullwidth equivalent, or the character itself when
// the table has no mapping.
func (d *Detector) detectPunctuation(text string) []issue.Issue {
	var out []issue.Issue
	runes := []rune(text)
	for i, r := range runes {
		if !isHalfwidthPunct(r) {
			continue
		}
		prevCJK := i > 0 && isCJK(runes[i-1])
		nextCJK := i+1 < len(runes) && isCJK(runes[i+1])
		if !prevCJK && !nextCJK {
			continue
		}
		suggestion := r
		if full, ok := halfToFull[r]; ok {
			suggestion = full
		}
		out = append(out, issue.Issue{
			Code:            issue.CodePunctuation,
			Message:         fmt.Sprintf("halfwidth punctuation in CJK context: %q should be fullwidth", string(r)),
			OriginalSnippet: string(r),
			Suggestion:      string(suggestion),
			Severity:        issue.SeverityLow,
		})
	}
	return out
}

// scanTable finds every occurrence of every table entry and orders the
// resulting issues by position in the text. Ties keep table order.
func scanTable(text string, entries []Entry, build func(Entry) issue.Issue) []issue.Issue {
	type match struct {
		pos   int
		order int
		entry Entry
	}
	var matches []match
	for order, e := range entries {
		if e.Wrong == "" {
			continue
		}
		for _, pos := range indexAll(text, e.Wrong) {
			matches = append(matches, match{pos: pos, order: order, entry: e})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		return matches[i].order < matches[j].order
	})
	out := make([]issue.Issue, 0, len(matches))
	for _, m := range matches {
		out = append(out, build(m.entry))
	}
	return out
}

// indexAll returns the byte offsets of all non-overlapping occurrences of sub.
func indexAll(text, sub string) []int {
	var out []int
	for from := 0; ; {
		i := strings.Index(text[from:], sub)
		if i < 0 {
			return out
		}
		out = append(out, from+i)
		from += i + len(sub)
	}
}

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isHalfwidthPunct(r rune) bool {
	if r > 0x7E {
		return false
	}
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	}
	return false
}
