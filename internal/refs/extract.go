package refs

import (
	"regexp"
	"strings"
)

// Fields are the best-effort bibliographic fields pulled from one citation
// string. Any field may be empty.
type Fields struct {
	Authors string
	Year    string
	Title   string
	Journal string
}

var (
	quotedTitle   = regexp.MustCompile(`["\x{201c}\x{201d}\x{2018}\x{2019}]([^"\x{201c}\x{201d}\x{2018}\x{2019}]+)["\x{201c}\x{201d}\x{2018}\x{2019}]|\[([^\]]+)\]|《([^》]+)》`)
	afterYearSpan = regexp.MustCompile(`\(\d{4}\)\.\s*([^.]+)`)
	yearField     = regexp.MustCompile(`出版时间[:：]\s*(\d{4})|\b(\d{4})\b`)
	journalField  = regexp.MustCompile(`\bin\s+((?:[A-Z][A-Za-z]*\s*)+)|发表在\s*([^(《"「]+)`)
	leadingClause = regexp.MustCompile(`^([^.,;]+)`)
	nonAuthorLead = regexp.MustCompile(`^[\d\s()]+`)
)

// ExtractFields parses a citation with layered patterns: quoted, bracketed or
// book-title-marked spans for the title (falling back to the clause after the
// parenthesized year), the first 4-digit year, an "in <venue>" clause or its
// localized equivalent for the journal, and the clause before the first
// punctuation for the authors.
func ExtractFields(citation string) Fields {
	var f Fields

	if m := quotedTitle.FindStringSubmatch(citation); m != nil {
		f.Title = firstNonEmpty(m[1:])
	} else if m := afterYearSpan.FindStringSubmatch(citation); m != nil {
		title := strings.TrimSpace(m[1])
		// a venue name caught by this pattern is not a title
		if !strings.Contains(title, "Journal") && !strings.Contains(title, "Conference") {
			f.Title = title
		}
	}

	if m := yearField.FindStringSubmatch(citation); m != nil {
		f.Year = firstNonEmpty(m[1:])
	}

	if m := journalField.FindStringSubmatch(citation); m != nil {
		f.Journal = strings.TrimSpace(firstNonEmpty(m[1:]))
	}

	if m := leadingClause.FindStringSubmatch(citation); m != nil {
		authors := strings.TrimSpace(m[1])
		if authors != "" && !nonAuthorLead.MatchString(authors) {
			f.Authors = authors
		}
	}

	return f
}

func firstNonEmpty(groups []string) string {
	for _, g := range groups {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return ""
}
