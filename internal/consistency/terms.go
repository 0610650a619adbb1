package consistency

import (
	"regexp"
	"strings"
)

var termPatterns = []*regexp.Regexp{
	// acronyms, 2-4 capitals
	regexp.MustCompile(`\b[A-Z]{2,4}\b`),
	// CJK technical terms ending in a category noun
	regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,5}(?:算法|模型|方法|网络|系统)`),
	// Latin technical terms ending in a category noun
	regexp.MustCompile(`(?i)\b\w+(?:method|model|network|system)\b`),
}

// extractTerms returns candidate terminology surface forms in order of
// appearance, deduplicated within the text.
func extractTerms(text string) []string {
	type hit struct {
		pos  int
		term string
	}
	var hits []hit
	for _, p := range termPatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			hits = append(hits, hit{pos: loc[0], term: text[loc[0]:loc[1]]})
		}
	}
	// order of appearance, stable across patterns
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.term]; ok {
			continue
		}
		seen[h.term] = struct{}{}
		out = append(out, h.term)
	}
	return out
}

// isAcronym reports whether term is an all-uppercase token of length 2-4.
func isAcronym(term string) bool {
	if len(term) < 2 || len(term) > 4 {
		return false
	}
	for _, r := range term {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

var expansionSplit = regexp.MustCompile(`[\s\-_]+`)

// isAbbreviationOf reports whether abbr is an initialism of fullTerm:
// splitting fullTerm on whitespace/hyphen/underscore yields exactly as many
// words as abbr has letters and first letters match case-insensitively in
// order. A single-letter abbr matches when any word starts with that letter.
func isAbbreviationOf(abbr, fullTerm string) bool {
	words := expansionSplit.Split(strings.TrimSpace(fullTerm), -1)
	filtered := words[:0]
	for _, w := range words {
		if w != "" {
			filtered = append(filtered, w)
		}
	}
	words = filtered
	if len(words) == 0 {
		return false
	}

	letters := []rune(strings.ToUpper(abbr))
	if len(letters) == 1 {
		for _, w := range words {
			if strings.HasPrefix(strings.ToUpper(w), string(letters[0])) {
				return true
			}
		}
		return false
	}
	if len(words) != len(letters) {
		return false
	}
	for i, w := range words {
		first := []rune(strings.ToUpper(w))[0]
		if first != letters[i] {
			return false
		}
	}
	return true
}

// editDistance is plain Levenshtein over runes, used by the term-variant
// heuristic.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
