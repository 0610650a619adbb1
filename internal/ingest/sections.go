package ingest

import (
	"regexp"
	"strings"

	"doc_auditor/internal/document"
)

var (
	numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.、\s]+\S`)
	refMarker       = regexp.MustCompile(`^\[\d+\]\s*`)
)

var headingKeywords = map[string]string{
	"abstract":     "abstract",
	"摘要":           "abstract",
	"summary":      "abstract",
	"introduction": "introduction",
	"引言":           "introduction",
	"绪论":           "introduction",
	"method":       "method",
	"methods":      "method",
	"方法":           "method",
	"results":      "results",
	"result":       "results",
	"结果":           "results",
	"discussion":   "discussion",
	"讨论":           "discussion",
	"related work": "related_work",
	"相关工作":         "related_work",
	"conclusion":   "conclusion",
	"conclusions":  "conclusion",
	"结论":           "conclusion",
	"总结":           "conclusion",
	"references":   "references",
	"bibliography": "references",
	"参考文献":         "references",
}

// SplitSections walks normalized text line by line, opening a new section at
// every heading. Everything under a references heading becomes a citation
// string instead. Section ids are 1-based in order of appearance.
func SplitSections(text string) ([]document.Section, []document.Reference) {
	lines := strings.Split(text, "\n")

	var sections []document.Section
	var references []document.Reference
	var body []string
	currentType := "body"
	currentLevel := 1
	inReferences := false

	flush := func() {
		joined := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if joined == "" {
			return
		}
		sections = append(sections, document.Section{
			SectionID: len(sections) + 1,
			Type:      currentType,
			Text:      joined,
			Level:     currentLevel,
		})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if secType, level, ok := classifyHeading(line); ok {
			if !inReferences {
				flush()
			}
			if secType == "references" {
				inReferences = true
				continue
			}
			inReferences = false
			currentType = secType
			currentLevel = level
			continue
		}
		if inReferences {
			ref := refMarker.ReplaceAllString(line, "")
			if ref != "" {
				references = append(references, document.Reference{RawText: ref})
			}
			continue
		}
		body = append(body, line)
	}
	if !inReferences {
		flush()
	}

	return sections, references
}

// classifyHeading decides whether a line opens a new section. A heading is
// either a known keyword line or a short numbered line; the numbering depth
// gives the level.
func classifyHeading(line string) (secType string, level int, ok bool) {
	if len(line) > 120 {
		return "", 0, false
	}
	key := strings.ToLower(strings.TrimRight(line, ":："))
	if t, known := headingKeywords[key]; known {
		return t, 1, true
	}

	m := numberedHeading.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	level = strings.Count(m[1], ".") + 1
	rest := strings.ToLower(strings.TrimSpace(line[len(m[1]):]))
	rest = strings.TrimLeft(rest, ".、 ")
	for kw, t := range headingKeywords {
		if strings.HasPrefix(rest, kw) {
			return t, level, true
		}
	}
	return "body", level, true
}
