package semantic

import "strings"

// sentence-terminal punctuation, CJK and Latin variants
var terminals = map[rune]struct{}{
	'。': {}, '！': {}, '？': {},
	'.': {}, '!': {}, '?': {},
}

// SplitSentences packs whole sentences into chunks of at most maxRunes.
// Terminal punctuation stays with its preceding sentence. A single sentence
// longer than maxRunes becomes its own chunk.
func SplitSentences(text string, maxRunes int) []string {
	if text == "" {
		return nil
	}
	if maxRunes <= 0 || runeLen(text) <= maxRunes {
		return []string{text}
	}

	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if _, ok := terminals[r]; ok {
			sentences = append(sentences, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		sentences = append(sentences, b.String())
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	for _, s := range sentences {
		sLen := runeLen(s)
		if currentLen > 0 && currentLen+sLen > maxRunes {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(s)
		currentLen += sLen
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
