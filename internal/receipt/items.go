package receipt

import (
	"regexp"
	"strings"
)

// English stop words filtered out of item candidates. Subset of the usual
// NLP list; receipt lines rarely carry more than these.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "i": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "our": true, "she": true, "so": true,
	"that": true, "the": true, "their": true, "them": true, "there": true,
	"they": true, "this": true, "to": true, "was": true, "we": true,
	"were": true, "will": true, "with": true, "you": true, "your": true,
}

var wordRe = regexp.MustCompile(`[A-Za-z]+`)

var (
	itemsStartRe = regexp.MustCompile(`(?i)\b(items|produce)\b`)
	itemsEndRe   = regexp.MustCompile(`(?i)\bsubtotal\b`)
)

// extractItems treats each OCR line as a sentence, drops stop words and
// non-alphabetic tokens, and keeps a line as an item description when more
// than one content word remains. When a start marker ("items"/"produce")
// appears before a "subtotal" line, only the lines between the two are
// considered.
func extractItems(lines []string) []string {
	section := itemSection(lines)

	items := []string{}
	for _, line := range section {
		words := contentWords(line)
		if len(words) > 1 {
			items = append(items, strings.Join(words, " "))
		}
	}
	return items
}

// itemSection bounds item extraction between the start and end markers when
// both are present in order; otherwise the whole text is scanned.
func itemSection(lines []string) []string {
	start := -1
	for i, line := range lines {
		if itemsStartRe.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return lines
	}
	for j := start + 1; j < len(lines); j++ {
		if itemsEndRe.MatchString(lines[j]) {
			return lines[start+1 : j]
		}
	}
	return lines[start+1:]
}

func contentWords(line string) []string {
	var words []string
	for _, w := range wordRe.FindAllString(line, -1) {
		if !stopWords[strings.ToLower(w)] {
			words = append(words, w)
		}
	}
	return words
}
