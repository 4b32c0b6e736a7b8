package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

// Parsed holds the structured fields extracted from one OCR text blob. Every
// field is independently optional: an empty string means the pattern was not
// found. Parsing never fails; malformed tokens are skipped.
type Parsed struct {
	Date      string   `json:"date,omitempty"`
	Subtotal  string   `json:"subtotal,omitempty"`
	Tax       string   `json:"tax,omitempty"`
	Total     string   `json:"total,omitempty"`
	StoreName string   `json:"store_name,omitempty"`
	Items     []string `json:"items"`

	// TaxComputed is true when Tax was derived as Total - Subtotal rather
	// than read from the text.
	TaxComputed bool `json:"tax_computed,omitempty"`
}

// Date patterns in priority order: D/M/Y, Y/M/D, "D Month Y". Each pattern is
// tried against the whole text before falling through to the next, so an
// earlier pattern wins even when a later one would match earlier in the
// document.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}\s+\w+\s+\d{4}\b`),
}

var (
	subtotalRe = regexp.MustCompile(`(?i)\b(Subtotal|Sub[ -]?total|Items\s+Subtotal)\b`)
	taxRe      = regexp.MustCompile(`(?i)\b(Tax|Sales\s+Tax)\b`)
	totalRe    = regexp.MustCompile(`(?i)\b(Total|Grand\s+Total)\b`)

	// Currency tokens require exactly two decimal digits. Whole-dollar
	// amounts ("12") are deliberately not matched; see the parser tests.
	moneyRe = regexp.MustCompile(`\$?(\d+\.\d{2})`)

	digitRe = regexp.MustCompile(`\d`)
)

// Parse converts a raw OCR text blob into a structured receipt record.
func Parse(text string) Parsed {
	lines := strings.Split(text, "\n")

	p := Parsed{
		Date:      extractDate(text),
		StoreName: extractStoreName(lines),
		Items:     extractItems(lines),
	}
	extractAmounts(lines, &p)
	backfillTax(&p)
	return p
}

// extractDate returns the first date-like substring, unmodified, trying
// patterns in priority order.
func extractDate(text string) string {
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// extractAmounts scans lines for subtotal/tax/total keywords. The money token
// is taken from the keyword line, or from the following line when the keyword
// line carries none. Only the first subtotal is kept; tax and total are
// overwritten by later matches, and a total line with several money tokens
// keeps the last one (the rightmost total wins over intermediate amounts).
func extractAmounts(lines []string, p *Parsed) {
	subtotalFound := false
	for i, line := range lines {
		if subtotalRe.MatchString(line) && !subtotalFound {
			if v := firstMoney(line); v != "" {
				p.Subtotal = v
				subtotalFound = true
			} else if i+1 < len(lines) {
				if v := firstMoney(lines[i+1]); v != "" {
					p.Subtotal = v
					subtotalFound = true
				}
			}
		}

		if taxRe.MatchString(line) {
			if v := firstMoney(line); v != "" {
				p.Tax = v
			} else if i+1 < len(lines) {
				if v := firstMoney(lines[i+1]); v != "" {
					p.Tax = v
				}
			}
		}

		if totalRe.MatchString(line) {
			if v := lastMoney(line); v != "" {
				p.Total = v
			} else if i+1 < len(lines) {
				if v := lastMoney(lines[i+1]); v != "" {
					p.Total = v
				}
			}
		}
	}
}

func firstMoney(line string) string {
	if m := moneyRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

func lastMoney(line string) string {
	ms := moneyRe.FindAllStringSubmatch(line, -1)
	if len(ms) == 0 {
		return ""
	}
	return ms[len(ms)-1][1]
}

// backfillTax derives tax from subtotal and total when both were read from
// the text but no tax line was found. The result is flagged as computed.
func backfillTax(p *Parsed) {
	if p.Tax != "" || p.Subtotal == "" || p.Total == "" {
		return
	}
	sub, err := strconv.ParseFloat(p.Subtotal, 64)
	if err != nil {
		return
	}
	total, err := strconv.ParseFloat(p.Total, 64)
	if err != nil {
		return
	}
	p.Tax = strconv.FormatFloat(total-sub, 'f', 2, 64)
	p.TaxComputed = true
}

// extractStoreName looks at the first 5 lines for the first non-empty line
// containing no digits. When none qualifies it falls back to the first
// non-empty line anywhere in the text.
func extractStoreName(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !digitRe.MatchString(trimmed) {
			return trimmed
		}
	}
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
