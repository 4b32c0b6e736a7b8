// Package classify asks an LLM to turn extracted receipt text into
// vendor/date/amount/category fields, constrained to a known category list.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for receipt categorization.
const DefaultModelName = "gemini-2.5-flash"

// BaseCategories is the built-in category list offered to the model. A
// user's stored category names are appended when available.
var BaseCategories = []string{
	"Vehicle",
	"Insurance/health",
	"Rent/mortgage",
	"Meals",
	"Travels",
	"Supplies",
	"Cellphone",
	"Utilities",
}

// Classification is the structured result returned by the model.
type Classification struct {
	Vendor   string  `json:"vendor"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Classifier categorizes receipt text. Implementations must return an error
// rather than fabricating fields when the model output is unusable.
type Classifier interface {
	Classify(ctx context.Context, receiptText string, extraCategories []string) (*Classification, error)
}

// GeminiClassifier implements Classifier with the Gemini API.
type GeminiClassifier struct {
	model string
}

// NewGeminiClassifier creates a classifier for the given model name, falling
// back to DefaultModelName when empty.
func NewGeminiClassifier(model string) *GeminiClassifier {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiClassifier{model: model}
}

// Classify sends the receipt text to Gemini and decodes the structured
// fields from its response.
func (c *GeminiClassifier) Classify(ctx context.Context, receiptText string, extraCategories []string) (*Classification, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("Classify: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(receiptText, extraCategories)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("Classify: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("Classify: empty response from model")
	}

	return decodeClassification(rawText)
}

// buildPrompt assembles the instruction, the allowed category list, and the
// receipt text.
func buildPrompt(receiptText string, extraCategories []string) string {
	categories := categoryList(extraCategories)

	var b strings.Builder
	b.WriteString("You are a skilled financial professional with detailed accounting skills.\n\n")
	b.WriteString("Given this extracted text from a receipt:\n")
	b.WriteString(receiptText)
	b.WriteString("\n\n")
	b.WriteString("Return a JSON object with these fields:\n")
	b.WriteString("- \"vendor\": string, the merchant name\n")
	b.WriteString("- \"date\": string, the receipt date as printed\n")
	b.WriteString("- \"amount\": number, the total amount paid\n")
	b.WriteString("- \"category\": string, EXACTLY one of: (")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString(")\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do not include any Markdown formatting or code block syntax in your response.\n")
	return b.String()
}

// categoryList merges BaseCategories with the extras, dropping duplicates
// case-insensitively while keeping first-seen spelling.
func categoryList(extras []string) []string {
	seen := make(map[string]bool, len(BaseCategories)+len(extras))
	out := make([]string, 0, len(BaseCategories)+len(extras))
	for _, c := range BaseCategories {
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	for _, c := range extras {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out
}

// decodeClassification strips any markdown fencing the model added despite
// instructions, then unmarshals the JSON object.
func decodeClassification(raw string) (*Classification, error) {
	clean := cleanModelJSON(raw)

	var result Classification
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("decodeClassification: unmarshal JSON: %w\nraw response: %s", err, raw)
	}
	return &result, nil
}

// cleanModelJSON removes ``` fences and any junk around the outermost JSON
// object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
