package classify

import (
	"strings"
	"testing"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain object",
			raw:  `{"vendor":"Deli"}`,
			want: `{"vendor":"Deli"}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"vendor\":\"Deli\"}\n```",
			want: `{"vendor":"Deli"}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"vendor\":\"Deli\"}\n```",
			want: `{"vendor":"Deli"}`,
		},
		{
			name: "leading prose",
			raw:  "Here is the result: {\"vendor\":\"Deli\"} hope that helps",
			want: `{"vendor":"Deli"}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n{\"vendor\":\"Deli\"}\n ",
			want: `{"vendor":"Deli"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeClassification(t *testing.T) {
	raw := "```json\n{\"vendor\": \"Whole Foods\", \"date\": \"07/19/2024\", \"amount\": 14.50, \"category\": \"Meals\"}\n```"

	c, err := decodeClassification(raw)
	if err != nil {
		t.Fatalf("decodeClassification() error: %v", err)
	}
	if c.Vendor != "Whole Foods" {
		t.Errorf("Vendor = %q", c.Vendor)
	}
	if c.Date != "07/19/2024" {
		t.Errorf("Date = %q", c.Date)
	}
	if c.Amount != 14.50 {
		t.Errorf("Amount = %v", c.Amount)
	}
	if c.Category != "Meals" {
		t.Errorf("Category = %q", c.Category)
	}
}

func TestDecodeClassification_InvalidJSON(t *testing.T) {
	if _, err := decodeClassification("not json at all"); err == nil {
		t.Fatal("expected error for non-JSON model output")
	}
}

func TestCategoryList(t *testing.T) {
	got := categoryList([]string{"Groceries", "meals", "  ", "Vehicle"})

	joined := strings.Join(got, ",")
	if !strings.Contains(joined, "Groceries") {
		t.Errorf("extras missing from list: %v", got)
	}
	// "meals" and "Vehicle" already exist case-insensitively.
	count := 0
	for _, c := range got {
		if strings.EqualFold(c, "meals") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate category in list: %v", got)
	}
	if len(got) != len(BaseCategories)+1 {
		t.Errorf("list length = %d, want %d", len(got), len(BaseCategories)+1)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("SUBTOTAL 10.00", []string{"Groceries"})

	for _, want := range []string{"SUBTOTAL 10.00", "Meals", "Groceries", "JSON"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
