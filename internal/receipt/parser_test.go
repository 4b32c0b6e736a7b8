package receipt

import (
	"reflect"
	"testing"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "slash MM/DD/YYYY embedded in text",
			text: "Store 42\nVisit: 07/19/2024 14:03\nThanks",
			want: "07/19/2024",
		},
		{
			name: "ISO YYYY-MM-DD",
			text: "received 2024-03-05 register 4",
			want: "2024-03-05",
		},
		{
			name: "day month year",
			text: "paid on 5 March 2024 by card",
			want: "5 March 2024",
		},
		{
			name: "two digit year",
			text: "date 3/5/24",
			want: "3/5/24",
		},
		{
			name: "dash separated",
			text: "12-31-2023",
			want: "12-31-2023",
		},
		{
			name: "no date",
			text: "no dates here",
			want: "",
		},
		{
			name: "first pattern wins over later document position",
			text: "2024-01-01 then 3/4/2024",
			want: "3/4/2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDate(tt.text); got != tt.want {
				t.Errorf("extractDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Amounts(t *testing.T) {
	text := "Corner Deli\n" +
		"Sandwich 8.99\n" +
		"Coffee 3.35\n" +
		"Subtotal $12.34\n" +
		"Total $14.50\n"

	p := Parse(text)

	if p.Subtotal != "12.34" {
		t.Errorf("Subtotal = %q, want %q", p.Subtotal, "12.34")
	}
	if p.Total != "14.50" {
		t.Errorf("Total = %q, want %q", p.Total, "14.50")
	}
	if p.Tax != "2.16" {
		t.Errorf("Tax = %q, want computed %q", p.Tax, "2.16")
	}
	if !p.TaxComputed {
		t.Error("expected computed tax to be flagged")
	}
}

func TestParse_ExplicitTaxNotRecomputed(t *testing.T) {
	text := "Subtotal 10.00\nSales Tax 0.80\nTotal 10.80\n"
	p := Parse(text)

	if p.Tax != "0.80" {
		t.Errorf("Tax = %q, want %q", p.Tax, "0.80")
	}
	if p.TaxComputed {
		t.Error("explicit tax must not be flagged as computed")
	}
}

func TestParse_AmountOnNextLine(t *testing.T) {
	text := "Subtotal\n$23.45\nTotal\n$25.00\n"
	p := Parse(text)

	if p.Subtotal != "23.45" {
		t.Errorf("Subtotal = %q, want %q", p.Subtotal, "23.45")
	}
	if p.Total != "25.00" {
		t.Errorf("Total = %q, want %q", p.Total, "25.00")
	}
}

func TestParse_LastTotalWinsOnLine(t *testing.T) {
	// A total line listing intermediate amounts keeps the rightmost token.
	p := Parse("Total 12.34 14.50")
	if p.Total != "14.50" {
		t.Errorf("Total = %q, want %q", p.Total, "14.50")
	}
}

func TestParse_FirstSubtotalKept(t *testing.T) {
	p := Parse("Subtotal 10.00\nSubtotal 99.99\n")
	if p.Subtotal != "10.00" {
		t.Errorf("Subtotal = %q, want first match %q", p.Subtotal, "10.00")
	}
}

func TestParse_WholeDollarAmountsIgnored(t *testing.T) {
	// Tokens without cents are not currency matches. Known precision gap,
	// kept on purpose.
	p := Parse("Subtotal 12\nTotal 14\n")
	if p.Subtotal != "" || p.Total != "" {
		t.Errorf("whole-dollar amounts matched: subtotal=%q total=%q", p.Subtotal, p.Total)
	}
}

func TestExtractStoreName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "first digit-free line in header",
			text: "\nWHOLE FOODS MARKET\n123 Main St\n",
			want: "WHOLE FOODS MARKET",
		},
		{
			name: "skips lines with digits",
			text: "Store #42\nTrader Joe's\n",
			want: "Trader Joe's",
		},
		{
			name: "fallback to first non-empty line",
			text: "Store #42\n12 Oak Ave\n555-0100\n#9981\n4412\nsomething else",
			want: "Store #42",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.text)
			if p.StoreName != tt.want {
				t.Errorf("StoreName = %q, want %q", p.StoreName, tt.want)
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n \t \n"} {
		p := Parse(text)
		if p.Date != "" || p.Subtotal != "" || p.Tax != "" || p.Total != "" || p.StoreName != "" {
			t.Errorf("Parse(%q) extracted fields from empty input: %+v", text, p)
		}
		if len(p.Items) != 0 {
			t.Errorf("Parse(%q) items = %v, want empty", text, p.Items)
		}
	}
}

func TestExtractItems(t *testing.T) {
	text := "MARKET\n" +
		"Produce\n" +
		"Organic Bananas\n" +
		"Baby Spinach Bag\n" +
		"4.99\n" +
		"Subtotal 9.37\n" +
		"Cash Tendered Amount\n"

	p := Parse(text)
	want := []string{"Organic Bananas", "Baby Spinach Bag"}
	if !reflect.DeepEqual(p.Items, want) {
		t.Errorf("Items = %v, want %v", p.Items, want)
	}
}

func TestExtractItems_NoMarkers(t *testing.T) {
	text := "Deli Counter\nRoast Beef Sandwich\nthe a an\n123 456\n"
	p := Parse(text)

	want := []string{"Deli Counter", "Roast Beef Sandwich"}
	if !reflect.DeepEqual(p.Items, want) {
		t.Errorf("Items = %v, want %v", p.Items, want)
	}
}

func TestExtractItems_StopWordsFiltered(t *testing.T) {
	// One content word after filtering is not enough for an item.
	p := Parse("the bread\n")
	if len(p.Items) != 0 {
		t.Errorf("Items = %v, want none", p.Items)
	}
}
