package services

import (
	"strings"
	"testing"
)

func TestEscapeCSVField(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", "hello", "hello"},
		{"comma", "a,b", `"a,b"`},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"newline", "a\nb", "\"a\nb\""},
		{"leading space stays bare", " padded", " padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeCSVField(tt.input)
			if got != tt.expect {
				t.Errorf("EscapeCSVField(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseCSVLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{"plain fields", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{"a,b", "c"}},
		{"doubled quotes", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty fields", "a,,c", []string{"a", "", "c"}},
		{"trailing empty", "a,b,", []string{"a", "b", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCSVLine(tt.input)
			if len(got) != len(tt.expect) {
				t.Fatalf("parseCSVLine(%q) = %v, want %v", tt.input, got, tt.expect)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("parseCSVLine(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expect[i])
				}
			}
		})
	}
}

func TestExportCSV_Layout(t *testing.T) {
	p := twoSectionProject()
	p.EstimateNumber = "EST-0007"
	p.ClientName = "Avery, Client" // forces quoting
	p.Sections[0].Notes = "Work weekdays only."

	out := ExportCSV(p, CalcTotals(p))
	lines := strings.Split(out, "\n")

	if lines[0] != "Project,Garage Conversion" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "Estimate Number,EST-0007" {
		t.Errorf("estimate number line = %q", lines[1])
	}
	if lines[2] != `Client Name,"Avery, Client"` {
		t.Errorf("client line = %q", lines[2])
	}

	wantFragments := []string{
		"Section 1: Section A",
		"Section 2: Section B",
		"Description,Category,Qty,Unit,Unit Cost,Taxable,Line Total",
		"Section Subtotal,40",
		"Section Notes,Work weekdays only.",
		"Lumber,materials,2,ea,5,YES,10",
		"Rough labor,labor,3,hr,10,NO,30",
		"Tax %,10",
		"Subtotal,40",
		"Sales Tax,1",
		"Total,41",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(out, frag) {
			t.Errorf("export missing line %q\nexport:\n%s", frag, out)
		}
	}

	if strings.HasSuffix(out, "\n") {
		t.Error("export should not end with a trailing newline")
	}
}

func TestParseItemsCSV_RoundTrip(t *testing.T) {
	p := twoSectionProject()
	out := ExportCSV(p, CalcTotals(p))

	items := ParseItemsCSV(out)

	// Only the first section's table is followed by a blank separator
	// before the next header, so the scan returns section A's items.
	if len(items) != 2 {
		t.Fatalf("round-trip items = %d, want 2", len(items))
	}
	if items[0].Description != "Lumber" || items[0].Qty != "2" || !items[0].Taxable {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Description != "Rough labor" || items[1].Taxable {
		t.Errorf("item 1 = %+v", items[1])
	}
	for _, it := range items {
		if it.ID == "" {
			t.Error("imported items must get fresh identifiers")
		}
	}
	if items[0].ID == p.Sections[0].Items[0].ID {
		t.Error("imported identifier should not match the source document")
	}
}

func TestParseItemsCSV_Defaults(t *testing.T) {
	text := strings.Join([]string{
		"Description,Category,Qty,Unit,Unit Cost,Taxable,Line Total",
		`Bare item,,3,,"$1,234.50",,0`,
		"Negative answer,LABOR,1,hr,10,no,10",
		"Affirmative,other,1,ea,5,Y,5",
	}, "\n")

	items := ParseItemsCSV(text)
	if len(items) != 3 {
		t.Fatalf("parsed %d items, want 3", len(items))
	}

	if items[0].Category != CategoryMaterials {
		t.Errorf("empty category = %q, want materials", items[0].Category)
	}
	if items[0].Unit != "ea" {
		t.Errorf("empty unit = %q, want ea", items[0].Unit)
	}
	if !items[0].Taxable {
		t.Error("empty taxable should default to true")
	}
	if items[0].UnitCost != 1234.5 {
		t.Errorf("currency unit cost = %v, want 1234.5", items[0].UnitCost)
	}

	if items[1].Category != CategoryLabor {
		t.Errorf("category should lowercase, got %q", items[1].Category)
	}
	if items[1].Taxable {
		t.Error("'no' should parse as non-taxable")
	}
	if !items[2].Taxable {
		t.Error("'Y' should parse as taxable")
	}
}

func TestParseItemsCSV_Termination(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		expect int
	}{
		{"no header", "a,b,c\n1,2,3", 0},
		{"stops at blank line", "Description,Category,Qty,Unit,Unit Cost,Taxable,Line Total\nA,materials,1,ea,1,YES,1\n\nB,materials,1,ea,1,YES,1", 1},
		{"stops at short record", "Description,Category,Qty,Unit,Unit Cost,Taxable,Line Total\nA,materials,1,ea,1,YES,1\nSubtotal,40\nB,materials,1,ea,1,YES,1", 1},
		{"crlf input", "Description,Category,Qty,Unit,Unit Cost,Taxable,Line Total\r\nA,materials,1,ea,1,YES,1\r\n", 1},
		{"empty input", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseItemsCSV(tt.text)
			if len(got) != tt.expect {
				t.Errorf("ParseItemsCSV parsed %d items, want %d", len(got), tt.expect)
			}
		})
	}
}

func TestExportFilename(t *testing.T) {
	p := NewProject("Kitchen Remodel #2")
	if got := ExportFilename(p); got != "Kitchen_Remodel_2_estimate.csv" {
		t.Errorf("ExportFilename = %q", got)
	}
}
