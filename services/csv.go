package services

import (
	"fmt"
	"regexp"
	"strings"
)

// itemHeaderFields is the fixed 7-column header of each section's item
// table. The import scanner keys off this row.
var itemHeaderFields = []string{"Description", "Category", "Qty", "Unit", "Unit Cost", "Taxable", "Line Total"}

var yesPattern = regexp.MustCompile(`(?i)^y(es)?$`)

// EscapeCSVField quotes a field only when it has to: a comma, a double
// quote, or a newline forces quote-wrapping with internal quotes doubled.
// Everything else is emitted literally.
func EscapeCSVField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// ExportCSV renders a project and its computed totals as the estimate's
// CSV document: client metadata rows, then each section's item table with
// its subtotal (and notes when present), then the markup rates and the
// totals cascade. Lines are joined with "\n"; numeric cells keep full
// floating point precision.
func ExportCSV(p Project, t Totals) string {
	rows := [][]string{
		{"Project", p.Name},
		{"Estimate Number", p.EstimateNumber},
		{"Client Name", p.ClientName},
		{"Client Phone", p.ClientPhone},
		{"Client Email", p.ClientEmail},
		{"Estimate Date", p.EstimateDate},
		{""},
	}

	for i, sec := range p.Sections {
		rows = append(rows, []string{fmt.Sprintf("Section %d: %s", i+1, sec.Name)})
		rows = append(rows, append([]string(nil), itemHeaderFields...))
		for _, it := range sec.Items {
			rows = append(rows, []string{
				it.Description,
				it.Category,
				it.Qty,
				it.Unit,
				formatNumber(it.UnitCost),
				taxableLabel(it.Taxable),
				formatNumber(ItemTotal(it)),
			})
		}
		rows = append(rows, []string{"Section Subtotal", formatNumber(SectionSubtotal(sec))})
		if strings.TrimSpace(sec.Notes) != "" {
			rows = append(rows, []string{"Section Notes", sec.Notes})
		}
		rows = append(rows, []string{""})
	}

	rows = append(rows,
		[]string{"Tax %", formatNumber(p.Rates.TaxPct)},
		[]string{"Overhead %", formatNumber(p.Rates.OverheadPct)},
		[]string{"Profit %", formatNumber(p.Rates.ProfitPct)},
		[]string{"Contingency %", formatNumber(p.Rates.ContingencyPct)},
		[]string{""},
		[]string{"Subtotal", formatNumber(t.Subtotal)},
		[]string{"Sales Tax", formatNumber(t.Tax)},
		[]string{"Overhead", formatNumber(t.Overhead)},
		[]string{"Profit", formatNumber(t.Profit)},
		[]string{"Contingency", formatNumber(t.Contingency)},
		[]string{"Total", formatNumber(t.Total)},
	)

	lines := make([]string, len(rows))
	for i, row := range rows {
		escaped := make([]string, len(row))
		for j, field := range row {
			escaped[j] = EscapeCSVField(field)
		}
		lines[i] = strings.Join(escaped, ",")
	}
	return strings.Join(lines, "\n")
}

// ExportFilename is the download name for a project's CSV export.
func ExportFilename(p Project) string {
	return SanitizeFilename(p.Name) + "_estimate.csv"
}

// ParseItemsCSV scans raw CSV text for the item table and returns the
// parsed items with fresh identifiers. The scanner is deliberately
// tolerant: if no item header line is found the result is simply empty,
// and parsing stops without error at the first blank line or short record
// (which is how the totals block announces itself). A short record caused
// by malformed quoting also stops the scan; that heuristic is kept for
// compatibility with files produced by older exports.
func ParseItemsCSV(text string) []Item {
	lines := splitLines(text)

	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "Description,") || strings.HasPrefix(line, `"Description",`) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil
	}

	var items []Item
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		cols := parseCSVLine(line)
		if len(cols) < 7 {
			break // totals block reached
		}
		items = append(items, itemFromRecord(cols))
	}
	return items
}

// itemFromRecord maps one positional CSV record to an item, filling the
// same defaults the editor would.
func itemFromRecord(cols []string) Item {
	category := strings.ToLower(cols[1])
	if category == "" {
		category = CategoryMaterials
	}
	unit := cols[3]
	if unit == "" {
		unit = "ea"
	}
	taxable := true
	if cols[5] != "" {
		taxable = yesPattern.MatchString(cols[5])
	}
	return Item{
		ID:          NewIdentifier(),
		Description: cols[0],
		Category:    category,
		Qty:         cols[2],
		Unit:        unit,
		UnitCost:    parseNumberField(cols[4]),
		Taxable:     taxable,
	}
}

// parseCSVLine splits one line into fields, honoring double-quoted fields
// with doubled-quote escapes. Exported fields never embed newlines, and a
// per-line parser can stop at the blank separator lines that encoding/csv
// silently skips.
func parseCSVLine(line string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inQuotes {
			switch {
			case ch == '"' && i+1 < len(line) && line[i+1] == '"':
				cur.WriteByte('"')
				i++
			case ch == '"':
				inQuotes = false
			default:
				cur.WriteByte(ch)
			}
			continue
		}
		switch ch {
		case ',':
			out = append(out, cur.String())
			cur.Reset()
		case '"':
			inQuotes = true
		default:
			cur.WriteByte(ch)
		}
	}
	out = append(out, cur.String())
	return out
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func parseNumberField(s string) float64 {
	return ParseCurrency(s)
}

func taxableLabel(taxable bool) string {
	if taxable {
		return "YES"
	}
	return "NO"
}
