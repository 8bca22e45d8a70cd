package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"estimator/services"
)

// EstimatePreviewPage renders the printable estimate document for one
// project, with export links in the page chrome.
func EstimatePreviewPage(id string, data services.ExportData) templ.Component {
	return Layout(data.ProjectName+" | Estimate", estimatePreviewContent(id, data))
}

func estimatePreviewContent(id string, data services.ExportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="flex items-center justify-between mb-4 print:hidden">
<a class="btn btn-ghost" href="/estimates">&larr; All Estimates</a>
<div>
<a class="btn btn-outline btn-sm" href="/estimates/%s/export/csv">CSV</a>
<a class="btn btn-outline btn-sm" href="/estimates/%s/export/xlsx">Excel</a>
<a class="btn btn-outline btn-sm" href="/estimates/%s/export/pdf">PDF</a>
</div>
</div>
<div class="card bg-base-100 p-8 max-w-4xl mx-auto">
<div class="text-center border-b pb-4 mb-6">
<h1 class="text-3xl font-bold tracking-widest">ESTIMATE</h1>
<p class="text-lg mt-1">%s</p>
</div>
`,
			templ.EscapeString(id), templ.EscapeString(id), templ.EscapeString(id),
			templ.EscapeString(data.ProjectName)); err != nil {
			return err
		}

		if err := previewClientBlock(w, data); err != nil {
			return err
		}

		for _, sec := range data.Sections {
			if err := previewSection(w, sec); err != nil {
				return err
			}
		}

		if err := previewSummary(w, data); err != nil {
			return err
		}

		if data.Notes != "" {
			if _, err := fmt.Fprintf(w, `<div class="mt-6 text-sm">
<h3 class="font-semibold mb-1">Notes</h3>
<p class="whitespace-pre-line">%s</p>
</div>
`, templ.EscapeString(data.Notes)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

func previewClientBlock(w io.Writer, data services.ExportData) error {
	type field struct{ label, value string }
	fields := []field{
		{"Client", data.ClientName},
		{"Estimate #", data.EstimateNumber},
		{"Date", data.EstimateDate},
		{"Phone", data.ClientPhone},
		{"Email", data.ClientEmail},
	}
	if _, err := io.WriteString(w, `<div class="grid grid-cols-2 gap-x-8 gap-y-1 text-sm mb-6">
`); err != nil {
		return err
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, `<div><span class="font-semibold">%s:</span> %s</div>
`, templ.EscapeString(f.label), templ.EscapeString(f.value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}

func previewSection(w io.Writer, sec services.ExportSection) error {
	if _, err := fmt.Fprintf(w, `<div class="mb-6">
<h2 class="font-semibold bg-base-200 px-2 py-1 rounded">%s</h2>
<table class="table table-sm">
<thead><tr><th>Description</th><th>Category</th><th class="text-right">Qty</th><th>Unit</th><th class="text-right">Unit Cost</th><th class="text-right">Total</th></tr></thead>
<tbody>
`, templ.EscapeString(sec.Title)); err != nil {
		return err
	}
	for _, row := range sec.Rows {
		desc := row.Description
		if !row.Taxable {
			desc += " (non-taxable)"
		}
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td class="text-right">%s</td><td>%s</td><td class="text-right font-mono">%s</td><td class="text-right font-mono">%s</td></tr>
`,
			templ.EscapeString(desc),
			templ.EscapeString(row.Category),
			templ.EscapeString(row.Qty),
			templ.EscapeString(row.Unit),
			templ.EscapeString(services.FormatUSD(row.UnitCost)),
			templ.EscapeString(services.FormatUSD(row.LineTotal))); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr><td colspan="5" class="text-right font-semibold">Section Subtotal</td><td class="text-right font-mono font-semibold">%s</td></tr></tfoot>
</table>
`, templ.EscapeString(services.FormatUSD(sec.Subtotal))); err != nil {
		return err
	}
	if sec.Notes != "" {
		if _, err := fmt.Fprintf(w, `<p class="text-sm italic px-2">%s</p>
`, templ.EscapeString(sec.Notes)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}

func previewSummary(w io.Writer, data services.ExportData) error {
	t := data.Totals
	r := data.Rates
	type line struct {
		label string
		value float64
	}
	lines := []line{
		{"Subtotal", t.Subtotal},
		{fmt.Sprintf("Sales Tax (%s%%)", services.FormatPct(r.TaxPct)), t.Tax},
		{fmt.Sprintf("Overhead (%s%%)", services.FormatPct(r.OverheadPct)), t.Overhead},
		{fmt.Sprintf("Profit (%s%%)", services.FormatPct(r.ProfitPct)), t.Profit},
		{fmt.Sprintf("Contingency (%s%%)", services.FormatPct(r.ContingencyPct)), t.Contingency},
	}
	if _, err := io.WriteString(w, `<div class="ml-auto w-72 border-t pt-2">
<table class="table table-sm">
<tbody>
`); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td class="text-right font-mono">%s</td></tr>
`, templ.EscapeString(l.label), templ.EscapeString(services.FormatUSD(l.value))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `<tr class="font-bold text-lg"><td>TOTAL</td><td class="text-right font-mono">%s</td></tr>
</tbody>
</table>
</div>
`, templ.EscapeString(services.FormatUSD(t.Total)))
	return err
}
