package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type EstimateListItem struct {
	ID             string
	Name           string
	ClientName     string
	EstimateNumber string
	Total          string
	Updated        string
}

type EstimateListData struct {
	Items      []EstimateListItem
	TotalCount int
	Degraded   bool
}

// EstimateListPage renders the full estimates page.
func EstimateListPage(data EstimateListData) templ.Component {
	return Layout("Estimates", EstimateListContent(data))
}

// EstimateListContent renders just the list body, used for HTMX swaps.
func EstimateListContent(data EstimateListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="estimate-list">
<div class="flex items-center justify-between mb-4">
<h1 class="text-2xl font-bold">Estimates <span class="badge badge-ghost">%d</span></h1>
<button class="btn btn-primary" hx-post="/estimates" hx-target="#estimate-list" hx-swap="outerHTML">New Estimate</button>
</div>
`, data.TotalCount); err != nil {
			return err
		}
		if data.Degraded {
			if _, err := io.WriteString(w, `<div class="alert alert-warning mb-4">Database unreachable. Showing the last local snapshot; changes cannot be saved right now.</div>
`); err != nil {
				return err
			}
		}
		if len(data.Items) == 0 {
			if _, err := io.WriteString(w, `<div class="card bg-base-100 p-8 text-center text-base-content/60">No estimates yet. Create one to get started.</div>
</div>
`); err != nil {
				return err
			}
			return nil
		}
		if _, err := io.WriteString(w, `<div class="overflow-x-auto card bg-base-100">
<table class="table">
<thead><tr><th>Name</th><th>Client</th><th>Estimate #</th><th class="text-right">Total</th><th>Updated</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, it := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a class="link link-hover font-medium" href="/estimates/%s">%s</a></td>
<td>%s</td>
<td>%s</td>
<td class="text-right font-mono">%s</td>
<td>%s</td>
<td class="text-right whitespace-nowrap">
<a class="btn btn-ghost btn-xs" href="/estimates/%s/export/csv">CSV</a>
<a class="btn btn-ghost btn-xs" href="/estimates/%s/export/xlsx">Excel</a>
<a class="btn btn-ghost btn-xs" href="/estimates/%s/export/pdf">PDF</a>
<button class="btn btn-ghost btn-xs" hx-post="/estimates/%s/duplicate" hx-target="#estimate-list" hx-swap="outerHTML">Duplicate</button>
<button class="btn btn-ghost btn-xs text-error" hx-delete="/estimates/%s" hx-target="#estimate-list" hx-swap="outerHTML" hx-confirm="Delete this estimate?">Delete</button>
</td>
</tr>
`,
				templ.EscapeString(it.ID), templ.EscapeString(it.Name),
				templ.EscapeString(it.ClientName),
				templ.EscapeString(it.EstimateNumber),
				templ.EscapeString(it.Total),
				templ.EscapeString(it.Updated),
				templ.EscapeString(it.ID), templ.EscapeString(it.ID), templ.EscapeString(it.ID),
				templ.EscapeString(it.ID), templ.EscapeString(it.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody>
</table>
</div>
</div>
`)
		return err
	})
}
