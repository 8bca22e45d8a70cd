// Package handlers wires HTTP routes to the estimate services. Handlers
// close over the store.Library so persistence failures degrade to the
// local snapshot instead of erroring out the page.
package handlers

import (
	"time"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
	"estimator/templates"
)

// requestOwner returns the authenticated record id, or "" for anonymous
// requests. Estimates saved anonymously share one unowned bucket.
func requestOwner(e *core.RequestEvent) string {
	if e.Auth != nil {
		return e.Auth.Id
	}
	return ""
}

// buildListData loads every estimate for the request owner and shapes it
// for the list template.
func buildListData(lib *store.Library, e *core.RequestEvent) (templates.EstimateListData, error) {
	projects, degraded, err := lib.LoadAll(requestOwner(e))
	if err != nil && !degraded {
		return templates.EstimateListData{}, err
	}

	data := templates.EstimateListData{
		TotalCount: len(projects),
		Degraded:   degraded,
	}
	for _, p := range projects {
		totals := services.CalcTotals(p)
		data.Items = append(data.Items, templates.EstimateListItem{
			ID:             p.ID,
			Name:           p.Name,
			ClientName:     p.ClientName,
			EstimateNumber: p.EstimateNumber,
			Total:          services.FormatUSD(totals.Total),
			Updated:        formatUpdated(p.UpdatedAt),
		})
	}
	return data, nil
}

func formatUpdated(unixMilli int64) string {
	if unixMilli == 0 {
		return ""
	}
	return time.UnixMilli(unixMilli).Format("02 Jan 2006")
}
