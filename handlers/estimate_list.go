package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"estimator/store"
	"estimator/templates"
)

// HandleEstimateList renders the estimates overview. HTMX requests get just
// the list fragment; everything else gets the full page.
func HandleEstimateList(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildListData(lib, e)
		if err != nil {
			log.Printf("estimate_list: could not load estimates: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimateListContent(data)
		} else {
			component = templates.EstimateListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
