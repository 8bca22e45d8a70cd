package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
	"estimator/templates"
)

// HandleEstimateView renders the printable preview document for one estimate.
func HandleEstimateView(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		p, _, err := lib.Load(requestOwner(e), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return e.String(http.StatusNotFound, "Estimate not found")
			}
			log.Printf("estimate_view: could not load estimate %s: %v", id, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data := services.BuildExportData(p)
		return templates.EstimatePreviewPage(p.ID, data).Render(e.Request.Context(), e.Response)
	}
}
