package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/store"
	"estimator/templates"
)

// HandleEstimateDelete removes an estimate and re-renders the list.
func HandleEstimateDelete(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		if err := lib.Delete(requestOwner(e), id); err != nil {
			log.Printf("estimate_delete: could not delete estimate %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete the estimate. Please try again.")
		}

		SetToast(e, "success", "Estimate deleted.")
		data, err := buildListData(lib, e)
		if err != nil {
			log.Printf("estimate_delete: could not reload list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return templates.EstimateListContent(data).Render(e.Request.Context(), e.Response)
	}
}
