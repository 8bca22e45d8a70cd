package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/store"
	"estimator/templates"
)

// HandleEstimateDuplicate deep-copies an estimate under a fresh identifier
// and re-renders the list.
func HandleEstimateDuplicate(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		p, _, err := lib.Load(requestOwner(e), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrorToast(e, http.StatusNotFound, "That estimate no longer exists.")
			}
			log.Printf("estimate_duplicate: could not load estimate %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		copied := p.Duplicate()
		if _, err := lib.SaveFor(requestOwner(e), copied); err != nil {
			log.Printf("estimate_duplicate: could not save copy of %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not duplicate the estimate. Please try again.")
		}

		SetToast(e, "success", "Estimate duplicated.")
		data, err := buildListData(lib, e)
		if err != nil {
			log.Printf("estimate_duplicate: could not reload list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return templates.EstimateListContent(data).Render(e.Request.Context(), e.Response)
	}
}
