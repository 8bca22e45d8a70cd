package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
	"estimator/templates"
)

// HandleEstimateCreate creates a fresh estimate and re-renders the list.
// An optional name form value overrides the default project name.
func HandleEstimateCreate(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			name = "Untitled Project"
		}

		p := services.NewProject(name)
		id, err := lib.SaveFor(requestOwner(e), p)
		if err != nil {
			log.Printf("estimate_create: could not save estimate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not create the estimate. It was captured locally and will need a retry.")
		}

		if e.Request.Header.Get("HX-Request") != "true" {
			return e.Redirect(http.StatusFound, "/estimates/"+id)
		}

		SetToast(e, "success", "Estimate created.")
		data, err := buildListData(lib, e)
		if err != nil {
			log.Printf("estimate_create: could not reload list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return templates.EstimateListContent(data).Render(e.Request.Context(), e.Response)
	}
}
