package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
)

// HandleEstimateJSON returns the full estimate document, already run
// through the migration pass, for editor clients.
func HandleEstimateJSON(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		p, _, err := lib.Load(requestOwner(e), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return e.JSON(http.StatusNotFound, map[string]string{"error": "estimate not found"})
			}
			log.Printf("estimate_json: could not load estimate %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load estimate"})
		}
		return e.JSON(http.StatusOK, p)
	}
}

// HandleEstimateUpdate applies a partial document update. The request body
// is a JSON object whose top-level fields replace the stored ones; the
// merged document is normalized before saving so legacy field names and
// numeric quantities in the patch are accepted too.
func HandleEstimateUpdate(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		p, degraded, err := lib.Load(requestOwner(e), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return e.JSON(http.StatusNotFound, map[string]string{"error": "estimate not found"})
			}
			log.Printf("estimate_update: could not load estimate %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load estimate"})
		}
		if degraded {
			return e.JSON(http.StatusServiceUnavailable, map[string]string{"error": "store unavailable, estimate is read-only"})
		}

		body, err := io.ReadAll(e.Request.Body)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "could not read request body"})
		}
		var patch map[string]any
		if err := json.Unmarshal(body, &patch); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "request body must be a JSON object"})
		}

		merged, err := mergePatch(p, patch)
		if err != nil {
			log.Printf("estimate_update: could not merge patch for %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not apply update"})
		}
		merged.ID = p.ID
		merged.CreatedAt = p.CreatedAt
		merged.Touch()

		if _, err := lib.Save(requestOwner(e), merged); err != nil {
			log.Printf("estimate_update: could not save estimate %s: %v", id, err)
			return e.JSON(http.StatusServiceUnavailable, map[string]string{"error": "could not save estimate, changes captured locally"})
		}
		return e.JSON(http.StatusOK, merged)
	}
}

// mergePatch overlays the patch object onto the current document and runs
// the result through the normal decode path.
func mergePatch(p services.Project, patch map[string]any) (services.Project, error) {
	current, err := services.EncodeProject(p)
	if err != nil {
		return services.Project{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(current, &raw); err != nil {
		return services.Project{}, err
	}
	for k, v := range patch {
		raw[k] = v
	}
	return services.MigrateProject(raw), nil
}
