package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
)

// loadForEdit fetches one estimate and rejects edits while the store is in
// snapshot fallback.
func loadForEdit(lib *store.Library, e *core.RequestEvent, area string) (services.Project, error) {
	id := e.Request.PathValue("id")
	p, degraded, err := lib.Load(requestOwner(e), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return services.Project{}, e.JSON(http.StatusNotFound, map[string]string{"error": "estimate not found"})
		}
		log.Printf("%s: could not load estimate %s: %v", area, id, err)
		return services.Project{}, e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load estimate"})
	}
	if degraded {
		return services.Project{}, e.JSON(http.StatusServiceUnavailable, map[string]string{"error": "store unavailable, estimate is read-only"})
	}
	return p, nil
}

// saveAndRespond persists the edited estimate and returns it as JSON.
func saveAndRespond(lib *store.Library, e *core.RequestEvent, area string, p services.Project) error {
	p.Touch()
	if _, err := lib.Save(requestOwner(e), p); err != nil {
		log.Printf("%s: could not save estimate %s: %v", area, p.ID, err)
		return e.JSON(http.StatusServiceUnavailable, map[string]string{"error": "could not save estimate, changes captured locally"})
	}
	return e.JSON(http.StatusOK, p)
}

// HandleSectionAdd appends a new section. The optional JSON body may carry
// a name; otherwise the section is numbered after the existing ones.
func HandleSectionAdd(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "section_add")
		if err != nil {
			return err
		}

		var body struct {
			Name string `json:"name"`
		}
		if e.Request.Body != nil {
			_ = json.NewDecoder(e.Request.Body).Decode(&body)
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			name = fmt.Sprintf("Section %d", len(p.Sections)+1)
		}

		p.Sections = append(p.Sections, services.NewSection(name))
		return saveAndRespond(lib, e, "section_add", p)
	}
}

// HandleSectionDuplicate copies one section, items included, and inserts
// the copy right after the original.
func HandleSectionDuplicate(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "section_duplicate")
		if err != nil {
			return err
		}

		sectionID := e.Request.PathValue("sectionId")
		for i := range p.Sections {
			if p.Sections[i].ID != sectionID {
				continue
			}
			copied := p.Sections[i].Duplicate()
			p.Sections = append(p.Sections[:i+1], append([]services.Section{copied}, p.Sections[i+1:]...)...)
			return saveAndRespond(lib, e, "section_duplicate", p)
		}
		return e.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
	}
}

// HandleSectionDelete removes a section and every item inside it.
func HandleSectionDelete(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "section_delete")
		if err != nil {
			return err
		}

		if !p.RemoveSection(e.Request.PathValue("sectionId")) {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
		}
		return saveAndRespond(lib, e, "section_delete", p)
	}
}
