package store

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
)

// RecordStore persists each estimate as one record in the "estimates"
// collection: the full document as a JSON field, plus a few denormalized
// columns for listing and lookup. The document identifier lives in the
// estimate_id column; PocketBase record IDs stay internal plumbing.
type RecordStore struct {
	app *pocketbase.PocketBase
}

func NewRecordStore(app *pocketbase.PocketBase) *RecordStore {
	return &RecordStore{app: app}
}

// LoadAll returns every estimate owned by userID, most recently updated
// first. Records whose document fails even the lenient migration are
// rebuilt from the denormalized columns instead of being dropped.
func (s *RecordStore) LoadAll(userID string) ([]services.Project, error) {
	col, err := s.app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	filter := "owner = {:owner}"
	if userID == "" {
		filter = "owner = ''"
	}
	records, err := s.app.FindRecordsByFilter(col,
		filter, "-updated", 0, 0,
		map[string]any{"owner": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	projects := make([]services.Project, 0, len(records))
	for _, rec := range records {
		projects = append(projects, s.decodeRecord(rec))
	}
	return projects, nil
}

// Load fetches a single estimate by its document identifier.
func (s *RecordStore) Load(id string) (services.Project, error) {
	rec, err := s.app.FindFirstRecordByData("estimates", "estimate_id", id)
	if err != nil {
		return services.Project{}, fmt.Errorf("estimate %s not found: %w", id, err)
	}
	return s.decodeRecord(rec), nil
}

// Save upserts one estimate. A project without an identifier gets a fresh
// one; the assigned identifier is returned either way.
func (s *RecordStore) Save(p services.Project) (string, error) {
	return s.save(p, nil)
}

// SaveFor is Save with an explicit owner, used when creating records.
func (s *RecordStore) SaveFor(userID string, p services.Project) (string, error) {
	return s.save(p, &userID)
}

func (s *RecordStore) save(p services.Project, owner *string) (string, error) {
	col, err := s.app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if p.ID == "" {
		p.ID = services.NewIdentifier()
	}

	rec, err := s.app.FindFirstRecordByData("estimates", "estimate_id", p.ID)
	if err != nil {
		rec = core.NewRecord(col)
		rec.Set("estimate_id", p.ID)
	}

	data, err := services.EncodeProject(p)
	if err != nil {
		return "", err
	}

	if owner != nil {
		rec.Set("owner", *owner)
	}
	rec.Set("name", p.Name)
	rec.Set("client_name", p.ClientName)
	rec.Set("data", string(data))

	if err := s.app.Save(rec); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return p.ID, nil
}

// Delete removes one estimate. Deleting an estimate that does not exist
// is not an error.
func (s *RecordStore) Delete(id string) error {
	rec, err := s.app.FindFirstRecordByData("estimates", "estimate_id", id)
	if err != nil {
		return nil
	}
	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// decodeRecord turns a stored record back into a Project, running the
// document through the migration pass so legacy shapes load. A document
// that is not even valid JSON is rebuilt from the record columns.
func (s *RecordStore) decodeRecord(rec *core.Record) services.Project {
	p, err := services.DecodeProject([]byte(rec.GetString("data")))
	if err != nil {
		log.Printf("store: estimate record %s has malformed document, rebuilding from columns: %v", rec.Id, err)
		p = services.MigrateProject(map[string]any{
			"id":         rec.GetString("estimate_id"),
			"name":       rec.GetString("name"),
			"clientName": rec.GetString("client_name"),
		})
	}
	if id := rec.GetString("estimate_id"); id != "" {
		p.ID = id
	}
	return p
}
