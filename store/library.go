package store

import (
	"errors"
	"log"

	"estimator/services"
)

// Library is the estimate access layer the handlers talk to. It reads and
// writes through the record store and keeps the local snapshot current, so
// a database outage degrades to read-only instead of a blank screen.
type Library struct {
	primary  ProjectStore
	snapshot *SnapshotStore
}

func NewLibrary(primary ProjectStore, snapshot *SnapshotStore) *Library {
	return &Library{primary: primary, snapshot: snapshot}
}

// LoadAll returns every estimate owned by userID. A non-empty record store
// answers directly and refreshes the snapshot. An empty record store is
// backfilled from the snapshot (captured saves from an earlier outage), or
// failing that from a freshly created default estimate, so the caller never
// starts from nothing. When the record store is unreachable it serves the
// last snapshot instead; degraded reports whether that outage path answered.
func (l *Library) LoadAll(userID string) (projects []services.Project, degraded bool, err error) {
	projects, err = l.primary.LoadAll(userID)
	if err == nil {
		if len(projects) > 0 {
			if snapErr := l.snapshot.Save(projects); snapErr != nil {
				log.Printf("store: snapshot refresh failed: %v", snapErr)
			}
			return projects, false, nil
		}
		return l.restoreOrDefault(userID), false, nil
	}
	if !errors.Is(err, ErrStoreUnavailable) {
		return nil, false, err
	}

	log.Printf("store: record store unavailable, serving snapshot: %v", err)
	projects, snapErr := l.snapshot.Load()
	if snapErr != nil {
		log.Printf("store: snapshot fallback failed: %v", snapErr)
		return nil, true, err
	}
	return projects, true, nil
}

// restoreOrDefault covers the healthy-but-empty record store: estimates
// captured in the snapshot are pushed back into it, and with no snapshot
// either a default estimate is created so there is always something to
// open. Writes back to the record store are best-effort; the in-memory
// result is returned either way.
func (l *Library) restoreOrDefault(userID string) []services.Project {
	projects, err := l.snapshot.Load()
	if err != nil {
		log.Printf("store: snapshot read failed: %v", err)
	}
	if len(projects) == 0 {
		p := services.NewProject("Sample Project")
		projects = []services.Project{p}
	}
	for i := range projects {
		if _, err := l.SaveFor(userID, projects[i]); err != nil {
			log.Printf("store: restore of estimate %s failed: %v", projects[i].ID, err)
		}
	}
	return projects
}

// Load returns one estimate by its identifier, falling back to the snapshot
// the same way LoadAll does.
func (l *Library) Load(userID, id string) (services.Project, bool, error) {
	projects, degraded, err := l.LoadAll(userID)
	if err != nil && !degraded {
		return services.Project{}, false, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, degraded, nil
		}
	}
	return services.Project{}, degraded, ErrNotFound
}

// Save writes one estimate through the record store. On failure the current
// in-memory copy is still captured in the snapshot so the edit is not lost
// outright, and the error is returned for the caller to surface.
func (l *Library) Save(userID string, p services.Project) (string, error) {
	id, err := l.primary.Save(p)
	if err == nil {
		return id, nil
	}
	if p.ID == "" {
		p.ID = services.NewIdentifier()
	}
	l.captureFailedSave(p)
	return p.ID, err
}

// SaveFor is Save with an explicit owner, used when creating estimates.
func (l *Library) SaveFor(userID string, p services.Project) (string, error) {
	type ownedSaver interface {
		SaveFor(userID string, p services.Project) (string, error)
	}
	if s, ok := l.primary.(ownedSaver); ok {
		id, err := s.SaveFor(userID, p)
		if err == nil {
			return id, nil
		}
		if p.ID == "" {
			p.ID = services.NewIdentifier()
		}
		l.captureFailedSave(p)
		return p.ID, err
	}
	return l.Save(userID, p)
}

// Delete removes one estimate and drops it from the snapshot.
func (l *Library) Delete(userID, id string) error {
	if err := l.primary.Delete(id); err != nil {
		return err
	}
	projects, err := l.snapshot.Load()
	if err != nil || len(projects) == 0 {
		return nil
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if snapErr := l.snapshot.Save(kept); snapErr != nil {
		log.Printf("store: snapshot prune failed: %v", snapErr)
	}
	return nil
}

func (l *Library) captureFailedSave(p services.Project) {
	projects, err := l.snapshot.Load()
	if err != nil {
		log.Printf("store: snapshot read during failed save: %v", err)
		projects = nil
	}
	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}
	if err := l.snapshot.Save(projects); err != nil {
		log.Printf("store: snapshot capture during failed save: %v", err)
	}
}
