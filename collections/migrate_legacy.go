package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"estimator/services"
)

// MigrateLegacyEstimates rewrites stored estimate documents that still use
// pre-section shapes: a top-level items array instead of sections, the old
// client field instead of clientName, or numeric quantities. Safe to call
// on every startup -- records already in the current shape are left alone.
func MigrateLegacyEstimates(app *pocketbase.PocketBase) error {
	estimatesCol, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("migrate: could not find estimates collection: %w", err)
	}

	records, err := app.FindAllRecords(estimatesCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query estimates: %w", err)
	}

	migrated := 0
	for _, rec := range records {
		var raw map[string]any
		if err := json.Unmarshal([]byte(rec.GetString("data")), &raw); err != nil {
			log.Printf("migrate: estimate %s has unreadable document, skipping: %v\n", rec.Id, err)
			continue
		}
		if !needsMigration(raw) {
			continue
		}

		p := services.MigrateProject(raw)
		if id := rec.GetString("estimate_id"); id != "" {
			p.ID = id
		}

		data, err := services.EncodeProject(p)
		if err != nil {
			log.Printf("migrate: estimate %s failed to re-encode, skipping: %v\n", rec.Id, err)
			continue
		}

		rec.Set("name", p.Name)
		rec.Set("client_name", p.ClientName)
		rec.Set("data", string(data))
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to save estimate %s: %v\n", rec.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: upgraded %d legacy estimate(s)\n", migrated)
	}
	return nil
}

// needsMigration reports whether a stored document uses any legacy shape.
func needsMigration(raw map[string]any) bool {
	if _, ok := raw["sections"].([]any); !ok {
		return true
	}
	if _, ok := raw["items"]; ok {
		return true
	}
	if _, ok := raw["client"]; ok {
		// An explicit empty clientName still counts as set; only a missing
		// or null value leaves the legacy field authoritative.
		if _, has := raw["clientName"].(string); !has {
			return true
		}
	}
	if sections, ok := raw["sections"].([]any); ok {
		for _, s := range sections {
			sm, ok := s.(map[string]any)
			if !ok {
				return true
			}
			items, ok := sm["items"].([]any)
			if !ok {
				return true
			}
			for _, it := range items {
				im, ok := it.(map[string]any)
				if !ok {
					return true
				}
				if _, numeric := im["qty"].(float64); numeric {
					return true
				}
			}
		}
	}
	return false
}
