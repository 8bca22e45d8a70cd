// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/collections"
	"estimator/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestEstimate saves a full estimate document and returns its record.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, p services.Project) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	if p.ID == "" {
		p.ID = services.NewIdentifier()
	}
	data, err := services.EncodeProject(p)
	if err != nil {
		t.Fatalf("failed to encode test estimate: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate_id", p.ID)
	record.Set("name", p.Name)
	record.Set("client_name", p.ClientName)
	record.Set("data", string(data))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateRawEstimate saves an estimate record with an arbitrary document body,
// used to exercise legacy document shapes.
func CreateRawEstimate(t *testing.T, app *pocketbase.PocketBase, estimateID, name, rawDoc string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate_id", estimateID)
	record.Set("name", name)
	record.Set("data", rawDoc)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save raw estimate: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

// TwoSectionProject builds the estimate used across computation tests:
// two sections, four items, mixed taxable flags and categories.
func TwoSectionProject() services.Project {
	p := services.NewProject("Garage Conversion")
	p.ClientName = "Avery Client"
	p.Rates = services.Rates{TaxPct: 10, OverheadPct: 0, ProfitPct: 0, ContingencyPct: 0}
	p.Sections = []services.Section{
		{
			ID:   services.NewIdentifier(),
			Name: "Section A",
			Items: []services.Item{
				{ID: services.NewIdentifier(), Description: "Lumber", Category: services.CategoryMaterials, Qty: "2", Unit: "ea", UnitCost: 5, Taxable: true},
				{ID: services.NewIdentifier(), Description: "Rough labor", Category: services.CategoryLabor, Qty: "3", Unit: "hr", UnitCost: 10, Taxable: false},
			},
		},
		{
			ID:   services.NewIdentifier(),
			Name: "Section B",
			Items: []services.Item{
				{ID: services.NewIdentifier(), Description: "Fasteners", Category: services.CategoryMaterials, Qty: "0", Unit: "lot", UnitCost: 100, Taxable: true},
				{ID: services.NewIdentifier(), Description: "Paint", Category: services.CategoryOther, Qty: "", Unit: "gal", UnitCost: 45, Taxable: true},
			},
		},
	}
	return p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
