package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estimator/services"
	"estimator/testhelpers"
)

func TestHandleEstimateJSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateJSON(newTestLibrary(t, app))

	req := httptest.NewRequest(http.MethodGet, "/api/estimates/"+p.ID, nil)
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got services.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a project document: %v", err)
	}
	if got.ID != p.ID || got.Name != "Garage Conversion" {
		t.Errorf("got %+v", got)
	}
}

func TestHandleEstimateUpdate_PatchesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateUpdate(lib)

	body := `{"clientName":"New Client","rates":{"taxPct":5,"profitPct":15},"notes":"updated"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/estimates/"+p.ID, strings.NewReader(body))
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _, err := lib.Load("", p.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ClientName != "New Client" || got.Notes != "updated" {
		t.Errorf("patched = %+v", got)
	}
	if got.Rates.TaxPct != 5 || got.Rates.ProfitPct != 15 {
		t.Errorf("rates = %+v", got.Rates)
	}
	// Unsent fields keep their values.
	if got.Name != "Garage Conversion" || len(got.Sections) != 2 {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.UpdatedAt < p.UpdatedAt {
		t.Error("update must refresh the timestamp")
	}
	if got.ID != p.ID || got.CreatedAt != p.CreatedAt {
		t.Error("identity fields must survive a patch")
	}
}

func TestHandleEstimateUpdate_AcceptsLegacyShapes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := services.NewProject("Legacy Patch")
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateUpdate(lib)

	// A client field and numeric qty, as an old editor would send them.
	body := `{"client":"Old Pal","sections":[{"name":"S","items":[{"desc":"Pipe","qty":3,"unitCost":2}]}]}`
	req := httptest.NewRequest(http.MethodPatch, "/api/estimates/"+p.ID, strings.NewReader(body))
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _, err := lib.Load("", p.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ClientName != "Old Pal" {
		t.Errorf("legacy client not coalesced: %+v", got)
	}
	if len(got.Sections) != 1 || got.Sections[0].Items[0].Qty != "3" {
		t.Errorf("legacy qty not normalized: %+v", got.Sections)
	}
}

func TestHandleEstimateUpdate_BadBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	p := services.NewProject("Bad Patch")
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateUpdate(newTestLibrary(t, app))

	req := httptest.NewRequest(http.MethodPatch, "/api/estimates/"+p.ID, strings.NewReader("[1,2,3]"))
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
