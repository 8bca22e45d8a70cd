package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estimator/services"
	"estimator/testhelpers"
)

func TestHandleItemAdd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemAdd(lib)

	req := httptest.NewRequest(http.MethodPost, "/api/estimates/"+p.ID+"/sections/"+p.Sections[1].ID+"/items", nil)
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", p.Sections[1].ID)
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
	items := got.Sections[1].Items
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	added := items[2]
	if added.Qty != "1" || added.Unit != "ea" || added.Category != services.CategoryMaterials || !added.Taxable {
		t.Errorf("new item missing defaults: %+v", added)
	}
}

func TestHandleItemAdd_MissingSection(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemAdd(lib)

	req := httptest.NewRequest(http.MethodPost, "/api/estimates/"+p.ID+"/sections/ghost/items", nil)
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", "ghost")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleItemUpdate_NormalizesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	target := p.Sections[0].Items[0]
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemUpdate(lib)

	body := `{"desc":"Framing lumber","category":" Labor ","qty":"02.50","unitCost":"$1,200.75","taxable":false}`
	req := httptest.NewRequest(http.MethodPatch,
		"/api/estimates/"+p.ID+"/sections/"+p.Sections[0].ID+"/items/"+target.ID,
		strings.NewReader(body))
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", p.Sections[0].ID)
	req.SetPathValue("itemId", target.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, _, _ := lib.Load("", p.ID)
	item := got.Sections[0].Item(target.ID)
	if item == nil {
		t.Fatal("item disappeared")
	}
	if item.Description != "Framing lumber" {
		t.Errorf("desc = %q", item.Description)
	}
	if item.Category != services.CategoryLabor {
		t.Errorf("category = %q, want labor", item.Category)
	}
	if item.Qty != "2.50" {
		t.Errorf("qty = %q, want 2.50", item.Qty)
	}
	if item.UnitCost != 1200.75 {
		t.Errorf("unitCost = %v, want 1200.75", item.UnitCost)
	}
	if item.Taxable {
		t.Error("taxable should have been cleared")
	}
	if item.Unit != target.Unit {
		t.Errorf("unit changed to %q although the patch omitted it", item.Unit)
	}
}

func TestHandleItemUpdate_PartialLeavesRest(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	target := p.Sections[0].Items[1]
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemUpdate(lib)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/estimates/"+p.ID+"/sections/"+p.Sections[0].ID+"/items/"+target.ID,
		strings.NewReader(`{"qty":"7"}`))
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", p.Sections[0].ID)
	req.SetPathValue("itemId", target.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	got, _, _ := lib.Load("", p.ID)
	item := got.Sections[0].Item(target.ID)
	if item.Qty != "7" {
		t.Errorf("qty = %q, want 7", item.Qty)
	}
	if item.Description != target.Description {
		t.Errorf("description changed to %q", item.Description)
	}
	if item.UnitCost != target.UnitCost {
		t.Errorf("unitCost changed to %v", item.UnitCost)
	}
	if item.Taxable != target.Taxable {
		t.Error("taxable flag changed")
	}
}

func TestHandleItemUpdate_BadBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemUpdate(lib)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/estimates/"+p.ID+"/sections/"+p.Sections[0].ID+"/items/"+p.Sections[0].Items[0].ID,
		strings.NewReader("not json"))
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", p.Sections[0].ID)
	req.SetPathValue("itemId", p.Sections[0].Items[0].ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	target := p.Sections[1].Items[0]
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemDelete(lib)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/estimates/"+p.ID+"/sections/"+p.Sections[1].ID+"/items/"+target.ID, nil)
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", p.Sections[1].ID)
	req.SetPathValue("itemId", target.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	got, _, _ := lib.Load("", p.ID)
	if got.Sections[1].Item(target.ID) != nil {
		t.Error("item still present after delete")
	}
	if len(got.Sections[1].Items) != 1 {
		t.Errorf("items = %d, want 1", len(got.Sections[1].Items))
	}
}

func TestHandleItemDelete_MissingItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleItemDelete(lib)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/estimates/"+p.ID+"/sections/"+p.Sections[0].ID+"/items/ghost", nil)
	req.SetPathValue("id", p.ID)
	req.SetPathValue("sectionId", p.Sections[0].ID)
	req.SetPathValue("itemId", "ghost")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
