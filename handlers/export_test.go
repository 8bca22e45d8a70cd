package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estimator/testhelpers"
)

func TestHandleEstimateExportCSV(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateExportCSV(lib)

	req := httptest.NewRequest(http.MethodGet, "/estimates/"+p.ID+"/export/csv", nil)
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Garage_Conversion_estimate.csv"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "Project,Garage Conversion") {
		t.Errorf("body should start with the project row, got %q", firstLine(body))
	}
	if !strings.Contains(body, "\nTotal,41") {
		t.Error("body should carry the grand total row")
	}
}

func TestHandleEstimateExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateExportExcel(lib)

	req := httptest.NewRequest(http.MethodGet, "/estimates/"+p.ID+"/export/xlsx", nil)
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Garage_Conversion_estimate.xlsx"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	// xlsx files are zip archives.
	if body := rec.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Error("body is not a zip archive")
	}
}

func TestHandleEstimateExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	p := testhelpers.TwoSectionProject()
	testhelpers.CreateTestEstimate(t, app, p)

	handler := HandleEstimateExportPDF(lib)

	req := httptest.NewRequest(http.MethodGet, "/estimates/"+p.ID+"/export/pdf", nil)
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Garage_Conversion_estimate.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("body is not a PDF document")
	}
}

func TestHandleEstimateExportCSV_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	lib := newTestLibrary(t, app)

	handler := HandleEstimateExportCSV(lib)

	req := httptest.NewRequest(http.MethodGet, "/estimates/missing/export/csv", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
