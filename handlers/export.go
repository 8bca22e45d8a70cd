package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
)

// loadForExport fetches an estimate for a download route. Exports still
// work off the snapshot when the primary store is down.
func loadForExport(lib *store.Library, e *core.RequestEvent, area string) (services.Project, error) {
	id := e.Request.PathValue("id")
	if id == "" {
		return services.Project{}, e.String(http.StatusBadRequest, "Missing estimate ID")
	}
	p, _, err := lib.Load(requestOwner(e), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return services.Project{}, e.String(http.StatusNotFound, "Estimate not found")
		}
		log.Printf("%s: could not load estimate %s: %v", area, id, err)
		return services.Project{}, e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return p, nil
}

// HandleEstimateExportCSV downloads the estimate as a CSV document.
func HandleEstimateExportCSV(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForExport(lib, e, "export_csv")
		if err != nil {
			return err
		}

		body := services.ExportCSV(p, services.CalcTotals(p))

		e.Response.Header().Set("Content-Type", "text/csv; charset=utf-8")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ExportFilename(p)))
		e.Response.Write([]byte(body))
		return nil
	}
}

// HandleEstimateExportExcel downloads the estimate as an Excel workbook.
func HandleEstimateExportExcel(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForExport(lib, e, "export_excel")
		if err != nil {
			return err
		}

		xlsxBytes, err := services.GenerateExcel(services.BuildExportData(p))
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := services.SanitizeFilename(p.Name) + "_estimate.xlsx"
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleEstimateExportPDF downloads the estimate as a PDF document.
func HandleEstimateExportPDF(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForExport(lib, e, "export_pdf")
		if err != nil {
			return err
		}

		pdfBytes, err := services.GeneratePDF(services.BuildExportData(p))
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := services.SanitizeFilename(p.Name) + "_estimate.pdf"
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
