package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
)

// maxImportSize caps uploaded CSV files at 5 MB.
const maxImportSize = 5 << 20

// HandleEstimateImportCSV replaces the items of the estimate's first
// section with the items parsed from an uploaded CSV file. Files exported
// by this app round-trip; plain item tables from spreadsheets work too as
// long as they carry the standard header row.
func HandleEstimateImportCSV(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "import_csv")
		if err != nil {
			return err
		}

		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Could not read the uploaded file.")
		}
		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "No file was uploaded.")
		}
		defer file.Close()

		text, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			log.Printf("import_csv: could not read upload for %s: %v", p.ID, err)
			return ErrorToast(e, http.StatusBadRequest, "Could not read the uploaded file.")
		}

		items := services.ParseItemsCSV(string(text))
		if len(items) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "No items found in that file.")
		}

		if len(p.Sections) == 0 {
			sec := services.NewSection("Section 1")
			sec.Items = nil
			p.Sections = append(p.Sections, sec)
		}
		p.Sections[0].Items = items

		p.Touch()
		if _, err := lib.Save(requestOwner(e), p); err != nil {
			log.Printf("import_csv: could not save estimate %s: %v", p.ID, err)
			return ErrorToast(e, http.StatusServiceUnavailable, "Could not save the import. Changes were captured locally.")
		}

		SetToast(e, "success", "Items imported.")
		e.Response.Header().Set("HX-Redirect", "/estimates/"+p.ID)
		return e.String(http.StatusOK, "imported")
	}
}
