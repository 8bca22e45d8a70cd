package services

// ExportRow is one rendered line item in an Excel/PDF export.
type ExportRow struct {
	Description string
	Category    string
	Qty         string
	Unit        string
	UnitCost    float64
	Taxable     bool
	LineTotal   float64
}

// ExportSection is one section of the rendered estimate.
type ExportSection struct {
	Title    string // "Section 1: Kitchen"
	Rows     []ExportRow
	Subtotal float64
	Notes    string
}

// ExportData holds everything the Excel, PDF and preview renderers need,
// precomputed so the renderers stay purely presentational.
type ExportData struct {
	ProjectName    string
	EstimateNumber string
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	EstimateDate   string
	Notes          string
	Sections       []ExportSection
	Rates          Rates
	Totals         Totals
}

// BuildExportData flattens a project and its computed totals into the
// render-ready export shape.
func BuildExportData(p Project) ExportData {
	data := ExportData{
		ProjectName:    p.Name,
		EstimateNumber: p.EstimateNumber,
		ClientName:     p.ClientName,
		ClientPhone:    p.ClientPhone,
		ClientEmail:    p.ClientEmail,
		EstimateDate:   p.EstimateDate,
		Notes:          p.Notes,
		Rates:          p.Rates,
		Totals:         CalcTotals(p),
	}

	for i, sec := range p.Sections {
		exportSec := ExportSection{
			Title:    sectionTitle(i, sec),
			Subtotal: SectionSubtotal(sec),
			Notes:    sec.Notes,
		}
		for _, it := range sec.Items {
			exportSec.Rows = append(exportSec.Rows, ExportRow{
				Description: it.Description,
				Category:    it.Category,
				Qty:         it.Qty,
				Unit:        it.Unit,
				UnitCost:    it.UnitCost,
				Taxable:     it.Taxable,
				LineTotal:   ItemTotal(it),
			})
		}
		data.Sections = append(data.Sections, exportSec)
	}
	return data
}

func sectionTitle(index int, sec Section) string {
	return "Section " + itoa(index+1) + ": " + sec.Name
}

func itoa(n int) string {
	return formatNumber(float64(n))
}
