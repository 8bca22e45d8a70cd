package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	description string
	category    string
	qty         string
	unit        string
	unitCost    float64
	taxable     bool
}

type sectionDef struct {
	name  string
	notes string
	items []itemDef
}

type estimateDef struct {
	name        string
	clientName  string
	clientPhone string
	clientEmail string
	notes       string
	rates       services.Rates
	sections    []sectionDef
}

// ── Sample data ──────────────────────────────────────────────────────────

var sampleEstimates = []estimateDef{
	{
		name:        "Kitchen Remodel",
		clientName:  "Dana Whitfield",
		clientPhone: "(555) 014-2237",
		clientEmail: "dana.whitfield@example.com",
		notes:       "Quote valid for 30 days. Permit fees billed at cost.",
		rates: services.Rates{
			TaxPct:         8.25,
			OverheadPct:    10,
			ProfitPct:      12,
			ContingencyPct: 5,
		},
		sections: []sectionDef{
			{
				name:  "Demolition",
				notes: "Dumpster rental included, haul-away on day 2.",
				items: []itemDef{
					{"Remove existing cabinets and counters", services.CategoryLabor, "16", "hr", 55, false},
					{"Dumpster rental (10 yd)", services.CategoryOther, "1", "ea", 425, true},
				},
			},
			{
				name: "Cabinets & Counters",
				items: []itemDef{
					{"Shaker cabinets, painted maple", services.CategoryMaterials, "14", "lf", 310, true},
					{"Quartz countertop, fabricated and installed", services.CategorySubcontract, "42", "sf", 85, true},
					{"Cabinet installation", services.CategoryLabor, "24", "hr", 65, false},
				},
			},
			{
				name: "Electrical",
				items: []itemDef{
					{"Under-cabinet lighting circuit", services.CategorySubcontract, "1", "ea", 680, true},
					{"GFCI outlets", services.CategoryMaterials, "4", "ea", 28.5, true},
				},
			},
		},
	},
	{
		name:       "Deck Replacement",
		clientName: "Marcus & Lena Ortiz",
		rates: services.Rates{
			TaxPct:    8.25,
			ProfitPct: 10,
		},
		sections: []sectionDef{
			{
				name: "Framing",
				items: []itemDef{
					{"PT 2x8 joists", services.CategoryMaterials, "28", "ea", 19.75, true},
					{"Joist hangers and fasteners", services.CategoryMaterials, "1", "lot", 240, true},
					{"Framing labor", services.CategoryLabor, "32", "hr", 58, false},
				},
			},
			{
				name: "Decking",
				items: []itemDef{
					{"Composite deck boards", services.CategoryMaterials, "460", "lf", 4.1, true},
					{"Install decking and trim", services.CategoryLabor, "20", "hr", 58, false},
				},
			},
		},
	},
}

// Seed populates the estimates collection with sample data. Idempotent --
// returns early if any estimate records already exist.
func Seed(app *pocketbase.PocketBase) error {
	estimatesCol, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("seed: could not find estimates collection: %w", err)
	}

	existing, err := app.FindAllRecords(estimatesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query estimates: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	for i, def := range sampleEstimates {
		p := buildEstimate(def, i+1)

		data, err := services.EncodeProject(p)
		if err != nil {
			return fmt.Errorf("seed: encode estimate %q: %w", def.name, err)
		}

		r := core.NewRecord(estimatesCol)
		r.Set("estimate_id", p.ID)
		r.Set("name", p.Name)
		r.Set("client_name", p.ClientName)
		r.Set("data", string(data))
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save estimate %q: %w", def.name, err)
		}
	}

	log.Printf("seed: created %d sample estimate(s)\n", len(sampleEstimates))
	return nil
}

func buildEstimate(def estimateDef, seq int) services.Project {
	p := services.NewProject(def.name)
	p.ClientName = def.clientName
	p.ClientPhone = def.clientPhone
	p.ClientEmail = def.clientEmail
	p.EstimateNumber = fmt.Sprintf("EST-%04d", seq)
	p.Notes = def.notes
	p.Rates = def.rates

	p.Sections = p.Sections[:0]
	for _, sd := range def.sections {
		s := services.NewSection(sd.name)
		s.Notes = sd.notes
		s.Items = s.Items[:0]
		for _, id := range sd.items {
			item := services.NewItem()
			item.Description = id.description
			item.Category = id.category
			item.Qty = id.qty
			item.Unit = id.unit
			item.UnitCost = id.unitCost
			item.Taxable = id.taxable
			s.Items = append(s.Items, item)
		}
		p.Sections = append(p.Sections, s)
	}
	return p
}
