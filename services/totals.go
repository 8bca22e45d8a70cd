package services

import "math"

// Totals is the computed output of the markup cascade. All amounts are in
// the estimate's base currency unit, unformatted.
type Totals struct {
	Subtotal    float64
	Tax         float64
	Overhead    float64
	Profit      float64
	Contingency float64
	Total       float64
	ByCategory  map[string]float64
}

// AllItems flattens the items across all sections in order, falling back
// to a legacy flat item list for documents that predate sections.
func AllItems(p Project) []Item {
	if len(p.Sections) > 0 {
		var items []Item
		for _, s := range p.Sections {
			items = append(items, s.Items...)
		}
		return items
	}
	return p.LegacyItems
}

// ItemTotal is the derived line total: quantity times unit cost, with
// invalid or non-finite inputs counting as zero.
func ItemTotal(it Item) float64 {
	return QtyValue(it.Qty) * finiteOrZero(it.UnitCost)
}

// CalcTotals runs the markup cascade over a project. The order is a
// business rule, not an accident: overhead applies to the subtotal, profit
// compounds on subtotal+overhead+tax, and contingency compounds on all
// prior markups including profit. It never fails; a project with no items
// or zeroed rates yields a well-formed all-zero result.
func CalcTotals(p Project) Totals {
	items := AllItems(p)

	var subtotal, taxableBase float64
	byCategory := make(map[string]float64)
	for _, it := range items {
		line := ItemTotal(it)
		subtotal += line
		if it.Taxable {
			taxableBase += line
		}
		byCategory[it.Category] += line
	}

	tax := p.Rates.TaxPct / 100 * taxableBase
	overhead := p.Rates.OverheadPct / 100 * subtotal
	profit := p.Rates.ProfitPct / 100 * (subtotal + overhead + tax)
	contingency := p.Rates.ContingencyPct / 100 * (subtotal + overhead + tax + profit)

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		Overhead:    overhead,
		Profit:      profit,
		Contingency: contingency,
		Total:       subtotal + tax + overhead + profit + contingency,
		ByCategory:  byCategory,
	}
}

// SectionSubtotal sums the line totals of a single section.
func SectionSubtotal(s Section) float64 {
	var sum float64
	for _, it := range s.Items {
		sum += ItemTotal(it)
	}
	return sum
}

func finiteOrZero(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
