package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// MigrateProject normalizes a raw estimate document into the current
// Project shape. It coalesces every known legacy variant in one pass:
//
//   - a flat "client" string backfills the structured "clientName"
//   - a flat "items" array (pre-sections schema) is wrapped into a single
//     section named "Section 1" and the legacy key dropped
//   - quantities stored as numbers become their string form
//   - missing "rates" or "sections" are synthesized with safe defaults
//
// The pass is idempotent: running it on an already-current document
// changes nothing, so callers may apply it unconditionally at load time.
func MigrateProject(raw map[string]any) Project {
	p := Project{
		ID:             asString(raw["id"]),
		Name:           asString(raw["name"]),
		ClientName:     coalesceString(raw["clientName"], raw["client"]),
		ClientPhone:    asString(raw["clientPhone"]),
		ClientEmail:    asString(raw["clientEmail"]),
		EstimateNumber: asString(raw["estimateNumber"]),
		EstimateDate:   asString(raw["estimateDate"]),
		Notes:          asString(raw["notes"]),
		Rates:          migrateRates(raw["rates"]),
		CreatedAt:      asInt64(raw["createdAt"]),
		UpdatedAt:      asInt64(raw["updatedAt"]),
	}

	if p.ID == "" {
		p.ID = NewIdentifier()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixMilli()
	}
	if p.UpdatedAt == 0 {
		p.UpdatedAt = p.CreatedAt
	}

	if list, ok := raw["sections"].([]any); ok {
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok {
				p.Sections = append(p.Sections, migrateSection(m))
			}
		}
	}

	// Pre-sections documents kept a flat item list; wrap it (or seed a
	// default item) into a single section.
	if len(p.Sections) == 0 {
		items := migrateItems(raw["items"])
		if len(items) == 0 {
			items = []Item{NewItem()}
		}
		p.Sections = []Section{{
			ID:    NewIdentifier(),
			Name:  "Section 1",
			Items: items,
		}}
	}

	return p
}

// DecodeProject parses a JSON estimate document through the migration
// pass. Only malformed JSON is an error; structurally incomplete records
// are repaired with defaults.
func DecodeProject(data []byte) (Project, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Project{}, fmt.Errorf("decode project: %w", err)
	}
	return MigrateProject(raw), nil
}

// DecodeProjectList parses a JSON value that may be either a single
// estimate document or an array of them. Older snapshots persisted a lone
// object; current ones persist the full list.
func DecodeProjectList(data []byte) ([]Project, error) {
	var rawList []map[string]any
	if err := json.Unmarshal(data, &rawList); err == nil {
		projects := make([]Project, 0, len(rawList))
		for _, raw := range rawList {
			projects = append(projects, MigrateProject(raw))
		}
		return projects, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode project list: %w", err)
	}
	return []Project{MigrateProject(raw)}, nil
}

// EncodeProject serializes a project in the current document schema.
func EncodeProject(p Project) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode project %s: %w", p.ID, err)
	}
	return data, nil
}

func migrateSection(raw map[string]any) Section {
	s := Section{
		ID:    asString(raw["id"]),
		Name:  asString(raw["name"]),
		Notes: asString(raw["notes"]),
		Items: migrateItems(raw["items"]),
	}
	if s.ID == "" {
		s.ID = NewIdentifier()
	}
	return s
}

func migrateItems(raw any) []Item {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var items []Item
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, migrateItem(m))
		}
	}
	return items
}

func migrateItem(raw map[string]any) Item {
	it := Item{
		ID:          asString(raw["id"]),
		Description: asString(raw["desc"]),
		Category:    asString(raw["category"]),
		Qty:         asQtyString(raw["qty"]),
		Unit:        asString(raw["unit"]),
		UnitCost:    asFloat(raw["unitCost"]),
		Taxable:     asBool(raw["taxable"]),
	}
	if it.ID == "" {
		it.ID = NewIdentifier()
	}
	if it.Category == "" {
		it.Category = CategoryMaterials
	}
	return it
}

func migrateRates(raw any) Rates {
	m, ok := raw.(map[string]any)
	if !ok {
		return Rates{}
	}
	return Rates{
		TaxPct:         asFloat(m["taxPct"]),
		OverheadPct:    asFloat(m["overheadPct"]),
		ProfitPct:      asFloat(m["profitPct"]),
		ContingencyPct: asFloat(m["contingencyPct"]),
	}
}

// ── loose-typed field coalescers ─────────────────────────────────────────

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// coalesceString falls through only on an absent or JSON-null value.
// An explicit empty string is a real value and is kept, matching how the
// legacy documents coalesced these fields.
func coalesceString(vals ...any) string {
	for _, v := range vals {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// asQtyString accepts the quantity either as the stored string or as a
// bare number from very old documents.
func asQtyString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return ""
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finiteOrZero(n)
	case int:
		return float64(n)
	case string:
		return ParseCurrency(n)
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
