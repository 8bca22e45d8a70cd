// Package services holds the estimate computation core: the project data
// model, totals cascade, CSV codec, and text normalizers. Nothing in this
// package touches the database or the HTTP layer.
package services

import (
	"strings"
	"time"
)

// Item categories. Unknown category strings are tolerated everywhere and
// grouped under their own key in the totals breakdown.
const (
	CategoryMaterials   = "materials"
	CategoryLabor       = "labor"
	CategorySubcontract = "subcontract"
	CategoryOther       = "other"
)

var CategoryOptions = []string{CategoryMaterials, CategoryLabor, CategorySubcontract, CategoryOther}

// NormalizeCategory lowercases and trims a category label, defaulting
// empty values to materials. Unknown labels pass through unchanged.
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryMaterials
	}
	return s
}

// Item is one line entry of an estimate section. Qty is kept as the raw
// decimal string the user typed (so in-progress input like "2." survives a
// save); QtyValue converts it for arithmetic.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"desc"`
	Category    string  `json:"category"`
	Qty         string  `json:"qty"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unitCost"`
	Taxable     bool    `json:"taxable"`
}

// Section is a named, ordered group of items. Slice order is display and
// export order.
type Section struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
	Notes string `json:"notes"`
}

// Rates are the four cascading markup percentages. They are applied
// literally, with no clamping; negative or oversized values are allowed.
type Rates struct {
	TaxPct         float64 `json:"taxPct"`
	OverheadPct    float64 `json:"overheadPct"`
	ProfitPct      float64 `json:"profitPct"`
	ContingencyPct float64 `json:"contingencyPct"`
}

// Project is a single contractor estimate document. Timestamps are unix
// milliseconds to stay compatible with documents written by older clients.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ClientName     string    `json:"clientName"`
	ClientPhone    string    `json:"clientPhone"`
	ClientEmail    string    `json:"clientEmail"`
	EstimateNumber string    `json:"estimateNumber"`
	EstimateDate   string    `json:"estimateDate"`
	Sections       []Section `json:"sections"`
	Rates          Rates     `json:"rates"`
	Notes          string    `json:"notes"`
	CreatedAt      int64     `json:"createdAt"`
	UpdatedAt      int64     `json:"updatedAt"`

	// LegacyItems carries a pre-sections flat item list between decode and
	// migration. It is never serialized; MigrateProject wraps it into
	// "Section 1" and clears it.
	LegacyItems []Item `json:"-"`
}

// NewItem returns an empty default line item with a fresh identifier.
func NewItem() Item {
	return Item{
		ID:       NewIdentifier(),
		Category: CategoryMaterials,
		Qty:      "1",
		Unit:     "ea",
		Taxable:  true,
	}
}

// NewSection returns a section seeded with one default item.
func NewSection(name string) Section {
	return Section{
		ID:    NewIdentifier(),
		Name:  name,
		Items: []Item{NewItem()},
	}
}

// NewProject returns an empty estimate with one default section and the
// default markup rates (10% profit, everything else zero).
func NewProject(name string) Project {
	now := time.Now().UnixMilli()
	return Project{
		ID:           NewIdentifier(),
		Name:         name,
		Sections:     []Section{NewSection("Section 1")},
		Rates:        Rates{ProfitPct: 10},
		EstimateDate: time.Now().Format("2006-01-02"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch refreshes the project's updated timestamp. Every mutating handler
// calls this before saving.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UnixMilli()
}

// Duplicate deep-copies the project and re-keys every identifier so the
// copy and the original never share section or item IDs.
func (p Project) Duplicate() Project {
	now := time.Now().UnixMilli()
	copied := p
	copied.ID = NewIdentifier()
	copied.Name = p.Name + " (copy)"
	copied.CreatedAt = now
	copied.UpdatedAt = now
	copied.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		copied.Sections[i] = s.Duplicate()
		copied.Sections[i].Name = s.Name
	}
	copied.LegacyItems = nil
	return copied
}

// Duplicate deep-copies the section with fresh identifiers and a
// "(copy)" suffix on the name.
func (s Section) Duplicate() Section {
	copied := s
	copied.ID = NewIdentifier()
	copied.Name = s.Name + " (copy)"
	copied.Items = make([]Item, len(s.Items))
	for i, it := range s.Items {
		copied.Items[i] = it
		copied.Items[i].ID = NewIdentifier()
	}
	return copied
}

// Section returns a pointer to the section with the given ID, or nil.
func (p *Project) Section(sectionID string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == sectionID {
			return &p.Sections[i]
		}
	}
	return nil
}

// RemoveSection deletes a section and, by value semantics, every item it
// owns. Reports whether a section was removed.
func (p *Project) RemoveSection(sectionID string) bool {
	for i := range p.Sections {
		if p.Sections[i].ID == sectionID {
			p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns a pointer to the item with the given ID, or nil.
func (s *Section) Item(itemID string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// RemoveItem deletes one item from the section. Sections may become empty
// through deletion.
func (s *Section) RemoveItem(itemID string) bool {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return true
		}
	}
	return false
}
