package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/store"
)

// itemPatch is a partial line-item update. Pointer fields distinguish
// "not sent" from zero values. Qty and UnitCost arrive as strings so the
// handler can run them through the same normalizers the editor uses.
type itemPatch struct {
	Description *string `json:"desc"`
	Category    *string `json:"category"`
	Qty         *string `json:"qty"`
	Unit        *string `json:"unit"`
	UnitCost    *string `json:"unitCost"`
	Taxable     *bool   `json:"taxable"`
}

func (patch itemPatch) apply(it *services.Item) {
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Category != nil {
		it.Category = services.NormalizeCategory(*patch.Category)
	}
	if patch.Qty != nil {
		it.Qty = services.NormalizeQtyString(*patch.Qty)
	}
	if patch.Unit != nil {
		it.Unit = *patch.Unit
	}
	if patch.UnitCost != nil {
		it.UnitCost = services.ParseCurrency(*patch.UnitCost)
	}
	if patch.Taxable != nil {
		it.Taxable = *patch.Taxable
	}
}

// HandleItemAdd appends a default item to a section.
func HandleItemAdd(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "item_add")
		if err != nil {
			return err
		}

		sec := p.Section(e.Request.PathValue("sectionId"))
		if sec == nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
		}
		sec.Items = append(sec.Items, services.NewItem())
		return saveAndRespond(lib, e, "item_add", p)
	}
}

// HandleItemUpdate applies a partial update to one line item.
func HandleItemUpdate(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "item_update")
		if err != nil {
			return err
		}

		sec := p.Section(e.Request.PathValue("sectionId"))
		if sec == nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
		}
		item := sec.Item(e.Request.PathValue("itemId"))
		if item == nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
		}

		var patch itemPatch
		if err := json.NewDecoder(e.Request.Body).Decode(&patch); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "request body must be a JSON object"})
		}
		patch.apply(item)
		return saveAndRespond(lib, e, "item_update", p)
	}
}

// HandleItemDelete removes one line item. Sections may be left empty.
func HandleItemDelete(lib *store.Library) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := loadForEdit(lib, e, "item_delete")
		if err != nil {
			return err
		}

		sec := p.Section(e.Request.PathValue("sectionId"))
		if sec == nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
		}
		if !sec.RemoveItem(e.Request.PathValue("itemId")) {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
		}
		return saveAndRespond(lib, e, "item_delete", p)
	}
}
