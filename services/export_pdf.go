package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates the printable estimate document using maroto/v2 and
// returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	for _, sec := range data.Sections {
		addSectionTable(m, sec)
	}
	addEstimateSummary(m, data)
	if data.Notes != "" {
		addEstimateNotes(m, data.Notes)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addEstimateHeader adds the title block: project name, estimate number,
// date, and client details.
func addEstimateHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("ESTIMATE", props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(data.ProjectName, props.Text{
					Size:  12,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	left := props.Text{Size: 9, Align: align.Left, Color: gray}
	right := props.Text{Size: 9, Align: align.Right, Color: gray}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Client: "+data.ClientName, left)),
			col.New(6).Add(text.New("Estimate #: "+data.EstimateNumber, right)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Phone: "+data.ClientPhone, left)),
			col.New(6).Add(text.New("Date: "+data.EstimateDate, right)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Email: "+data.ClientEmail, left)),
		),
		row.New(4),
	)
}

// addSectionTable adds one section: its title bar, the column headers, one
// row per item, and the section subtotal.
func addSectionTable(m core.Maroto, sec ExportSection) {
	sectionBg := &props.Cell{BackgroundColor: &props.Color{Red: 229, Green: 231, Blue: 235}}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(sec.Title, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			).WithStyle(sectionBg),
		),
	)

	headerBg := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(headerBg),
			col.New(2).Add(text.New("Category", headerText)).WithStyle(headerBg),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(headerBg),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(headerBg),
			col.New(2).Add(text.New("Unit Cost", headerText)).WithStyle(headerBg),
			col.New(2).Add(text.New("Line Total", headerText)).WithStyle(headerBg),
		),
	)

	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	for _, r := range sec.Rows {
		desc := r.Description
		if !r.Taxable {
			desc += " (non-taxable)"
		}
		m.AddRows(
			row.New(6).Add(
				col.New(4).Add(text.New(desc, leftText)),
				col.New(2).Add(text.New(r.Category, baseText)),
				col.New(1).Add(text.New(r.Qty, rightText)),
				col.New(1).Add(text.New(r.Unit, baseText)),
				col.New(2).Add(text.New(FormatUSD(r.UnitCost), rightText)),
				col.New(2).Add(text.New(FormatUSD(r.LineTotal), rightText)),
			),
		)
	}

	subtotalText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(text.New("Section Subtotal", subtotalText)),
			col.New(2).Add(text.New(FormatUSD(sec.Subtotal), subtotalText)),
		),
	)

	if sec.Notes != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New("Notes: "+sec.Notes, props.Text{
						Size:  8,
						Style: fontstyle.Italic,
						Align: align.Left,
						Color: &props.Color{Red: 100, Green: 100, Blue: 100},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addEstimateSummary adds the markup cascade block.
func addEstimateSummary(m core.Maroto, data ExportData) {
	summaryBg := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := labelStyle

	lines := []struct {
		label string
		value float64
	}{
		{"Subtotal", data.Totals.Subtotal},
		{fmt.Sprintf("Sales Tax (%s%%)", formatNumber(data.Rates.TaxPct)), data.Totals.Tax},
		{fmt.Sprintf("Overhead (%s%%)", formatNumber(data.Rates.OverheadPct)), data.Totals.Overhead},
		{fmt.Sprintf("Profit (%s%%)", formatNumber(data.Rates.ProfitPct)), data.Totals.Profit},
		{fmt.Sprintf("Contingency (%s%%)", formatNumber(data.Rates.ContingencyPct)), data.Totals.Contingency},
	}

	m.AddRows(row.New(4))
	for _, line := range lines {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(line.label, labelStyle)).WithStyle(summaryBg),
				col.New(3).Add(text.New(FormatUSD(line.value), valueStyle)).WithStyle(summaryBg),
			),
		)
	}

	totalText := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(9).Add(
			col.New(9).Add(text.New("TOTAL", totalText)).WithStyle(summaryBg),
			col.New(3).Add(text.New(FormatUSD(data.Totals.Total), totalText)).WithStyle(summaryBg),
		),
	)
}

// addEstimateNotes adds the project-level notes block that prints on the
// estimate.
func addEstimateNotes(m core.Maroto, notes string) {
	m.AddRows(
		row.New(6),
		row.New(6).Add(
			col.New(12).Add(
				text.New("Notes: "+notes, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)
}
