package export

import (
	"fmt"

	"github.com/Flyrell/shopsum/internal/summary"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}

	// pdfHeaders are shorter than Columns so they fit a landscape A4 page.
	pdfHeaders = []string{
		"Day", "Type", "Orders", "Gross", "Disc.", "Returns", "Net", "Shipping",
		"Duties", "Addl.", "Taxes", "Total", "Qty", "Qty ret.", "Week end", "Month end",
	}
)

// Report is the content of a PDF export.
type Report struct {
	Store string
	Rows  []summary.DailySummary
}

// WritePDF renders the summary as a landscape table and saves it to path.
func WritePDF(report Report, path string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(len(pdfHeaders)).
		WithLeftMargin(10).
		WithTopMargin(12).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)
	grid := len(pdfHeaders)

	m.AddRow(12,
		text.NewCol(grid, fmt.Sprintf("Orders summary: %s", report.Store), props.Text{
			Style: fontstyle.Bold,
			Size:  14,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(7,
		text.NewCol(grid, fmt.Sprintf("%d rows", len(report.Rows)), props.Text{
			Size:  9,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(3, line.NewCol(grid, props.Line{Color: &pdfLineColor}))

	m.AddRow(6, cells(pdfHeaders, props.Text{Style: fontstyle.Bold, Size: 7, Color: &pdfHeaderColor})...)
	m.AddRow(2, line.NewCol(grid, props.Line{Color: &pdfLineColor}))

	for _, r := range report.Rows {
		m.AddRow(5, cells(Record(r), props.Text{Size: 7})...)
	}

	total := Record(summary.Totals(report.Rows))
	total[0] = "Total"
	m.AddRow(2, line.NewCol(grid, props.Line{Color: &pdfLineColor}))
	m.AddRow(6, cells(total, props.Text{Style: fontstyle.Bold, Size: 7, Color: &pdfHeaderColor})...)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}
	return doc.Save(path)
}

// cells builds one column of width 1 per value; the first two columns are
// left-aligned, the rest right-aligned.
func cells(values []string, style props.Text) []core.Col {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		p := style
		if i >= 2 {
			p.Align = align.Right
		}
		cols = append(cols, text.NewCol(1, v, p))
	}
	return cols
}
