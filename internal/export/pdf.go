package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/FacadeMatch/internal/engine"
	"github.com/piwi3910/FacadeMatch/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// ExportPDF generates a PDF report for a pipeline run: the classified
// side, per-side element counts, and the detection match table.
func ExportPDF(path string, res *engine.Result) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10,
		fmt.Sprintf("Facade Match Report - Run %s", res.RunID), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Classification summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Classification", "", 0, "L", false, 0, "")
	y += 9

	sideLabel := string(res.Side)
	if !res.Side.Exterior() {
		sideLabel = "Interior / unclassified"
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Classified Side", sideLabel},
		{"Side Score", fmt.Sprintf("%.1f", res.SideScore)},
		{"Floor Split", fmt.Sprintf("%.0f mm", res.FloorSplitZ)},
		{"Door Openings", fmt.Sprintf("%d", len(res.Openings))},
		{"Normalized Elements", fmt.Sprintf("%d", len(res.Elements))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	// Per-side breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Side Breakdown", "", 0, "L", false, 0, "")
	y += 9

	sideCols := []float64{20, 30, 30, 30, 40}
	sideHeaders := []string{"Side", "Panels", "Windows", "Doors", "Width (mm)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range sideHeaders {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(sideCols[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += sideCols[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, s := range model.Sides() {
		rec := res.Summary[s]
		if rec == nil {
			continue
		}
		rowData := []string{
			string(s),
			fmt.Sprintf("%d", len(rec.Panels)),
			fmt.Sprintf("%d", len(rec.Windows)),
			fmt.Sprintf("%d", len(rec.Doors)),
			fmt.Sprintf("%.0f", res.SideWidths[s]),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(sideCols[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += sideCols[j]
		}
		y += 6
	}
	y += 8

	// Match table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Detection Matches", "", 0, "L", false, 0, "")
	y += 9

	matchCols := []float64{22, 28, 24, 16, 28, 62}
	matchHeaders := []string{"Detection", "Label", "Element", "Tag", "Distance", "Note"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos = marginLeft
	for i, header := range matchHeaders {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(matchCols[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += matchCols[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, m := range res.Matches {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}

		elemCell, tagCell, distCell := "-", "-", "-"
		if m.BimID != nil {
			elemCell = fmt.Sprintf("%d", *m.BimID)
		}
		if m.BimTag != nil {
			tagCell = fmt.Sprintf("%d", *m.BimTag)
		}
		if m.Distance != nil {
			distCell = fmt.Sprintf("%.4f", *m.Distance)
		}
		rowData := []string{m.YoloID, m.Label, elemCell, tagCell, distCell, m.Note}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(matchCols[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += matchCols[j]
		}
		y += 6
	}

	// Warnings section
	if len(res.Warnings) > 0 {
		y += 8
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(180, 7, "Warnings", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range res.Warnings {
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(170, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4,
		"Generated by FacadeMatch - Facade Element Matcher", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
