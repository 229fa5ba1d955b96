package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
)

// ExportPDF writes the cut list as a one-or-more page PDF table.
func ExportPDF(path string, list CutList) error {
	if len(list.Items) == 0 {
		return fmt.Errorf("no cut items to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Tube Cut List", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+10)
	sub := fmt.Sprintf("Profile: %s | Pieces: %d | Stock: %.0f mm | Weight: %.1f kg",
		list.ProfileName, list.PieceCount(), list.TotalLength(), list.TotalWeight())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, sub, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, marginTop+18, pageWidth-marginRight, marginTop+18)

	y := marginTop + 22
	y = renderTableHeader(pdf, y)

	for i, item := range list.Items {
		if y > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = renderTableHeader(pdf, marginTop)
		}
		renderCutRow(pdf, y, i, item)
		y += rowHeight
	}

	// Totals row
	y += 2
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y)
	totals := fmt.Sprintf("Total: %d pieces, %.0f mm of stock, %.1f kg",
		list.PieceCount(), list.TotalLength(), list.TotalWeight())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, rowHeight, totals, "", 0, "R", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

var cutColumns = []struct {
	header string
	width  float64
}{
	{"#", 10},
	{"Member Kind", 50},
	{"Length (mm)", 30},
	{"Qty", 15},
	{"Tabs", 15},
	{"Slots", 15},
	{"Holes", 15},
	{"Weight (kg)", 30},
}

// renderTableHeader draws the column headers at y and returns the first
// data row's y.
func renderTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for _, col := range cutColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(col.width, rowHeight, col.header, "1", 0, "C", true, 0, "")
		x += col.width
	}
	return y + rowHeight
}

// renderCutRow draws one cut list row at y.
func renderCutRow(pdf *fpdf.Fpdf, y float64, idx int, item CutItem) {
	if idx%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetFont("Helvetica", "", 9)

	cells := []string{
		fmt.Sprintf("%d", idx+1),
		item.Kind,
		fmt.Sprintf("%.1f", item.Length),
		fmt.Sprintf("%d", item.Quantity),
		fmt.Sprintf("%d", item.TabCount),
		fmt.Sprintf("%d", item.SlotCount),
		fmt.Sprintf("%d", item.HoleCount),
		fmt.Sprintf("%.2f", item.WeightKg),
	}
	x := marginLeft
	for i, cell := range cells {
		align := "C"
		if i == 1 {
			align = "L"
		}
		pdf.SetXY(x, y)
		pdf.CellFormat(cutColumns[i].width, rowHeight, cell, "1", 0, align, true, 0, "")
		x += cutColumns[i].width
	}
}
