package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const cutListSheet = "Cut List"

// ExportXLSX writes the cut list as an Excel workbook with one row per
// cut item plus a totals row.
func ExportXLSX(path string, list CutList) error {
	if len(list.Items) == 0 {
		return fmt.Errorf("no cut items to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(cutListSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Kind", "Length (mm)", "Qty", "Tabs", "Slots", "Holes", "Weight (kg)", "Members"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(cutListSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, item := range list.Items {
		values := []interface{}{
			item.Kind,
			item.Length,
			item.Quantity,
			item.TabCount,
			item.SlotCount,
			item.HoleCount,
			item.WeightKg,
			strings.Join(item.Members, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(cutListSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
		row++
	}

	// Totals
	row++
	totals := []interface{}{
		"Total",
		list.TotalLength(),
		list.PieceCount(),
		"", "", "",
		list.TotalWeight(),
		fmt.Sprintf("profile %s", list.ProfileName),
	}
	for col, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(cutListSheet, cell, v); err != nil {
			return fmt.Errorf("failed to write totals: %w", err)
		}
	}

	if err := f.SetColWidth(cutListSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(cutListSheet, "H", "H", 60); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	return f.SaveAs(path)
}
