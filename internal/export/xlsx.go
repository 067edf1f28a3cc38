package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FacadeMatch/internal/engine"
	"github.com/piwi3910/FacadeMatch/internal/model"
)

// ExportExcel writes a takeoff workbook for a pipeline result with
// three sheets: per-side element counts, the normalized element list,
// and the detection match outcomes.
func ExportExcel(path string, res *engine.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSidesSheet(f, res); err != nil {
		return err
	}
	if err := writeElementsSheet(f, res); err != nil {
		return err
	}
	if err := writeMatchesSheet(f, res); err != nil {
		return err
	}

	// The default sheet becomes the summary
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot write Excel file: %w", err)
	}
	return nil
}

// writeSidesSheet renames the default sheet to "Sides" and fills in the
// per-side element counts and widths.
func writeSidesSheet(f *excelize.File, res *engine.Result) error {
	const sheet = "Sides"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("cannot rename sheet: %w", err)
	}

	headers := []any{"Side", "Panels", "Panels Floor 1", "Panels Floor 2", "Windows", "Doors", "Width (mm)"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, s := range model.Sides() {
		rec := res.Summary[s]
		if rec == nil {
			continue
		}
		values := []any{
			string(s),
			len(rec.Panels),
			len(rec.PanelsFloor1),
			len(rec.PanelsFloor2),
			len(rec.Windows),
			len(rec.Doors),
			res.SideWidths[s],
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "G", 14); err != nil {
		return fmt.Errorf("cannot set column width: %w", err)
	}
	return nil
}

// writeElementsSheet lists every normalized element with its side,
// floor, tag, and position.
func writeElementsSheet(f *excelize.File, res *engine.Result) error {
	const sheet = "Elements"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}

	headers := []any{"ID", "Type", "Side", "Floor", "Tag", "X Min (mm)", "X Max (mm)", "Side Width (mm)", "Center (norm)"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, el := range res.Elements {
		values := []any{
			el.ID,
			string(el.Type),
			string(el.Side),
			int(el.Floor),
			el.Tag,
			el.XMin,
			el.XMax,
			el.SideWidthMM,
			el.CenterNorm,
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "I", 14); err != nil {
		return fmt.Errorf("cannot set column width: %w", err)
	}
	return nil
}

// writeMatchesSheet lists the per-detection match outcomes.
func writeMatchesSheet(f *excelize.File, res *engine.Result) error {
	const sheet = "Matches"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}

	headers := []any{"Detection", "Label", "Element ID", "Tag", "Distance (norm)", "Note"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, m := range res.Matches {
		values := []any{m.YoloID, m.Label, nil, nil, nil, m.Note}
		if m.BimID != nil {
			values[2] = *m.BimID
		}
		if m.BimTag != nil {
			values[3] = *m.BimTag
		}
		if m.Distance != nil {
			values[4] = *m.Distance
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "F", 16); err != nil {
		return fmt.Errorf("cannot set column width: %w", err)
	}
	return nil
}

// setRow writes a slice of values into consecutive cells of one row.
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("cannot set cell %s: %w", cell, err)
		}
	}
	return nil
}
