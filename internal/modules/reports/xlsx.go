package reports

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet every new excelize workbook starts with.
const defaultSheet = "Sheet1"

// WriteXLSX writes the table to a single-sheet workbook, applying the layout
// and the conditional formats. The workbook is closed on every path.
func WriteXLSX(path string, t Table, layout Layout, formats ...ConditionalFormat) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	sheet := layout.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	if err := writeCells(f, sheet, t); err != nil {
		return err
	}
	if err := applyLayout(f, sheet, t, layout); err != nil {
		return err
	}
	for _, cf := range formats {
		if err := applyConditionalFormat(f, sheet, t, cf); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeCells(f *excelize.File, sheet string, t Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := t.Rows[i]
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

func applyLayout(f *excelize.File, sheet string, t Table, layout Layout) error {
	alignStyles := make(map[string]int)
	styleFor := func(align string) (int, error) {
		if id, ok := alignStyles[align]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: align}})
		if err != nil {
			return 0, fmt.Errorf("failed to create %s alignment style: %w", align, err)
		}
		alignStyles[align] = id
		return id, nil
	}

	lastRow := len(t.Rows) + 1
	for i, width := range layout.ColumnWidths(t) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}

		styleID, err := styleFor(layout.Align(i))
		if err != nil {
			return err
		}
		if err := f.SetColStyle(sheet, col, styleID); err != nil {
			return fmt.Errorf("failed to style column %s: %w", col, err)
		}
		if err := f.SetCellStyle(sheet, col+"1", col+strconv.Itoa(lastRow), styleID); err != nil {
			return fmt.Errorf("failed to style cells of column %s: %w", col, err)
		}
	}

	if layout.FreezeColumns > 0 {
		topLeft, err := excelize.CoordinatesToCellName(layout.FreezeColumns+1, 1)
		if err != nil {
			return err
		}
		err = f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			XSplit:      layout.FreezeColumns,
			TopLeftCell: topLeft,
			ActivePane:  "topRight",
			Selection:   []excelize.Selection{{SQRef: topLeft, ActiveCell: topLeft, Pane: "topRight"}},
		})
		if err != nil {
			return fmt.Errorf("failed to freeze columns: %w", err)
		}
	}
	return nil
}

func applyConditionalFormat(f *excelize.File, sheet string, t Table, cf ConditionalFormat) error {
	if len(t.Rows) == 0 || len(cf.Rules) == 0 {
		return nil
	}

	opts := make([]excelize.ConditionalFormatOptions, 0, len(cf.Rules))
	for _, rule := range cf.Rules {
		styleID, err := f.NewConditionalStyle(rule.Style.excel())
		if err != nil {
			return fmt.Errorf("failed to create %s style: %w", rule.Style.Name, err)
		}
		opts = append(opts, excelize.ConditionalFormatOptions{
			Type:     "cell",
			Criteria: rule.Criteria,
			Value:    strconv.FormatFloat(rule.Value, 'f', -1, 64),
			Format:   &styleID,
		})
	}

	for _, name := range cf.Columns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		ref, err := DataRange(idx, len(t.Rows))
		if err != nil {
			return err
		}
		if err := f.SetConditionalFormat(sheet, ref, opts); err != nil {
			return fmt.Errorf("failed to format column %q: %w", name, err)
		}
	}
	return nil
}

// DataRange is the cell range of a column's data rows, header excluded,
// e.g. "I2:I10" for column index 8 with 9 rows.
func DataRange(col, rows int) (string, error) {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s2:%s%d", name, name, rows+1), nil
}
