package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const (
	titleRow  = 1
	headerRow = 3
)

// WriteXLSX renders rows as a workbook with a single sheet: a title on the
// first row, then the header and one line per row.
func WriteXLSX(w io.Writer, sheet, title string, rows []Row) error {
	if len(rows) == 0 {
		slog.Warn("XLSX export skipped", "reason", ErrNoData.Error())
		return ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := rows[0].Keys()
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to resolve columns: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	titleCell := fmt.Sprintf("A%d", titleRow)
	if err := f.SetCellValue(sheet, titleCell, title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, titleCell, fmt.Sprintf("%s%d", lastCol, titleRow)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, titleCell, titleCell, titleStyle); err != nil {
		return err
	}

	headerCells := make([]any, len(header))
	for i, key := range header {
		headerCells[i] = key
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow), &headerCells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cells := make([]any, len(header))
		for j, key := range header {
			value, _ := row.Get(key)
			if value = cellValue(value); value == nil {
				value = ""
			}
			cells[j] = value
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow+1+i), &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
