package reports

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"foodcpi/internal/charts"
	"foodcpi/internal/models"
)

// WorkbookSheet is the sheet name used for table exports
const WorkbookSheet = "CPI"

// WriteWorkbook writes the table as an Excel workbook. Missing values are left blank.
func WriteWorkbook(w io.Writer, table *models.PriceTable) error {
	if table.Empty() {
		return charts.ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(table.Columns)+1)
	header = append(header, table.DateColumn)
	for _, c := range table.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(WorkbookSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range table.Records {
		row := make([]interface{}, 0, len(table.Columns)+1)
		if year, err := strconv.Atoi(rec.Date); err == nil {
			row = append(row, year)
		} else {
			row = append(row, rec.Date)
		}
		for _, c := range table.Columns {
			v := rec.Values[c]
			if math.IsNaN(v) {
				row = append(row, nil)
			} else {
				row = append(row, v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(WorkbookSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(WorkbookSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
