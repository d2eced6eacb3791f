// Package export serializes a filtered table for download. CSV output
// uses the loader's own date and time formats, so an exported file
// re-loads to an identical table modulo derived-column recomputation.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
)

// Header is the input schema plus the derived Day, Month and Hour
// columns. The loader ignores the extras on re-load.
var Header = []string{
	"Invoice ID", "Branch", "City", "Customer type", "Gender",
	"Product line", "Unit price", "Quantity", "Tax 5%", "Total",
	"Date", "Time", "Payment", "cogs", "gross income", "Rating",
	"Day", "Month", "Hour",
}

func WriteCSV(w io.Writer, rows []models.Sale) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range rows {
		if err := writer.Write(record(s)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func record(s models.Sale) []string {
	return []string{
		s.InvoiceID,
		s.Branch,
		s.City,
		s.CustomerType,
		s.Gender,
		s.ProductLine,
		formatFloat(s.UnitPrice),
		strconv.Itoa(s.Quantity),
		formatFloat(s.Tax),
		formatFloat(s.Total),
		s.Date.Format(dataset.DateLayout),
		s.TimeOfDay,
		s.Payment,
		formatFloat(s.COGS),
		formatFloat(s.GrossIncome),
		formatFloat(s.Rating),
		s.Day,
		s.Month,
		strconv.Itoa(s.Hour),
	}
}

// formatFloat keeps the shortest representation that round-trips, so
// reloading an export reproduces the original values exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const sheetName = "Sales"

func WriteXLSX(w io.Writer, rows []models.Sale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
	}

	for i, s := range rows {
		for col, value := range cells(s) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cells(s models.Sale) []any {
	return []any{
		s.InvoiceID,
		s.Branch,
		s.City,
		s.CustomerType,
		s.Gender,
		s.ProductLine,
		s.UnitPrice,
		s.Quantity,
		s.Tax,
		s.Total,
		s.Date.Format(dataset.DateLayout),
		s.TimeOfDay,
		s.Payment,
		s.COGS,
		s.GrossIncome,
		s.Rating,
		s.Day,
		s.Month,
		s.Hour,
	}
}
