// Package export renders ledger rows as CSV or XLSX spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"finledger/internal/models"
)

// Header is the column order shared by every format.
var Header = []string{"id", "type", "date", "month", "amount", "category", "description", "card"}

// SheetName is the worksheet that holds the rows in XLSX output.
const SheetName = "Transactions"

const dateLayout = "2006-01-02"

func record(t models.Transaction) []string {
	return []string{
		strconv.FormatUint(uint64(t.ID), 10),
		string(t.Type),
		t.Date.Format(dateLayout),
		t.Month,
		t.Amount.String(),
		t.Category,
		t.Description,
		t.Card,
	}
}

// WriteCSV writes the header and one row per transaction, in the given order.
func WriteCSV(w io.Writer, txns []models.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txns {
		if err := writer.Write(record(t)); err != nil {
			return fmt.Errorf("write csv row %d: %w", t.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the same columns as WriteCSV into a single worksheet.
// Amounts are stored as numbers so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, txns []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, t := range txns {
		amount, _ := t.Amount.Float64()
		row := []interface{}{
			t.ID,
			string(t.Type),
			t.Date.Format(dateLayout),
			t.Month,
			amount,
			t.Category,
			t.Description,
			t.Card,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", t.ID, err)
		}
	}

	_ = f.SetColWidth(SheetName, "C", "D", 14)
	_ = f.SetColWidth(SheetName, "F", "F", 16)
	_ = f.SetColWidth(SheetName, "G", "G", 40)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
