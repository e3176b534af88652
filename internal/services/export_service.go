package services

import (
	"io"

	"gorm.io/gorm"

	"finledger/internal/export"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// exportService renders the ledger for download.
type exportService struct {
	gate *Gate
}

// NewExportService creates a new ExportServicer.
func NewExportService(gate *Gate) ExportServicer {
	return &exportService{gate: gate}
}

// ExportCSV writes matching transactions as CSV, newest first.
func (s *exportService) ExportCSV(w io.Writer, filter TransactionFilter) error {
	rows, err := s.rows(filter)
	if err != nil {
		return err
	}
	logger.Get().Infow("exporting transactions", "format", "csv", "rows", len(rows))
	return export.WriteCSV(w, rows)
}

// ExportXLSX writes matching transactions as an XLSX workbook.
func (s *exportService) ExportXLSX(w io.Writer, filter TransactionFilter) error {
	rows, err := s.rows(filter)
	if err != nil {
		return err
	}
	logger.Get().Infow("exporting transactions", "format", "xlsx", "rows", len(rows))
	return export.WriteXLSX(w, rows)
}

// rows reads under the lock; rendering happens after it is released.
func (s *exportService) rows(filter TransactionFilter) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.gate.read(func(tx *gorm.DB) error {
		return listTransactions(tx, filter, &rows)
	})
	return rows, err
}
