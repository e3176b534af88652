package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/ledger"
	"finledger/internal/models"
)

// reportService derives summaries from a snapshot taken under the read lock.
// Nothing is cached; every call re-reads the ledger.
type reportService struct {
	gate *Gate
}

// NewReportService creates a new ReportServicer.
func NewReportService(gate *Gate) ReportServicer {
	return &reportService{gate: gate}
}

func (s *reportService) snapshot() (*ledger.Snapshot, error) {
	var snap ledger.Snapshot
	err := s.gate.read(func(tx *gorm.DB) error {
		if err := listTransactions(tx, TransactionFilter{}, &snap.Transactions); err != nil {
			return err
		}
		var savings models.Savings
		if err := readSavings(tx, &savings); err != nil {
			return err
		}
		snap.Savings = savings.Amount
		return tx.Find(&snap.Cards).Error
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Summary returns totals, savings, remaining balance and savings ratio.
func (s *reportService) Summary() (*ledger.Summary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	summary := ledger.Summarize(*snap)
	return &summary, nil
}

// Totals sums the ledger per transaction type.
func (s *reportService) Totals() (*ledger.Totals, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	totals := ledger.TotalsByType(snap.Transactions)
	return &totals, nil
}

// RemainingBalance is income minus savings, expenses and repayments.
func (s *reportService) RemainingBalance() (decimal.Decimal, error) {
	snap, err := s.snapshot()
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.RemainingBalance(ledger.TotalsByType(snap.Transactions), snap.Savings), nil
}

// CategoryBreakdown sums one transaction type per category.
func (s *reportService) CategoryBreakdown(txType models.TransactionType) ([]ledger.CategoryAmount, error) {
	if _, ok := models.ParseTransactionType(string(txType)); !ok {
		return nil, apperrors.ErrInvalidTransactionType
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ledger.CategoryBreakdown(snap.Transactions, txType), nil
}

// Months lists the month labels present in the ledger, newest first.
func (s *reportService) Months() ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ledger.Months(snap.Transactions), nil
}

// MonthlyBreakdown totals one month. The label must look like "March 2025".
func (s *reportService) MonthlyBreakdown(month string) (*ledger.Totals, error) {
	start, err := models.ParseMonthLabel(month)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	totals := ledger.MonthlyBreakdown(snap.Transactions, models.MonthLabel(start))
	return &totals, nil
}

// CardStandings reports every registered card and every orphaned card name.
func (s *reportService) CardStandings() ([]ledger.CardStanding, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ledger.CardStandings(*snap), nil
}

// CardStanding reports one card. A name that is neither registered nor used
// by any transaction is not found.
func (s *reportService) CardStanding(name string) (*ledger.CardStanding, error) {
	if models.NormalizeName(name) == "" {
		return nil, apperrors.ErrCardNotFound
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	standing := ledger.CardStandingOf(*snap, name)
	if !standing.Registered && !usesCard(snap.Transactions, name) {
		return nil, apperrors.ErrCardNotFound
	}
	return &standing, nil
}

// SavingsRatio is (income - expense) / income.
func (s *reportService) SavingsRatio() (*ledger.Ratio, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	ratio := ledger.SavingsRatio(ledger.TotalsByType(snap.Transactions))
	return &ratio, nil
}

func usesCard(txns []models.Transaction, name string) bool {
	key := models.NormalizeName(name)
	for _, t := range txns {
		if models.NormalizeName(t.Card) == key {
			return true
		}
	}
	return false
}
