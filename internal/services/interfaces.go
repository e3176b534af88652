package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/ledger"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	Month    string
	Category string
	Card     string
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionUpdate carries the mutable fields of a transaction. Nil fields
// are left unchanged.
type TransactionUpdate struct {
	Amount      *decimal.Decimal
	Description *string
}

// IncomeContribution is one earner's share of a combined income entry.
type IncomeContribution struct {
	Earner string
	Amount decimal.Decimal
}

// TransactionServicer defines the contract for the transaction ledger.
type TransactionServicer interface {
	AddTransaction(in models.TransactionInput) (*models.Transaction, error)
	AddCombinedIncome(date time.Time, contributions []IncomeContribution) (*models.Transaction, error)
	UpdateTransaction(id uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id uint) error
	ListTransactions(filter TransactionFilter) ([]models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	ResetTransactions() error
}

// SavingsServicer defines the contract for the savings balance.
type SavingsServicer interface {
	Contribute(delta decimal.Decimal) (*models.Savings, error)
	Set(value decimal.Decimal) (*models.Savings, error)
	Get() (*models.Savings, error)
	Reset() (*models.Savings, error)
}

// CardServicer defines the contract for the credit card registry.
type CardServicer interface {
	AddCard(name string) (*models.CreditCard, error)
	RemoveCard(name string) error
	SetLimit(name string, limit decimal.Decimal) (*models.CreditCard, error)
	ListCards() ([]models.CreditCard, error)
	GetCard(name string) (*models.CreditCard, error)
}

// CategoryServicer defines the contract for the expense category registry.
type CategoryServicer interface {
	AddCategory(label string) (*models.Category, error)
	RemoveCategory(label string) error
	ListCategories() ([]string, error)
}

// GoalServicer defines the contract for savings goal trackers.
type GoalServicer interface {
	CreateGoal(name string, target decimal.Decimal) (*models.Goal, error)
	Contribute(name string, delta decimal.Decimal) (*models.Goal, error)
	GetGoal(name string) (*models.Goal, error)
	ListGoals() ([]models.Goal, error)
	ProgressRatio(name string) (decimal.Decimal, error)
}

// ReportServicer derives summary views from a consistent ledger snapshot.
type ReportServicer interface {
	Summary() (*ledger.Summary, error)
	Totals() (*ledger.Totals, error)
	RemainingBalance() (decimal.Decimal, error)
	CategoryBreakdown(txType models.TransactionType) ([]ledger.CategoryAmount, error)
	Months() ([]string, error)
	MonthlyBreakdown(month string) (*ledger.Totals, error)
	CardStandings() ([]ledger.CardStanding, error)
	CardStanding(name string) (*ledger.CardStanding, error)
	SavingsRatio() (*ledger.Ratio, error)
}

// ExportServicer writes the ledger out in spreadsheet formats.
type ExportServicer interface {
	ExportCSV(w io.Writer, filter TransactionFilter) error
	ExportXLSX(w io.Writer, filter TransactionFilter) error
}

// AuthServicer checks login attempts against the configured credentials.
type AuthServicer interface {
	Authenticate(username, password string) error
}
