package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
	"finledger/internal/services"
)

// TransactionHandler handles ledger entry requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Date defaults to today. Category is ignored for Income and Repayment.
type CreateTransactionRequest struct {
	Type        string           `json:"type" binding:"required,transaction_type"`
	Date        *string          `json:"date"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,gte=0"`
	Category    string           `json:"category" binding:"max=128"`
	Description string           `json:"description" binding:"max=500"`
	Card        string           `json:"card" binding:"max=128"`
}

// CombinedIncomeShare is one earner's part of a combined income entry.
type CombinedIncomeShare struct {
	Earner string           `json:"earner" binding:"required,registry_name"`
	Amount *decimal.Decimal `json:"amount" binding:"required,gte=0"`
}

// CreateCombinedIncomeRequest represents the request payload for a combined income entry.
type CreateCombinedIncomeRequest struct {
	Date          *string               `json:"date"`
	Contributions []CombinedIncomeShare `json:"contributions" binding:"required,min=1,dive"`
}

// UpdateTransactionRequest carries the mutable fields; omitted fields are kept.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gte=0"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an Income, Expense or Repayment entry
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	txType, ok := models.ParseTransactionType(req.Type)
	if !ok {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.AddTransaction(models.TransactionInput{
		Type:        txType,
		Date:        date,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Card:        req.Card,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateCombinedIncome records several earners' income as one entry
// @Summary     Add combined income
// @Description Sum each earner's income into a single Income entry described as "A + B Combined"
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCombinedIncomeRequest true "Contributions"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/income/combined [post]
func (h *TransactionHandler) CreateCombinedIncome(c *gin.Context) {
	var req CreateCombinedIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contributions := make([]services.IncomeContribution, len(req.Contributions))
	for i, share := range req.Contributions {
		contributions[i] = services.IncomeContribution{Earner: share.Earner, Amount: *share.Amount}
	}

	transaction, err := h.transactionService.AddCombinedIncome(date, contributions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists ledger entries, newest first
// @Summary     List transactions
// @Description Get a paginated list of transactions with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 500)"
// @Param       type      query string false "Income, Expense or Repayment"
// @Param       month     query string false "Month label, e.g. March 2025"
// @Param       category  query string false "Category label"
// @Param       card      query string false "Card name (case-insensitive)"
// @Param       from_date query string false "Start date (YYYY-MM-DD)"
// @Param       to_date   query string false "End date (YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles the retrieval of a single transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction changes the amount or description of a transaction
// @Summary     Update transaction
// @Description Only amount and description can change; type, date and card are fixed
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(id, services.TransactionUpdate{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction; unknown IDs succeed silently
// @Summary     Delete transaction
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetTransactions deletes every transaction
// @Summary     Reset ledger
// @Tags        transactions
// @Security    BearerAuth
// @Success     204 "Ledger cleared"
// @Router      /transactions [delete]
func (h *TransactionHandler) ResetTransactions(c *gin.Context) {
	if err := h.transactionService.ResetTransactions(); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
