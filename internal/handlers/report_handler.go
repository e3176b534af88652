package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/services"
)

// ReportHandler serves derived views of the ledger. Every response is
// recomputed from the current state.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary returns the dashboard headline figures
// @Summary     Summary
// @Description Totals per type, savings, remaining balance (income - savings - expense - repayment) and savings ratio
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Summary "Summary"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetTotals returns the sum per transaction type
// @Summary     Totals by type
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Totals "Totals"
// @Router      /reports/totals [get]
func (h *ReportHandler) GetTotals(c *gin.Context) {
	totals, err := h.reportService.Totals()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

// GetCategoryBreakdown returns per-category sums for one type
// @Summary     Category breakdown
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Transaction type (default Expense)"
// @Success     200 {array} ledger.CategoryAmount "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryBreakdown(c *gin.Context) {
	txType := models.TransactionTypeExpense
	if v := c.Query("type"); v != "" {
		parsed, ok := models.ParseTransactionType(v)
		if !ok {
			respondWithError(c, apperrors.ErrInvalidTransactionType)
			return
		}
		txType = parsed
	}

	breakdown, err := h.reportService.CategoryBreakdown(txType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": txType, "categories": breakdown})
}

// GetMonths lists the months that have transactions
// @Summary     Months
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} string "Month labels, newest first"
// @Router      /reports/months [get]
func (h *ReportHandler) GetMonths(c *gin.Context) {
	months, err := h.reportService.Months()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}

// MonthURI is the path of a monthly report.
type MonthURI struct {
	Month string `uri:"month" binding:"required,month_label"`
}

// GetMonth returns totals for one month
// @Summary     Monthly breakdown
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month path string true "Month label, e.g. March 2025"
// @Success     200 {object} ledger.Totals "Totals"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /reports/months/{month} [get]
func (h *ReportHandler) GetMonth(c *gin.Context) {
	var uri MonthURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	totals, err := h.reportService.MonthlyBreakdown(uri.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": uri.Month, "totals": totals})
}

// GetCardStandings reports every card
// @Summary     Card standings
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} ledger.CardStanding "Standings"
// @Router      /reports/cards [get]
func (h *ReportHandler) GetCardStandings(c *gin.Context) {
	standings, err := h.reportService.CardStandings()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": standings})
}

// GetCardStanding reports one card
// @Summary     Card standing
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Card name"
// @Success     200 {object} ledger.CardStanding "Standing"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /reports/cards/{name} [get]
func (h *ReportHandler) GetCardStanding(c *gin.Context) {
	standing, err := h.reportService.CardStanding(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": standing})
}

// GetSavingsRatio returns (income - expense) / income
// @Summary     Savings ratio
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Ratio "Ratio; defined is false without income"
// @Router      /reports/savings-ratio [get]
func (h *ReportHandler) GetSavingsRatio(c *gin.Context) {
	ratio, err := h.reportService.SavingsRatio()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings_ratio": ratio})
}
