package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finledger/internal/services"
)

// SavingsHandler handles the savings balance.
type SavingsHandler struct {
	savingsService services.SavingsServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// SavingsAmountRequest carries a non-negative amount.
type SavingsAmountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required,gte=0"`
}

// GetSavings returns the savings balance
// @Summary     Get savings
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Savings "Savings"
// @Router      /savings [get]
func (h *SavingsHandler) GetSavings(c *gin.Context) {
	savings, err := h.savingsService.Get()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": savings})
}

// ContributeSavings adds to the savings balance
// @Summary     Contribute to savings
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SavingsAmountRequest true "Amount to add"
// @Success     200 {object} models.Savings "Savings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /savings/contributions [post]
func (h *SavingsHandler) ContributeSavings(c *gin.Context) {
	var req SavingsAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	savings, err := h.savingsService.Contribute(*req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": savings})
}

// SetSavings overwrites the savings balance
// @Summary     Set savings
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SavingsAmountRequest true "New balance"
// @Success     200 {object} models.Savings "Savings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /savings [put]
func (h *SavingsHandler) SetSavings(c *gin.Context) {
	var req SavingsAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	savings, err := h.savingsService.Set(*req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": savings})
}

// ResetSavings sets the balance to zero
// @Summary     Reset savings
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Savings "Savings"
// @Router      /savings [delete]
func (h *SavingsHandler) ResetSavings(c *gin.Context) {
	savings, err := h.savingsService.Reset()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": savings})
}
