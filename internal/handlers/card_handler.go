package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finledger/internal/services"
)

// CardHandler handles the credit card registry.
type CardHandler struct {
	cardService services.CardServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCardRequest represents the request payload for registering a card.
type CreateCardRequest struct {
	Name string `json:"name" binding:"required,registry_name"`
}

// SetCardLimitRequest represents the request payload for a card limit.
type SetCardLimitRequest struct {
	Limit *decimal.Decimal `json:"limit" binding:"required,gte=0"`
}

// ListCards returns every registered card
// @Summary     List cards
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.CreditCard "Cards"
// @Router      /cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.cardService.ListCards()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// CreateCard registers a card with no limit
// @Summary     Add card
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCardRequest true "Card"
// @Success     201 {object} models.CreditCard "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Card already exists"
// @Router      /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	card, err := h.cardService.AddCard(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// GetCard returns one card
// @Summary     Get card
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Card name"
// @Success     200 {object} models.CreditCard "Card"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{name} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	card, err := h.cardService.GetCard(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// SetCardLimit sets a card's credit limit
// @Summary     Set card limit
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name    path string              true "Card name"
// @Param       request body SetCardLimitRequest true "Limit"
// @Success     200 {object} models.CreditCard "Card"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{name}/limit [put]
func (h *CardHandler) SetCardLimit(c *gin.Context) {
	var req SetCardLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	card, err := h.cardService.SetLimit(c.Param("name"), *req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard unregisters a card; its transactions are kept
// @Summary     Remove card
// @Tags        cards
// @Security    BearerAuth
// @Param       name path string true "Card name"
// @Success     204 "Removed"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{name} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if err := h.cardService.RemoveCard(c.Param("name")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
