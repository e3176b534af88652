package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finledger/internal/services"
)

// CategoryHandler handles the expense category registry.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for adding a category.
type CreateCategoryRequest struct {
	Label string `json:"label" binding:"required,registry_name"`
}

// ListCategories returns every label, sorted
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} string "Labels"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	labels, err := h.categoryService.ListCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": labels})
}

// CreateCategory adds a label; adding an existing label succeeds
// @Summary     Add category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category"
// @Success     201 {object} models.Category "Category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.AddCategory(req.Label)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// DeleteCategory removes a label; unknown labels succeed silently
// @Summary     Remove category
// @Tags        categories
// @Security    BearerAuth
// @Param       label path string true "Category label"
// @Success     204 "Removed"
// @Router      /categories/{label} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.RemoveCategory(c.Param("label")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
