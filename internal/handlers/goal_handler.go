package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finledger/internal/models"
	"finledger/internal/services"
)

// GoalHandler handles savings goal trackers.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name         string           `json:"name" binding:"required,registry_name"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"required,gt=0"`
}

// ContributeGoalRequest represents the request payload for a goal contribution.
type ContributeGoalRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required,gte=0"`
}

// GoalResponse is a goal together with its clamped progress ratio.
type GoalResponse struct {
	models.Goal
	Progress decimal.Decimal `json:"progress"`
}

func newGoalResponse(g *models.Goal) GoalResponse {
	return GoalResponse{Goal: *g, Progress: g.Progress()}
}

// ListGoals returns every goal with its progress
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} GoalResponse "Goals"
// @Router      /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]GoalResponse, len(goals))
	for i := range goals {
		out[i] = newGoalResponse(&goals[i])
	}
	c.JSON(http.StatusOK, gin.H{"goals": out})
}

// CreateGoal starts a new goal tracker
// @Summary     Create goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal"
// @Success     201 {object} GoalResponse "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Goal already exists"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	goal, err := h.goalService.CreateGoal(req.Name, *req.TargetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": newGoalResponse(goal)})
}

// GetGoal returns one goal with its progress
// @Summary     Get goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Goal name"
// @Success     200 {object} GoalResponse "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{name} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	goal, err := h.goalService.GetGoal(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": newGoalResponse(goal)})
}

// ContributeGoal adds to a goal; overshooting the target is allowed
// @Summary     Contribute to goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name    path string                true "Goal name"
// @Param       request body ContributeGoalRequest true "Amount"
// @Success     200 {object} GoalResponse "Goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{name}/contributions [post]
func (h *GoalHandler) ContributeGoal(c *gin.Context) {
	var req ContributeGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	goal, err := h.goalService.Contribute(c.Param("name"), *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": newGoalResponse(goal)})
}
