package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/services"
)

// --- mock goal service ---

type mockGoalService struct {
	createGoalFn func(name string, target decimal.Decimal) (*models.Goal, error)
	contributeFn func(name string, delta decimal.Decimal) (*models.Goal, error)
	getGoalFn    func(name string) (*models.Goal, error)
	listGoalsFn  func() ([]models.Goal, error)
}

func (m *mockGoalService) CreateGoal(name string, target decimal.Decimal) (*models.Goal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(name, target)
	}
	return &models.Goal{Name: name, TargetAmount: target, AccumulatedAmount: decimal.Zero}, nil
}

func (m *mockGoalService) Contribute(name string, delta decimal.Decimal) (*models.Goal, error) {
	if m.contributeFn != nil {
		return m.contributeFn(name, delta)
	}
	return &models.Goal{Name: name}, nil
}

func (m *mockGoalService) GetGoal(name string) (*models.Goal, error) {
	if m.getGoalFn != nil {
		return m.getGoalFn(name)
	}
	return nil, apperrors.ErrGoalNotFound
}

func (m *mockGoalService) ListGoals() ([]models.Goal, error) {
	if m.listGoalsFn != nil {
		return m.listGoalsFn()
	}
	return []models.Goal{}, nil
}

func (m *mockGoalService) ProgressRatio(name string) (decimal.Decimal, error) {
	goal, err := m.GetGoal(name)
	if err != nil {
		return decimal.Zero, err
	}
	return goal.Progress(), nil
}

var _ services.GoalServicer = (*mockGoalService)(nil)

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUsername("admin"))
	auth.GET("/goals", handler.ListGoals)
	auth.POST("/goals", handler.CreateGoal)
	auth.GET("/goals/:name", handler.GetGoal)
	auth.POST("/goals/:name/contributions", handler.ContributeGoal)
	return r
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("returns 201 with zero progress", func(t *testing.T) {
		r := setupGoalRouter(NewGoalHandler(&mockGoalService{}))

		rec := doRequest(r, "POST", "/goals", `{"name":"Vacation","target_amount":2000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		if goal["name"] != "Vacation" || goal["progress"] != "0" {
			t.Errorf("unexpected goal %v", goal)
		}
	})

	t.Run("returns 400 on zero target", func(t *testing.T) {
		r := setupGoalRouter(NewGoalHandler(&mockGoalService{}))

		rec := doRequest(r, "POST", "/goals", `{"name":"Vacation","target_amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		svc := &mockGoalService{
			createGoalFn: func(string, decimal.Decimal) (*models.Goal, error) { return nil, apperrors.ErrDuplicateGoal },
		}
		r := setupGoalRouter(NewGoalHandler(svc))

		rec := doRequest(r, "POST", "/goals", `{"name":"vacation","target_amount":10}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_GOAL")
	})
}

func TestGoalHandler_ContributeGoal(t *testing.T) {
	t.Run("progress is clamped when overshooting", func(t *testing.T) {
		svc := &mockGoalService{
			contributeFn: func(name string, delta decimal.Decimal) (*models.Goal, error) {
				return &models.Goal{
					Name:              name,
					TargetAmount:      decimal.NewFromInt(100),
					AccumulatedAmount: delta,
				}, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc))

		rec := doRequest(r, "POST", "/goals/Vacation/contributions", `{"amount":150}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		if goal["accumulated_amount"] != "150" {
			t.Errorf("expected accumulated 150, got %v", goal["accumulated_amount"])
		}
		if goal["progress"] != "1" {
			t.Errorf("expected progress 1, got %v", goal["progress"])
		}
	})

	t.Run("returns 404 for an unknown goal", func(t *testing.T) {
		svc := &mockGoalService{
			contributeFn: func(string, decimal.Decimal) (*models.Goal, error) { return nil, apperrors.ErrGoalNotFound },
		}
		r := setupGoalRouter(NewGoalHandler(svc))

		rec := doRequest(r, "POST", "/goals/Nope/contributions", `{"amount":5}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
	})
}

func TestGoalHandler_ListGoals(t *testing.T) {
	svc := &mockGoalService{
		listGoalsFn: func() ([]models.Goal, error) {
			return []models.Goal{
				{Name: "Car", TargetAmount: decimal.NewFromInt(200), AccumulatedAmount: decimal.NewFromInt(50)},
			}, nil
		},
	}
	r := setupGoalRouter(NewGoalHandler(svc))

	rec := doRequest(r, "GET", "/goals", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	goals := parseJSON(t, rec)["goals"].([]interface{})
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	if p := goals[0].(map[string]interface{})["progress"]; p != "0.25" {
		t.Errorf("expected progress 0.25, got %v", p)
	}
}
