package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// goalService handles savings goal trackers. Goals are independent of the
// main savings balance.
type goalService struct {
	gate *Gate
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(gate *Gate) GoalServicer {
	return &goalService{gate: gate}
}

// CreateGoal starts a tracker at zero.
func (s *goalService) CreateGoal(name string, target decimal.Decimal) (*models.Goal, error) {
	name, err := cleanName(name, "goal name")
	if err != nil {
		return nil, err
	}
	if err := models.ValidateAmount(target); err != nil {
		return nil, err
	}
	if !target.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal := &models.Goal{Name: name, TargetAmount: target, AccumulatedAmount: decimal.Zero}
	err = s.gate.write(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Goal{}).
			Where("name_key = ?", models.NormalizeName(name)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrDuplicateGoal
		}
		return tx.Create(goal).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("goal created", "goal", goal.Name, "target", target.String())
	return goal, nil
}

// Contribute adds delta to a goal. The accumulated amount may exceed the
// target.
func (s *goalService) Contribute(name string, delta decimal.Decimal) (*models.Goal, error) {
	if err := models.ValidateAmount(delta); err != nil {
		return nil, err
	}

	var goal models.Goal
	err := s.gate.write(func(tx *gorm.DB) error {
		if err := findGoal(tx, name, &goal); err != nil {
			return err
		}
		accumulated := goal.AccumulatedAmount.Add(delta)
		if err := models.ValidateAmount(accumulated); err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "goal total would exceed the storable range")
		}
		goal.AccumulatedAmount = accumulated
		return tx.Save(&goal).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("goal contributed",
		"goal", goal.Name,
		"delta", delta.String(),
		"accumulated", goal.AccumulatedAmount.String(),
	)
	return &goal, nil
}

// GetGoal looks a goal up by name, ignoring case.
func (s *goalService) GetGoal(name string) (*models.Goal, error) {
	var goal models.Goal
	err := s.gate.read(func(tx *gorm.DB) error {
		return findGoal(tx, name, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns every goal ordered by name.
func (s *goalService) ListGoals() ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.gate.read(func(tx *gorm.DB) error {
		return tx.Order("name_key ASC").Find(&goals).Error
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// ProgressRatio is accumulated/target, clamped to 1.
func (s *goalService) ProgressRatio(name string) (decimal.Decimal, error) {
	goal, err := s.GetGoal(name)
	if err != nil {
		return decimal.Zero, err
	}
	return goal.Progress(), nil
}

func findGoal(tx *gorm.DB, name string, dest *models.Goal) error {
	key := models.NormalizeName(name)
	if key == "" {
		return apperrors.ErrGoalNotFound
	}
	if err := tx.Where("name_key = ?", key).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGoalNotFound
		}
		return err
	}
	return nil
}
