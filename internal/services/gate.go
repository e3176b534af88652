package services

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
)

// Gate serialises access to the ledger. Mutations hold the exclusive lock and
// run inside one database transaction; reads hold the shared lock and also
// run in one transaction, so a read never observes half of a mutation.
//
// All services of one process must share the same Gate.
type Gate struct {
	mu sync.RWMutex
	db *gorm.DB
}

// NewGate wraps db.
func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

func (g *Gate) write(fn func(tx *gorm.DB) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return asAppError(g.db.Transaction(fn))
}

func (g *Gate) read(fn func(tx *gorm.DB) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return asAppError(g.db.Transaction(fn))
}

// asAppError passes AppErrors through and wraps everything else as internal.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
