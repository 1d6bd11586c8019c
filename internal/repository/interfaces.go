package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/matchday/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type QuestionRepo interface {
	Record(ctx context.Context, q *domain.Question) error
	GetByRequestID(ctx context.Context, requestID string) (*domain.Question, error)
	// ListRecent returns up to limit questions, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Question, error)
}
