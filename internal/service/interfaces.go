package service

import (
	"context"

	"github.com/alexanderramin/matchday/internal/contract"
	"github.com/alexanderramin/matchday/internal/domain"
)

// AskService answers one natural-language question end to end.
type AskService interface {
	// Ask returns a result for every question it could process, including
	// terminal failures. The error is reserved for faults that are not about
	// the question itself, such as a cancelled context.
	Ask(ctx context.Context, req contract.AskRequest) (*contract.AskResult, error)
}

// HistoryService exposes the log of asked questions.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]*domain.Question, error)
}
