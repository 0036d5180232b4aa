// Package generation handles prompt intake and presentation
// generation requests. Prompt creation is fully functional; the
// generation step itself is a placeholder that records every request
// as FAILED until a slide builder exists.
package generation

import (
	"context"

	"github.com/prestaforge/content-engine/internal/models"
)

type Service interface {
	CreateTextPrompt(ctx context.Context, userID, text string) (*models.AIPrompt, error)
	GetPrompt(ctx context.Context, id string) (*models.AIPrompt, error)
	ListPrompts(ctx context.Context, userID string) ([]models.AIPrompt, error)
	RequestGeneration(ctx context.Context, userID, promptID string) (*models.GenerationRequest, error)
	GetRequest(ctx context.Context, id string) (*models.GenerationRequest, error)
	RunGeneration(ctx context.Context, requestID string) (Outcome, error)
}

type OutcomeStatus string

const (
	OutcomeFailed   OutcomeStatus = "FAILED"
	OutcomeNotFound OutcomeStatus = "NOT_FOUND"
)

type Outcome struct {
	Status    OutcomeStatus
	RequestID string
	Message   string
}
