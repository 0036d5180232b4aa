package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/internal/repository"
	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/queue"
)

const notImplementedMessage = "presentation generation is not implemented yet"

type GenerationService struct {
	prompts     repository.PromptRepository
	generations repository.GenerationRepository
	queue       queue.Queue
	logger      logger.Logger
}

func NewService(
	prompts repository.PromptRepository,
	generations repository.GenerationRepository,
	q queue.Queue,
	log logger.Logger,
) Service {
	return &GenerationService{
		prompts:     prompts,
		generations: generations,
		queue:       q,
		logger:      log,
	}
}

// CreateTextPrompt records a TEXT-sourced prompt. Prompts are
// immutable once created.
func (s *GenerationService) CreateTextPrompt(ctx context.Context, userID, text string) (*models.AIPrompt, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("prompt text must not be empty")
	}

	prompt := &models.AIPrompt{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Source:    models.PromptSourceText,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.prompts.Create(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	return prompt, nil
}

func (s *GenerationService) GetPrompt(ctx context.Context, id string) (*models.AIPrompt, error) {
	return s.prompts.GetByID(ctx, id)
}

func (s *GenerationService) ListPrompts(ctx context.Context, userID string) ([]models.AIPrompt, error) {
	return s.prompts.ListByUser(ctx, userID)
}

// RequestGeneration records a PENDING generation request for an
// existing prompt and enqueues the generation job.
func (s *GenerationService) RequestGeneration(ctx context.Context, userID, promptID string) (*models.GenerationRequest, error) {
	prompt, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt: %w", err)
	}
	if prompt == nil {
		return nil, fmt.Errorf("prompt not found: %s", promptID)
	}

	now := time.Now().UTC()
	req := &models.GenerationRequest{
		ID:        uuid.New().String(),
		UserID:    userID,
		PromptID:  prompt.ID,
		Status:    models.GenerationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.generations.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}

	task := &queue.Task{
		ID:        uuid.New().String(),
		Type:      queue.TaskTypePresentationGenerate,
		EntityID:  req.ID,
		Priority:  3,
		CreatedAt: now,
	}

	if err := s.queue.Enqueue(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to enqueue generation task: %w", err)
	}

	return req, nil
}

func (s *GenerationService) GetRequest(ctx context.Context, id string) (*models.GenerationRequest, error) {
	return s.generations.GetByID(ctx, id)
}

// RunGeneration resolves the generation job. Until a slide builder is
// wired in, every request reaches FAILED with a not-implemented
// message so callers see a terminal state instead of a stuck PENDING.
func (s *GenerationService) RunGeneration(ctx context.Context, requestID string) (Outcome, error) {
	req, err := s.generations.GetByID(ctx, requestID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load generation request: %w", err)
	}
	if req == nil {
		return Outcome{
			Status:    OutcomeNotFound,
			RequestID: requestID,
			Message:   "generation request not found",
		}, nil
	}

	msg := notImplementedMessage
	if err := s.generations.SetStatus(ctx, req.ID, models.GenerationFailed, &msg); err != nil {
		return Outcome{}, fmt.Errorf("failed to record generation failure: %w", err)
	}

	s.logger.Warn("Generation request resolved as not implemented",
		logger.String("requestId", req.ID),
	)

	return Outcome{
		Status:    OutcomeFailed,
		RequestID: req.ID,
		Message:   msg,
	}, nil
}
