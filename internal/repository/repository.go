// Package repository holds the persistence interfaces the jobs and
// handlers depend on, plus their SQLite implementations.
package repository

import (
	"context"

	"github.com/prestaforge/content-engine/internal/models"
)

// DocumentRepository loads and mutates document records. GetByID
// returns (nil, nil) when the identifier does not resolve.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	MarkProcessed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// AnalysisRepository persists extraction projections. UpsertByDocument
// loads-or-creates the row keyed by document identity and overwrites
// all fields, so re-running a job converges instead of duplicating.
type AnalysisRepository interface {
	UpsertByDocument(ctx context.Context, analysis *models.DocumentAnalysis) error
	GetByDocument(ctx context.Context, documentID string) (*models.DocumentAnalysis, error)
}

// VoiceInputRepository mutates voice input state. Status writes are
// separate narrow operations because the adapter persists each
// transition as it happens.
type VoiceInputRepository interface {
	Create(ctx context.Context, vi *models.VoiceInput) error
	GetByID(ctx context.Context, id string) (*models.VoiceInput, error)
	SetStatus(ctx context.Context, id string, status models.VoiceStatus) error
	SetTranscription(ctx context.Context, id, transcription string) error
	SetFailure(ctx context.Context, id, errorMessage string) error
}

// PromptRepository stores immutable prompts.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.AIPrompt) error
	GetByID(ctx context.Context, id string) (*models.AIPrompt, error)
	ListByUser(ctx context.Context, userID string) ([]models.AIPrompt, error)
}

// GenerationRepository tracks presentation generation requests.
type GenerationRepository interface {
	Create(ctx context.Context, req *models.GenerationRequest) error
	GetByID(ctx context.Context, id string) (*models.GenerationRequest, error)
	SetStatus(ctx context.Context, id string, status models.GenerationStatus, errorMessage *string) error
}

// Repositories bundles every aggregate's repository for injection.
type Repositories struct {
	Documents   DocumentRepository
	Analyses    AnalysisRepository
	VoiceInputs VoiceInputRepository
	Prompts     PromptRepository
	Generations GenerationRepository
}
