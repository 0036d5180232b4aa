package voice

import (
	"context"
	"mime/multipart"

	"github.com/prestaforge/content-engine/internal/models"
)

// Service is the voice surface: audio intake on the API side and the
// transcription job on the worker side.
type Service interface {
	Submit(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader, language string) (*models.VoiceInput, error)
	GetVoiceInput(ctx context.Context, id string) (*models.VoiceInput, error)
	RunTranscription(ctx context.Context, voiceInputID string) (Outcome, error)
}

// OutcomeStatus is the terminal disposition of one transcription run.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "COMPLETED"
	// OutcomeFailed means the voice input reached FAILED with its error
	// message recorded. The failure is data, not a job error.
	OutcomeFailed   OutcomeStatus = "FAILED"
	OutcomeNotFound OutcomeStatus = "NOT_FOUND"
)

// Outcome records how a transcription run resolved. The error return
// of RunTranscription is reserved for transient persistence failures.
type Outcome struct {
	Status       OutcomeStatus
	VoiceInputID string
	PromptID     string
	Message      string
}
