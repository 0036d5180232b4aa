package voice

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/internal/repository"
	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/queue"
	"github.com/prestaforge/content-engine/pkg/storage"
)

// supportedAudioExts is the transcription allow-list. Anything else
// reaches FAILED with an unsupported-format message.
var supportedAudioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
	".m4a": true,
}

type VoiceService struct {
	transcriber Transcriber
	voiceInputs repository.VoiceInputRepository
	prompts     repository.PromptRepository
	queue       queue.Queue
	storage     storage.Storage
	logger      logger.Logger
}

func NewService(
	transcriber Transcriber,
	voiceInputs repository.VoiceInputRepository,
	prompts repository.PromptRepository,
	q queue.Queue,
	store storage.Storage,
	log logger.Logger,
) Service {
	return &VoiceService{
		transcriber: transcriber,
		voiceInputs: voiceInputs,
		prompts:     prompts,
		queue:       q,
		storage:     store,
		logger:      log,
	}
}

// Submit stores the audio, records the voice input as PENDING and
// enqueues the transcription job. The format allow-list is enforced by
// the job, not here: an unsupported upload is accepted and resolves to
// FAILED.
func (s *VoiceService) Submit(
	ctx context.Context,
	userID string,
	file multipart.File,
	header *multipart.FileHeader,
	language string,
) (*models.VoiceInput, error) {
	viID := uuid.New().String()
	audioKey := fmt.Sprintf("voice/%s/%s%s", userID, viID, strings.ToLower(filepath.Ext(header.Filename)))

	if _, err := s.storage.Store(ctx, file, audioKey); err != nil {
		s.logger.Error("Failed to store audio",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to store audio: %w", err)
	}

	now := time.Now().UTC()
	vi := &models.VoiceInput{
		ID:        viID,
		UserID:    userID,
		AudioKey:  audioKey,
		AudioName: header.Filename,
		Language:  language,
		Status:    models.VoicePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.voiceInputs.Create(ctx, vi); err != nil {
		return nil, fmt.Errorf("failed to create voice input: %w", err)
	}

	task := &queue.Task{
		ID:        uuid.New().String(),
		Type:      queue.TaskTypeVoiceTranscribe,
		EntityID:  vi.ID,
		Priority:  2,
		CreatedAt: now,
	}

	if err := s.queue.Enqueue(ctx, task); err != nil {
		s.logger.Error("Failed to enqueue transcription task",
			logger.String("voiceInputId", vi.ID),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to enqueue transcription task: %w", err)
	}

	s.logger.Info("Voice input accepted",
		logger.String("voiceInputId", vi.ID),
		logger.String("taskId", task.ID),
	)

	return vi, nil
}

func (s *VoiceService) GetVoiceInput(ctx context.Context, id string) (*models.VoiceInput, error) {
	return s.voiceInputs.GetByID(ctx, id)
}

// RunTranscription executes the transcription job for one voice input:
// PENDING -> PROCESSING, then COMPLETED with a VOICE prompt or FAILED
// with the error message recorded. Once PROCESSING is persisted every
// fault resolves to FAILED rather than escaping the run. A redelivered
// task for an already resolved input returns the recorded outcome
// without leaving the terminal state.
func (s *VoiceService) RunTranscription(ctx context.Context, voiceInputID string) (Outcome, error) {
	vi, err := s.voiceInputs.GetByID(ctx, voiceInputID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load voice input: %w", err)
	}
	if vi == nil {
		s.logger.Warn("Transcription requested for unknown voice input",
			logger.String("voiceInputId", voiceInputID),
		)
		return Outcome{
			Status:       OutcomeNotFound,
			VoiceInputID: voiceInputID,
			Message:      "voice input not found",
		}, nil
	}

	if vi.Status == models.VoiceCompleted || vi.Status == models.VoiceFailed {
		s.logger.Info("Transcription already resolved",
			logger.String("voiceInputId", vi.ID),
			logger.String("status", string(vi.Status)),
		)
		if vi.Status == models.VoiceCompleted {
			return Outcome{
				Status:       OutcomeCompleted,
				VoiceInputID: vi.ID,
			}, nil
		}
		outcome := Outcome{
			Status:       OutcomeFailed,
			VoiceInputID: vi.ID,
		}
		if vi.ErrorMessage != nil {
			outcome.Message = *vi.ErrorMessage
		}
		return outcome, nil
	}

	if err := s.voiceInputs.SetStatus(ctx, vi.ID, models.VoiceProcessing); err != nil {
		return Outcome{}, fmt.Errorf("failed to mark voice input processing: %w", err)
	}

	transcription, err := s.transcribe(ctx, vi)
	if err != nil {
		return s.fail(ctx, vi.ID, err)
	}

	if err := s.voiceInputs.SetTranscription(ctx, vi.ID, transcription); err != nil {
		return Outcome{}, fmt.Errorf("failed to persist transcription: %w", err)
	}

	prompt := &models.AIPrompt{
		ID:           uuid.New().String(),
		UserID:       vi.UserID,
		Text:         transcription,
		Source:       models.PromptSourceVoice,
		VoiceInputID: &vi.ID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.prompts.Create(ctx, prompt); err != nil {
		return Outcome{}, fmt.Errorf("failed to create prompt: %w", err)
	}

	s.logger.Info("Transcription completed",
		logger.String("voiceInputId", vi.ID),
		logger.String("promptId", prompt.ID),
	)

	return Outcome{
		Status:       OutcomeCompleted,
		VoiceInputID: vi.ID,
		PromptID:     prompt.ID,
	}, nil
}

// transcribe checks the format allow-list and runs the transcriber
// against the stored audio.
func (s *VoiceService) transcribe(ctx context.Context, vi *models.VoiceInput) (string, error) {
	ext := strings.ToLower(filepath.Ext(vi.AudioName))
	if !supportedAudioExts[ext] {
		return "", fmt.Errorf("unsupported audio format: %s", ext)
	}

	reader, err := s.storage.Get(ctx, vi.AudioKey)
	if err != nil {
		return "", fmt.Errorf("failed to get audio: %w", err)
	}
	defer reader.Close()

	transcription, err := s.transcriber.Transcribe(ctx, reader, vi.AudioName, vi.Language)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	return transcription, nil
}

// fail records the terminal FAILED state. A persistence failure while
// recording it is transient and retried.
func (s *VoiceService) fail(ctx context.Context, voiceInputID string, cause error) (Outcome, error) {
	s.logger.Error("Transcription failed",
		logger.String("voiceInputId", voiceInputID),
		logger.Error(cause),
	)

	if err := s.voiceInputs.SetFailure(ctx, voiceInputID, cause.Error()); err != nil {
		return Outcome{}, fmt.Errorf("failed to record transcription failure: %w", err)
	}

	return Outcome{
		Status:       OutcomeFailed,
		VoiceInputID: voiceInputID,
		Message:      cause.Error(),
	}, nil
}
