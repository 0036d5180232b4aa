package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/prestaforge/content-engine/internal/service/document"
	"github.com/prestaforge/content-engine/internal/service/generation"
	"github.com/prestaforge/content-engine/internal/service/voice"
	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/queue"
)

// JobWorker runs the asynq server and maps job outcomes onto asynq's
// retry semantics: a terminal outcome never retries, a transient error
// does.
type JobWorker struct {
	BaseWorker
	documents   document.Service
	voiceInputs voice.Service
	generations generation.Service
	queue       queue.Queue
}

func NewJobWorker(
	cfg *Config,
	documents document.Service,
	voiceInputs voice.Service,
	generations generation.Service,
	q queue.Queue,
	log logger.Logger,
) (*JobWorker, error) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues:      cfg.Queues,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Minute
			},
		},
	)

	w := &JobWorker{
		BaseWorker: BaseWorker{
			server:   server,
			mux:      asynq.NewServeMux(),
			logger:   log,
			stopChan: make(chan struct{}),
		},
		documents:   documents,
		voiceInputs: voiceInputs,
		generations: generations,
		queue:       q,
	}

	w.registerHandlers()
	return w, nil
}

func (w *JobWorker) registerHandlers() {
	w.mux.HandleFunc(queue.TaskTypeDocumentExtract, w.handleDocumentExtract)
	w.mux.HandleFunc(queue.TaskTypeVoiceTranscribe, w.handleVoiceTranscribe)
	w.mux.HandleFunc(queue.TaskTypePresentationGenerate, w.handlePresentationGenerate)
}

func (w *JobWorker) decodeTask(t *asynq.Task) (*queue.Task, error) {
	var task queue.Task
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		w.logger.Error("Failed to unmarshal task",
			logger.Error(err),
			logger.String("payload", string(t.Payload())),
		)
		return nil, fmt.Errorf("failed to unmarshal task: %w", asynq.SkipRetry)
	}
	if task.EntityID == "" {
		return nil, fmt.Errorf("task has no entity id: %w", asynq.SkipRetry)
	}
	return &task, nil
}

// saveFinalStatus persists the resolved task status so status queries
// outlive asynq's task retention. Best effort.
func (w *JobWorker) saveFinalStatus(ctx context.Context, task *queue.Task, status, errMsg string) {
	final := &queue.TaskStatus{
		TaskID:     task.ID,
		Status:     status,
		Progress:   1.0,
		Error:      errMsg,
		StartedAt:  task.CreatedAt,
		FinishedAt: time.Now(),
	}

	if err := w.queue.SaveFinalStatus(ctx, final); err != nil {
		w.logger.Error("Failed to save final status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}
}

func (w *JobWorker) handleDocumentExtract(ctx context.Context, t *asynq.Task) error {
	task, err := w.decodeTask(t)
	if err != nil {
		return err
	}

	w.logger.Info("Processing extraction task",
		logger.String("taskId", task.ID),
		logger.String("documentId", task.EntityID),
	)

	outcome, err := w.documents.RunExtraction(ctx, task.EntityID)
	if err != nil {
		return err
	}

	switch outcome.Status {
	case document.OutcomeNotFound:
		w.saveFinalStatus(ctx, task, "failed", outcome.Message)
		return fmt.Errorf("document %s not found: %w", task.EntityID, asynq.SkipRetry)
	case document.OutcomeFaulted:
		w.saveFinalStatus(ctx, task, "failed", outcome.Message)
		return fmt.Errorf("extraction faulted for document %s: %s: %w", task.EntityID, outcome.Message, asynq.SkipRetry)
	default:
		// COMPLETED and PARTIAL are both persisted results.
		if outcome.Succeeded() {
			w.saveFinalStatus(ctx, task, "completed", "")
		} else {
			w.saveFinalStatus(ctx, task, "failed", outcome.Message)
		}
		return nil
	}
}

func (w *JobWorker) handleVoiceTranscribe(ctx context.Context, t *asynq.Task) error {
	task, err := w.decodeTask(t)
	if err != nil {
		return err
	}

	w.logger.Info("Processing transcription task",
		logger.String("taskId", task.ID),
		logger.String("voiceInputId", task.EntityID),
	)

	outcome, err := w.voiceInputs.RunTranscription(ctx, task.EntityID)
	if err != nil {
		return err
	}

	if outcome.Status == voice.OutcomeNotFound {
		w.saveFinalStatus(ctx, task, "failed", outcome.Message)
		return fmt.Errorf("voice input %s not found: %w", task.EntityID, asynq.SkipRetry)
	}

	// COMPLETED and FAILED are both terminal states recorded in the
	// database.
	if outcome.Status == voice.OutcomeCompleted {
		w.saveFinalStatus(ctx, task, "completed", "")
	} else {
		w.saveFinalStatus(ctx, task, "failed", outcome.Message)
	}
	return nil
}

func (w *JobWorker) handlePresentationGenerate(ctx context.Context, t *asynq.Task) error {
	task, err := w.decodeTask(t)
	if err != nil {
		return err
	}

	outcome, err := w.generations.RunGeneration(ctx, task.EntityID)
	if err != nil {
		return err
	}

	if outcome.Status == generation.OutcomeNotFound {
		w.saveFinalStatus(ctx, task, "failed", outcome.Message)
		return fmt.Errorf("generation request %s not found: %w", task.EntityID, asynq.SkipRetry)
	}

	w.saveFinalStatus(ctx, task, "failed", outcome.Message)
	return nil
}

func (w *JobWorker) Start(ctx context.Context) error {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			w.logger.Error("Worker server stopped", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	return nil
}
