package document

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/prestaforge/content-engine/internal/dispatch"
	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/internal/repository"
	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/queue"
	"github.com/prestaforge/content-engine/pkg/storage"
)

type DocumentService struct {
	dispatcher *dispatch.Dispatcher
	documents  repository.DocumentRepository
	analyses   repository.AnalysisRepository
	queue      queue.Queue
	storage    storage.Storage
	logger     logger.Logger
	config     *ServiceConfig
}

type ServiceConfig struct {
	MaxFileSize     int64
	QueuePriority   int
	RetentionPeriod time.Duration
}

func NewService(
	dispatcher *dispatch.Dispatcher,
	documents repository.DocumentRepository,
	analyses repository.AnalysisRepository,
	q queue.Queue,
	store storage.Storage,
	log logger.Logger,
	cfg *ServiceConfig,
) Service {
	if cfg == nil {
		cfg = &ServiceConfig{
			MaxFileSize:     10 * 1024 * 1024, // 10MB
			QueuePriority:   2,
			RetentionPeriod: 30 * 24 * time.Hour,
		}
	}

	return &DocumentService{
		dispatcher: dispatcher,
		documents:  documents,
		analyses:   analyses,
		queue:      q,
		storage:    store,
		logger:     log,
		config:     cfg,
	}
}

// Upload validates the file, stores its bytes, records the document
// and enqueues the extraction job.
func (s *DocumentService) Upload(
	ctx context.Context,
	userID string,
	file multipart.File,
	header *multipart.FileHeader,
) (*models.Document, error) {
	s.logger.Info("Starting document upload",
		logger.String("filename", header.Filename),
		logger.Int64("size", header.Size),
	)

	fileType, err := s.validateUpload(header)
	if err != nil {
		s.logger.Error("Upload validation failed",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, err
	}

	docID := uuid.New().String()
	storageKey := fmt.Sprintf("documents/%s/%s%s", userID, docID, strings.ToLower(filepath.Ext(header.Filename)))

	if _, err := s.storage.Store(ctx, file, storageKey); err != nil {
		s.logger.Error("Failed to store document",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	now := time.Now().UTC()
	doc := &models.Document{
		ID:         docID,
		UserID:     userID,
		Title:      header.Filename,
		FileType:   fileType,
		FileSize:   header.Size,
		StorageKey: storageKey,
		Processed:  false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	task := &queue.Task{
		ID:        uuid.New().String(),
		Type:      queue.TaskTypeDocumentExtract,
		EntityID:  doc.ID,
		Priority:  s.config.QueuePriority,
		CreatedAt: now,
	}

	if err := s.queue.Enqueue(ctx, task); err != nil {
		s.logger.Error("Failed to enqueue extraction task",
			logger.String("documentId", doc.ID),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to enqueue extraction task: %w", err)
	}

	s.logger.Info("Document upload accepted",
		logger.String("documentId", doc.ID),
		logger.String("taskId", task.ID),
		logger.String("fileType", string(fileType)),
	)

	return doc, nil
}

// UploadBatch uploads files concurrently. A failed file aborts the
// group but documents already accepted stay accepted.
func (s *DocumentService) UploadBatch(ctx context.Context, userID string, files []*multipart.FileHeader) ([]*models.Document, error) {
	docs := make([]*models.Document, 0, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	for _, header := range files {
		header := header
		g.Go(func() error {
			file, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open file %s: %w", header.Filename, err)
			}
			defer file.Close()

			doc, err := s.Upload(ctx, userID, file, header)
			if err != nil {
				return fmt.Errorf("failed to upload file %s: %w", header.Filename, err)
			}

			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return docs, err
	}

	return docs, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *DocumentService) GetAnalysis(ctx context.Context, documentID string) (*models.DocumentAnalysis, error) {
	return s.analyses.GetByDocument(ctx, documentID)
}

// DeleteDocument removes the stored object, the document record and
// its analysis.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return ErrNotFound
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored object: %w", err)
	}
	if err := s.documents.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.logger.Info("Document deleted",
		logger.String("documentId", doc.ID),
	)

	return nil
}

// GetTaskStatus returns the queue-side status of an extraction task:
// the saved terminal status once the job has resolved, the live asynq
// state before that.
func (s *DocumentService) GetTaskStatus(ctx context.Context, taskID string) (*queue.TaskStatus, error) {
	status, err := s.queue.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}
	return status, nil
}

// CancelTask removes a still-queued extraction task.
func (s *DocumentService) CancelTask(ctx context.Context, taskID string) error {
	if err := s.queue.CancelTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}

	s.logger.Info("Task cancelled",
		logger.String("taskId", taskID),
	)

	return nil
}

// CleanupStorage removes stored objects older than the retention
// period. Persisted analyses are unaffected; an expired document can
// no longer be re-extracted.
func (s *DocumentService) CleanupStorage(ctx context.Context) error {
	threshold := time.Now().Add(-s.config.RetentionPeriod)

	if err := s.storage.CleanupBefore(ctx, threshold); err != nil {
		return fmt.Errorf("failed to cleanup storage: %w", err)
	}

	s.logger.Info("Completed storage cleanup",
		logger.Time("threshold", threshold),
	)

	return nil
}

// RunExtraction executes the extraction job for one document. The
// returned error is reserved for transient failures (storage, database)
// that a retry may fix; everything else resolves to an Outcome.
// Re-running is idempotent: the analysis is upserted by document
// identity and converges instead of duplicating.
func (s *DocumentService) RunExtraction(ctx context.Context, documentID string) (outcome Outcome, err error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		s.logger.Warn("Extraction requested for unknown document",
			logger.String("documentId", documentID),
		)
		return Outcome{
			Status:     OutcomeNotFound,
			DocumentID: documentID,
			Message:    "document not found",
		}, nil
	}

	// An unexpected fault must resolve to a record, not a crash. The
	// analysis error write is best effort.
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("extraction fault: %v", r)
			s.logger.Error("Extraction run faulted",
				logger.String("documentId", documentID),
				logger.Any("fault", r),
			)
			s.recordFault(ctx, documentID, msg)
			outcome = Outcome{
				Status:     OutcomeFaulted,
				DocumentID: documentID,
				Message:    msg,
			}
			err = nil
		}
	}()

	reader, err := s.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get document content: %w", err)
	}
	defer reader.Close()

	result := s.dispatcher.Dispatch(doc.FileType, extract.FromReader(reader))
	folded := dispatch.Fold(result)

	analysis := &models.DocumentAnalysis{
		DocumentID:         doc.ID,
		ContentText:        folded.ContentText,
		ContentStructure:   folded.Structure,
		ExtractedImages:    folded.Images,
		ExtractedTables:    folded.Tables,
		ExtractedCharts:    folded.Charts,
		ExtractionComplete: result.Error == "",
		ProcessingErrors:   result.Error,
		ExtractionDate:     time.Now().UTC(),
	}

	if err := s.analyses.UpsertByDocument(ctx, analysis); err != nil {
		return Outcome{}, fmt.Errorf("failed to persist analysis: %w", err)
	}

	if result.Error != "" {
		s.logger.Warn("Extraction completed with errors",
			logger.String("documentId", doc.ID),
			logger.String("fileType", string(doc.FileType)),
			logger.String("error", result.Error),
		)
		return Outcome{
			Status:     OutcomePartial,
			DocumentID: doc.ID,
			Message:    result.Error,
		}, nil
	}

	if err := s.documents.MarkProcessed(ctx, doc.ID); err != nil {
		return Outcome{}, fmt.Errorf("failed to mark document processed: %w", err)
	}

	s.logger.Info("Extraction completed",
		logger.String("documentId", doc.ID),
		logger.String("fileType", string(doc.FileType)),
		logger.Int("pages", len(folded.Structure.Pages)),
		logger.Int("paragraphs", len(folded.Structure.Paragraphs)),
		logger.Int("tables", len(folded.Tables)),
	)

	return Outcome{
		Status:     OutcomeCompleted,
		DocumentID: doc.ID,
	}, nil
}

// recordFault writes a failed analysis so the fault is visible in the
// data. A secondary persistence failure is logged and swallowed.
func (s *DocumentService) recordFault(ctx context.Context, documentID, msg string) {
	analysis := &models.DocumentAnalysis{
		DocumentID: documentID,
		ContentStructure: models.ContentStructure{
			Metadata:   map[string]any{},
			Pages:      []models.Page{},
			Paragraphs: []models.Paragraph{},
			Headings:   []models.Heading{},
		},
		ExtractedImages:    []models.Image{},
		ExtractedTables:    []models.Table{},
		ExtractedCharts:    []models.ChartSeries{},
		ExtractionComplete: false,
		ProcessingErrors:   msg,
		ExtractionDate:     time.Now().UTC(),
	}
	if err := s.analyses.UpsertByDocument(ctx, analysis); err != nil {
		s.logger.Error("Failed to record extraction fault",
			logger.String("documentId", documentID),
			logger.Error(err),
		)
	}
}

// validateUpload enforces the size cap and the extension allow-list,
// returning the declared file type for the document record.
func (s *DocumentService) validateUpload(header *multipart.FileHeader) (models.FileType, error) {
	if header.Size > s.config.MaxFileSize {
		return "", fmt.Errorf("file size exceeds maximum limit of %d bytes", s.config.MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileType, ok := models.FileTypeForExtension[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	return fileType, nil
}
