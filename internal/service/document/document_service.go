package document

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/pkg/queue"
)

// ErrNotFound is returned by mutations whose target document does not
// exist.
var ErrNotFound = errors.New("document not found")

// Service is the document surface: upload intake and task tracking on
// the API side, the extraction job and retention cleanup on the worker
// side.
type Service interface {
	Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.Document, error)
	UploadBatch(ctx context.Context, userID string, files []*multipart.FileHeader) ([]*models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	GetAnalysis(ctx context.Context, documentID string) (*models.DocumentAnalysis, error)
	DeleteDocument(ctx context.Context, id string) error
	GetTaskStatus(ctx context.Context, taskID string) (*queue.TaskStatus, error)
	CancelTask(ctx context.Context, taskID string) error
	CleanupStorage(ctx context.Context) error
	RunExtraction(ctx context.Context, documentID string) (Outcome, error)
}

// OutcomeStatus is the terminal disposition of one extraction run.
type OutcomeStatus string

const (
	// OutcomeCompleted means full content was extracted and the
	// document's processed flag was flipped.
	OutcomeCompleted OutcomeStatus = "COMPLETED"
	// OutcomePartial means the extractor reported a fault; whatever
	// content survived was persisted and the processed flag stays false.
	OutcomePartial OutcomeStatus = "PARTIAL"
	// OutcomeNotFound means the document id resolved to nothing. No
	// state was touched; retrying cannot help.
	OutcomeNotFound OutcomeStatus = "NOT_FOUND"
	// OutcomeFaulted means the run hit an unexpected fault. The error
	// was recorded on the analysis on a best-effort basis.
	OutcomeFaulted OutcomeStatus = "FAULTED"
)

// Outcome is the record an extraction run resolves to. Extraction
// faults are data, not errors: the error return of RunExtraction is
// reserved for transient infrastructure failures worth retrying.
type Outcome struct {
	Status     OutcomeStatus
	DocumentID string
	Message    string
}

// Succeeded reports whether the run persisted a complete analysis.
func (o Outcome) Succeeded() bool {
	return o.Status == OutcomeCompleted
}
