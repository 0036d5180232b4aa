package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prestaforge/content-engine/internal/models"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, user_id, title, file_type, file_size, storage_key, processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.FileType,
		doc.FileSize,
		doc.StorageKey,
		doc.Processed,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	query := `
		SELECT id, user_id, title, file_type, file_size, storage_key, processed, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &doc, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) MarkProcessed(ctx context.Context, id string) error {
	query := `
		UPDATE documents
		SET processed = TRUE, updated_at = $2
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	return err
}

// Delete removes the document and its analysis. The analysis goes
// explicitly: the driver does not enforce the cascade without the
// foreign_keys pragma.
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM document_analyses WHERE document_id = $1`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}
