package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prestaforge/content-engine/internal/models"
)

type generationRepository struct {
	db *sqlx.DB
}

func NewGenerationRepository(db *sqlx.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(ctx context.Context, req *models.GenerationRequest) error {
	query := `
		INSERT INTO generation_requests (id, user_id, prompt_id, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.UserID,
		req.PromptID,
		req.Status,
		req.ErrorMessage,
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

func (r *generationRepository) GetByID(ctx context.Context, id string) (*models.GenerationRequest, error) {
	var req models.GenerationRequest
	query := `
		SELECT id, user_id, prompt_id, status, error_message, created_at, updated_at
		FROM generation_requests
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *generationRepository) SetStatus(ctx context.Context, id string, status models.GenerationStatus, errorMessage *string) error {
	query := `
		UPDATE generation_requests
		SET status = $2, error_message = $3, updated_at = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, status, errorMessage, time.Now().UTC())
	return err
}
