package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/prestaforge/content-engine/internal/models"
)

type promptRepository struct {
	db *sqlx.DB
}

func NewPromptRepository(db *sqlx.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.AIPrompt) error {
	query := `
		INSERT INTO ai_prompts (id, user_id, text, source, voice_input_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		prompt.ID,
		prompt.UserID,
		prompt.Text,
		prompt.Source,
		prompt.VoiceInputID,
		prompt.CreatedAt,
	)
	return err
}

func (r *promptRepository) GetByID(ctx context.Context, id string) (*models.AIPrompt, error) {
	var prompt models.AIPrompt
	query := `
		SELECT id, user_id, text, source, voice_input_id, created_at
		FROM ai_prompts
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &prompt, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) ListByUser(ctx context.Context, userID string) ([]models.AIPrompt, error) {
	prompts := []models.AIPrompt{}
	query := `
		SELECT id, user_id, text, source, voice_input_id, created_at
		FROM ai_prompts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &prompts, query, userID); err != nil {
		return nil, err
	}
	return prompts, nil
}
