package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prestaforge/content-engine/internal/models"
)

type voiceInputRepository struct {
	db *sqlx.DB
}

func NewVoiceInputRepository(db *sqlx.DB) VoiceInputRepository {
	return &voiceInputRepository{db: db}
}

func (r *voiceInputRepository) Create(ctx context.Context, vi *models.VoiceInput) error {
	query := `
		INSERT INTO voice_inputs (id, user_id, audio_key, audio_name, language, status, transcription, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		vi.ID,
		vi.UserID,
		vi.AudioKey,
		vi.AudioName,
		vi.Language,
		vi.Status,
		vi.Transcription,
		vi.ErrorMessage,
		vi.CreatedAt,
		vi.UpdatedAt,
	)
	return err
}

func (r *voiceInputRepository) GetByID(ctx context.Context, id string) (*models.VoiceInput, error) {
	var vi models.VoiceInput
	query := `
		SELECT id, user_id, audio_key, audio_name, language, status, transcription, error_message, created_at, updated_at
		FROM voice_inputs
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &vi, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vi, nil
}

func (r *voiceInputRepository) SetStatus(ctx context.Context, id string, status models.VoiceStatus) error {
	query := `UPDATE voice_inputs SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	return err
}

func (r *voiceInputRepository) SetTranscription(ctx context.Context, id, transcription string) error {
	query := `
		UPDATE voice_inputs
		SET transcription = $2, status = $3, updated_at = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, transcription, models.VoiceCompleted, time.Now().UTC())
	return err
}

func (r *voiceInputRepository) SetFailure(ctx context.Context, id, errorMessage string) error {
	query := `
		UPDATE voice_inputs
		SET error_message = $2, status = $3, updated_at = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, errorMessage, models.VoiceFailed, time.Now().UTC())
	return err
}
