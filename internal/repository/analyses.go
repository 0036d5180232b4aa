package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prestaforge/content-engine/internal/models"
)

type analysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// analysisRow maps the JSON columns to raw text for scanning.
type analysisRow struct {
	ID                 string         `db:"id"`
	DocumentID         string         `db:"document_id"`
	ContentText        string         `db:"content_text"`
	ContentStructure   string         `db:"content_structure"`
	ExtractedImages    string         `db:"extracted_images"`
	ExtractedTables    string         `db:"extracted_tables"`
	ExtractedCharts    string         `db:"extracted_charts"`
	ExtractionComplete bool           `db:"extraction_complete"`
	ProcessingErrors   sql.NullString `db:"processing_errors"`
	ExtractionDate     sql.NullTime   `db:"extraction_date"`
}

// UpsertByDocument loads-or-creates the analysis row for the document
// and overwrites every field. One row per document, always.
func (r *analysisRepository) UpsertByDocument(ctx context.Context, analysis *models.DocumentAnalysis) error {
	structureJSON, err := json.Marshal(analysis.ContentStructure)
	if err != nil {
		return fmt.Errorf("marshal content structure: %w", err)
	}
	imagesJSON, err := json.Marshal(analysis.ExtractedImages)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}
	tablesJSON, err := json.Marshal(analysis.ExtractedTables)
	if err != nil {
		return fmt.Errorf("marshal tables: %w", err)
	}
	chartsJSON, err := json.Marshal(analysis.ExtractedCharts)
	if err != nil {
		return fmt.Errorf("marshal charts: %w", err)
	}

	var existingID string
	err = r.db.GetContext(ctx, &existingID,
		`SELECT id FROM document_analyses WHERE document_id = $1`, analysis.DocumentID)
	switch err {
	case sql.ErrNoRows:
		if analysis.ID == "" {
			analysis.ID = uuid.New().String()
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO document_analyses
				(id, document_id, content_text, content_structure, extracted_images,
				 extracted_tables, extracted_charts, extraction_complete, processing_errors, extraction_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			analysis.ID,
			analysis.DocumentID,
			analysis.ContentText,
			string(structureJSON),
			string(imagesJSON),
			string(tablesJSON),
			string(chartsJSON),
			analysis.ExtractionComplete,
			nullableString(analysis.ProcessingErrors),
			analysis.ExtractionDate,
		)
		return err
	case nil:
		analysis.ID = existingID
		_, err = r.db.ExecContext(ctx, `
			UPDATE document_analyses
			SET content_text = $2, content_structure = $3, extracted_images = $4,
			    extracted_tables = $5, extracted_charts = $6, extraction_complete = $7,
			    processing_errors = $8, extraction_date = $9
			WHERE id = $1
		`,
			analysis.ID,
			analysis.ContentText,
			string(structureJSON),
			string(imagesJSON),
			string(tablesJSON),
			string(chartsJSON),
			analysis.ExtractionComplete,
			nullableString(analysis.ProcessingErrors),
			analysis.ExtractionDate,
		)
		return err
	default:
		return err
	}
}

func (r *analysisRepository) GetByDocument(ctx context.Context, documentID string) (*models.DocumentAnalysis, error) {
	var row analysisRow
	query := `
		SELECT id, document_id, content_text, content_structure, extracted_images,
		       extracted_tables, extracted_charts, extraction_complete, processing_errors, extraction_date
		FROM document_analyses
		WHERE document_id = $1
	`
	err := r.db.GetContext(ctx, &row, query, documentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	analysis := &models.DocumentAnalysis{
		ID:                 row.ID,
		DocumentID:         row.DocumentID,
		ContentText:        row.ContentText,
		ExtractionComplete: row.ExtractionComplete,
	}
	if row.ProcessingErrors.Valid {
		analysis.ProcessingErrors = row.ProcessingErrors.String
	}
	if row.ExtractionDate.Valid {
		analysis.ExtractionDate = row.ExtractionDate.Time
	}
	if err := json.Unmarshal([]byte(row.ContentStructure), &analysis.ContentStructure); err != nil {
		return nil, fmt.Errorf("unmarshal content structure: %w", err)
	}
	if err := json.Unmarshal([]byte(row.ExtractedImages), &analysis.ExtractedImages); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	if err := json.Unmarshal([]byte(row.ExtractedTables), &analysis.ExtractedTables); err != nil {
		return nil, fmt.Errorf("unmarshal tables: %w", err)
	}
	if err := json.Unmarshal([]byte(row.ExtractedCharts), &analysis.ExtractedCharts); err != nil {
		return nil, fmt.Errorf("unmarshal charts: %w", err)
	}
	return analysis, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
