package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestaforge/content-engine/internal/models"
)

func testRepositories(t *testing.T) *Repositories {
	t.Helper()

	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db, "migrations"))
	return NewRepositories(db)
}

func testDocument(id string) *models.Document {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Document{
		ID:         id,
		UserID:     "user-1",
		Title:      "report.docx",
		FileType:   models.FileTypeDOCX,
		FileSize:   1024,
		StorageKey: "documents/user-1/" + id,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestDocumentLifecycle(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, repos.Documents.Create(ctx, doc))

	loaded, err := repos.Documents.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, doc.Title, loaded.Title)
	assert.False(t, loaded.Processed)

	require.NoError(t, repos.Documents.MarkProcessed(ctx, "doc-1"))

	loaded, err = repos.Documents.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, loaded.Processed)
}

func TestDocumentDeleteRemovesAnalysis(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Documents.Create(ctx, testDocument("doc-1")))
	require.NoError(t, repos.Analyses.UpsertByDocument(ctx, &models.DocumentAnalysis{
		DocumentID:       "doc-1",
		ContentText:      "body",
		ContentStructure: models.ContentStructure{},
		ExtractedImages:  []models.Image{},
		ExtractedTables:  []models.Table{},
		ExtractedCharts:  []models.ChartSeries{},
		ExtractionDate:   time.Now().UTC(),
	}))

	require.NoError(t, repos.Documents.Delete(ctx, "doc-1"))

	doc, err := repos.Documents.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, doc)

	analysis, err := repos.Analyses.GetByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestDocumentGetByIDMissing(t *testing.T) {
	repos := testRepositories(t)

	doc, err := repos.Documents.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAnalysisUpsertConverges(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Documents.Create(ctx, testDocument("doc-1")))

	first := &models.DocumentAnalysis{
		DocumentID:  "doc-1",
		ContentText: "first run",
		ContentStructure: models.ContentStructure{
			Metadata:   map[string]any{"author": "a"},
			Pages:      []models.Page{},
			Paragraphs: []models.Paragraph{{Text: "first run"}},
			Headings:   []models.Heading{},
		},
		ExtractedImages:    []models.Image{},
		ExtractedTables:    []models.Table{},
		ExtractedCharts:    []models.ChartSeries{},
		ExtractionComplete: false,
		ProcessingErrors:   "page 3 unreadable",
		ExtractionDate:     time.Now().UTC(),
	}
	require.NoError(t, repos.Analyses.UpsertByDocument(ctx, first))
	require.NotEmpty(t, first.ID)

	second := &models.DocumentAnalysis{
		DocumentID:  "doc-1",
		ContentText: "second run",
		ContentStructure: models.ContentStructure{
			Metadata:   map[string]any{"author": "a"},
			Pages:      []models.Page{},
			Paragraphs: []models.Paragraph{{Text: "second run"}},
			Headings:   []models.Heading{},
		},
		ExtractedImages:    []models.Image{},
		ExtractedTables:    []models.Table{},
		ExtractedCharts:    []models.ChartSeries{},
		ExtractionComplete: true,
		ExtractionDate:     time.Now().UTC(),
	}
	require.NoError(t, repos.Analyses.UpsertByDocument(ctx, second))

	// The second run reuses the first run's row.
	assert.Equal(t, first.ID, second.ID)

	loaded, err := repos.Analyses.GetByDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "second run", loaded.ContentText)
	assert.True(t, loaded.ExtractionComplete)
	assert.Empty(t, loaded.ProcessingErrors)
	require.Len(t, loaded.ContentStructure.Paragraphs, 1)
	assert.Equal(t, "second run", loaded.ContentStructure.Paragraphs[0].Text)
}

func TestAnalysisGetByDocumentMissing(t *testing.T) {
	repos := testRepositories(t)

	analysis, err := repos.Analyses.GetByDocument(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestVoiceInputTransitions(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	vi := &models.VoiceInput{
		ID:        "vi-1",
		UserID:    "user-1",
		AudioKey:  "voice/user-1/vi-1",
		AudioName: "clip.wav",
		Language:  "en",
		Status:    models.VoicePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.VoiceInputs.Create(ctx, vi))

	require.NoError(t, repos.VoiceInputs.SetStatus(ctx, "vi-1", models.VoiceProcessing))
	loaded, err := repos.VoiceInputs.GetByID(ctx, "vi-1")
	require.NoError(t, err)
	assert.Equal(t, models.VoiceProcessing, loaded.Status)

	require.NoError(t, repos.VoiceInputs.SetTranscription(ctx, "vi-1", "hello world"))
	loaded, err = repos.VoiceInputs.GetByID(ctx, "vi-1")
	require.NoError(t, err)
	assert.Equal(t, models.VoiceCompleted, loaded.Status)
	require.NotNil(t, loaded.Transcription)
	assert.Equal(t, "hello world", *loaded.Transcription)
	assert.Nil(t, loaded.ErrorMessage)
}

func TestVoiceInputFailure(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	now := time.Now().UTC()
	vi := &models.VoiceInput{
		ID:        "vi-2",
		UserID:    "user-1",
		AudioKey:  "voice/user-1/vi-2",
		AudioName: "clip.flac",
		Language:  "en",
		Status:    models.VoicePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.VoiceInputs.Create(ctx, vi))
	require.NoError(t, repos.VoiceInputs.SetFailure(ctx, "vi-2", "unsupported audio format: .flac"))

	loaded, err := repos.VoiceInputs.GetByID(ctx, "vi-2")
	require.NoError(t, err)
	assert.Equal(t, models.VoiceFailed, loaded.Status)
	require.NotNil(t, loaded.ErrorMessage)
	assert.Contains(t, *loaded.ErrorMessage, ".flac")
}

func TestPromptListByUser(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, text := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, repos.Prompts.Create(ctx, &models.AIPrompt{
			ID:        text,
			UserID:    "user-1",
			Text:      text,
			Source:    models.PromptSourceText,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repos.Prompts.Create(ctx, &models.AIPrompt{
		ID:        "other",
		UserID:    "user-2",
		Text:      "other user",
		Source:    models.PromptSourceText,
		CreatedAt: base,
	}))

	prompts, err := repos.Prompts.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, prompts, 3)
	assert.Equal(t, "newest", prompts[0].Text)
	assert.Equal(t, "oldest", prompts[2].Text)
}

func TestGenerationRequestStatus(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repos.Prompts.Create(ctx, &models.AIPrompt{
		ID:        "p-1",
		UserID:    "user-1",
		Text:      "slides",
		Source:    models.PromptSourceText,
		CreatedAt: now,
	}))

	req := &models.GenerationRequest{
		ID:        "gr-1",
		UserID:    "user-1",
		PromptID:  "p-1",
		Status:    models.GenerationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.Generations.Create(ctx, req))

	msg := "presentation generation is not implemented yet"
	require.NoError(t, repos.Generations.SetStatus(ctx, "gr-1", models.GenerationFailed, &msg))

	loaded, err := repos.Generations.GetByID(ctx, "gr-1")
	require.NoError(t, err)
	assert.Equal(t, models.GenerationFailed, loaded.Status)
	require.NotNil(t, loaded.ErrorMessage)
	assert.Equal(t, msg, *loaded.ErrorMessage)
}
