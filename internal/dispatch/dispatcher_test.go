package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/pkg/logger"
)

type stubExtractor struct {
	result extract.Result
	called bool
}

func (s *stubExtractor) Extract(_ extract.Source) extract.Result {
	s.called = true
	return s.result
}

func TestDispatchSelectsByDeclaredType(t *testing.T) {
	d := NewDispatcher(logger.NewTestLogger())
	stub := &stubExtractor{result: extract.Result{Text: "stubbed"}}
	d.Register(models.FileTypeTXT, stub)

	result := d.Dispatch(models.FileTypeTXT, extract.FromBytes([]byte("x")))

	assert.True(t, stub.called)
	assert.Equal(t, "stubbed", result.Text)
}

func TestDispatchUnknownType(t *testing.T) {
	log := logger.NewTestLogger()
	d := NewDispatcher(log)

	result := d.Dispatch(models.FileType("EPUB"), extract.FromBytes([]byte("x")))

	assert.Equal(t, extract.Result{}, result)
	require.Len(t, log.Entries(), 1)
	assert.Equal(t, "WARN", log.Entries()[0].Level)
}

func TestDispatcherRegistersAllFormats(t *testing.T) {
	d := NewDispatcher(logger.NewTestLogger())

	for _, ft := range []models.FileType{
		models.FileTypePDF,
		models.FileTypeDOCX,
		models.FileTypeXLSX,
		models.FileTypePPTX,
		models.FileTypeTXT,
	} {
		_, ok := d.extractors[ft]
		assert.True(t, ok, "missing extractor for %s", ft)
	}
}

func TestFoldShapesResult(t *testing.T) {
	pos := 0
	r := extract.Result{
		Text:     "body",
		Metadata: map[string]any{"author": "a"},
		Pages:    []models.Page{{PageNumber: 1, Text: "body"}},
		Paragraphs: []models.Paragraph{
			{Text: "body"},
		},
		Headings: []models.Heading{{Level: 1, Text: "h", Position: 0}},
		Tables:   []models.Table{{Position: &pos, Data: [][]string{{"x"}}}},
	}

	folded := Fold(r)

	assert.Equal(t, "body", folded.ContentText)
	assert.Equal(t, r.Metadata, folded.Structure.Metadata)
	assert.Equal(t, r.Pages, folded.Structure.Pages)
	assert.Equal(t, r.Paragraphs, folded.Structure.Paragraphs)
	assert.Equal(t, r.Headings, folded.Structure.Headings)
	assert.Equal(t, r.Tables, folded.Tables)
}

func TestFoldEmptyResultHasNoNils(t *testing.T) {
	folded := Fold(extract.Result{})

	assert.NotNil(t, folded.Structure.Metadata)
	assert.NotNil(t, folded.Structure.Pages)
	assert.NotNil(t, folded.Structure.Paragraphs)
	assert.NotNil(t, folded.Structure.Headings)
	assert.NotNil(t, folded.Images)
	assert.NotNil(t, folded.Tables)
	assert.NotNil(t, folded.Charts)
}
