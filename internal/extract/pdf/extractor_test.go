package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/pkg/logger"
)

// buildPDF assembles a minimal one-page document with an Info
// dictionary, tracking object offsets so the cross-reference table is
// exact.
func buildPDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	obj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	obj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	content := "BT /F1 12 Tf 72 712 Td (Hello World) Tj ET"
	obj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(content), content))
	obj("6 0 obj\n<< /Title (Quarterly Report) /Author (Jane Doe) >>\nendobj\n")

	xref := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1))
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref))

	return buf.Bytes()
}

func TestExtractOnePageDocument(t *testing.T) {
	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(buildPDF(t)))

	assert.Empty(t, result.Error)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, 1, result.Pages[0].PageNumber)
	assert.Contains(t, result.Pages[0].Text, "Hello World")
	assert.Contains(t, result.Text, "Hello World")

	assert.Equal(t, "Quarterly Report", result.Metadata["title"])
	assert.Equal(t, "Jane Doe", result.Metadata["author"])
}

func TestExtractIsDeterministic(t *testing.T) {
	e := NewExtractor(logger.NewTestLogger())
	data := buildPDF(t)

	first := e.Extract(extract.FromBytes(data))
	second := e.Extract(extract.FromBytes(data))

	assert.Equal(t, first, second)
}

func TestExtractCorruptInput(t *testing.T) {
	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes([]byte("definitely not a pdf")))

	assert.NotEmpty(t, result.Error)
	assert.NotNil(t, result.Metadata)
	assert.NotNil(t, result.Pages)
}

func TestExtractEmptyInput(t *testing.T) {
	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(nil))

	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Pages)
}

func TestExtractTruncatedHeader(t *testing.T) {
	// A valid header with a garbage body must fail as data, not panic.
	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes([]byte("%PDF-1.7\ngarbage trailer")))

	assert.NotEmpty(t, result.Error)
}

func TestNormalizeInfoKey(t *testing.T) {
	assert.Equal(t, "author", normalizeInfoKey("/Author"))
	assert.Equal(t, "creationdate", normalizeInfoKey("CreationDate"))
	assert.Equal(t, "title", normalizeInfoKey("/Title"))
}
