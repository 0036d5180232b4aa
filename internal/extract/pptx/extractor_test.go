package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prestaforge/content-engine/internal/extract"
)

func TestExtractReportsUnsupported(t *testing.T) {
	e := NewExtractor()
	result := e.Extract(extract.FromBytes([]byte("anything")))

	assert.Equal(t, "PPTX extraction is not supported yet", result.Error)
	assert.Empty(t, result.Text)
	assert.NotNil(t, result.Metadata)
}
