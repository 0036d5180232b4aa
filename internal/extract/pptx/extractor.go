// Package pptx reserves the PPTX slot in the extractor registry.
// Slide extraction is not implemented; the extractor reports that
// explicitly instead of borrowing another format's behavior.
package pptx

import (
	"github.com/prestaforge/content-engine/internal/extract"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ extract.Source) extract.Result {
	return extract.Result{
		Metadata: map[string]any{},
		Error:    "PPTX extraction is not supported yet",
	}
}
