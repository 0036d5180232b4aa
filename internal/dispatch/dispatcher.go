// Package dispatch selects the extractor for a document's declared
// file type and reshapes its result into the persisted content layout.
package dispatch

import (
	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/internal/extract/excel"
	"github.com/prestaforge/content-engine/internal/extract/pdf"
	"github.com/prestaforge/content-engine/internal/extract/plaintext"
	"github.com/prestaforge/content-engine/internal/extract/pptx"
	"github.com/prestaforge/content-engine/internal/extract/word"
	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/pkg/logger"
)

// Dispatcher maps declared file types to extractors. There is no
// content sniffing: the declared type was validated at upload time and
// is trusted here. Adding a format means registering one extractor.
type Dispatcher struct {
	extractors map[models.FileType]extract.Extractor
	logger     logger.Logger
}

// NewDispatcher registers the full extractor set.
func NewDispatcher(log logger.Logger) *Dispatcher {
	return &Dispatcher{
		extractors: map[models.FileType]extract.Extractor{
			models.FileTypePDF:  pdf.NewExtractor(log),
			models.FileTypeDOCX: word.NewExtractor(log),
			models.FileTypeXLSX: excel.NewExtractor(log),
			models.FileTypePPTX: pptx.NewExtractor(),
			models.FileTypeTXT:  plaintext.NewExtractor(log),
		},
		logger: log,
	}
}

// Register replaces or adds the extractor for a file type.
func (d *Dispatcher) Register(ft models.FileType, e extract.Extractor) {
	d.extractors[ft] = e
}

// Dispatch runs the extractor registered for the declared type. An
// unrecognized type yields an empty result with no content fields
// populated rather than an error.
func (d *Dispatcher) Dispatch(fileType models.FileType, source extract.Source) extract.Result {
	e, ok := d.extractors[fileType]
	if !ok {
		d.logger.Warn("No extractor registered for declared type",
			logger.String("fileType", string(fileType)),
		)
		return extract.Result{}
	}
	return e.Extract(source)
}

// Folded is the record shape the persistence layer expects: the
// structural fields nested under one content structure, with images,
// tables and chart series as sibling top-level collections.
type Folded struct {
	ContentText string
	Structure   models.ContentStructure
	Images      []models.Image
	Tables      []models.Table
	Charts      []models.ChartSeries
}

// Fold reshapes an extraction result for persistence. It is a pure
// reshape: no data is invented or dropped.
func Fold(r extract.Result) Folded {
	return Folded{
		ContentText: r.Text,
		Structure: models.ContentStructure{
			Metadata:   emptyMap(r.Metadata),
			Pages:      emptySlice(r.Pages),
			Paragraphs: emptySlice(r.Paragraphs),
			Headings:   emptySlice(r.Headings),
		},
		Images: emptySlice(r.Images),
		Tables: emptySlice(r.Tables),
		Charts: emptySlice(r.ChartSeries),
	}
}

// Persisted collections serialize as [] rather than null.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func emptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
