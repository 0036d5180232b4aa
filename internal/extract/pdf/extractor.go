// Package pdf extracts text and metadata from PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/pkg/logger"
)

type Extractor struct {
	logger logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// Extract opens the byte source as a paged document and pulls document
// metadata plus per-page text in page order. The full text is the page
// texts joined with a blank line. Image extraction is an interface
// point only; it currently yields an empty sequence.
func (e *Extractor) Extract(source extract.Source) (result extract.Result) {
	result.Metadata = map[string]any{}
	result.Pages = []models.Page{}
	result.Images = []models.Image{}

	// The underlying parser panics on some malformed inputs; the
	// extractor contract converts any failure into Result.Error.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("PDF extraction panicked", logger.Any("panic", r))
			result.Error = fmt.Sprintf("pdf parse failure: %v", r)
		}
	}()

	data, err := source.Bytes()
	if err != nil {
		return result.Fail(fmt.Errorf("read source: %w", err))
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		e.logger.Error("Failed to open PDF", logger.Error(err))
		return result.Fail(fmt.Errorf("open pdf: %w", err))
	}

	e.extractMetadata(pdfReader, &result)

	texts := make([]string, 0, pdfReader.NumPage())
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			// Unreadable pages still occupy their position.
			result.Pages = append(result.Pages, models.Page{PageNumber: i, Text: ""})
			texts = append(texts, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Error("Failed to read PDF page",
				logger.Int("page", i),
				logger.Error(err),
			)
			result.Text = strings.Join(texts, "\n\n")
			return result.Fail(fmt.Errorf("page %d: %w", i, err))
		}

		result.Pages = append(result.Pages, models.Page{PageNumber: i, Text: text})
		texts = append(texts, text)
	}

	result.Text = strings.Join(texts, "\n\n")
	return result
}

// extractMetadata reads the trailer Info dictionary. Keys are
// lower-cased with any leading name marker stripped.
func (e *Extractor) extractMetadata(r *pdf.Reader, result *extract.Result) {
	trailer := r.Trailer()
	if trailer.IsNull() {
		return
	}
	info := trailer.Key("Info")
	if info.IsNull() || info.Kind() != pdf.Dict {
		return
	}
	for _, key := range info.Keys() {
		result.Metadata[normalizeInfoKey(key)] = infoValue(info.Key(key))
	}
}

func normalizeInfoKey(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, "/"))
}

func infoValue(v pdf.Value) any {
	switch v.Kind() {
	case pdf.String:
		return v.Text()
	case pdf.Integer:
		return v.Int64()
	case pdf.Real:
		return v.Float64()
	case pdf.Bool:
		return v.Bool()
	case pdf.Name:
		return strings.TrimPrefix(v.String(), "/")
	default:
		return v.String()
	}
}
