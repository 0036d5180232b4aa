// Package plaintext extracts content from plain text files.
package plaintext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

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

// Extract decodes the byte source once and derives both the full text
// and the paragraph sequence from that single buffer. Paragraphs are
// split on blank-line boundaries; empty segments keep their position.
func (e *Extractor) Extract(source extract.Source) (result extract.Result) {
	result.Paragraphs = []models.Paragraph{}

	data, err := source.Bytes()
	if err != nil {
		return result.Fail(fmt.Errorf("read source: %w", err))
	}

	text, err := decode(data)
	if err != nil {
		e.logger.Error("Failed to decode text file", logger.Error(err))
		return result.Fail(fmt.Errorf("decode text: %w", err))
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	result.Text = text

	for _, block := range strings.Split(text, "\n\n") {
		result.Paragraphs = append(result.Paragraphs, models.Paragraph{Text: block})
	}
	return result
}

// decode handles UTF-8 (with or without BOM), UTF-16 both orders, and
// falls back to Windows-1252 then Latin-1 for legacy files.
func decode(data []byte) (string, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return transformBytes(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), data)
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return transformBytes(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), data)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	if s, err := transformBytes(charmap.Windows1252, data); err == nil {
		return s, nil
	}
	return transformBytes(charmap.ISO8859_1, data)
}

func transformBytes(enc encoding.Encoding, data []byte) (string, error) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
