// Package extract defines the extractor contract and the canonical
// extraction result every format is normalized into.
package extract

import (
	"io"

	"github.com/prestaforge/content-engine/internal/models"
)

// Result is the in-memory output of one extraction run, before
// persistence reshaping. It is a superset structure: each extractor
// populates the fields meaningful to its format and leaves the rest at
// their empty defaults. When Error is set the other fields hold
// whatever was parsed before the failure, never discarded.
type Result struct {
	Text        string
	Metadata    map[string]any
	Pages       []models.Page
	Paragraphs  []models.Paragraph
	Headings    []models.Heading
	Tables      []models.Table
	ChartSeries []models.ChartSeries
	Images      []models.Image
	Error       string
}

// Fail records err on the result and returns it. Partial fields
// already populated are kept as-is.
func (r Result) Fail(err error) Result {
	r.Error = err.Error()
	return r
}

// Extractor turns a raw byte source into a Result. Implementations are
// stateless, deterministic pure functions of their input bytes and
// never return an error: failures are reported through Result.Error.
type Extractor interface {
	Extract(source Source) Result
}

// Source is a raw byte source, tolerant of both a streaming handle and
// an already-materialized buffer.
type Source struct {
	reader io.Reader
	data   []byte
}

// FromReader wraps a streaming handle.
func FromReader(r io.Reader) Source {
	return Source{reader: r}
}

// FromBytes wraps a buffer.
func FromBytes(data []byte) Source {
	return Source{data: data}
}

// Bytes materializes the source as a single buffer. A streaming handle
// is consumed exactly once; repeated calls return the same buffer.
func (s *Source) Bytes() ([]byte, error) {
	if s.data != nil || s.reader == nil {
		return s.data, nil
	}
	data, err := io.ReadAll(s.reader)
	if err != nil {
		return nil, err
	}
	s.data = data
	return s.data, nil
}
