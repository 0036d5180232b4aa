package models

import (
	"time"
)

// FileType is the format tag assigned at upload time. The extraction
// core trusts it without re-validation.
type FileType string

const (
	FileTypePDF  FileType = "PDF"
	FileTypeDOCX FileType = "DOCX"
	FileTypeXLSX FileType = "XLSX"
	FileTypePPTX FileType = "PPTX"
	FileTypeTXT  FileType = "TXT"
)

// FileTypeForExtension maps an upload extension to its declared file type.
var FileTypeForExtension = map[string]FileType{
	".pdf":  FileTypePDF,
	".docx": FileTypeDOCX,
	".xlsx": FileTypeXLSX,
	".pptx": FileTypePPTX,
	".txt":  FileTypeTXT,
}

// Document is an uploaded office document owned by a user.
// Processed flips from false to true exactly once, at the end of a
// successful extraction run; it stays false on failure.
type Document struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	FileType   FileType  `json:"fileType" db:"file_type"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	StorageKey string    `json:"storageKey" db:"storage_key"`
	Processed  bool      `json:"processed" db:"processed"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Page is one page of a paginated document.
type Page struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// Paragraph is one paragraph in document order.
type Paragraph struct {
	Text      string `json:"text"`
	IsHeading bool   `json:"is_heading"`
}

// Heading is a side index entry into the paragraph sequence.
// Position is the paragraph's index among all emitted paragraphs.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Table is a row-major grid of cell text. Spreadsheet tables carry the
// sheet name, headers and counts; word-processor tables carry their
// 0-based position among the document's tables.
type Table struct {
	Sheet       string     `json:"sheet,omitempty"`
	Position    *int       `json:"position,omitempty"`
	Headers     []string   `json:"headers,omitempty"`
	Data        [][]string `json:"data"`
	RowCount    int        `json:"row_count,omitempty"`
	ColumnCount int        `json:"column_count,omitempty"`
}

// Axis carries one axis of a chart-candidate series. Data holds plain
// scalars only (string, int64, float64), never parser-specific types.
type Axis struct {
	Label string `json:"label"`
	Data  []any  `json:"data"`
}

// ChartSeries is a numeric column paired with a designated x-axis
// column, heuristically proposed as chartable data.
type ChartSeries struct {
	Sheet string `json:"sheet"`
	Title string `json:"title"`
	Type  string `json:"type"`
	XAxis Axis   `json:"x_axis"`
	YAxis Axis   `json:"y_axis"`
}

// Image is a reference to an image extracted from a document.
// Extraction is an interface point only; no extractor populates it yet.
type Image struct {
	Page   int    `json:"page,omitempty"`
	Format string `json:"format,omitempty"`
	Data   string `json:"data,omitempty"`
}

// ContentStructure is the persisted projection of an extraction
// result's structural fields. Images, tables and chart series are kept
// as sibling top-level collections on the analysis.
type ContentStructure struct {
	Metadata   map[string]any `json:"metadata"`
	Pages      []Page         `json:"pages"`
	Paragraphs []Paragraph    `json:"paragraphs"`
	Headings   []Heading      `json:"headings"`
}

// DocumentAnalysis is the 1:1 projection of the latest extraction
// attempt for a document. It is upserted by document identity, mutated
// only by the extraction job, and read-only to everything else.
type DocumentAnalysis struct {
	ID                 string           `json:"id" db:"id"`
	DocumentID         string           `json:"documentId" db:"document_id"`
	ContentText        string           `json:"contentText" db:"content_text"`
	ContentStructure   ContentStructure `json:"contentStructure"`
	ExtractedImages    []Image          `json:"extractedImages"`
	ExtractedTables    []Table          `json:"extractedTables"`
	ExtractedCharts    []ChartSeries    `json:"extractedCharts"`
	ExtractionComplete bool             `json:"extractionComplete" db:"extraction_complete"`
	ProcessingErrors   string           `json:"processingErrors,omitempty" db:"processing_errors"`
	ExtractionDate     time.Time        `json:"extractionDate" db:"extraction_date"`
}
