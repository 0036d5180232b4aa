// Package word extracts text, structure and tables from DOCX
// documents. A DOCX file is a ZIP container; the document body lives
// in word/document.xml, style definitions in word/styles.xml and core
// metadata in docProps/core.xml.
package word

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/pkg/logger"
)

const headingStylePrefix = "Heading"

type Extractor struct {
	logger logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
	Tables     []xmlTable     `xml:"tbl"`
}

type xmlParagraph struct {
	Props *xmlParaProps `xml:"pPr"`
	Runs  []xmlRun      `xml:"r"`
}

type xmlParaProps struct {
	Style *xmlValAttr `xml:"pStyle"`
}

type xmlValAttr struct {
	Val string `xml:"val,attr"`
}

type xmlRun struct {
	Texts []string `xml:"t"`
}

type xmlTable struct {
	Rows []xmlTableRow `xml:"tr"`
}

type xmlTableRow struct {
	Cells []xmlTableCell `xml:"tc"`
}

type xmlTableCell struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlStyles struct {
	Styles []xmlStyle `xml:"style"`
}

type xmlStyle struct {
	ID   string      `xml:"styleId,attr"`
	Name *xmlValAttr `xml:"name"`
}

type xmlCoreProperties struct {
	Creator  string `xml:"creator"`
	Title    string `xml:"title"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// Extract walks the document body in order. Blank-only paragraphs are
// skipped from the emitted sequence but ordering is preserved. A
// paragraph whose resolved style name starts with "Heading" is a
// heading; the level is the numeric suffix of the style name, 1 when
// there is none. Tables become row-major grids of cell text tagged
// with their 0-based position.
func (e *Extractor) Extract(source extract.Source) (result extract.Result) {
	result.Metadata = map[string]any{}
	result.Paragraphs = []models.Paragraph{}
	result.Headings = []models.Heading{}
	result.Tables = []models.Table{}

	data, err := source.Bytes()
	if err != nil {
		return result.Fail(fmt.Errorf("read source: %w", err))
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("Failed to open DOCX container", logger.Error(err))
		return result.Fail(fmt.Errorf("open docx: %w", err))
	}

	e.extractCoreProperties(zr, &result)
	styleNames := e.styleNames(zr)

	var doc xmlDocument
	if err := unmarshalPart(zr, "word/document.xml", &doc); err != nil {
		e.logger.Error("Failed to parse document body", logger.Error(err))
		return result.Fail(fmt.Errorf("parse document body: %w", err))
	}

	var text strings.Builder
	for _, para := range doc.Body.Paragraphs {
		t := paragraphText(para)
		if strings.TrimSpace(t) == "" {
			continue
		}
		text.WriteString(t)
		text.WriteString("\n")

		styleName := resolveStyle(para, styleNames)
		isHeading := strings.HasPrefix(styleName, headingStylePrefix)
		if isHeading {
			result.Headings = append(result.Headings, models.Heading{
				Level:    headingLevel(styleName),
				Text:     t,
				Position: len(result.Paragraphs),
			})
		}
		result.Paragraphs = append(result.Paragraphs, models.Paragraph{
			Text:      t,
			IsHeading: isHeading,
		})
	}

	for i, tbl := range doc.Body.Tables {
		grid := make([][]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cellText(cell))
			}
			grid = append(grid, cells)
		}
		pos := i
		result.Tables = append(result.Tables, models.Table{
			Position: &pos,
			Data:     grid,
		})
	}

	result.Text = text.String()
	return result
}

// extractCoreProperties fills author, title and the created/modified
// timestamps (string form, nil when absent). A missing part is not an
// error; DOCX writers may omit it.
func (e *Extractor) extractCoreProperties(zr *zip.Reader, result *extract.Result) {
	var props xmlCoreProperties
	if err := unmarshalPart(zr, "docProps/core.xml", &props); err != nil {
		result.Metadata["author"] = ""
		result.Metadata["title"] = ""
		result.Metadata["created"] = nil
		result.Metadata["modified"] = nil
		return
	}
	result.Metadata["author"] = props.Creator
	result.Metadata["title"] = props.Title
	result.Metadata["created"] = timestampOrNil(props.Created)
	result.Metadata["modified"] = timestampOrNil(props.Modified)
}

// styleNames maps style IDs to their display names. Heading detection
// works on display names ("Heading 1"), not IDs ("Heading1").
func (e *Extractor) styleNames(zr *zip.Reader) map[string]string {
	names := map[string]string{}
	var styles xmlStyles
	if err := unmarshalPart(zr, "word/styles.xml", &styles); err != nil {
		return names
	}
	for _, s := range styles.Styles {
		if s.Name != nil {
			names[s.ID] = s.Name.Val
		}
	}
	return names
}

func unmarshalPart(zr *zip.Reader, name string, v any) error {
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == name {
			part = f
			break
		}
	}
	if part == nil {
		return fmt.Errorf("%s not found in archive", name)
	}
	rc, err := part.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := xml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func paragraphText(p xmlParagraph) string {
	var b strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Texts {
			b.WriteString(t)
		}
	}
	return b.String()
}

func cellText(c xmlTableCell) string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

func resolveStyle(p xmlParagraph, names map[string]string) string {
	if p.Props == nil || p.Props.Style == nil {
		return ""
	}
	id := p.Props.Style.Val
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

// headingLevel parses the numeric suffix of a heading style name.
// "Heading 2" yields 2; a bare "Heading" yields 1.
func headingLevel(styleName string) int {
	suffix := strings.TrimSpace(strings.TrimPrefix(styleName, headingStylePrefix))
	if suffix == "" {
		return 1
	}
	level, err := strconv.Atoi(suffix)
	if err != nil || level < 1 {
		return 1
	}
	return level
}

func timestampOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
