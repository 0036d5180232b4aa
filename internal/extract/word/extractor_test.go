package word

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/pkg/logger"
)

func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const stylesXML = `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="Heading 1"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="Heading 2"/></w:style>
  <w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
</w:styles>`

func paragraph(style, text string) string {
	props := ""
	if style != "" {
		props = `<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`
	}
	return `<w:p>` + props + `<w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func documentXML(body string) string {
	return `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`
}

func TestExtractParagraphsAndHeadings(t *testing.T) {
	body := paragraph("Heading1", "Introduction") +
		paragraph("", "First paragraph.") +
		paragraph("", "   ") + // blank, skipped
		paragraph("Heading2", "Details") +
		paragraph("Normal", "Second paragraph.")

	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(body),
		"word/styles.xml":   stylesXML,
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	require.Empty(t, result.Error)
	require.Len(t, result.Paragraphs, 4)

	assert.True(t, result.Paragraphs[0].IsHeading)
	assert.False(t, result.Paragraphs[1].IsHeading)
	assert.Equal(t, "Details", result.Paragraphs[2].Text)
	assert.True(t, result.Paragraphs[2].IsHeading)

	require.Len(t, result.Headings, 2)
	assert.Equal(t, 1, result.Headings[0].Level)
	assert.Equal(t, "Introduction", result.Headings[0].Text)
	assert.Equal(t, 0, result.Headings[0].Position)
	assert.Equal(t, 2, result.Headings[1].Level)
	assert.Equal(t, 2, result.Headings[1].Position)

	assert.Equal(t, "Introduction\nFirst paragraph.\nDetails\nSecond paragraph.\n", result.Text)
}

func TestExtractHeadingLevelDefaults(t *testing.T) {
	styles := `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Hd"><w:name w:val="Heading"/></w:style>
  <w:style w:type="paragraph" w:styleId="HdX"><w:name w:val="Heading X"/></w:style>
</w:styles>`
	body := paragraph("Hd", "Bare heading") + paragraph("HdX", "Odd suffix")

	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(body),
		"word/styles.xml":   styles,
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	require.Empty(t, result.Error)
	require.Len(t, result.Headings, 2)
	assert.Equal(t, 1, result.Headings[0].Level)
	assert.Equal(t, 1, result.Headings[1].Level)
}

func TestExtractUnresolvedStyleFallsBackToID(t *testing.T) {
	// No styles.xml: the raw style ID is used for heading detection.
	body := paragraph("Heading3", "Raw ID heading")

	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(body),
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	require.Empty(t, result.Error)
	require.Len(t, result.Headings, 1)
	assert.Equal(t, 3, result.Headings[0].Level)
}

func TestExtractTables(t *testing.T) {
	table := `<w:tbl>
  <w:tr><w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Age</w:t></w:r></w:p></w:tc></w:tr>
  <w:tr><w:tc><w:p><w:r><w:t>Ana</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>30</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>`
	body := paragraph("", "Before the table.") + table

	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(body),
		"word/styles.xml":   stylesXML,
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	require.Empty(t, result.Error)
	require.Len(t, result.Tables, 1)

	tbl := result.Tables[0]
	require.NotNil(t, tbl.Position)
	assert.Equal(t, 0, *tbl.Position)
	assert.Equal(t, [][]string{{"Name", "Age"}, {"Ana", "30"}}, tbl.Data)
}

func TestExtractCoreProperties(t *testing.T) {
	core := `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:creator>Test Author</dc:creator>
  <dc:title>Sample Document</dc:title>
  <dcterms:created>2024-01-15T10:00:00Z</dcterms:created>
  <dcterms:modified>2024-02-01T12:30:00Z</dcterms:modified>
</cp:coreProperties>`

	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(paragraph("", "Body.")),
		"docProps/core.xml": core,
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	require.Empty(t, result.Error)
	assert.Equal(t, "Test Author", result.Metadata["author"])
	assert.Equal(t, "Sample Document", result.Metadata["title"])
	assert.Equal(t, "2024-01-15T10:00:00Z", result.Metadata["created"])
	assert.Equal(t, "2024-02-01T12:30:00Z", result.Metadata["modified"])
}

func TestExtractMissingCoreProperties(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(paragraph("", "Body.")),
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	require.Empty(t, result.Error)
	assert.Equal(t, "", result.Metadata["author"])
	assert.Nil(t, result.Metadata["created"])
}

func TestExtractCorruptArchive(t *testing.T) {
	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes([]byte("not a zip archive")))

	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Paragraphs)
	assert.NotNil(t, result.Metadata)
}

func TestExtractMissingDocumentBody(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"docProps/core.xml": `<cp:coreProperties xmlns:cp="x" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:creator>A</dc:creator></cp:coreProperties>`,
	})

	e := NewExtractor(logger.NewTestLogger())
	result := e.Extract(extract.FromBytes(data))

	// Metadata parsed before the failure is preserved.
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, "A", result.Metadata["author"])
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 1, headingLevel("Heading"))
	assert.Equal(t, 2, headingLevel("Heading 2"))
	assert.Equal(t, 9, headingLevel("Heading9"))
	assert.Equal(t, 1, headingLevel("Heading zero"))
	assert.Equal(t, 1, headingLevel("Heading -3"))
}

func TestDeterministicExtraction(t *testing.T) {
	body := paragraph("Heading1", "Title") + paragraph("", "Body text.")
	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(body),
		"word/styles.xml":   stylesXML,
	})

	e := NewExtractor(logger.NewTestLogger())
	first := e.Extract(extract.FromBytes(data))
	second := e.Extract(extract.FromBytes(data))

	assert.Equal(t, first, second)
}
