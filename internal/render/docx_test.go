// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDOCX(t *testing.T, src string) []byte {
	t.Helper()
	renderer := &DOCXRenderer{}
	data, err := renderer.Render(context.Background(), parseDoc(t, src), testStyle(t))
	require.NoError(t, err)
	return data
}

func readZipPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		part, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(part)
	}
	t.Fatalf("part %s not found in container", name)
	return ""
}

func TestDOCXRenderer_ContainerParts(t *testing.T) {
	data := renderDOCX(t, cvFixture)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/styles.xml",
	}, names)
}

func TestDOCXRenderer_DocumentContent(t *testing.T) {
	data := renderDOCX(t, cvFixture)
	docXML := readZipPart(t, data, "word/document.xml")

	assert.Contains(t, docXML, `<w:t xml:space="preserve">Jane Doe</w:t>`)
	assert.Contains(t, docXML, `<w:pStyle w:val="Heading1">`)
	assert.Contains(t, docXML, `<w:pStyle w:val="Heading2">`)
	assert.Contains(t, docXML, `<w:pStyle w:val="Heading3">`)
	assert.Contains(t, docXML, `<w:t xml:space="preserve">• </w:t>`)
	assert.Contains(t, docXML, `<w:jc w:val="center">`)
	assert.Contains(t, docXML, `<w:br w:type="page">`)
	assert.Contains(t, docXML, "github.com/janedoe")
}

func TestDOCXRenderer_RunProperties(t *testing.T) {
	data := renderDOCX(t, cvFixture)
	docXML := readZipPart(t, data, "word/document.xml")

	assert.Contains(t, docXML, "<w:b>", "strong spans map to bold runs")
	assert.Contains(t, docXML, "<w:i>", "emphasis spans map to italic runs")
}

func TestDOCXRenderer_PageGeometry(t *testing.T) {
	data := renderDOCX(t, cvFixture)
	docXML := readZipPart(t, data, "word/document.xml")

	assert.Contains(t, docXML, `<w:pgSz w:w="11906" w:h="16838">`)
	assert.Contains(t, docXML, `w:top="850"`)
	assert.Contains(t, docXML, `w:left="1134"`)
	assert.NotContains(t, docXML, "<w:cols")
}

func TestDOCXRenderer_TwoColumnSection(t *testing.T) {
	twoCol := strings.Replace(cvFixture, "---\n\n# Experience",
		"layout:\n  columns: 2\n---\n\n# Experience", 1)
	data := renderDOCX(t, twoCol)
	docXML := readZipPart(t, data, "word/document.xml")

	assert.Contains(t, docXML, `<w:cols w:num="2" w:space="708">`)
}

func TestDOCXRenderer_StylesCarryResolvedTheme(t *testing.T) {
	data := renderDOCX(t, cvFixture)
	stylesXML := readZipPart(t, data, "word/styles.xml")

	assert.Contains(t, stylesXML, `w:styleId="Heading1"`)
	assert.Contains(t, stylesXML, `w:styleId="Heading2"`)
	assert.Contains(t, stylesXML, `w:styleId="Heading3"`)
	assert.Contains(t, stylesXML, `w:ascii="Open Sans"`)
	assert.Contains(t, stylesXML, `w:ascii="Inter"`)
	assert.Contains(t, stylesXML, `w:color="FF6B35"`)
	assert.Contains(t, stylesXML, `<w:sz w:val="32">`)
}

func TestDOCXRenderer_Letter(t *testing.T) {
	data := renderDOCX(t, letterFixture)
	docXML := readZipPart(t, data, "word/document.xml")

	assert.Contains(t, docXML, `<w:jc w:val="right">`)
	assert.Contains(t, docXML, "10 March 2025")
	assert.Contains(t, docXML, "Subject: Application for Senior Engineer")
	assert.Contains(t, docXML, "Acme Corp")
}
