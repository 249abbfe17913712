// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/themes"
)

// OOXML namespaces and static container parts.
const (
	wordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>
`

	docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

	docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>
`
)

// A4 page geometry in twentieths of a point.
const (
	docxPageWidth  = 11906
	docxPageHeight = 16838
)

// DOCXRenderer maps document blocks to a WordprocessingML paragraph/run
// tree and writes the OOXML zip container. Zip entries carry no timestamps
// so repeated renders of the same document are byte-identical.
type DOCXRenderer struct{}

func (r *DOCXRenderer) Render(ctx context.Context, doc *document.Document, style *themes.Style) ([]byte, error) {
	wordDoc := docxDocument{
		XMLNSW: wordprocessingMLNamespace,
		Body:   buildDocxBody(doc, style),
	}
	docXML, err := marshalDocxPart(wordDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal word/document.xml: %w", err)
	}
	stylesXML, err := marshalDocxPart(buildDocxStyles(style))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal word/styles.xml: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxRootRels)},
		{"word/_rels/document.xml.rels", []byte(docxDocumentRels)},
		{"word/document.xml", docXML},
		{"word/styles.xml", stylesXML},
	}
	for _, part := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create zip entry %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write zip entry %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx container: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalDocxPart(v interface{}) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	declaration := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	return append([]byte(declaration), data...), nil
}

// docxDocument is the root of word/document.xml.
type docxDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNSW  string   `xml:"xmlns:w,attr"`
	Body    docxBody `xml:"w:body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"w:p"`
	SectPr     docxSectPr      `xml:"w:sectPr"`
}

type docxParagraph struct {
	Props *docxParaProps `xml:"w:pPr,omitempty"`
	Runs  []docxRun      `xml:"w:r"`
}

type docxParaProps struct {
	Style   *docxVal         `xml:"w:pStyle,omitempty"`
	Borders *docxParaBorders `xml:"w:pBdr,omitempty"`
	Spacing *docxSpacing     `xml:"w:spacing,omitempty"`
	Ind     *docxInd         `xml:"w:ind,omitempty"`
	Jc      *docxVal         `xml:"w:jc,omitempty"`
}

type docxParaBorders struct {
	Bottom docxBorder `xml:"w:bottom"`
}

type docxBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type docxSpacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type docxInd struct {
	Left    string `xml:"w:left,attr,omitempty"`
	Hanging string `xml:"w:hanging,attr,omitempty"`
}

type docxRun struct {
	Props *docxRunProps `xml:"w:rPr,omitempty"`
	Break *docxBreak    `xml:"w:br,omitempty"`
	Text  *docxText     `xml:"w:t,omitempty"`
}

type docxRunProps struct {
	Fonts     *docxFonts `xml:"w:rFonts,omitempty"`
	Bold      *docxOnOff `xml:"w:b,omitempty"`
	Italic    *docxOnOff `xml:"w:i,omitempty"`
	Color     *docxVal   `xml:"w:color,omitempty"`
	Size      *docxVal   `xml:"w:sz,omitempty"`
	Underline *docxVal   `xml:"w:u,omitempty"`
}

type docxFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

type docxOnOff struct {
	Val string `xml:"w:val,attr,omitempty"`
}

type docxVal struct {
	Val string `xml:"w:val,attr"`
}

type docxBreak struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type docxText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type docxSectPr struct {
	PgSz  docxPgSz  `xml:"w:pgSz"`
	PgMar docxPgMar `xml:"w:pgMar"`
	Cols  *docxCols `xml:"w:cols,omitempty"`
}

type docxPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type docxPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

type docxCols struct {
	Num   int `xml:"w:num,attr"`
	Space int `xml:"w:space,attr"`
}

// docxStyles is the root of word/styles.xml. It is generated per document
// so resolved theme values land in the style definitions.
type docxStyles struct {
	XMLName     xml.Name        `xml:"w:styles"`
	XMLNSW      string          `xml:"xmlns:w,attr"`
	DocDefaults docxDocDefaults `xml:"w:docDefaults"`
	Styles      []docxStyle     `xml:"w:style"`
}

type docxDocDefaults struct {
	RPrDefault docxRPrDefault `xml:"w:rPrDefault"`
	PPrDefault docxPPrDefault `xml:"w:pPrDefault"`
}

type docxRPrDefault struct {
	Props docxRunProps `xml:"w:rPr"`
}

type docxPPrDefault struct {
	Props docxParaProps `xml:"w:pPr"`
}

type docxStyle struct {
	Type     string         `xml:"w:type,attr"`
	StyleID  string         `xml:"w:styleId,attr"`
	Name     docxVal        `xml:"w:name"`
	ParaPr   *docxParaProps `xml:"w:pPr,omitempty"`
	RunProps *docxRunProps  `xml:"w:rPr,omitempty"`
}

func buildDocxStyles(style *themes.Style) docxStyles {
	f := style.Fonts
	c := style.Colors
	bodyPt := sizePt(f.SizeNormal, 11)

	headingFonts := &docxFonts{ASCII: f.HeaderFamily, HAnsi: f.HeaderFamily}
	return docxStyles{
		XMLNSW: wordprocessingMLNamespace,
		DocDefaults: docxDocDefaults{
			RPrDefault: docxRPrDefault{Props: docxRunProps{
				Fonts: &docxFonts{ASCII: f.BodyFamily, HAnsi: f.BodyFamily},
				Color: &docxVal{Val: hexVal(c.Text)},
				Size:  &docxVal{Val: halfPoints(bodyPt)},
			}},
			PPrDefault: docxPPrDefault{Props: docxParaProps{
				Spacing: &docxSpacing{
					After:    "120",
					Line:     strconv.Itoa(int(math.Round(f.LineHeight * 240))),
					LineRule: "auto",
				},
			}},
		},
		Styles: []docxStyle{
			{
				Type: "paragraph", StyleID: "Heading1",
				Name: docxVal{Val: "heading 1"},
				ParaPr: &docxParaProps{
					Borders: &docxParaBorders{Bottom: docxBorder{
						Val: "single", Sz: int(separatorThickness * 8), Space: 4, Color: hexVal(c.Accent),
					}},
					Spacing: headingSpacing(h1SpacingAbove, h1SpacingBelow, bodyPt),
				},
				RunProps: &docxRunProps{
					Fonts: headingFonts,
					Bold:  &docxOnOff{},
					Color: &docxVal{Val: hexVal(c.H1Color())},
					Size:  &docxVal{Val: halfPoints(sizePt(f.SizeSection, 16))},
				},
			},
			{
				Type: "paragraph", StyleID: "Heading2",
				Name:   docxVal{Val: "heading 2"},
				ParaPr: &docxParaProps{Spacing: headingSpacing(h2SpacingAbove, h2SpacingBelow, bodyPt)},
				RunProps: &docxRunProps{
					Fonts: headingFonts,
					Bold:  &docxOnOff{},
					Color: &docxVal{Val: hexVal(c.H2Color())},
					Size:  &docxVal{Val: halfPoints(sizePt(f.SizeSubsection, 14))},
				},
			},
			{
				Type: "paragraph", StyleID: "Heading3",
				Name:   docxVal{Val: "heading 3"},
				ParaPr: &docxParaProps{Spacing: headingSpacing(h3SpacingAbove, h3SpacingBelow, bodyPt)},
				RunProps: &docxRunProps{
					Fonts: headingFonts,
					Bold:  &docxOnOff{},
					Color: &docxVal{Val: hexVal(c.H3Color())},
					Size:  &docxVal{Val: halfPoints(sizePt(h3Size, 12))},
				},
			},
		},
	}
}

func buildDocxBody(doc *document.Document, style *themes.Style) docxBody {
	var paragraphs []docxParagraph
	if doc.Meta.IsLetter() {
		paragraphs = append(paragraphs, letterHeaderParagraphs(doc.Meta, style)...)
		paragraphs = append(paragraphs, recipientParagraphs(doc.Meta, style)...)
	} else {
		paragraphs = append(paragraphs, cvHeaderParagraphs(doc.Meta, style)...)
	}
	for _, b := range doc.Content {
		paragraphs = append(paragraphs, blockParagraphs(b, style)...)
	}
	if doc.Meta.IsLetter() {
		paragraphs = append(paragraphs, signatureParagraphs(doc.Meta, style)...)
	}

	m := doc.Meta.Layout.Margins
	sectPr := docxSectPr{
		PgSz: docxPgSz{W: docxPageWidth, H: docxPageHeight},
		PgMar: docxPgMar{
			Top:    cmTwips(m.TopCM()),
			Right:  cmTwips(m.RightCM()),
			Bottom: cmTwips(m.BottomCM()),
			Left:   cmTwips(m.LeftCM()),
		},
	}
	if cols := doc.Meta.Layout.ColumnCount(); cols > 1 {
		sectPr.Cols = &docxCols{Num: cols, Space: 708}
	}
	return docxBody{Paragraphs: paragraphs, SectPr: sectPr}
}

func cvHeaderParagraphs(meta document.Metadata, style *themes.Style) []docxParagraph {
	f := style.Fonts
	center := &docxParaProps{Jc: &docxVal{Val: "center"}}

	out := []docxParagraph{{
		Props: &docxParaProps{Jc: &docxVal{Val: "center"}, Spacing: &docxSpacing{After: "60"}},
		Runs: []docxRun{textRun(meta.Name, &docxRunProps{
			Fonts: &docxFonts{ASCII: f.HeaderFamily, HAnsi: f.HeaderFamily},
			Bold:  &docxOnOff{},
			Size:  &docxVal{Val: halfPoints(sizePt(f.SizeName, 28))},
		})},
	}}
	if meta.Location != "" {
		out = append(out, docxParagraph{
			Props: center,
			Runs:  []docxRun{textRun(meta.Location, &docxRunProps{Italic: &docxOnOff{}})},
		})
	}

	contactProps := &docxRunProps{
		Color: &docxVal{Val: hexVal(style.Colors.Muted)},
		Size:  &docxVal{Val: halfPoints(sizePt(f.SizeSmall, 10))},
	}
	var contact []string
	for _, item := range meta.ContactItems() {
		switch item.Kind {
		case "github":
			_, label := profileLink("github.com", item.Value)
			contact = append(contact, label)
		case "linkedin":
			_, label := profileLink("linkedin.com/in", item.Value)
			contact = append(contact, label)
		default:
			contact = append(contact, item.Value)
		}
	}
	out = append(out, docxParagraph{
		Props: &docxParaProps{Jc: &docxVal{Val: "center"}, Spacing: &docxSpacing{After: "240"}},
		Runs:  []docxRun{textRun(strings.Join(contact, " | "), contactProps)},
	})
	return out
}

func letterHeaderParagraphs(meta document.Metadata, style *themes.Style) []docxParagraph {
	f := style.Fonts
	right := &docxParaProps{Jc: &docxVal{Val: "right"}, Spacing: &docxSpacing{After: "0"}}

	runs := []docxRun{textRun(meta.Name, &docxRunProps{
		Fonts: &docxFonts{ASCII: f.HeaderFamily, HAnsi: f.HeaderFamily},
		Bold:  &docxOnOff{},
		Size:  &docxVal{Val: halfPoints(sizePt(f.SizeSubsection, 14))},
	})}
	for _, line := range []string{meta.Location, meta.Phone, meta.Email, meta.Website} {
		if line == "" {
			continue
		}
		runs = append(runs, docxRun{Break: &docxBreak{}}, textRun(line, nil))
	}
	return []docxParagraph{{Props: right, Runs: runs}}
}

func recipientParagraphs(meta document.Metadata, style *themes.Style) []docxParagraph {
	date := meta.FormattedDate()
	if date == "" {
		date = time.Now().Format("2 January 2006")
	}
	out := []docxParagraph{{
		Props: &docxParaProps{Spacing: &docxSpacing{Before: "360", After: "240"}},
		Runs:  []docxRun{textRun(date, &docxRunProps{Bold: &docxOnOff{}})},
	}}

	var runs []docxRun
	addLine := func(run docxRun) {
		if len(runs) > 0 {
			runs = append(runs, docxRun{Break: &docxBreak{}})
		}
		runs = append(runs, run)
	}
	if r := meta.Recipient; r != nil {
		if r.Name != "" {
			addLine(textRun(r.Name, nil))
		}
		if r.Title != "" {
			addLine(textRun(r.Title, nil))
		}
		if r.Company != "" {
			addLine(textRun(r.Company, &docxRunProps{Bold: &docxOnOff{}}))
		}
		for _, line := range strings.Split(r.Address, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			addLine(textRun(line, nil))
		}
	}
	if len(runs) == 0 {
		runs = append(runs, textRun(document.DefaultRecipient, nil))
	}
	out = append(out, docxParagraph{
		Props: &docxParaProps{Spacing: &docxSpacing{After: "240"}},
		Runs:  runs,
	})

	if meta.Subject != "" {
		out = append(out, docxParagraph{
			Props: &docxParaProps{Spacing: &docxSpacing{After: "240"}},
			Runs:  []docxRun{textRun("Subject: "+meta.Subject, &docxRunProps{Bold: &docxOnOff{}})},
		})
	}
	return out
}

func signatureParagraphs(meta document.Metadata, style *themes.Style) []docxParagraph {
	runs := []docxRun{textRun(meta.Name, &docxRunProps{Bold: &docxOnOff{}})}
	addLine := func(text string) {
		runs = append(runs, docxRun{Break: &docxBreak{}}, textRun(text, nil))
	}
	addLine(meta.Email)
	if meta.LinkedIn != "" {
		_, label := profileLink("linkedin.com/in", meta.LinkedIn)
		addLine(label)
	}
	if meta.GitHub != "" {
		_, label := profileLink("github.com", meta.GitHub)
		addLine(label)
	}
	if meta.Website != "" {
		addLine(meta.Website)
	}
	return []docxParagraph{{
		Props: &docxParaProps{Spacing: &docxSpacing{Before: "360"}},
		Runs:  runs,
	}}
}

func blockParagraphs(b document.Block, style *themes.Style) []docxParagraph {
	switch b.Kind {
	case document.BlockHeading:
		styleID := "Heading3"
		switch b.Level {
		case 1:
			styleID = "Heading1"
		case 2:
			styleID = "Heading2"
		}
		return []docxParagraph{{
			Props: &docxParaProps{Style: &docxVal{Val: styleID}},
			Runs:  runsFromSpans(b.Spans, style),
		}}
	case document.BlockParagraph:
		return []docxParagraph{{Runs: runsFromSpans(b.Spans, style)}}
	case document.BlockList:
		out := make([]docxParagraph, 0, len(b.Items))
		for i, item := range b.Items {
			marker := "• "
			if b.Ordered {
				marker = strconv.Itoa(i+1) + ". "
			}
			runs := append([]docxRun{textRun(marker, nil)}, runsFromSpans(item, style)...)
			out = append(out, docxParagraph{
				Props: &docxParaProps{
					Spacing: &docxSpacing{After: "60"},
					Ind:     &docxInd{Left: "360", Hanging: "360"},
				},
				Runs: runs,
			})
		}
		return out
	case document.BlockRule:
		return []docxParagraph{{
			Props: &docxParaProps{
				Borders: &docxParaBorders{Bottom: docxBorder{
					Val: "single", Sz: 4, Space: 1, Color: hexVal(style.Colors.Border),
				}},
			},
			Runs: []docxRun{},
		}}
	case document.BlockPageBreak:
		return []docxParagraph{{Runs: []docxRun{{Break: &docxBreak{Type: "page"}}}}}
	}
	return nil
}

func runsFromSpans(spans []document.Span, style *themes.Style) []docxRun {
	var runs []docxRun
	for _, s := range spans {
		props := &docxRunProps{}
		switch s.Style {
		case document.SpanStrong:
			props.Bold = &docxOnOff{}
		case document.SpanEmphasis:
			props.Italic = &docxOnOff{}
		case document.SpanCode:
			props.Fonts = &docxFonts{ASCII: "Consolas", HAnsi: "Consolas"}
		}
		if s.Href != "" {
			props.Color = &docxVal{Val: hexVal(style.Colors.Accent)}
			props.Underline = &docxVal{Val: "single"}
		}
		if (*props == docxRunProps{}) {
			props = nil
		}
		for i, segment := range strings.Split(s.Text, "\n") {
			if i > 0 {
				runs = append(runs, docxRun{Break: &docxBreak{}})
			}
			if segment == "" {
				continue
			}
			runs = append(runs, textRun(segment, props))
		}
	}
	return runs
}

func textRun(text string, props *docxRunProps) docxRun {
	return docxRun{Props: props, Text: &docxText{Space: "preserve", Text: text}}
}

func headingSpacing(aboveEm, belowEm, bodyPt float64) *docxSpacing {
	return &docxSpacing{
		Before: strconv.Itoa(emTwips(aboveEm, bodyPt)),
		After:  strconv.Itoa(emTwips(belowEm, bodyPt)),
	}
}

// emTwips converts an em measure at the given body size to twentieths of a
// point.
func emTwips(em, bodyPt float64) int {
	return int(math.Round(em * bodyPt * 20))
}

// cmTwips converts centimeters to twentieths of a point.
func cmTwips(v float64) int {
	return int(math.Round(v * 1440 / 2.54))
}

// sizePt parses a dimension like "16pt", "14px" or "1.2em" to points,
// falling back when the value does not parse.
func sizePt(size string, fallback float64) float64 {
	v := strings.TrimSpace(size)
	for _, unit := range []struct {
		suffix string
		factor float64
	}{{"pt", 1}, {"px", 0.75}, {"em", 11}} {
		if strings.HasSuffix(v, unit.suffix) {
			f, err := strconv.ParseFloat(strings.TrimSuffix(v, unit.suffix), 64)
			if err != nil {
				return fallback
			}
			return f * unit.factor
		}
	}
	return fallback
}

func halfPoints(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 2)))
}

// hexVal strips the leading # from a theme color for w:val attributes.
func hexVal(color string) string {
	return strings.TrimPrefix(color, "#")
}
