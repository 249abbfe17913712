// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/themes"
	"github.com/jonathan/cv-forge/internal/typst"
)

// Heading display geometry, in em units relative to the body size.
const (
	h1SpacingAbove = 1.5
	h1SpacingBelow = 0.8
	h2SpacingAbove = 1.2
	h2SpacingBelow = 0.8
	h3SpacingAbove = 0.8
	h3SpacingBelow = 0.6

	// separatorThickness is the rule drawn under level-1 headings, in pt.
	separatorThickness = 2.0

	// h3Size sits between the subsection and body sizes.
	h3Size = "12pt"
)

// Font Awesome codepoints for the contact line.
const (
	iconPhone    = "f095"
	iconEmail    = "f0e0"
	iconWebsite  = "f015"
	iconGitHub   = "f09b"
	iconLinkedIn = "f0e1"
)

// PDFRenderer generates Typst markup and hands it to the engine gateway.
type PDFRenderer struct {
	Engine *typst.Engine
	// Template is optional Typst source inserted after the document setup,
	// so user templates can override page and text rules.
	Template string
}

func (r *PDFRenderer) Render(ctx context.Context, doc *document.Document, style *themes.Style) ([]byte, error) {
	engine := r.Engine
	if engine == nil {
		engine = typst.New("")
	}
	source := GenerateTypst(doc, style, r.Template)
	pdf, logOutput, err := engine.Compile(ctx, []byte(source))
	if err != nil {
		var ce *typst.CompileError
		if errors.As(err, &ce) {
			return nil, &TypesetError{Message: ce.Message, LogOutput: ce.LogOutput, Cause: ce.Cause}
		}
		return nil, &TypesetError{Message: err.Error(), LogOutput: logOutput, Cause: err}
	}
	return pdf, nil
}

// GenerateTypst builds the complete Typst source for a document.
func GenerateTypst(doc *document.Document, style *themes.Style, template string) string {
	var sb strings.Builder
	sb.Grow(4096 + len(doc.Body))

	writeDocumentSetup(&sb, doc.Meta, style)
	if template != "" {
		sb.WriteString(strings.TrimRight(template, "\n"))
		sb.WriteString("\n\n")
	}
	if doc.Meta.IsLetter() {
		writeLetterHeader(&sb, doc.Meta, style)
		writeRecipientSection(&sb, doc.Meta, style)
	} else {
		writeCVHeader(&sb, doc.Meta, style)
	}
	writeBlocks(&sb, doc, style)
	if doc.Meta.IsLetter() {
		writeLetterSignature(&sb, doc.Meta, style)
	}
	return sb.String()
}

func writeDocumentSetup(sb *strings.Builder, meta document.Metadata, style *themes.Style) {
	fmt.Fprintf(sb, "#set document(title: \"%s\", author: \"%s\")\n",
		escapeTypstString(meta.Name), escapeTypstString(meta.Name))
	margins := meta.Layout.Margins
	fmt.Fprintf(sb, "#set page(paper: \"a4\", margin: (top: %s, bottom: %s, left: %s, right: %s))\n",
		cm(margins.TopCM()), cm(margins.BottomCM()), cm(margins.LeftCM()), cm(margins.RightCM()))
	fmt.Fprintf(sb, "#set text(font: \"%s\", weight: %d, size: %s, fill: rgb(\"%s\"))\n",
		style.Fonts.BodyFamily, style.Fonts.WeightRegular, style.Fonts.SizeNormal, style.Colors.Text)
	leading := style.Fonts.LineHeight - 1.0
	if leading < 0 {
		leading = 0
	}
	fmt.Fprintf(sb, "#set par(leading: %s)\n", em(leading))
	fmt.Fprintf(sb, "#show strong: set text(weight: %d)\n", style.Fonts.WeightBold)
	sb.WriteString("\n")
}

func writeCVHeader(sb *strings.Builder, meta document.Metadata, style *themes.Style) {
	sb.WriteString("#align(center)[\n")
	fmt.Fprintf(sb, "  %s[%s]\n",
		headingText(style, style.Fonts.SizeName, strconv.Itoa(style.Fonts.WeightBold), style.Colors.Text),
		EscapeTypst(meta.Name))
	if meta.Location != "" {
		sb.WriteString("  #v(0.2em)\n")
		fmt.Fprintf(sb, "  #text(size: %s, style: \"italic\")[%s]\n",
			style.Fonts.SizeNormal, EscapeTypst(meta.Location))
	}
	sb.WriteString("  #v(0.3em)\n")
	fmt.Fprintf(sb, "  #text(size: %s)[\n", style.Fonts.SizeSmall)
	fmt.Fprintf(sb, "    %s\n", strings.Join(contactParts(meta), " | "))
	sb.WriteString("  ]\n")
	sb.WriteString("]\n")
	sb.WriteString("#v(0.5em)\n")
}

// contactParts builds the icon contact line shown under the name.
func contactParts(meta document.Metadata) []string {
	var parts []string
	if meta.Phone != "" {
		parts = append(parts, icon(iconPhone)+" "+EscapeTypst(meta.Phone))
	}
	parts = append(parts, icon(iconEmail)+" "+EscapeTypst(meta.Email))
	if meta.Website != "" {
		parts = append(parts, fmt.Sprintf("%s #link(\"%s\")[%s]",
			icon(iconWebsite), escapeTypstString(linkURL(meta.Website)), EscapeTypst(meta.Website)))
	}
	if meta.GitHub != "" {
		url, label := profileLink("github.com", meta.GitHub)
		parts = append(parts, fmt.Sprintf("%s #link(\"%s\")[%s]",
			icon(iconGitHub), escapeTypstString(url), EscapeTypst(label)))
	}
	if meta.LinkedIn != "" {
		url, label := profileLink("linkedin.com/in", meta.LinkedIn)
		parts = append(parts, fmt.Sprintf("%s #link(\"%s\")[%s]",
			icon(iconLinkedIn), escapeTypstString(url), EscapeTypst(label)))
	}
	return parts
}

func icon(code string) string {
	return fmt.Sprintf("#text(font: \"FontAwesome\")[\\u{%s}]", code)
}

func writeLetterHeader(sb *strings.Builder, meta document.Metadata, style *themes.Style) {
	sb.WriteString("#align(right)[\n")
	fmt.Fprintf(sb, "  %s[%s]\n",
		headingText(style, style.Fonts.SizeSubsection, strconv.Itoa(style.Fonts.WeightBold), style.Colors.Text),
		EscapeTypst(meta.Name))
	sb.WriteString("  #v(0.3em)\n")
	if meta.Location != "" {
		fmt.Fprintf(sb, "  #text(size: %s)[%s]\n", style.Fonts.SizeNormal, EscapeTypst(meta.Location))
		sb.WriteString("  #v(0.1em)\n")
	}
	if meta.Phone != "" {
		fmt.Fprintf(sb, "  #text(size: %s)[%s]\n", style.Fonts.SizeNormal, EscapeTypst(meta.Phone))
		sb.WriteString("  #v(0.1em)\n")
	}
	fmt.Fprintf(sb, "  #text(size: %s)[%s]\n", style.Fonts.SizeNormal, EscapeTypst(meta.Email))
	if meta.Website != "" {
		sb.WriteString("  #v(0.1em)\n")
		fmt.Fprintf(sb, "  #text(size: %s)[#link(\"%s\")[%s]]\n",
			style.Fonts.SizeNormal, escapeTypstString(linkURL(meta.Website)), EscapeTypst(meta.Website))
	}
	sb.WriteString("]\n")
}

func writeRecipientSection(sb *strings.Builder, meta document.Metadata, style *themes.Style) {
	sb.WriteString("#v(1.5em)\n")

	date := meta.FormattedDate()
	if date == "" {
		date = time.Now().Format("2 January 2006")
	}
	fmt.Fprintf(sb, "#align(left)[\n  #text(size: %s, weight: %d)[%s]\n]\n",
		style.Fonts.SizeNormal, style.Fonts.WeightBold, EscapeTypst(date))
	sb.WriteString("#v(1em)\n")

	fmt.Fprintf(sb, "#align(left)[\n  #text(size: %s)[\n", style.Fonts.SizeNormal)
	var lines []string
	if r := meta.Recipient; r != nil {
		if r.Name != "" {
			lines = append(lines, EscapeTypst(r.Name))
		}
		if r.Title != "" {
			lines = append(lines, EscapeTypst(r.Title))
		}
		if r.Company != "" {
			lines = append(lines, fmt.Sprintf("#text(weight: %d)[%s]",
				style.Fonts.WeightBold, EscapeTypst(r.Company)))
		}
		for _, line := range strings.Split(r.Address, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines = append(lines, EscapeTypst(line))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, document.DefaultRecipient)
	}
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("    #linebreak()\n")
		}
		fmt.Fprintf(sb, "    %s\n", line)
	}
	sb.WriteString("  ]\n]\n")
	sb.WriteString("#v(1em)\n")

	if meta.Subject != "" {
		fmt.Fprintf(sb, "#text(size: %s, weight: %d)[Subject: %s]\n",
			style.Fonts.SizeNormal, style.Fonts.WeightBold, EscapeTypst(meta.Subject))
		sb.WriteString("#v(1em)\n")
	}
	sb.WriteString("#v(0.5em)\n")
}

func writeLetterSignature(sb *strings.Builder, meta document.Metadata, style *themes.Style) {
	sb.WriteString("\n#v(1em)\n")
	fmt.Fprintf(sb, "#text(weight: %d)[%s]\n", style.Fonts.WeightBold, EscapeTypst(meta.Name))
	sb.WriteString("#v(0.5em)\n")
	fmt.Fprintf(sb, "%s %s\n", icon(iconEmail), EscapeTypst(meta.Email))
	if meta.LinkedIn != "" {
		url, label := profileLink("linkedin.com/in", meta.LinkedIn)
		fmt.Fprintf(sb, "#linebreak()\n%s #link(\"%s\")[%s]\n",
			icon(iconLinkedIn), escapeTypstString(url), EscapeTypst(label))
	}
	if meta.GitHub != "" {
		url, label := profileLink("github.com", meta.GitHub)
		fmt.Fprintf(sb, "#linebreak()\n%s #link(\"%s\")[%s]\n",
			icon(iconGitHub), escapeTypstString(url), EscapeTypst(label))
	}
	if meta.Website != "" {
		fmt.Fprintf(sb, "#linebreak()\n%s #link(\"%s\")[%s]\n",
			icon(iconWebsite), escapeTypstString(linkURL(meta.Website)), EscapeTypst(meta.Website))
	}
}

// writeBlocks lowers the document body. Subsection entries are kept on one
// page by wrapping each level-2 heading and the content that follows it in
// an unbreakable block.
func writeBlocks(sb *strings.Builder, doc *document.Document, style *themes.Style) {
	columns := doc.Meta.Layout.ColumnCount()
	if columns > 1 {
		fmt.Fprintf(sb, "#columns(%d, gutter: 1.2em)[\n", columns)
	}

	inEntry := false
	closeEntry := func() {
		if inEntry {
			sb.WriteString("]\n")
			inEntry = false
		}
	}

	for _, b := range doc.Content {
		switch b.Kind {
		case document.BlockHeading:
			if b.Level <= 2 {
				closeEntry()
			}
			if b.Level == 2 {
				sb.WriteString("#block(breakable: false, height: auto)[\n")
				inEntry = true
			}
			writeHeading(sb, b, style)
		case document.BlockPageBreak:
			wasEntry := inEntry
			closeEntry()
			sb.WriteString("#pagebreak()\n\n")
			if wasEntry {
				sb.WriteString("#block(breakable: false, height: auto)[\n")
				inEntry = true
			}
		case document.BlockList:
			writeList(sb, b)
		case document.BlockRule:
			fmt.Fprintf(sb, "#line(length: 100%%, stroke: 0.5pt + rgb(\"%s\"))\n\n", style.Colors.Border)
		case document.BlockParagraph:
			writeSpans(sb, b.Spans)
			sb.WriteString("\n\n")
		}
	}
	closeEntry()

	if columns > 1 {
		sb.WriteString("]\n")
	}
}

func writeHeading(sb *strings.Builder, b document.Block, style *themes.Style) {
	boldWeight := strconv.Itoa(style.Fonts.WeightBold)
	switch b.Level {
	case 1:
		fmt.Fprintf(sb, "\n#v(%s)\n", em(h1SpacingAbove))
		fmt.Fprintf(sb, "#block(above: 0em, below: %s, breakable: false, height: auto)[\n", em(h1SpacingBelow))
		fmt.Fprintf(sb, "  %s[", headingText(style, style.Fonts.SizeSection, boldWeight, style.Colors.H1Color()))
		writeSpans(sb, b.Spans)
		sb.WriteString("]\n")
		fmt.Fprintf(sb, "  #line(length: 100%%, stroke: %spt + rgb(\"%s\"))\n",
			formatFloat(separatorThickness), style.Colors.Accent)
		sb.WriteString("]\n#v(0.2em)\n\n")
	case 2:
		fmt.Fprintf(sb, "\n#v(%s)\n", em(h2SpacingAbove))
		fmt.Fprintf(sb, "#block(above: 0em, below: %s)[\n", em(h2SpacingBelow))
		writeH2Text(sb, b, style)
		sb.WriteString("\n]\n\n")
	case 3:
		fmt.Fprintf(sb, "\n#v(%s)\n", em(h3SpacingAbove))
		fmt.Fprintf(sb, "#block(above: 0em, below: %s)[\n", em(h3SpacingBelow))
		fmt.Fprintf(sb, "  %s[", headingText(style, h3Size, "\"semibold\"", style.Colors.H3Color()))
		writeSpans(sb, b.Spans)
		sb.WriteString("]\n]\n\n")
	default:
		sb.WriteString("\n#v(0.5em)\n#block(above: 0em, below: 0.2em)[\n")
		fmt.Fprintf(sb, "  #text(size: %s, weight: \"medium\")[", style.Fonts.SizeNormal)
		writeSpans(sb, b.Spans)
		sb.WriteString("]\n]\n\n")
	}
}

// writeH2Text renders a subsection heading. A trailing parenthesized part,
// by convention a location after a company name, drops to regular weight.
func writeH2Text(sb *strings.Builder, b document.Block, style *themes.Style) {
	size := style.Fonts.SizeSubsection
	fill := style.Colors.H2Color()
	boldWeight := strconv.Itoa(style.Fonts.WeightBold)
	plain := document.PlainText(b.Spans)
	if idx := strings.Index(plain, "("); idx > 0 {
		company := strings.TrimRight(plain[:idx], " ")
		location := plain[idx:]
		fmt.Fprintf(sb, "  %s[%s] %s[%s]",
			headingText(style, size, boldWeight, fill), EscapeTypst(company),
			headingText(style, size, strconv.Itoa(style.Fonts.WeightRegular), fill), EscapeTypst(location))
		return
	}
	fmt.Fprintf(sb, "  %s[", headingText(style, size, boldWeight, fill))
	writeSpans(sb, b.Spans)
	sb.WriteString("]")
}

func writeList(sb *strings.Builder, b document.Block) {
	for i, item := range b.Items {
		if b.Ordered {
			fmt.Fprintf(sb, "%d. ", i+1)
		} else {
			sb.WriteString("• ")
		}
		writeSpans(sb, item)
		sb.WriteString("\n\n")
	}
}

func writeSpans(sb *strings.Builder, spans []document.Span) {
	for _, s := range spans {
		text := strings.ReplaceAll(EscapeTypst(s.Text), "\n", " \\ ")
		switch s.Style {
		case document.SpanStrong:
			text = "*" + text + "*"
		case document.SpanEmphasis:
			text = "_" + text + "_"
		case document.SpanCode:
			text = fmt.Sprintf("#raw(\"%s\")", escapeTypstString(s.Text))
		}
		if s.Href != "" {
			fmt.Fprintf(sb, "#link(\"%s\")[%s]", escapeTypstString(s.Href), text)
		} else {
			sb.WriteString(text)
		}
	}
}

// headingText opens a #text call carrying the header font, size, weight and
// fill, including tracking when the style sets letter spacing.
func headingText(style *themes.Style, size, weight, fill string) string {
	attrs := fmt.Sprintf("font: \"%s\", size: %s, weight: %s, fill: rgb(\"%s\")",
		style.Fonts.HeaderFamily, size, weight, fill)
	if style.Fonts.LetterSpacing != "" {
		attrs += ", tracking: " + style.Fonts.LetterSpacing
	}
	return "#text(" + attrs + ")"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cm(v float64) string { return formatFloat(v) + "cm" }
func em(v float64) string { return formatFloat(v) + "em" }
