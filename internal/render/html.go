// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/themes"
)

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
{{.CSS}}  </style>
</head>
<body>
{{.Body}}</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageShell))

type pageData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// HTMLRenderer emits one self-contained page with the resolved style
// embedded as CSS custom properties.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Render(ctx context.Context, doc *document.Document, style *themes.Style) ([]byte, error) {
	var body strings.Builder
	if doc.Meta.IsLetter() {
		writeHTMLLetterHeader(&body, doc.Meta)
		writeHTMLRecipient(&body, doc.Meta)
	} else {
		writeHTMLHeader(&body, doc.Meta)
	}
	body.WriteString("<main>\n")
	for _, b := range doc.Content {
		writeHTMLBlock(&body, b)
	}
	body.WriteString("</main>\n")
	if doc.Meta.IsLetter() {
		writeHTMLSignature(&body, doc.Meta)
	}

	title := doc.Meta.Name + " - CV"
	if doc.Meta.IsLetter() {
		title = doc.Meta.Name + " - Cover Letter"
	}
	var out bytes.Buffer
	err := pageTemplate.Execute(&out, pageData{
		Title: title,
		CSS:   template.CSS(styleSheet(doc.Meta, style)),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}
	return out.Bytes(), nil
}

// styleSheet emits the resolved style as CSS. Every theme slot lands in a
// :root custom property so user stylesheets layered on top can reuse them.
func styleSheet(meta document.Metadata, style *themes.Style) string {
	c := style.Colors
	f := style.Fonts
	var sb strings.Builder

	fmt.Fprintf(&sb, ":root { --primary: %s; --secondary: %s; --accent: %s; --text: %s; --muted: %s; --background: %s; --surface: %s; --border: %s; }\n",
		c.Primary, c.Secondary, c.Accent, c.Text, c.Muted, c.Background, c.Surface, c.Border)

	m := meta.Layout.Margins
	fmt.Fprintf(&sb, "body { font-family: \"%s\", sans-serif; font-weight: %d; font-size: %s; color: var(--text); background: var(--background); line-height: %s; max-width: 800px; margin: 0 auto; padding: %s %s %s %s; }\n",
		f.BodyFamily, f.WeightRegular, f.SizeNormal, formatFloat(f.LineHeight),
		cm(m.TopCM()), cm(m.RightCM()), cm(m.BottomCM()), cm(m.LeftCM()))

	heading := fmt.Sprintf("font-family: \"%s\", sans-serif; font-weight: %d;", f.HeaderFamily, f.WeightBold)
	if f.LetterSpacing != "" {
		heading += " letter-spacing: " + f.LetterSpacing + ";"
	}
	fmt.Fprintf(&sb, ".name { %s font-size: %s; color: var(--text); margin: 0; }\n", heading, f.SizeName)
	fmt.Fprintf(&sb, "h1 { %s font-size: %s; color: %s; border-bottom: 2px solid var(--accent); padding-bottom: 0.3rem; margin-top: 2rem; }\n",
		heading, f.SizeSection, c.H1Color())
	fmt.Fprintf(&sb, "h2 { %s font-size: %s; color: %s; margin: 1.5rem 0 0.4rem; }\n",
		heading, f.SizeSubsection, c.H2Color())
	fmt.Fprintf(&sb, "h3 { %s font-size: %s; color: %s; margin: 1rem 0 0.3rem; }\n",
		heading, h3Size, c.H3Color())

	sb.WriteString("a { color: var(--accent); text-decoration: none; }\n")
	sb.WriteString("a:hover { text-decoration: underline; }\n")
	fmt.Fprintf(&sb, ".header { text-align: center; margin-bottom: 2rem; }\n")
	fmt.Fprintf(&sb, ".contact { color: var(--muted); font-size: %s; }\n", f.SizeSmall)
	sb.WriteString("code { background: var(--surface); padding: 0.1em 0.3em; border-radius: 3px; }\n")
	sb.WriteString("hr { border: 0; border-top: 1px solid var(--border); }\n")
	sb.WriteString(".pagebreak { break-after: page; }\n")
	fmt.Fprintf(&sb, ".letter-header { text-align: right; }\n.letter-header .name { font-size: %s; }\n", f.SizeSubsection)
	sb.WriteString(".recipient { margin: 1.5rem 0; }\n")
	sb.WriteString(".signature { margin-top: 2rem; }\n")
	if cols := meta.Layout.ColumnCount(); cols > 1 {
		fmt.Fprintf(&sb, "main { column-count: %d; column-gap: 2rem; }\n", cols)
	}
	return sb.String()
}

func writeHTMLHeader(sb *strings.Builder, meta document.Metadata) {
	sb.WriteString("<div class=\"header\">\n")
	fmt.Fprintf(sb, "  <div class=\"name\">%s</div>\n", html.EscapeString(meta.Name))
	if meta.Location != "" {
		fmt.Fprintf(sb, "  <div class=\"location\"><em>%s</em></div>\n", html.EscapeString(meta.Location))
	}
	sb.WriteString("  <div class=\"contact\">")
	sb.WriteString(strings.Join(htmlContactParts(meta), " | "))
	sb.WriteString("</div>\n</div>\n")
}

func htmlContactParts(meta document.Metadata) []string {
	var parts []string
	for _, item := range meta.ContactItems() {
		switch item.Kind {
		case "email":
			parts = append(parts, fmt.Sprintf(`<a href="mailto:%s">%s</a>`,
				html.EscapeString(item.Value), html.EscapeString(item.Value)))
		case "website":
			parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`,
				html.EscapeString(linkURL(item.Value)), html.EscapeString(item.Value)))
		case "github":
			u, label := profileLink("github.com", item.Value)
			parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`,
				html.EscapeString(u), html.EscapeString(label)))
		case "linkedin":
			u, label := profileLink("linkedin.com/in", item.Value)
			parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`,
				html.EscapeString(u), html.EscapeString(label)))
		default:
			parts = append(parts, html.EscapeString(item.Value))
		}
	}
	return parts
}

func writeHTMLLetterHeader(sb *strings.Builder, meta document.Metadata) {
	sb.WriteString("<div class=\"letter-header\">\n")
	fmt.Fprintf(sb, "  <div class=\"name\">%s</div>\n", html.EscapeString(meta.Name))
	if meta.Location != "" {
		fmt.Fprintf(sb, "  <div>%s</div>\n", html.EscapeString(meta.Location))
	}
	if meta.Phone != "" {
		fmt.Fprintf(sb, "  <div>%s</div>\n", html.EscapeString(meta.Phone))
	}
	fmt.Fprintf(sb, "  <div><a href=\"mailto:%s\">%s</a></div>\n",
		html.EscapeString(meta.Email), html.EscapeString(meta.Email))
	if meta.Website != "" {
		fmt.Fprintf(sb, "  <div><a href=\"%s\">%s</a></div>\n",
			html.EscapeString(linkURL(meta.Website)), html.EscapeString(meta.Website))
	}
	sb.WriteString("</div>\n")
}

func writeHTMLRecipient(sb *strings.Builder, meta document.Metadata) {
	date := meta.FormattedDate()
	if date == "" {
		date = time.Now().Format("2 January 2006")
	}
	sb.WriteString("<div class=\"recipient\">\n")
	fmt.Fprintf(sb, "  <div><strong>%s</strong></div>\n", html.EscapeString(date))
	sb.WriteString("  <p>")
	var lines []string
	if r := meta.Recipient; r != nil {
		if r.Name != "" {
			lines = append(lines, html.EscapeString(r.Name))
		}
		if r.Title != "" {
			lines = append(lines, html.EscapeString(r.Title))
		}
		if r.Company != "" {
			lines = append(lines, "<strong>"+html.EscapeString(r.Company)+"</strong>")
		}
		for _, line := range strings.Split(r.Address, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines = append(lines, html.EscapeString(line))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, html.EscapeString(document.DefaultRecipient))
	}
	sb.WriteString(strings.Join(lines, "<br>\n    "))
	sb.WriteString("</p>\n")
	if meta.Subject != "" {
		fmt.Fprintf(sb, "  <p><strong>Subject: %s</strong></p>\n", html.EscapeString(meta.Subject))
	}
	sb.WriteString("</div>\n")
}

func writeHTMLSignature(sb *strings.Builder, meta document.Metadata) {
	sb.WriteString("<div class=\"signature\">\n")
	fmt.Fprintf(sb, "  <div><strong>%s</strong></div>\n", html.EscapeString(meta.Name))
	fmt.Fprintf(sb, "  <div><a href=\"mailto:%s\">%s</a></div>\n",
		html.EscapeString(meta.Email), html.EscapeString(meta.Email))
	if meta.LinkedIn != "" {
		u, label := profileLink("linkedin.com/in", meta.LinkedIn)
		fmt.Fprintf(sb, "  <div><a href=\"%s\">%s</a></div>\n",
			html.EscapeString(u), html.EscapeString(label))
	}
	if meta.GitHub != "" {
		u, label := profileLink("github.com", meta.GitHub)
		fmt.Fprintf(sb, "  <div><a href=\"%s\">%s</a></div>\n",
			html.EscapeString(u), html.EscapeString(label))
	}
	if meta.Website != "" {
		fmt.Fprintf(sb, "  <div><a href=\"%s\">%s</a></div>\n",
			html.EscapeString(linkURL(meta.Website)), html.EscapeString(meta.Website))
	}
	sb.WriteString("</div>\n")
}

func writeHTMLBlock(sb *strings.Builder, b document.Block) {
	switch b.Kind {
	case document.BlockHeading:
		fmt.Fprintf(sb, "<h%d>", b.Level)
		writeHTMLSpans(sb, b.Spans)
		fmt.Fprintf(sb, "</h%d>\n", b.Level)
	case document.BlockParagraph:
		sb.WriteString("<p>")
		writeHTMLSpans(sb, b.Spans)
		sb.WriteString("</p>\n")
	case document.BlockList:
		tag := "ul"
		if b.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(sb, "<%s>\n", tag)
		for _, item := range b.Items {
			sb.WriteString("  <li>")
			writeHTMLSpans(sb, item)
			sb.WriteString("</li>\n")
		}
		fmt.Fprintf(sb, "</%s>\n", tag)
	case document.BlockRule:
		sb.WriteString("<hr>\n")
	case document.BlockPageBreak:
		sb.WriteString("<div class=\"pagebreak\"></div>\n")
	}
}

func writeHTMLSpans(sb *strings.Builder, spans []document.Span) {
	for _, s := range spans {
		text := strings.ReplaceAll(html.EscapeString(s.Text), "\n", "<br>")
		switch s.Style {
		case document.SpanStrong:
			text = "<strong>" + text + "</strong>"
		case document.SpanEmphasis:
			text = "<em>" + text + "</em>"
		case document.SpanCode:
			text = "<code>" + text + "</code>"
		}
		if href := safeHref(s.Href); href != "" {
			fmt.Fprintf(sb, `<a href="%s">%s</a>`, html.EscapeString(href), text)
		} else {
			sb.WriteString(text)
		}
	}
}

// safeHref admits only web link schemes; anything else renders as text.
func safeHref(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "http", "https":
		return href
	}
	return ""
}
