package document

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Parse builds a Document from raw input: YAML frontmatter delimited by
// --- lines, followed by a markdown body. Frontmatter keys are decoded
// strictly, so typos surface as errors instead of silently ignored fields.
func Parse(src []byte) (*Document, error) {
	frontmatter, body, err := splitFrontmatter(src)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := yaml.UnmarshalWithOptions(frontmatter, &meta, yaml.Strict()); err != nil {
		return nil, &ParseError{Message: "invalid frontmatter", Cause: err}
	}

	root := markdown.Parser().Parse(gtext.NewReader(body))
	blocks := lowerBlocks(root, body)

	return New(meta, string(body), blocks)
}

// ParseFile reads and parses one markdown document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func splitFrontmatter(src []byte) (frontmatter, body []byte, err error) {
	normalized := bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, nil, &ParseError{Message: "document must start with a YAML frontmatter block (---)"}
	}
	rest := normalized[len("---\n"):]

	if idx := bytes.Index(rest, []byte("\n---\n")); idx >= 0 {
		return rest[:idx], rest[idx+len("\n---\n"):], nil
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return rest[:len(rest)-len("\n---")], nil, nil
	}
	return nil, nil, &ParseError{Message: "unterminated frontmatter: closing --- not found"}
}

func lowerBlocks(parent ast.Node, source []byte) []Block {
	var blocks []Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, lowerBlock(child, source)...)
	}
	return blocks
}

func lowerBlock(node ast.Node, source []byte) []Block {
	switch n := node.(type) {
	case *ast.Heading:
		return []Block{{Kind: BlockHeading, Level: n.Level, Spans: lowerSpans(n, source)}}

	case *ast.Paragraph, *ast.TextBlock:
		spans := lowerSpans(n, source)
		if len(spans) == 0 {
			if hasPageBreakComment(n, source) {
				return []Block{{Kind: BlockPageBreak}}
			}
			return nil
		}
		return []Block{{Kind: BlockParagraph, Spans: spans}}

	case *ast.List:
		return []Block{{Kind: BlockList, Items: lowerListItems(n, source), Ordered: n.IsOrdered()}}

	case *ast.ThematicBreak:
		return []Block{{Kind: BlockRule}}

	case *ast.HTMLBlock:
		if strings.Contains(strings.ToLower(htmlBlockText(n, source)), "pagebreak") {
			return []Block{{Kind: BlockPageBreak}}
		}
		return nil

	case *ast.FencedCodeBlock:
		return codeBlock(n.Lines(), source)

	case *ast.CodeBlock:
		return codeBlock(n.Lines(), source)

	case *ast.Blockquote:
		return lowerBlocks(n, source)
	}
	return nil
}

func lowerListItems(list *ast.List, source []byte) [][]Span {
	var items [][]Span
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var spans []Span
		for sub := item.FirstChild(); sub != nil; sub = sub.NextSibling() {
			switch s := sub.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if len(spans) > 0 {
					spans = append(spans, Span{Text: " "})
				}
				spans = append(spans, lowerSpans(s, source)...)
			case *ast.List:
				// Nested bullets flatten to sibling items; content is kept.
				if len(spans) > 0 {
					items = append(items, spans)
					spans = nil
				}
				items = append(items, lowerListItems(s, source)...)
			}
		}
		if len(spans) > 0 {
			items = append(items, spans)
		}
	}
	return items
}

func lowerSpans(parent ast.Node, source []byte) []Span {
	var spans []Span
	var walk func(node ast.Node, style SpanStyle, href string)
	walk = func(node ast.Node, style SpanStyle, href string) {
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch n := child.(type) {
			case *ast.Text:
				if txt := string(n.Segment.Value(source)); txt != "" {
					spans = append(spans, Span{Text: txt, Style: style, Href: href})
				}
				if n.HardLineBreak() {
					spans = append(spans, Span{Text: "\n", Style: style, Href: href})
				} else if n.SoftLineBreak() {
					spans = append(spans, Span{Text: " ", Style: style, Href: href})
				}
			case *ast.String:
				spans = append(spans, Span{Text: string(n.Value), Style: style, Href: href})
			case *ast.Emphasis:
				emphStyle := SpanEmphasis
				if n.Level >= 2 {
					emphStyle = SpanStrong
				}
				walk(n, emphStyle, href)
			case *ast.CodeSpan:
				walk(n, SpanCode, href)
			case *ast.Link:
				walk(n, style, string(n.Destination))
			case *ast.AutoLink:
				spans = append(spans, Span{Text: string(n.Label(source)), Style: style, Href: string(n.URL(source))})
			case *ast.RawHTML:
				// Inline HTML carries no renderable text; pagebreak comments
				// are handled at the block level.
			default:
				walk(n, style, href)
			}
		}
	}
	walk(parent, SpanPlain, "")
	return spans
}

func hasPageBreakComment(parent ast.Node, source []byte) bool {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		raw, ok := child.(*ast.RawHTML)
		if !ok {
			continue
		}
		var sb strings.Builder
		for i := 0; i < raw.Segments.Len(); i++ {
			sb.Write(raw.Segments.At(i).Value(source))
		}
		if strings.Contains(strings.ToLower(sb.String()), "pagebreak") {
			return true
		}
	}
	return false
}

func htmlBlockText(n *ast.HTMLBlock, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		sb.Write(lines.At(i).Value(source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(source))
	}
	return sb.String()
}

func codeBlock(lines *gtext.Segments, source []byte) []Block {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		sb.Write(lines.At(i).Value(source))
	}
	code := strings.TrimRight(sb.String(), "\n")
	if code == "" {
		return nil
	}
	return []Block{{Kind: BlockParagraph, Spans: []Span{{Text: code, Style: SpanCode}}}}
}
