package document

import "strings"

// BlockKind discriminates block-level content nodes.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockList
	BlockRule
	BlockPageBreak
)

// Block is one block-level content node. Level is meaningful for headings,
// Spans for headings and paragraphs, Items and Ordered for lists.
type Block struct {
	Kind    BlockKind
	Level   int
	Spans   []Span
	Items   [][]Span
	Ordered bool
}

// SpanStyle marks inline formatting on a run of text.
type SpanStyle int

const (
	SpanPlain SpanStyle = iota
	SpanEmphasis
	SpanStrong
	SpanCode
)

// Span is a run of inline text with one style. Href is non-empty for links.
type Span struct {
	Text  string
	Style SpanStyle
	Href  string
}

// PlainText flattens spans to their raw text.
func PlainText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
