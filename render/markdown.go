// Package render converts small markdown samples into styled preview frames.
package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"mdpad/callout"
	"mdpad/preview"
)

// quoteBar prefixes every rendered callout line, standing in for the colored
// border of the styled block.
const quoteBar = "▌ "

var calloutMarker = regexp.MustCompile(`^\[!([^\]\s]+)\]\s*(.*)$`)

// Markdown renders a sample document into a preview.Frame. One instance is
// bound to one picker session; Release drops its cache and retires it.
type Markdown struct {
	mu       sync.Mutex
	md       goldmark.Markdown
	lastSrc  string
	last     preview.Frame
	hasLast  bool
	released bool
}

func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New()}
}

func (m *Markdown) Render(ctx context.Context, source string) (preview.Frame, error) {
	if err := ctx.Err(); err != nil {
		return preview.Frame{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return preview.Frame{}, fmt.Errorf("renderer released")
	}
	if m.hasLast && m.lastSrc == source {
		return m.last, nil
	}
	frame := buildFrame(m.md, source)
	m.lastSrc = source
	m.last = frame
	m.hasLast = true
	return frame, nil
}

// Release retires the renderer; further Render calls fail. Idempotent.
func (m *Markdown) Release() {
	m.mu.Lock()
	m.released = true
	m.hasLast = false
	m.last = preview.Frame{}
	m.lastSrc = ""
	m.mu.Unlock()
}

// ======================
// Frame construction
// ======================

type span struct {
	text  string
	style preview.Style
}

type frameBuilder struct {
	frame preview.Frame
}

func (b *frameBuilder) addLine(spans ...span) {
	var sb strings.Builder
	styles := make([]preview.Style, 0, 16)
	for _, sp := range spans {
		sb.WriteString(sp.text)
		for range []rune(sp.text) {
			styles = append(styles, sp.style)
		}
	}
	b.frame.Lines = append(b.frame.Lines, sb.String())
	b.frame.Styles = append(b.frame.Styles, styles)
}

func buildFrame(md goldmark.Markdown, source string) preview.Frame {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var b frameBuilder
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		switch n := block.(type) {
		case *ast.Blockquote:
			buildQuoteBlock(&b, n, src)
		case *ast.Heading:
			for _, line := range inlineLines(n, src) {
				b.addLine(restyle(line, preview.StyleTitle)...)
			}
		default:
			for _, line := range inlineLines(block, src) {
				b.addLine(line...)
			}
		}
	}
	if len(b.frame.Lines) == 0 {
		// Source the parser produced nothing for: show it raw.
		for _, line := range strings.Split(source, "\n") {
			b.addLine(span{text: line, style: preview.StyleDefault})
		}
	}
	return b.frame
}

// buildQuoteBlock renders a blockquote. When its first line carries a
// callout marker, the line becomes a styled title and the marker itself is
// not shown: the pane previews the rendered block, not its markup.
func buildQuoteBlock(b *frameBuilder, quote *ast.Blockquote, src []byte) {
	first := true
	for block := quote.FirstChild(); block != nil; block = block.NextSibling() {
		for _, line := range inlineLines(block, src) {
			if first {
				first = false
				if title, category, ok := splitCalloutTitle(line); ok {
					if b.frame.Category == "" {
						b.frame.Category = category
					}
					b.addLine(append([]span{{text: quoteBar, style: preview.StyleMarker}}, restyle(title, preview.StyleTitle)...)...)
					continue
				}
			}
			b.addLine(append([]span{{text: quoteBar, style: preview.StyleMarker}}, restyle(line, preview.StyleBody)...)...)
		}
	}
}

// splitCalloutTitle matches "[!category] Title" at the start of a line and
// returns the title spans (falling back to the capitalized category when the
// marker has no trailing title text). The match runs against the joined line
// text: the inline parser may split the marker across several text nodes.
func splitCalloutTitle(line []span) ([]span, string, bool) {
	if len(line) == 0 {
		return nil, "", false
	}
	var sb strings.Builder
	for _, sp := range line {
		sb.WriteString(sp.text)
	}
	full := sb.String()
	m := calloutMarker.FindStringSubmatchIndex(full)
	if m == nil {
		return nil, "", false
	}
	category := full[m[2]:m[3]]
	title := dropSpanPrefix(line, m[4])
	if len(title) == 0 {
		title = []span{{text: callout.Label(category)}}
	}
	return title, category, true
}

// dropSpanPrefix removes the first n bytes of text from the span sequence.
// The marker prefix is plain ASCII, so byte offsets are safe here.
func dropSpanPrefix(line []span, n int) []span {
	out := make([]span, 0, len(line))
	for _, sp := range line {
		if n >= len(sp.text) {
			n -= len(sp.text)
			continue
		}
		if n > 0 {
			sp.text = sp.text[n:]
			n = 0
		}
		if sp.text != "" {
			out = append(out, sp)
		}
	}
	return out
}

// restyle replaces the default style on spans with the given base while
// keeping explicit inline styles (code, emphasis) intact.
func restyle(line []span, base preview.Style) []span {
	out := make([]span, len(line))
	for i, sp := range line {
		if sp.style == preview.StyleDefault {
			sp.style = base
		}
		out[i] = sp
	}
	return out
}

// inlineLines flattens a block node's inline tree into logical display
// lines of styled spans, splitting on soft and hard line breaks.
func inlineLines(block ast.Node, src []byte) [][]span {
	var lines [][]span
	var cur []span
	flush := func() {
		lines = append(lines, cur)
		cur = nil
	}
	var walk func(n ast.Node, style preview.Style)
	walk = func(n ast.Node, style preview.Style) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				txt := string(t.Segment.Value(src))
				if txt != "" {
					cur = append(cur, span{text: txt, style: style})
				}
				if t.SoftLineBreak() || t.HardLineBreak() {
					flush()
				}
			case *ast.CodeSpan:
				walk(child, preview.StyleCode)
			case *ast.Emphasis:
				st := preview.StyleEmphasis
				if t.Level >= 2 {
					st = preview.StyleStrong
				}
				walk(child, st)
			default:
				walk(child, style)
			}
		}
	}
	walk(block, preview.StyleDefault)
	if len(cur) > 0 {
		flush()
	}
	return lines
}
