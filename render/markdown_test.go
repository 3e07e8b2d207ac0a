package render

import (
	"context"
	"strings"
	"testing"

	"mdpad/callout"
	"mdpad/preview"
)

func renderSample(t *testing.T, source string) preview.Frame {
	t.Helper()
	m := NewMarkdown()
	defer m.Release()
	frame, err := m.Render(context.Background(), source)
	if err != nil {
		t.Fatalf("render %q: %v", source, err)
	}
	return frame
}

func TestRender_CalloutSample(t *testing.T) {
	frame := renderSample(t, callout.SampleDoc("warning"))
	if frame.Category != "warning" {
		t.Fatalf("frame category = %q, want warning", frame.Category)
	}
	if len(frame.Lines) != 2 {
		t.Fatalf("frame has %d lines, want 2: %q", len(frame.Lines), frame.Lines)
	}
	if !strings.Contains(frame.Lines[0], "Warning") {
		t.Fatalf("title line = %q, want capitalized label", frame.Lines[0])
	}
	if strings.Contains(frame.Lines[0], "[!") {
		t.Fatalf("title line still shows raw marker: %q", frame.Lines[0])
	}
	if !strings.Contains(frame.Lines[1], "A warning callout.") {
		t.Fatalf("body line = %q", frame.Lines[1])
	}

	// Title text is styled as title, the leading bar as marker.
	title := []rune(frame.Lines[0])
	styles := frame.Styles[0]
	if styles[0] != preview.StyleMarker {
		t.Fatalf("line 0 rune 0 style = %v, want StyleMarker", styles[0])
	}
	wIdx := strings.IndexRune(frame.Lines[0], 'W')
	wRune := len([]rune(frame.Lines[0][:wIdx]))
	if wRune >= len(styles) || styles[wRune] != preview.StyleTitle {
		t.Fatalf("title rune style = %v, want StyleTitle (line %q)", styles[wRune], string(title))
	}
}

func TestRender_MarkerWithoutTitleFallsBackToLabel(t *testing.T) {
	frame := renderSample(t, "> [!tip]\n> body")
	if frame.Category != "tip" {
		t.Fatalf("category = %q, want tip", frame.Category)
	}
	if !strings.Contains(frame.Lines[0], "Tip") {
		t.Fatalf("title line = %q, want fallback label Tip", frame.Lines[0])
	}
}

func TestRender_PlainMarkdown(t *testing.T) {
	frame := renderSample(t, "just a line")
	if frame.Category != "" {
		t.Fatalf("plain text produced category %q", frame.Category)
	}
	if len(frame.Lines) != 1 || frame.Lines[0] != "just a line" {
		t.Fatalf("lines = %q", frame.Lines)
	}
}

func TestRender_InlineCodeKeepsStyle(t *testing.T) {
	frame := renderSample(t, "> [!note] Note\n> use `mdpad` here")
	body := frame.Lines[1]
	idx := strings.Index(body, "mdpad")
	if idx < 0 {
		t.Fatalf("body line = %q, want inline code text", body)
	}
	runeIdx := len([]rune(body[:idx]))
	if got := frame.Styles[1][runeIdx]; got != preview.StyleCode {
		t.Fatalf("code span style = %v, want StyleCode", got)
	}
}

func TestRender_CachesLastSource(t *testing.T) {
	m := NewMarkdown()
	defer m.Release()
	src := callout.SampleDoc("note")
	first, err := m.Render(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Render(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if &first.Lines[0] != &second.Lines[0] {
		t.Fatal("repeat render of the same source should reuse the cached frame")
	}
}

func TestRender_AfterReleaseFails(t *testing.T) {
	m := NewMarkdown()
	m.Release()
	m.Release() // idempotent
	if _, err := m.Render(context.Background(), "x"); err == nil {
		t.Fatal("render after release should fail")
	}
}

func TestRender_CancelledContext(t *testing.T) {
	m := NewMarkdown()
	defer m.Release()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Render(ctx, "x"); err == nil {
		t.Fatal("render with cancelled context should fail")
	}
}
