package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"mdpad/editor"
	"mdpad/preview"
)

const gutterW = 5

func drawTUI(s tcell.Screen, app *appState) {
	if app == nil || app.ed == nil {
		s.Clear()
		s.Show()
		return
	}
	w, h := s.Size()
	if w < 10 || h < 4 {
		s.Clear()
		s.Show()
		return
	}

	lines := editor.SplitLines(app.ed.Runes())
	contentH := h - 2
	cLine := editor.CaretLineAt(lines, app.ed.Caret)
	cCol := editor.CaretColAt(lines, app.ed.Caret)
	ensureCaretVisible(app, cLine, len(lines), contentH)
	startLine := clamp(app.scrollLine, 0, max(0, len(lines)-contentH))

	base := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	gutter := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkCyan)

	for row := 0; row < contentH; row++ {
		ln := startLine + row
		fillRow(s, row, w, base)
		if ln >= len(lines) {
			continue
		}
		g := fmt.Sprintf("%4d ", ln+1)
		drawCellText(s, 0, row, g, gutter)
		drawTabbedLine(s, gutterW, row, lines[ln], base)
	}

	status := fmt.Sprintf("%s | %d callout types", docLabel(app), len(app.categories))
	if app.dirty {
		status += " | *unsaved*"
	}
	if app.picker != nil {
		if err := app.picker.lastError(); err != nil {
			app.lastEvent = fmt.Sprintf("preview: %v", err)
		}
	}
	if app.lastEvent != "" {
		status += " | " + app.lastEvent
	}
	drawCellText(s, 0, h-2, padRight(status, w), tcell.StyleDefault.Background(tcell.ColorDarkSlateBlue).Foreground(tcell.ColorWhite))

	input := "Ctrl+K callout | Ctrl+E rescan | Ctrl+D save defaults | Ctrl+W save | Ctrl+Q quit"
	if app.picker != nil {
		input = "Callout: " + string(app.picker.list.query)
	}
	drawCellText(s, 0, h-1, padRight(input, w), tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray))

	if app.picker != nil {
		drawPickerOverlay(s, app.picker, w, h)
	}

	caretX := gutterW + visualColForRuneCol(lines[cLine], cCol, tabWidth)
	caretY := cLine - startLine
	if app.focusDoc && caretY >= 0 && caretY < contentH && caretX >= 0 && caretX < w {
		s.ShowCursor(caretX, caretY)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func docLabel(app *appState) string {
	if app.path == "" {
		return "<untitled>"
	}
	return app.path
}

// ======================
// Picker overlay
// ======================

func drawPickerOverlay(s tcell.Screen, sess *pickerSession, w, h int) {
	bg := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	border := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorLightCyan)
	title := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorLightYellow)
	dim := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorSilver)
	sel := tcell.StyleDefault.Background(tcell.ColorLightSlateGray).Foreground(tcell.ColorBlack)

	boxW := min(w-4, 76)
	if boxW < 40 {
		boxW = w - 2
	}
	boxH := max(min(h-4, 14), 7)
	x := max(1, (w-boxW)/2)
	y := max(1, (h-boxH)/2)

	drawBox(s, x, y, boxW, boxH, bg, border)
	drawCellText(s, x+2, y+1, padRight("Insert callout ("+string(sess.list.query)+")", boxW-4), title)

	listW := min(24, boxW/3)
	rowsX := x + 2
	rowsY := y + 2
	rowsH := boxH - 3
	offset := 0
	if sess.list.selIdx >= rowsH {
		offset = sess.list.selIdx - rowsH + 1
	}
	sess.rowsX, sess.rowsY, sess.rowsW, sess.rowsH, sess.rowsOff = rowsX, rowsY, listW, rowsH, offset

	for i := 0; i < rowsH; i++ {
		idx := i + offset
		row, ok := sess.list.rowAt(idx)
		if !ok {
			drawCellText(s, rowsX, rowsY+i, strings.Repeat(" ", listW), bg)
			continue
		}
		st := bg
		prefix := "  "
		if row.Selected() {
			st = sel
			prefix = "▸ "
		}
		drawCellText(s, rowsX, rowsY+i, padRight(prefix+row.category, listW), st)
	}
	if len(sess.list.rows) == 0 {
		drawCellText(s, rowsX, rowsY, padRight("(no matches)", listW), dim)
	}

	sepX := rowsX + listW + 1
	for i := 0; i < rowsH; i++ {
		s.SetContent(sepX, rowsY+i, '│', nil, border)
	}
	drawPreviewPane(s, sess, sepX+2, rowsY, x+boxW-2-(sepX+2), rowsH, bg, dim)
}

// drawPreviewPane mounts the current frame snapshot into the right-hand pane.
func drawPreviewPane(s tcell.Screen, sess *pickerSession, x, y, w, h int, bg, dim tcell.Style) {
	if w <= 0 || h <= 0 {
		return
	}
	frame, ok := sess.surface.snapshot()
	if !ok {
		if _, has := sess.ctrl.Current(); has {
			drawCellText(s, x, y, padRight("rendering…", w), dim)
		} else {
			drawCellText(s, x, y, padRight("(no preview)", w), dim)
		}
		return
	}
	accent := calloutAccent(frame.Category)
	for i := 0; i < h && i < len(frame.Lines); i++ {
		runes := []rune(frame.Lines[i])
		var styles []preview.Style
		if i < len(frame.Styles) {
			styles = frame.Styles[i]
		}
		for j := 0; j < w; j++ {
			r := ' '
			st := bg
			if j < len(runes) {
				r = runes[j]
				st = previewCellStyle(bg, accent, styleAt(styles, j))
			}
			s.SetContent(x+j, y+i, r, nil, st)
		}
	}
}

func styleAt(styles []preview.Style, i int) preview.Style {
	if i < 0 || i >= len(styles) {
		return preview.StyleDefault
	}
	return styles[i]
}

func previewCellStyle(base tcell.Style, accent tcell.Color, st preview.Style) tcell.Style {
	switch st {
	case preview.StyleMarker:
		return base.Foreground(accent)
	case preview.StyleTitle:
		return base.Foreground(accent).Bold(true)
	case preview.StyleBody:
		return base.Foreground(tcell.ColorWhite)
	case preview.StyleCode:
		return base.Foreground(tcell.ColorLightGreen)
	case preview.StyleEmphasis:
		return base.Italic(true)
	case preview.StyleStrong:
		return base.Bold(true)
	default:
		return base
	}
}

// calloutAccent groups the common callout vocabulary into accent colors;
// unknown categories fall back to the note blue.
func calloutAccent(category string) tcell.Color {
	switch category {
	case "note", "info", "todo", "abstract", "summary", "tldr":
		return tcell.ColorLightSkyBlue
	case "tip", "hint", "important":
		return tcell.ColorLightCyan
	case "success", "check", "done":
		return tcell.ColorLightGreen
	case "question", "help", "faq":
		return tcell.ColorKhaki
	case "warning", "caution", "attention":
		return tcell.ColorLightSalmon
	case "danger", "error", "failure", "fail", "missing", "bug":
		return tcell.ColorIndianRed
	case "example":
		return tcell.ColorMediumPurple
	case "quote", "cite":
		return tcell.ColorSilver
	default:
		return tcell.ColorLightSkyBlue
	}
}

// ======================
// Cell helpers
// ======================

func drawBox(s tcell.Screen, x, y, w, h int, bg, border tcell.Style) {
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			ch := ' '
			st := bg
			if yy == 0 || yy == h-1 || xx == 0 || xx == w-1 {
				ch = '│'
				if yy == 0 || yy == h-1 {
					ch = '─'
				}
				if yy == 0 && xx == 0 {
					ch = '┌'
				} else if yy == 0 && xx == w-1 {
					ch = '┐'
				} else if yy == h-1 && xx == 0 {
					ch = '└'
				} else if yy == h-1 && xx == w-1 {
					ch = '┘'
				}
				st = border
			}
			s.SetContent(x+xx, y+yy, ch, nil, st)
		}
	}
}

func drawCellText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

func drawTabbedLine(s tcell.Screen, x, y int, line string, st tcell.Style) {
	visual := 0
	for _, r := range line {
		if r == '\t' {
			next := ((visual / tabWidth) + 1) * tabWidth
			for visual < next {
				s.SetContent(x+visual, y, ' ', nil, st)
				visual++
			}
			continue
		}
		s.SetContent(x+visual, y, r, nil, st)
		visual++
	}
}

func fillRow(s tcell.Screen, y, w int, st tcell.Style) {
	for x := range w {
		s.SetContent(x, y, ' ', nil, st)
	}
}

func padRight(s string, w int) string {
	rs := []rune(s)
	if len(rs) >= w {
		return string(rs[:w])
	}
	return s + strings.Repeat(" ", w-len(rs))
}

func visualColForRuneCol(line string, runeCol, width int) int {
	if width <= 0 {
		return runeCol
	}
	col := 0
	vis := 0
	for _, r := range line {
		if col >= runeCol {
			break
		}
		if r == '\t' {
			vis = ((vis / width) + 1) * width
		} else {
			vis++
		}
		col++
	}
	return vis
}

func ensureCaretVisible(app *appState, caretLine, totalLines, visibleLines int) {
	if app == nil {
		return
	}
	if caretLine < 0 {
		caretLine = 0
	}
	if totalLines < 0 {
		totalLines = 0
	}
	if visibleLines <= 0 {
		visibleLines = 1
	}
	maxStart := max(0, totalLines-visibleLines)
	if app.scrollLine > maxStart {
		app.scrollLine = maxStart
	}
	if caretLine < app.scrollLine {
		app.scrollLine = caretLine
	} else if caretLine >= app.scrollLine+visibleLines {
		app.scrollLine = caretLine - visibleLines + 1
	}
	if app.scrollLine > maxStart {
		app.scrollLine = maxStart
	}
	if app.scrollLine < 0 {
		app.scrollLine = 0
	}
}
