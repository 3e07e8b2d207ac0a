package editor

// Document buffer and caret logic for the host. This package is UI-agnostic
// to keep logic testable.

type Sel struct {
	Active bool
	A      int // inclusive
	B      int // exclusive-ish in rendering; we normalise anyway
}

func (s Sel) Normalised() (int, int) {
	if !s.Active {
		return 0, 0
	}
	if s.A <= s.B {
		return s.A, s.B
	}
	return s.B, s.A
}

type Editor struct {
	Buf   []rune
	Caret int
	Sel   Sel
}

func NewEditor(initial string) *Editor {
	return &Editor{Buf: []rune(initial)}
}

func (e *Editor) String() string {
	return string(e.Buf)
}

func (e *Editor) RuneLen() int {
	return len(e.Buf)
}

func (e *Editor) SetRunes(rs []rune) {
	e.Buf = rs
	e.Caret = clamp(e.Caret, 0, len(e.Buf))
	e.Sel = Sel{}
}

func (e *Editor) Runes() []rune {
	return e.Buf
}

// ======================
// Editing + selection
// ======================

func (e *Editor) InsertText(text string) {
	// Replace selection if active
	if e.Sel.Active {
		e.deleteSelection()
	}
	rs := []rune(text)
	if len(rs) == 0 {
		return
	}
	e.Caret = clamp(e.Caret, 0, len(e.Buf))
	e.Buf = append(e.Buf[:e.Caret], append(rs, e.Buf[e.Caret:]...)...)
	e.Caret += len(rs)
}

// InsertAt splices text at an arbitrary position. The caret keeps its logical
// spot: it shifts by the inserted length when the splice lands at or before it.
func (e *Editor) InsertAt(pos int, text string) {
	rs := []rune(text)
	if len(rs) == 0 {
		return
	}
	pos = clamp(pos, 0, len(e.Buf))
	e.Buf = append(e.Buf[:pos], append(rs, e.Buf[pos:]...)...)
	if e.Caret >= pos {
		e.Caret += len(rs)
	}
	e.Sel.Active = false
}

func (e *Editor) BackspaceOrDeleteSelection(isBackspace bool) {
	if e.Sel.Active {
		e.deleteSelection()
		return
	}
	if len(e.Buf) == 0 {
		return
	}
	if isBackspace {
		if e.Caret <= 0 {
			return
		}
		e.Buf = append(e.Buf[:e.Caret-1], e.Buf[e.Caret:]...)
		e.Caret--
		return
	}
	// delete forward
	if e.Caret >= len(e.Buf) {
		return
	}
	e.Buf = append(e.Buf[:e.Caret], e.Buf[e.Caret+1:]...)
}

func (e *Editor) deleteSelection() {
	a, b := e.Sel.Normalised()
	a = clamp(a, 0, len(e.Buf))
	b = clamp(b, 0, len(e.Buf))
	if a == b {
		e.Sel.Active = false
		return
	}
	e.Buf = append(e.Buf[:a], e.Buf[b:]...)
	e.Caret = a
	e.Sel.Active = false
}

func (e *Editor) MoveCaret(delta int, extendSelection bool) {
	newPos := clamp(e.Caret+delta, 0, len(e.Buf))
	if extendSelection {
		if !e.Sel.Active {
			e.Sel.Active = true
			e.Sel.A = e.Caret
			e.Sel.B = newPos
		} else {
			e.Sel.B = newPos
		}
	} else {
		e.Sel.Active = false
	}
	e.Caret = newPos
}

// MoveCaretLine moves the caret a whole line up or down, keeping the column
// where the target line allows it.
func (e *Editor) MoveCaretLine(delta int) {
	lines := SplitLines(e.Buf)
	ln, col := LineColForPos(lines, e.Caret)
	ln = clamp(ln+delta, 0, len(lines)-1)
	e.Caret = PosForLineCol(lines, ln, col)
	e.Sel.Active = false
}

// ======================
// Line/col mapping
// ======================

func SplitLines(buf []rune) []string {
	lines := make([]string, 0, 64)
	var cur []rune
	for _, r := range buf {
		if r == '\n' {
			lines = append(lines, string(cur))
			cur = cur[:0]
			continue
		}
		cur = append(cur, r)
	}
	lines = append(lines, string(cur))
	return lines
}

// Convert a buffer position to (line, col) assuming lines from SplitLines.
func LineColForPos(lines []string, pos int) (int, int) {
	if pos <= 0 {
		return 0, 0
	}
	p := 0
	for i, line := range lines {
		l := len([]rune(line))
		if pos <= p+l {
			return i, pos - p
		}
		p += l + 1
	}
	// end
	if len(lines) == 0 {
		return 0, 0
	}
	last := len(lines) - 1
	return last, len([]rune(lines[last]))
}

// PosForLineCol is the inverse mapping; line and col are clamped to the
// buffer, so any request lands on a valid position.
func PosForLineCol(lines []string, line, col int) int {
	if len(lines) == 0 {
		return 0
	}
	line = clamp(line, 0, len(lines)-1)
	p := 0
	for i := 0; i < line; i++ {
		p += len([]rune(lines[i])) + 1
	}
	return p + clamp(col, 0, len([]rune(lines[line])))
}

func (e *Editor) LineCol() (int, int) {
	return LineColForPos(SplitLines(e.Buf), e.Caret)
}

func (e *Editor) SetLineCol(line, col int) {
	e.Caret = PosForLineCol(SplitLines(e.Buf), line, col)
	e.Sel.Active = false
}

func CaretLineAt(lines []string, caret int) int {
	ln, _ := LineColForPos(lines, caret)
	return ln
}

func CaretColAt(lines []string, caret int) int {
	_, col := LineColForPos(lines, caret)
	return col
}

// ======================
// Util
// ======================

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
