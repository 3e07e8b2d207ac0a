package main

import (
	"sync"

	"mdpad/callout"
	"mdpad/preview"
	"mdpad/render"
)

type cursorPos struct {
	Line, Col int
}

// docEditor is the slice of the document-editing capability the picker
// needs: read the cursor, splice text, reposition, hand focus back.
type docEditor interface {
	Cursor() cursorPos
	InsertAt(pos cursorPos, text string)
	SetCursor(pos cursorPos)
	Focus()
}

// frameSurface is the preview surface: it holds the mounted frame and wakes
// the event loop when content changes, since mounting happens off-loop.
type frameSurface struct {
	mu    sync.Mutex
	frame preview.Frame
	has   bool
	wake  func()
}

func newFrameSurface(wake func()) *frameSurface {
	return &frameSurface{wake: wake}
}

func (s *frameSurface) Mount(f preview.Frame) {
	s.mu.Lock()
	s.frame = f
	s.has = true
	s.mu.Unlock()
	if s.wake != nil {
		s.wake()
	}
}

func (s *frameSurface) Clear() {
	s.mu.Lock()
	s.frame = preview.Frame{}
	s.has = false
	s.mu.Unlock()
	if s.wake != nil {
		s.wake()
	}
}

func (s *frameSurface) snapshot() (preview.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.has
}

// pickerSession is the lifetime of one open picker. It owns the preview
// controller and the per-row watcher subscriptions; both are torn down on
// every exit path through close.
type pickerSession struct {
	list    *calloutList
	ctrl    *preview.Controller
	surface *frameSurface
	doc     docEditor
	closed  bool

	errMu   sync.Mutex
	lastErr error

	// overlay geometry from the last draw, for mouse hit tests
	rowsX, rowsY, rowsW, rowsH, rowsOff int
}

func newPickerSession(categories []string, doc docEditor, surface *frameSurface) *pickerSession {
	s := &pickerSession{doc: doc, surface: surface}
	s.ctrl = preview.New(render.NewMarkdown(), surface, callout.SampleDoc, s.noteError)
	s.list = newCalloutList(categories, func(row *listRow) {
		s.wireRow(row)
	})
	return s
}

// wireRow is the row-materialization hook: subscribe to the row's selected
// flag, then catch up synchronously in case the widget marked the row
// selected before this hook ran (initial population and every refilter do).
func (s *pickerSession) wireRow(row *listRow) {
	row.Watch(func(selected bool) {
		if selected {
			s.ctrl.Show(row.category)
		}
	})
	if row.Selected() {
		s.ctrl.Show(row.category)
	}
}

// hover is the pointer signal source: entering a row previews it directly,
// without moving the visible selection.
func (s *pickerSession) hover(idx int) {
	if s.closed {
		return
	}
	if row, ok := s.list.rowAt(idx); ok {
		s.ctrl.Show(row.category)
	}
}

// confirm inserts the selected category's snippet at the cursor, repositions
// the cursor onto the continuation line, returns focus to the document and
// ends the session. Reports whether an insertion happened.
func (s *pickerSession) confirm() bool {
	if s.closed {
		return false
	}
	category, ok := s.list.selectedCategory()
	if !ok {
		s.close()
		return false
	}
	pos := s.doc.Cursor()
	s.doc.InsertAt(pos, callout.Snippet(category))
	s.doc.SetCursor(cursorPos{Line: pos.Line + 1, Col: callout.SnippetCol})
	s.doc.Focus()
	s.close()
	return true
}

// close releases the session's resources. Idempotent; every exit path
// (confirm, cancel, dismiss) funnels through here.
func (s *pickerSession) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ctrl.Dispose()
}

func (s *pickerSession) noteError(err error) {
	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()
	if s.surface != nil && s.surface.wake != nil {
		s.surface.wake()
	}
}

func (s *pickerSession) lastError() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

// rowAtPoint maps a screen coordinate to a visible row index using the
// geometry recorded by the last draw.
func (s *pickerSession) rowAtPoint(x, y int) (int, bool) {
	if s.closed || s.rowsW <= 0 || s.rowsH <= 0 {
		return 0, false
	}
	if x < s.rowsX || x >= s.rowsX+s.rowsW || y < s.rowsY || y >= s.rowsY+s.rowsH {
		return 0, false
	}
	idx := y - s.rowsY + s.rowsOff
	if idx >= len(s.list.rows) {
		return 0, false
	}
	return idx, true
}
