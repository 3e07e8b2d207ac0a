package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/gdamore/tcell/v2"

	"mdpad/callout"
	"mdpad/editor"
)

const tabWidth = 4

type appState struct {
	ed         *editor.Editor
	path       string
	dirty      bool
	scrollLine int
	lastEvent  string
	focusDoc   bool

	cssPath      string
	settingsPath string
	settings     settings
	categories   []string

	picker *pickerSession
	wake   func()
}

func main() {
	cssPath := flag.String("css", "", "stylesheet file or directory scanned for callout styling rules")
	settingsPath := flag.String("settings", defaultSettingsPath(), "settings file")
	flag.Parse()
	if err := runTUI(*cssPath, *settingsPath, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(cssPath, settingsPath, docPath string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := newApp(cssPath, settingsPath)
	app.wake = func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	if docPath != "" {
		if err := openPath(app, docPath); err != nil {
			app.lastEvent = fmt.Sprintf("OPEN ERR: %v", err)
		}
	}

	for {
		drawTUI(screen, app)
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !handleTUIKey(app, e) {
				return nil
			}
		case *tcell.EventMouse:
			handleTUIMouse(app, e)
		case *tcell.EventInterrupt:
			// Wake-up redraw.
		}
	}
}

func newApp(cssPath, settingsPath string) *appState {
	app := &appState{
		ed:           editor.NewEditor(""),
		focusDoc:     true,
		cssPath:      cssPath,
		settingsPath: settingsPath,
	}
	s, err := loadSettings(settingsPath)
	app.settings = s
	if err != nil {
		app.lastEvent = fmt.Sprintf("settings: %v (using defaults)", err)
	}
	app.rebuildCategories()
	return app
}

// rebuildCategories recomputes the CategorySet wholesale: scanned names
// merged with the configured defaults. Runs at startup and on Ctrl+E.
func (app *appState) rebuildCategories() {
	scanned, note := scanStyles(app.cssPath)
	if note != "" {
		app.lastEvent = note
	}
	app.categories = callout.Merge(scanned, app.settings.DefaultCalloutTypes)
}

// scanStyles reads the stylesheet source(s) behind path. A missing or
// unreadable source degrades to an empty set with a status note; it never
// fails the caller.
func scanStyles(path string) (map[string]struct{}, string) {
	if path == "" {
		return nil, ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Sprintf("styles: %v (scan skipped)", err)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Sprintf("styles: %v (scan skipped)", err)
		}
		return callout.Scan(data), ""
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Sprintf("styles: %v (scan skipped)", err)
	}
	out := make(map[string]struct{})
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".css") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(path, de.Name()))
		if err != nil {
			continue
		}
		for name := range callout.Scan(data) {
			out[name] = struct{}{}
		}
	}
	return out, ""
}

// ======================
// Key and mouse dispatch
// ======================

func handleTUIKey(app *appState, ev *tcell.EventKey) bool {
	if app == nil || ev == nil {
		return true
	}
	if app.picker != nil {
		return handlePickerKey(app, ev)
	}
	return handleEditorKey(app, ev)
}

func handleEditorKey(app *appState, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return false
	case tcell.KeyCtrlW:
		if err := saveCurrent(app); err != nil {
			app.lastEvent = fmt.Sprintf("SAVE ERR: %v", err)
		} else {
			app.lastEvent = fmt.Sprintf("Saved %s", app.path)
		}
	case tcell.KeyCtrlK:
		app.openPicker()
	case tcell.KeyCtrlE:
		app.rebuildCategories()
		app.lastEvent = fmt.Sprintf("Rescanned styles: %d callout types", len(app.categories))
	case tcell.KeyCtrlD:
		app.settings.DefaultCalloutTypes = append([]string(nil), app.categories...)
		if err := saveSettings(app.settingsPath, app.settings); err != nil {
			app.lastEvent = fmt.Sprintf("SETTINGS ERR: %v", err)
		} else {
			app.lastEvent = fmt.Sprintf("Saved %d callout types as defaults", len(app.categories))
		}
	case tcell.KeyLeft:
		app.ed.MoveCaret(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		app.ed.MoveCaret(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyUp:
		app.ed.MoveCaretLine(-1)
	case tcell.KeyDown:
		app.ed.MoveCaretLine(1)
	case tcell.KeyHome:
		ln, _ := app.ed.LineCol()
		app.ed.SetLineCol(ln, 0)
	case tcell.KeyEnd:
		lines := editor.SplitLines(app.ed.Runes())
		ln, _ := app.ed.LineCol()
		app.ed.SetLineCol(ln, len([]rune(lines[ln])))
	case tcell.KeyPgUp:
		app.scrollLine = max(0, app.scrollLine-10)
	case tcell.KeyPgDn:
		app.scrollLine += 10
	case tcell.KeyEnter:
		app.ed.InsertText("\n")
		app.dirty = true
	case tcell.KeyTab:
		app.ed.InsertText("\t")
		app.dirty = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.ed.BackspaceOrDeleteSelection(true)
		app.dirty = true
	case tcell.KeyDelete:
		app.ed.BackspaceOrDeleteSelection(false)
		app.dirty = true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl == 0 {
			app.ed.InsertText(string(ev.Rune()))
			app.dirty = true
		}
	}
	return true
}

func handlePickerKey(app *appState, ev *tcell.EventKey) bool {
	s := app.picker
	switch ev.Key() {
	case tcell.KeyEscape:
		app.closePicker()
	case tcell.KeyEnter:
		if s.confirm() {
			app.lastEvent = "Inserted callout"
		}
		app.picker = nil
		app.focusDoc = true
	case tcell.KeyUp, tcell.KeyBacktab:
		s.list.moveSelection(-1)
	case tcell.KeyDown, tcell.KeyTab:
		s.list.moveSelection(1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.list.backspaceQuery()
	case tcell.KeyCtrlQ:
		app.closePicker()
		return false
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl == 0 {
			s.list.appendQuery(string(ev.Rune()))
		}
	}
	return true
}

func handleTUIMouse(app *appState, ev *tcell.EventMouse) {
	if app == nil || app.picker == nil || ev == nil {
		return
	}
	x, y := ev.Position()
	idx, ok := app.picker.rowAtPoint(x, y)
	if !ok {
		return
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		// Click moves the visible selection; the row watchers carry it to
		// the preview.
		app.picker.list.selectIndex(idx)
		return
	}
	app.picker.hover(idx)
}

// ======================
// Picker session lifecycle
// ======================

func (app *appState) openPicker() {
	if app.picker != nil {
		return
	}
	surface := newFrameSurface(app.wake)
	app.picker = newPickerSession(app.categories, appDoc{app}, surface)
	app.focusDoc = false
	app.lastEvent = fmt.Sprintf("Insert callout: %d types", len(app.categories))
}

func (app *appState) closePicker() {
	if app.picker == nil {
		return
	}
	app.picker.close()
	app.picker = nil
	app.focusDoc = true
}

// appDoc adapts the editor to the picker's document-editing capability.
type appDoc struct {
	app *appState
}

func (d appDoc) Cursor() cursorPos {
	ln, col := d.app.ed.LineCol()
	return cursorPos{Line: ln, Col: col}
}

func (d appDoc) InsertAt(pos cursorPos, text string) {
	lines := editor.SplitLines(d.app.ed.Runes())
	d.app.ed.InsertAt(editor.PosForLineCol(lines, pos.Line, pos.Col), text)
	d.app.dirty = true
}

func (d appDoc) SetCursor(pos cursorPos) {
	d.app.ed.SetLineCol(pos.Line, pos.Col)
}

func (d appDoc) Focus() {
	d.app.focusDoc = true
}

// ======================
// File I/O
// ======================

func saveCurrent(app *appState) error {
	if app == nil || app.ed == nil {
		return fmt.Errorf("no editor to save")
	}
	if app.path == "" {
		return fmt.Errorf("no path (start mdpad with a filename)")
	}
	if err := os.MkdirAll(filepath.Dir(app.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(app.path, []byte(app.ed.String()), 0644); err != nil {
		return err
	}
	app.dirty = false
	return nil
}

func openPath(app *appState, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	app.path = abs
	data, err := os.ReadFile(abs)
	if errors.Is(err, os.ErrNotExist) {
		app.ed.SetRunes(nil)
		app.lastEvent = fmt.Sprintf("Buffer for %s (file will be created on save)", abs)
		return nil
	}
	if err != nil {
		return err
	}
	app.ed.SetRunes(bytesToRunes(data))
	app.ed.Caret = 0
	app.lastEvent = fmt.Sprintf("Opened %s", abs)
	return nil
}

func bytesToRunes(data []byte) []rune {
	if len(data) == 0 {
		return nil
	}
	// Avoid an extra byte-to-string copy when decoding file content into runes.
	s := unsafe.String(unsafe.SliceData(data), len(data))
	return []rune(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
