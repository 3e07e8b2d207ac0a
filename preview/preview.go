// Package preview keeps a single rendered preview in sync with a logical
// "current selection" fed by independent, possibly rapid-fire signal sources.
package preview

import "context"

// Style classifies one rune of a rendered frame. The UI layer decides what
// each class looks like on screen.
type Style int

const (
	StyleDefault Style = iota
	StyleMarker        // quote bar and callout punctuation
	StyleTitle
	StyleBody
	StyleCode
	StyleEmphasis
	StyleStrong
)

// Frame is the rendered appearance of one sample document: display lines
// plus a per-rune style row for each (a nil row means all-default).
type Frame struct {
	Category string
	Lines    []string
	Styles   [][]Style
}

// Renderer converts a small structured-text sample into a Frame. Render is
// the controller's one suspension point and runs off the event loop.
type Renderer interface {
	Render(ctx context.Context, source string) (Frame, error)
	Release()
}

// Surface is the UI region a frame is mounted into. Implementations must be
// safe to call from the render goroutine.
type Surface interface {
	Mount(Frame)
	Clear()
}
