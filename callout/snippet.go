package callout

import (
	"fmt"
	"unicode"
)

// SnippetCol is the column the caret should land on after insertion: just
// past the "> " continuation marker.
const SnippetCol = 2

// Snippet is the markup inserted into the document for a category: the
// callout marker line plus an empty quote-continuation line.
func Snippet(category string) string {
	return fmt.Sprintf("> [!%s]\n> ", category)
}

// SampleDoc builds the short document previewed for a category: the marker
// with a capitalized label and one placeholder body line.
func SampleDoc(category string) string {
	return fmt.Sprintf("> [!%s] %s\n> A %s callout.", category, Label(category), category)
}

// Label capitalizes a category name for display.
func Label(category string) string {
	rs := []rune(category)
	if len(rs) == 0 {
		return ""
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
