package callout

import (
	"reflect"
	"testing"
)

const sampleCSS = `
.callout[data-callout="custom"] {
	--callout-color: 68, 138, 255;
}
.theme-dark .callout[data-callout='aside'] { color: red; }
.callout[data-callout=bare] { color: blue; }
/* prefix matches are styling refinements, not category definitions */
.callout[data-callout^="warn"] { font-weight: bold; }
div[data-other="nope"] { color: green; }
`

func TestScan_HarvestsEqualitySelectors(t *testing.T) {
	got := Scan([]byte(sampleCSS))
	for _, want := range []string{"custom", "aside", "bare"} {
		if _, ok := got[want]; !ok {
			t.Fatalf("scan missed %q; got %v", want, got)
		}
	}
	if _, ok := got["warn"]; ok {
		t.Fatal("scan must ignore ^= prefix selectors")
	}
	if _, ok := got["nope"]; ok {
		t.Fatal("scan must ignore attributes other than data-callout")
	}
}

func TestScan_EmptyAndGarbageInput(t *testing.T) {
	if got := Scan(nil); len(got) != 0 {
		t.Fatalf("scan of nil input = %v, want empty", got)
	}
	// A stylesheet with errors still yields whatever parsed; never panics.
	got := Scan([]byte(`.callout[data-callout="ok"] { color: } }}{{`))
	if _, ok := got["ok"]; !ok {
		t.Fatalf("scan of damaged stylesheet = %v, want to still contain ok", got)
	}
}

func TestMerge_DeterministicDedupSorted(t *testing.T) {
	scanned := map[string]struct{}{"custom": {}}
	configured := []string{"note", "custom", "tip"}
	want := []string{"custom", "note", "tip"}
	for i := 0; i < 3; i++ {
		got := Merge(scanned, configured)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("merge run %d = %v, want %v", i, got, want)
		}
	}
}

func TestMerge_DropsEmptyNames(t *testing.T) {
	got := Merge(map[string]struct{}{"": {}}, []string{"", "note"})
	if !reflect.DeepEqual(got, []string{"note"}) {
		t.Fatalf("merge = %v, want [note]", got)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("merge of nothing = %v, want empty", got)
	}
}

func TestSnippetShape(t *testing.T) {
	if got := Snippet("warning"); got != "> [!warning]\n> " {
		t.Fatalf("snippet = %q", got)
	}
}

func TestSampleDocShape(t *testing.T) {
	want := "> [!note] Note\n> A note callout."
	if got := SampleDoc("note"); got != want {
		t.Fatalf("sample doc = %q, want %q", got, want)
	}
}

func TestLabel(t *testing.T) {
	if got := Label("tip"); got != "Tip" {
		t.Fatalf("Label(tip) = %q", got)
	}
	if got := Label(""); got != "" {
		t.Fatalf("Label(\"\") = %q", got)
	}
}
