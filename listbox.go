package main

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// listRow is one materialized row of the picker list. Selection is exposed
// as an observable state flag rather than a list-level callback: whoever
// needs to react to selection changes watches the rows themselves.
type listRow struct {
	category string
	selected bool
	watchers []func(bool)
}

func (r *listRow) Selected() bool {
	return r.selected
}

// Watch registers an observer for this row's selected flag. Observers fire
// on every transition, after the flag has changed.
func (r *listRow) Watch(fn func(bool)) {
	r.watchers = append(r.watchers, fn)
}

func (r *listRow) setSelected(v bool) {
	if r.selected == v {
		return
	}
	r.selected = v
	for _, fn := range r.watchers {
		fn(v)
	}
}

// calloutList is the fuzzy-filtered category list backing one picker
// session. Every refilter rebuilds the rows wholesale and re-runs the
// materialization hook for each; the widget auto-selects the top row before
// the hooks run, so hooks must check Selected() themselves.
type calloutList struct {
	all       []string
	query     []rune
	rows      []*listRow
	selIdx    int
	onRowInit func(*listRow)
}

func newCalloutList(categories []string, onRowInit func(*listRow)) *calloutList {
	l := &calloutList{all: categories, onRowInit: onRowInit, selIdx: -1}
	l.refilter()
	return l
}

func (l *calloutList) refilter() {
	names := filterCategories(l.all, string(l.query))
	rows := make([]*listRow, len(names))
	for i, name := range names {
		rows[i] = &listRow{category: name}
	}
	l.rows = rows
	l.selIdx = -1
	if len(rows) > 0 {
		l.selIdx = 0
		rows[0].selected = true
	}
	for _, row := range rows {
		if l.onRowInit != nil {
			l.onRowInit(row)
		}
	}
}

func filterCategories(all []string, query string) []string {
	if strings.TrimSpace(query) == "" {
		return append([]string(nil), all...)
	}
	matches := fuzzy.Find(query, all)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}

func (l *calloutList) appendQuery(text string) {
	l.query = append(l.query, []rune(text)...)
	l.refilter()
}

func (l *calloutList) backspaceQuery() {
	if len(l.query) == 0 {
		return
	}
	l.query = l.query[:len(l.query)-1]
	l.refilter()
}

func (l *calloutList) moveSelection(delta int) {
	if len(l.rows) == 0 {
		return
	}
	l.selectIndex(clamp(l.selIdx+delta, 0, len(l.rows)-1))
}

func (l *calloutList) selectIndex(i int) {
	if i == l.selIdx || i < 0 || i >= len(l.rows) {
		return
	}
	prev := l.selIdx
	l.selIdx = i
	if prev >= 0 && prev < len(l.rows) {
		l.rows[prev].setSelected(false)
	}
	l.rows[i].setSelected(true)
}

func (l *calloutList) rowAt(i int) (*listRow, bool) {
	if i < 0 || i >= len(l.rows) {
		return nil, false
	}
	return l.rows[i], true
}

func (l *calloutList) selectedCategory() (string, bool) {
	if row, ok := l.rowAt(l.selIdx); ok {
		return row.category, true
	}
	return "", false
}
