// Package callout resolves the set of selectable callout categories and
// builds the markup snippets the picker inserts.
package callout

import (
	"context"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	sittercss "github.com/smacker/go-tree-sitter/css"
)

// calloutAttribute is the attribute styling rules use to target one callout
// kind, e.g. .callout[data-callout="warning"] { ... }.
const calloutAttribute = "data-callout"

// Scan harvests every category name referenced by a callout styling rule in
// the given stylesheet source. Only plain equality selectors count; the value
// may be quoted or bare. Unparseable or empty input yields an empty set.
func Scan(src []byte) map[string]struct{} {
	out := make(map[string]struct{})
	if len(src) == 0 {
		return out
	}
	root, err := sitter.ParseCtx(context.Background(), src, sittercss.GetLanguage())
	if err != nil || root == nil {
		return out
	}
	walkTree(root, func(n *sitter.Node) {
		if n.Type() != "attribute_selector" {
			return
		}
		if name, ok := calloutNameFromSelector(n, src); ok {
			out[name] = struct{}{}
		}
	})
	return out
}

// calloutNameFromSelector inspects one attribute_selector node. The grammar
// lays its children out as: "[" attribute_name operator value "]".
func calloutNameFromSelector(sel *sitter.Node, src []byte) (string, bool) {
	attr := ""
	op := ""
	value := ""
	for i := 0; i < int(sel.ChildCount()); i++ {
		child := sel.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "attribute_name":
			attr = nodeText(src, child)
		case "=", "~=", "^=", "|=", "*=", "$=":
			op = child.Type()
		case "string_value":
			value = strings.Trim(nodeText(src, child), `"'`)
		case "plain_value":
			value = nodeText(src, child)
		}
	}
	if attr != calloutAttribute || op != "=" {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Merge unions the scanned set with the configured sequence, drops empty
// names and duplicates, and sorts byte-wise ascending. Deterministic: the
// same inputs always yield the same sequence.
func Merge(scanned map[string]struct{}, configured []string) []string {
	seen := make(map[string]struct{}, len(scanned)+len(configured))
	for name := range scanned {
		if name != "" {
			seen[name] = struct{}{}
		}
	}
	for _, name := range configured {
		if name != "" {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func walkTree(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(i), visit)
	}
}

func nodeText(src []byte, node *sitter.Node) string {
	a := int(node.StartByte())
	b := int(node.EndByte())
	if a < 0 {
		a = 0
	}
	if b > len(src) {
		b = len(src)
	}
	if a >= b {
		return ""
	}
	return string(src[a:b])
}
