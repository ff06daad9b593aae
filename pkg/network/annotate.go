package network

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Attribute keys that drive edge annotation.
const (
	attrDepth = "depth"
	attrValue = "value"
	attrWidth = "width"
)

// reverseSeparator joins an edge's own title with its reverse edge's title.
const reverseSeparator = "<br>"

type edgeKey struct{ from, to string }

// annotator builds edge tooltips. It remembers the final title of every
// edge it has annotated so a later reverse edge can pull it in.
//
// Only earlier-processed reverse edges are merged; a reverse edge that
// comes later is not updated retroactively. The first edge of a
// bidirectional pair therefore keeps a direction-only tooltip while the
// second one describes both directions.
type annotator struct {
	titles map[edgeKey]string
}

func newAnnotator() *annotator {
	return &annotator{titles: make(map[edgeKey]string)}
}

// annotate returns the tooltip for from->to and records it.
func (a *annotator) annotate(from, to string, attrs map[string]any) string {
	title := derivedTitle(from, to, attrs)
	if reverse, ok := a.titles[edgeKey{to, from}]; ok {
		title += reverseSeparator + reverse
	}
	a.titles[edgeKey{from, to}] = title
	return title
}

// derivedTitle describes a parent/child edge from its depth attribute.
// Explicit value or width attributes suppress it.
func derivedTitle(from, to string, attrs map[string]any) string {
	if _, ok := attrs[attrValue]; ok {
		return ""
	}
	if _, ok := attrs[attrWidth]; ok {
		return ""
	}
	depth, ok := attrs[attrDepth]
	if !ok {
		return ""
	}
	return fmt.Sprintf("Parent: %s Child: %s. Depths: %s", from, to, FormatValue(depth))
}

// FormatValue renders an attribute value for a tooltip or label.
// json.Number keeps its literal text and floats use the shortest form.
// Booleans print as True/False and nil as None. Strings nested in lists
// and maps are quoted: "['a', 1]".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []any:
		return formatList(len(x), func(i int) any { return x[i] })
	case []string:
		return formatList(len(x), func(i int) any { return x[i] })
	case []int:
		return formatList(len(x), func(i int) any { return x[i] })
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = quote(k) + ": " + formatElem(x[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}

func formatList(n int, at func(int) any) string {
	parts := make([]string, n)
	for i := range n {
		parts[i] = formatElem(at(i))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatElem formats a value nested in a list or map, where strings are quoted.
func formatElem(v any) string {
	if s, ok := v.(string); ok {
		return quote(s)
	}
	return FormatValue(v)
}

// quote wraps s in single quotes, or double quotes when s holds a single
// quote and no double quote.
func quote(s string) string {
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}
	r := strings.NewReplacer(`\`, `\\`, "'", `\'`)
	return "'" + r.Replace(s) + "'"
}
