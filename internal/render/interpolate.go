package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Placeholders are non-greedy and cannot nest. An unterminated "{{" never
// matches and stays in the output as literal text.
var placeholderRx = regexp.MustCompile(`\{\{([^{}]*?)\}\}`)

// Interpolate expands every {{path}} placeholder in tpl. Inside a repeat
// context (item != nil) a placeholder resolves in order: "item." against the
// bound item, "content." against the item's content map, "section." as an
// alias of "item.", then the full path directly against the item when that
// yields something non-empty, and finally against the global data tree.
// Without a repeat context resolution is always global.
func Interpolate(tpl string, data map[string]any, item any) string {
	if tpl == "" {
		return ""
	}
	return placeholderRx.ReplaceAllStringFunc(tpl, func(m string) string {
		path := strings.TrimSpace(m[2 : len(m)-2])
		if path == "" {
			return ""
		}
		return stringify(resolveBinding(path, data, item))
	})
}

func resolveBinding(path string, data map[string]any, item any) any {
	if item != nil {
		switch {
		case strings.HasPrefix(path, "item."):
			return Resolve(item, strings.TrimPrefix(path, "item."))
		case strings.HasPrefix(path, "content."):
			return Resolve(item, path)
		case strings.HasPrefix(path, "section."):
			return Resolve(item, strings.TrimPrefix(path, "section."))
		}
		if v := Resolve(item, path); stringify(v) != "" {
			return v
		}
	}
	return Resolve(data, path)
}

// stringify renders a resolved value for text output. Arrays join with a
// comma-space; nil renders empty, never a "null" literal.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			parts = append(parts, stringify(it))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
