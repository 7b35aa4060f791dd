package render

import (
	"strconv"
	"strings"
)

// Path mini-grammar: dot-separated segments where any segment may carry one
// or more [N] bracket indexes, so "sections[0].content" and
// "sections.0.content" address the same value. Negative indexes, wildcards
// and empty segments are not part of the grammar and fail resolution.

type pathSegment struct {
	key     string
	bracket bool
}

// parsePath tokenizes a path expression. It returns ok=false when the
// expression is malformed (empty segment, unterminated or negative bracket
// index); callers treat that as a resolution miss, never as an error.
func parsePath(path string) ([]pathSegment, bool) {
	if path == "" {
		return nil, false
	}
	var segs []pathSegment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, false
		}
		rest := part
		if i := strings.IndexByte(rest, '['); i >= 0 {
			head := rest[:i]
			if head == "" {
				return nil, false
			}
			segs = append(segs, pathSegment{key: head})
			rest = rest[i:]
			for rest != "" {
				if rest[0] != '[' {
					return nil, false
				}
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					return nil, false
				}
				idx := rest[1:end]
				if _, err := strconv.ParseUint(idx, 10, 32); err != nil {
					return nil, false
				}
				segs = append(segs, pathSegment{key: idx, bracket: true})
				rest = rest[end+1:]
			}
			continue
		}
		segs = append(segs, pathSegment{key: part})
	}
	return segs, true
}

// Resolve walks a JSON-like tree (maps, slices, scalars) along the given
// path. A segment that parses as a non-negative integer indexes the current
// value when it is an array and is otherwise used as a map key. Any miss
// short-circuits to the empty-string sentinel; Resolve never panics on
// malformed paths or shapes.
func Resolve(root any, path string) any {
	segs, ok := parsePath(path)
	if !ok {
		return ""
	}
	cur := root
	for _, seg := range segs {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg.key]
			if !ok {
				return ""
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg.key)
			if err != nil || idx < 0 || idx >= len(v) {
				return ""
			}
			cur = v[idx]
		default:
			return ""
		}
	}
	if cur == nil {
		return ""
	}
	return cur
}
