package render

import (
	"regexp"
	"strconv"

	"resume-studio/internal/model"
)

var sectionsTypeRx = regexp.MustCompile(`^sections\.(.+)$`)

// RepeatInstance is one expanded occurrence of a repeat node: a deep clone
// bound to Item, with the repeat directive cleared, node ids suffixed with
// the iteration index and descendant path expressions pinned to it.
type RepeatInstance struct {
	Node *model.ASTNode
	Item any
}

// ExpandRepeat resolves a node's repeat directive against the data tree and
// yields one bound clone per item, in data order. An empty source yields an
// empty slice: the node simply renders nothing.
//
// Directive forms:
//   - "sections"          all sections
//   - "sections.<label>"  sections whose type matches the normalized label,
//     or the raw label verbatim when normalization finds nothing
//   - any other path      resolved against data; must yield an array
func ExpandRepeat(node *model.ASTNode, data map[string]any) []RepeatInstance {
	if node == nil || node.Repeat == "" {
		return nil
	}

	var items []any
	expr := node.Repeat
	switch {
	case expr == "sections":
		items = sectionList(data)
	case sectionsTypeRx.MatchString(expr):
		rawType := sectionsTypeRx.FindStringSubmatch(expr)[1]
		want := rawType
		if kind, ok := NormalizeSectionType(rawType); ok {
			want = string(kind)
		}
		for _, s := range sectionList(data) {
			sec, ok := s.(map[string]any)
			if !ok {
				continue
			}
			if typ, _ := sec["type"].(string); typ == want {
				items = append(items, s)
			}
		}
	default:
		if arr, ok := Resolve(data, expr).([]any); ok {
			items = arr
		}
	}

	out := make([]RepeatInstance, 0, len(items))
	for i, item := range items {
		out = append(out, RepeatInstance{Node: bindInstance(node, expr, i), Item: item})
	}
	return out
}

func sectionList(data map[string]any) []any {
	arr, _ := data["sections"].([]any)
	return arr
}

// bindInstance clones the repeat node for one iteration: the clone's repeat
// directive is cleared (nested repeats on descendants survive), every
// descendant id gains a "-<index>" suffix, and content placeholders plus
// data_path values addressing the repeat source through "path[]" or
// "path[N]" are rewritten to pin the iteration index.
func bindInstance(node *model.ASTNode, repeatPath string, index int) *model.ASTNode {
	clone := node.Clone()
	clone.Repeat = ""

	rewrite := indexRewriter(repeatPath, index)
	suffix := "-" + strconv.Itoa(index)

	var apply func(n *model.ASTNode)
	apply = func(n *model.ASTNode) {
		if n.ID != "" {
			n.ID += suffix
		}
		n.Content = rewrite(n.Content)
		n.DataPath = rewrite(n.DataPath)
		for _, c := range n.Children {
			apply(c)
		}
	}
	apply(clone)
	return clone
}

func indexRewriter(repeatPath string, index int) func(string) string {
	rx := regexp.MustCompile(regexp.QuoteMeta(repeatPath) + `\[\d*\]`)
	pinned := repeatPath + "[" + strconv.Itoa(index) + "]"
	return func(s string) string {
		if s == "" {
			return s
		}
		return rx.ReplaceAllLiteralString(s, pinned)
	}
}
