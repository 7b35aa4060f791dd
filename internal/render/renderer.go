package render

import (
	"html"
	"sort"
	"strings"

	"resume-studio/internal/model"
)

// voidElements cannot carry children or text content and close themselves.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Node is the interactive rendering surface: one materialized element per
// template node, styles in camelCase, content fully interpolated. The
// editing UI reports ID as the focused target on click and hands Drag to the
// chat collaborator on drag start; Drag is nil when dragging is disabled.
type Node struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Tag       string            `json:"tag"`
	ClassName string            `json:"className,omitempty"`
	Styles    map[string]string `json:"styles,omitempty"`
	Content   string            `json:"content,omitempty"`
	Src       string            `json:"src,omitempty"`
	DataPath  string            `json:"dataPath,omitempty"`
	Editable  bool              `json:"editable"`
	Drag      *DragPayload      `json:"drag,omitempty"`
	Children  []*Node           `json:"children,omitempty"`
}

// DragPayload is the transferable description of a dragged subtree. Content
// is the node's template string, not the interpolated text, so the chat
// collaborator can target the binding rather than one rendered value.
type DragPayload struct {
	ID      string `json:"id"`
	Path    string `json:"path,omitempty"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// walkCtx threads the repeat binding down the tree. It is immutable: a
// nested repeat directive establishes a fresh context, nothing else changes
// it. The iteration index is not carried here; bindInstance pins it into ids
// and path expressions at expansion time.
type walkCtx struct {
	item any
}

// rendered is the mode-independent result of the semantic walk. Both
// surfaces emit from this shape so interpolation, repeat expansion, type
// normalization and style filtering can never diverge between them.
type rendered struct {
	src      *model.ASTNode
	content  string
	imgSrc   string
	children []*rendered
}

// walk materializes a node. A repeat directive fans out into zero or more
// instances; an img without a resolvable source vanishes entirely. The tree
// is finite and acyclic by construction, so the recursion terminates.
func walk(node *model.ASTNode, data map[string]any, ctx walkCtx) []*rendered {
	if node == nil {
		return nil
	}

	if node.Repeat != "" {
		var out []*rendered
		for _, inst := range ExpandRepeat(node, data) {
			out = append(out, walk(inst.Node, data, walkCtx{item: inst.Item})...)
		}
		return out
	}

	r := &rendered{src: node}

	if voidElements[tagOf(node)] {
		if tagOf(node) == "img" {
			src := Interpolate(node.Content, data, ctx.item)
			if src == "" {
				src = node.Styles["background"]
			}
			if src == "" {
				return nil
			}
			r.imgSrc = src
		}
		return []*rendered{r}
	}

	r.content = Interpolate(node.Content, data, ctx.item)
	for _, child := range node.Children {
		r.children = append(r.children, walk(child, data, ctx)...)
	}
	return []*rendered{r}
}

func tagOf(n *model.ASTNode) string {
	if n.Tag == "" {
		return "div"
	}
	return n.Tag
}

// RenderTree renders the template against a resume snapshot for the
// interactive surface. The result is a pure function of its inputs; repeated
// calls with the same snapshot produce identical trees.
func RenderTree(ast *model.TemplateAST, data *model.ResumeData) []*Node {
	if ast == nil || ast.Root == nil {
		return nil
	}
	dataMap := data.Map()
	var out []*Node
	for _, r := range walk(ast.Root, dataMap, walkCtx{}) {
		out = append(out, emitNode(r))
	}
	return out
}

func emitNode(r *rendered) *Node {
	src := r.src
	n := &Node{
		ID:        src.ID,
		Type:      src.Type,
		Tag:       tagOf(src),
		ClassName: src.ClassName,
		Styles:    mapStyles(src.Styles, camelCase),
		Content:   r.content,
		Src:       r.imgSrc,
		DataPath:  src.DataPath,
		Editable:  src.CanEdit(),
	}
	if src.CanDrag() {
		n.Drag = &DragPayload{
			ID:      src.ID,
			Path:    src.DataPath,
			Type:    src.Type,
			Content: src.Content,
		}
	}
	for _, c := range r.children {
		n.Children = append(n.Children, emitNode(c))
	}
	return n
}

// RenderHTML renders the template against a resume snapshot into flat
// markup for export. Output is byte-for-byte deterministic: the class
// attribute precedes style, and style properties are emitted sorted.
func RenderHTML(ast *model.TemplateAST, data *model.ResumeData) string {
	if ast == nil || ast.Root == nil {
		return ""
	}
	dataMap := data.Map()
	var b strings.Builder
	for _, r := range walk(ast.Root, dataMap, walkCtx{}) {
		emitHTML(&b, r)
	}
	return b.String()
}

func emitHTML(b *strings.Builder, r *rendered) {
	src := r.src
	tag := tagOf(src)

	b.WriteString("<")
	b.WriteString(tag)
	if src.ClassName != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(src.ClassName))
		b.WriteString(`"`)
	}
	if css := inlineStyle(src.Styles); css != "" {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(css))
		b.WriteString(`"`)
	}
	if r.imgSrc != "" {
		b.WriteString(` src="`)
		b.WriteString(html.EscapeString(r.imgSrc))
		b.WriteString(`"`)
	}
	b.WriteString(">")

	if voidElements[tag] {
		return
	}

	b.WriteString(html.EscapeString(r.content))
	for _, c := range r.children {
		emitHTML(b, c)
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

func inlineStyle(styles map[string]string) string {
	m := mapStyles(styles, kebabCase)
	if m == nil {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+m[k])
	}
	return strings.Join(parts, ";")
}
