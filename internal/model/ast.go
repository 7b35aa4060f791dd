package model

// Template AST types mirrored by template.schema.json. The renderer treats
// these as immutable input: it reads, clones where it must rewrite, and never
// mutates a stored template.

type ASTNode struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Tag       string            `json:"tag,omitempty"`
	ClassName string            `json:"class_name,omitempty"`
	Styles    map[string]string `json:"styles,omitempty"`
	Content   string            `json:"content,omitempty"`
	DataPath  string            `json:"data_path,omitempty"`
	Children  []*ASTNode        `json:"children,omitempty"`
	Editable  *bool             `json:"editable,omitempty"`
	Draggable *bool             `json:"draggable,omitempty"`
	Repeat    string            `json:"repeat,omitempty"`
}

type TemplateAST struct {
	Version      string            `json:"version"`
	Root         *ASTNode          `json:"root"`
	Variables    map[string]string `json:"variables,omitempty"`
	GlobalStyles string            `json:"global_styles,omitempty"`
}

// CanEdit reports whether the node accepts inline edits. Unset means yes.
func (n *ASTNode) CanEdit() bool {
	return n.Editable == nil || *n.Editable
}

// CanDrag reports whether the node may start a drag. Unset means yes.
func (n *ASTNode) CanDrag() bool {
	return n.Draggable == nil || *n.Draggable
}

// Clone returns a deep copy of the node and all its descendants.
func (n *ASTNode) Clone() *ASTNode {
	if n == nil {
		return nil
	}
	out := *n
	if n.Styles != nil {
		out.Styles = make(map[string]string, len(n.Styles))
		for k, v := range n.Styles {
			out.Styles[k] = v
		}
	}
	if n.Editable != nil {
		e := *n.Editable
		out.Editable = &e
	}
	if n.Draggable != nil {
		d := *n.Draggable
		out.Draggable = &d
	}
	if n.Children != nil {
		out.Children = make([]*ASTNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return &out
}

// FindNode walks the tree and returns the node with the given id, or nil.
func (n *ASTNode) FindNode(id string) *ASTNode {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindNode(id); found != nil {
			return found
		}
	}
	return nil
}
