package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-studio/internal/model"
)

// DefaultTemplateAST returns the built-in single-column template used when a
// template is created without an explicit AST.
func DefaultTemplateAST() *model.TemplateAST {
	return &model.TemplateAST{
		Version: "1.0",
		Root: &model.ASTNode{
			ID:        "root",
			Type:      "root",
			Tag:       "div",
			ClassName: "resume-container",
			Styles: map[string]string{
				"max_width":   "800px",
				"margin":      "0 auto",
				"padding":     "40px",
				"background":  "#ffffff",
				"box_shadow":  "0 4px 6px rgba(0, 0, 0, 0.1)",
				"font_family": "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
			},
			Children: []*model.ASTNode{
				{
					ID:   "header",
					Type: "header",
					Tag:  "header",
					Styles: map[string]string{
						"text_align":     "center",
						"margin_bottom":  "32px",
						"padding_bottom": "24px",
						"border_bottom":  "2px solid #2563eb",
					},
					Children: []*model.ASTNode{
						{
							ID:       "name",
							Type:     "text",
							Tag:      "h1",
							DataPath: "profile.name",
							Content:  "{{profile.name}}",
							Styles: map[string]string{
								"font_size":   "32px",
								"font_weight": "bold",
								"color":       "#2563eb",
								"margin":      "0 0 8px 0",
							},
						},
						{
							ID:   "contact",
							Type: "container",
							Tag:  "div",
							Styles: map[string]string{
								"display":         "flex",
								"justify_content": "center",
								"gap":             "16px",
								"color":           "#6b7280",
							},
							Children: []*model.ASTNode{
								{
									ID:       "email",
									Type:     "text",
									Tag:      "span",
									DataPath: "profile.email",
									Content:  "{{profile.email}}",
								},
								{
									ID:       "phone",
									Type:     "text",
									Tag:      "span",
									DataPath: "profile.phone",
									Content:  "{{profile.phone}}",
								},
							},
						},
					},
				},
				{
					ID:   "summary",
					Type: "section",
					Tag:  "section",
					Styles: map[string]string{
						"margin_bottom": "24px",
						"padding":       "16px",
						"background":    "#f9fafb",
						"border_left":   "4px solid #2563eb",
					},
					Children: []*model.ASTNode{
						{
							ID:       "summary-text",
							Type:     "text",
							Tag:      "p",
							DataPath: "profile.summary",
							Content:  "{{profile.summary}}",
							Styles:   map[string]string{"color": "#374151", "line_height": "1.6"},
						},
					},
				},
				{
					ID:     "sections",
					Type:   "container",
					Tag:    "div",
					Repeat: "sections",
					Styles: map[string]string{
						"display":        "flex",
						"flex_direction": "column",
						"gap":            "20px",
					},
					Children: []*model.ASTNode{
						{
							ID:   "section-item",
							Type: "section",
							Tag:  "div",
							Styles: map[string]string{
								"padding":       "16px",
								"background":    "#ffffff",
								"border_radius": "8px",
								"box_shadow":    "0 2px 4px rgba(0, 0, 0, 0.05)",
							},
						},
					},
				},
			},
		},
		Variables: map[string]string{
			"profile.name":    "姓名",
			"profile.email":   "邮箱",
			"profile.phone":   "电话",
			"profile.summary": "个人简介",
		},
	}
}

// NewNodeID returns a short random node id.
func NewNodeID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// EnsureNodeIDs assigns ids to every node missing one. Generated ids embed
// the parent id and child position so imported templates stay readable.
func EnsureNodeIDs(node *model.ASTNode, prefix string) {
	if node == nil {
		return
	}
	if node.ID == "" {
		node.ID = prefix + NewNodeID()
	}
	for i, child := range node.Children {
		EnsureNodeIDs(child, fmt.Sprintf("%s-%d-", node.ID, i))
	}
}

// NodeUpdate carries a partial node edit. Nil fields are left alone; Styles
// entries are merged over the existing style map.
type NodeUpdate struct {
	Type      *string           `json:"type,omitempty"`
	Tag       *string           `json:"tag,omitempty"`
	ClassName *string           `json:"class_name,omitempty"`
	Content   *string           `json:"content,omitempty"`
	DataPath  *string           `json:"data_path,omitempty"`
	Repeat    *string           `json:"repeat,omitempty"`
	Styles    map[string]string `json:"styles,omitempty"`
	Editable  *bool             `json:"editable,omitempty"`
	Draggable *bool             `json:"draggable,omitempty"`
}

// UpdateNode applies an edit to the node with the given id anywhere in the
// template tree. It reports whether the node was found.
func UpdateNode(ast *model.TemplateAST, nodeID string, upd NodeUpdate) bool {
	if ast == nil || ast.Root == nil {
		return false
	}
	node := ast.Root.FindNode(nodeID)
	if node == nil {
		return false
	}

	if upd.Type != nil {
		node.Type = *upd.Type
	}
	if upd.Tag != nil {
		node.Tag = *upd.Tag
	}
	if upd.ClassName != nil {
		node.ClassName = *upd.ClassName
	}
	if upd.Content != nil {
		node.Content = *upd.Content
	}
	if upd.DataPath != nil {
		node.DataPath = *upd.DataPath
	}
	if upd.Repeat != nil {
		node.Repeat = *upd.Repeat
	}
	if upd.Editable != nil {
		node.Editable = upd.Editable
	}
	if upd.Draggable != nil {
		node.Draggable = upd.Draggable
	}
	if len(upd.Styles) > 0 {
		if node.Styles == nil {
			node.Styles = map[string]string{}
		}
		for k, v := range upd.Styles {
			node.Styles[k] = v
		}
	}
	return true
}
