package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"resume-studio/internal/model"
)

// ParseHTMLTemplate converts raw HTML (plus optional CSS) into a template
// AST. It is a structural import: tags, class names, inline styles and text
// content carry over; data bindings are added later by the template editor.
func ParseHTMLTemplate(htmlContent, cssContent string) (*model.TemplateAST, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		return nil, fmt.Errorf("parse html: no body element")
	}

	var children []*model.ASTNode
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if n := convertNode(c); n != nil {
			children = append(children, n)
		}
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("parse html: empty document")
	}

	var root *model.ASTNode
	if len(children) == 1 {
		root = children[0]
	} else {
		root = &model.ASTNode{Tag: "div", Children: children}
	}
	root.Type = "root"

	EnsureNodeIDs(root, "")

	return &model.TemplateAST{
		Version:      "1.0",
		Root:         root,
		Variables:    map[string]string{},
		GlobalStyles: cssContent,
	}, nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func convertNode(n *html.Node) *model.ASTNode {
	if n.Type != html.ElementNode {
		return nil
	}
	if n.Data == "script" || n.Data == "style" {
		return nil
	}

	node := &model.ASTNode{
		Tag:  n.Data,
		Type: typeForTag(n.Data),
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			node.ID = attr.Val
		case "class":
			node.ClassName = attr.Val
		case "style":
			node.Styles = parseInlineStyles(attr.Val)
		case "src":
			if n.Data == "img" {
				node.Content = attr.Val
			}
		}
	}

	var texts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				texts = append(texts, t)
			}
		case html.ElementNode:
			if child := convertNode(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
	}
	if node.Content == "" {
		node.Content = strings.Join(texts, " ")
	}
	return node
}

// parseInlineStyles turns an inline style attribute into the AST's
// underscore-keyed style map ("font-size: 14px" -> font_size).
func parseInlineStyles(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" || val == "" {
			continue
		}
		out[strings.ReplaceAll(key, "-", "_")] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func typeForTag(tag string) string {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "span", "a", "strong", "em", "li":
		return "text"
	case "header":
		return "header"
	case "section":
		return "section"
	case "ul", "ol":
		return "list"
	case "hr":
		return "divider"
	case "img":
		return "icon"
	default:
		return "container"
	}
}
