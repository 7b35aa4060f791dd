package usecase

import (
	"testing"

	"resume-studio/internal/model"
)

func TestParseHTMLTemplate(t *testing.T) {
	htmlIn := `<div class="wrap" style="max-width: 800px; font-size: 14px">
		<h1 id="title">Jane Doe</h1>
		<section>
			<p>Engineer</p>
			<hr>
		</section>
	</div>`

	ast, err := ParseHTMLTemplate(htmlIn, ".wrap { margin: 0 auto; }")
	if err != nil {
		t.Fatalf("ParseHTMLTemplate: %v", err)
	}

	if ast.Version != "1.0" {
		t.Errorf("version = %q", ast.Version)
	}
	if ast.GlobalStyles != ".wrap { margin: 0 auto; }" {
		t.Errorf("global styles = %q", ast.GlobalStyles)
	}

	root := ast.Root
	if root.Type != "root" || root.Tag != "div" {
		t.Fatalf("root = %s/%s, want root/div", root.Type, root.Tag)
	}
	if root.ClassName != "wrap" {
		t.Errorf("class = %q", root.ClassName)
	}
	if root.Styles["max_width"] != "800px" || root.Styles["font_size"] != "14px" {
		t.Errorf("styles = %v", root.Styles)
	}

	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	h1 := root.Children[0]
	if h1.ID != "title" {
		t.Errorf("html id not kept: %q", h1.ID)
	}
	if h1.Type != "text" || h1.Content != "Jane Doe" {
		t.Errorf("h1 = %s %q", h1.Type, h1.Content)
	}

	sec := root.Children[1]
	if sec.Type != "section" || len(sec.Children) != 2 {
		t.Fatalf("section = %s with %d children", sec.Type, len(sec.Children))
	}
	if sec.Children[1].Type != "divider" {
		t.Errorf("hr mapped to %q", sec.Children[1].Type)
	}

	// every node must end up with an id
	var check func(n *model.ASTNode)
	check = func(n *model.ASTNode) {
		if n.ID == "" {
			t.Errorf("node %s/%s has no id", n.Type, n.Tag)
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(root)
}

func TestParseHTMLTemplateMultipleRoots(t *testing.T) {
	ast, err := ParseHTMLTemplate(`<h1>A</h1><p>B</p>`, "")
	if err != nil {
		t.Fatalf("ParseHTMLTemplate: %v", err)
	}
	root := ast.Root
	if root.Tag != "div" || root.Type != "root" {
		t.Errorf("synthetic root = %s/%s", root.Type, root.Tag)
	}
	if len(root.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(root.Children))
	}
}

func TestParseHTMLTemplateImgAndScripts(t *testing.T) {
	ast, err := ParseHTMLTemplate(`<div><img src="x.png"><script>evil()</script></div>`, "")
	if err != nil {
		t.Fatalf("ParseHTMLTemplate: %v", err)
	}
	root := ast.Root
	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1 (script dropped)", len(root.Children))
	}
	img := root.Children[0]
	if img.Type != "icon" || img.Content != "x.png" {
		t.Errorf("img = %s %q", img.Type, img.Content)
	}
}

func TestParseHTMLTemplateEmpty(t *testing.T) {
	if _, err := ParseHTMLTemplate("", ""); err == nil {
		t.Error("expected error for empty input")
	}
}
