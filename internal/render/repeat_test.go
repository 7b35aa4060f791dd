package render

import (
	"testing"

	"resume-studio/internal/model"
)

func repeatNode(repeat string) *model.ASTNode {
	return &model.ASTNode{
		ID:     "exp-list",
		Type:   "container",
		Tag:    "div",
		Repeat: repeat,
		Children: []*model.ASTNode{
			{
				ID:      "exp-title",
				Type:    "text",
				Tag:     "h3",
				Content: "{{item.content.title}}",
			},
		},
	}
}

func experienceData(titles ...string) map[string]any {
	sections := make([]any, 0, len(titles))
	for i, title := range titles {
		sections = append(sections, map[string]any{
			"id":      "s" + string(rune('1'+i)),
			"type":    "experience",
			"content": map[string]any{"title": title},
		})
	}
	return map[string]any{"sections": sections}
}

func TestExpandRepeatFiltersByNormalizedType(t *testing.T) {
	data := map[string]any{"sections": []any{
		map[string]any{"type": "experience", "content": map[string]any{"title": "A"}},
		map[string]any{"type": "skill", "content": map[string]any{"category": "x"}},
		map[string]any{"type": "experience", "content": map[string]any{"title": "B"}},
	}}

	// localized label normalizes to the same canonical kind
	node := repeatNode("sections.工作经历")
	got := ExpandRepeat(node, data)
	if len(got) != 2 {
		t.Fatalf("expanded %d instances, want 2", len(got))
	}
	for i, inst := range got {
		sec := inst.Item.(map[string]any)
		if typ := sec["type"]; typ != "experience" {
			t.Errorf("instance %d type = %v, want experience", i, typ)
		}
	}
}

func TestExpandRepeatRawTypeFallback(t *testing.T) {
	data := map[string]any{"sections": []any{
		map[string]any{"type": "volunteering", "content": map[string]any{}},
		map[string]any{"type": "Volunteering", "content": map[string]any{}},
	}}

	// unrecognized label falls back to exact, case-sensitive matching
	got := ExpandRepeat(repeatNode("sections.volunteering"), data)
	if len(got) != 1 {
		t.Fatalf("expanded %d instances, want 1", len(got))
	}
}

func TestExpandRepeatAllSections(t *testing.T) {
	data := experienceData("A", "B")
	got := ExpandRepeat(repeatNode("sections"), data)
	if len(got) != 2 {
		t.Fatalf("expanded %d instances, want 2", len(got))
	}
}

func TestExpandRepeatGenericPath(t *testing.T) {
	data := map[string]any{
		"profile": map[string]any{
			"links": []any{"a.com", "b.com"},
		},
	}
	got := ExpandRepeat(repeatNode("profile.links"), data)
	if len(got) != 2 {
		t.Fatalf("expanded %d instances, want 2", len(got))
	}
	if got[0].Item != "a.com" || got[1].Item != "b.com" {
		t.Errorf("items = %v, %v; want a.com, b.com", got[0].Item, got[1].Item)
	}

	// non-array target renders nothing
	if got := ExpandRepeat(repeatNode("profile"), data); len(got) != 0 {
		t.Errorf("non-array repeat source expanded %d instances, want 0", len(got))
	}
}

func TestExpandRepeatEmptySource(t *testing.T) {
	data := map[string]any{"sections": []any{}}
	if got := ExpandRepeat(repeatNode("sections.project"), data); len(got) != 0 {
		t.Errorf("empty source expanded %d instances, want 0", len(got))
	}
}

func TestBindInstanceRewrites(t *testing.T) {
	node := &model.ASTNode{
		ID:     "list",
		Type:   "container",
		Repeat: "sections",
		Children: []*model.ASTNode{
			{
				ID:       "title",
				Type:     "text",
				Content:  "{{sections[].content.title}}",
				DataPath: "sections[].content.title",
				Children: []*model.ASTNode{
					{ID: "deep", Type: "text", Content: "{{sections[0].content.company}}"},
				},
			},
		},
	}

	got := ExpandRepeat(node, experienceData("A", "B"))
	if len(got) != 2 {
		t.Fatalf("expanded %d instances, want 2", len(got))
	}

	second := got[1].Node
	if second.Repeat != "" {
		t.Error("repeat directive not cleared on clone")
	}
	if second.ID != "list-1" {
		t.Errorf("clone id = %q, want %q", second.ID, "list-1")
	}
	child := second.Children[0]
	if child.ID != "title-1" {
		t.Errorf("child id = %q, want %q", child.ID, "title-1")
	}
	if child.Content != "{{sections[1].content.title}}" {
		t.Errorf("content rewrite = %q", child.Content)
	}
	if child.DataPath != "sections[1].content.title" {
		t.Errorf("data_path rewrite = %q", child.DataPath)
	}
	// already-pinned indexes are re-pinned to the iteration index
	if deep := child.Children[0].Content; deep != "{{sections[1].content.company}}" {
		t.Errorf("deep rewrite = %q", deep)
	}

	// the source node must remain untouched
	if node.Children[0].Content != "{{sections[].content.title}}" {
		t.Error("expansion mutated the source template")
	}
	if node.Repeat != "sections" {
		t.Error("expansion cleared repeat on the source template")
	}
}
