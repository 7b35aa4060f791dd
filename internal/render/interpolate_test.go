package render

import "testing"

func testData() map[string]any {
	return map[string]any{
		"profile": map[string]any{
			"name":  "Ada Lovelace",
			"email": "ada@example.com",
		},
		"sections": []any{
			map[string]any{
				"id":   "s1",
				"type": "skill",
				"content": map[string]any{
					"category": "Languages",
					"skills":   []any{"Go", "SQL", "Python"},
				},
			},
		},
	}
}

func TestInterpolateGlobal(t *testing.T) {
	data := testData()

	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{"empty template", "", ""},
		{"no placeholders", "plain text", "plain text"},
		{"simple path", "{{profile.name}}", "Ada Lovelace"},
		{"surrounding text", "Name: {{profile.name}}!", "Name: Ada Lovelace!"},
		{"two placeholders", "{{profile.name}} <{{profile.email}}>", "Ada Lovelace <ada@example.com>"},
		{"missing path", "Hello {{missing.path}}", "Hello "},
		{"array join", "{{sections[0].content.skills}}", "Go, SQL, Python"},
		{"unterminated", "Hello {{profile.name", "Hello {{profile.name"},
		{"empty placeholder", "a{{}}b", "ab"},
		{"whitespace path", "{{ profile.name }}", "Ada Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.tpl, data, nil); got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.tpl, got, tt.want)
			}
		})
	}
}

func TestInterpolateRepeatContext(t *testing.T) {
	data := testData()
	item := map[string]any{
		"id":   "s1",
		"type": "skill",
		"content": map[string]any{
			"category": "Languages",
			"skills":   []any{"Go", "SQL"},
		},
	}

	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{"item prefix", "{{item.content.category}}", "Languages"},
		{"content prefix", "{{content.category}}", "Languages"},
		{"section alias", "{{section.content.category}}", "Languages"},
		{"direct on item", "{{type}}", "skill"},
		{"global fallthrough", "{{profile.name}}", "Ada Lovelace"},
		{"item miss", "{{item.content.nope}}", ""},
		{"array via item", "{{item.content.skills}}", "Go, SQL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.tpl, data, item); got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.tpl, got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"whole float", float64(2021), "2021"},
		{"fraction", 1.5, "1.5"},
		{"bool", true, "true"},
		{"mixed array", []any{"a", float64(2)}, "a, 2"},
		{"string slice", []string{"a", "b"}, "a, b"},
		{"empty array", []any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringify(tt.in); got != tt.want {
				t.Errorf("stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
