package render

import "testing"

func TestResolve(t *testing.T) {
	data := map[string]any{
		"a": map[string]any{
			"b": []any{float64(10), float64(20)},
		},
		"profile": map[string]any{
			"name": "Ada",
		},
		"sections": []any{
			map[string]any{
				"type":    "experience",
				"content": map[string]any{"title": "Engineer"},
			},
		},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"bracket index", "a.b[1]", float64(20)},
		{"dotted index", "a.b.1", float64(20)},
		{"object lookup", "profile.name", "Ada"},
		{"deep mixed", "sections[0].content.title", "Engineer"},
		{"deep dotted", "sections.0.content.title", "Engineer"},
		{"missing key", "x.y", ""},
		{"index out of range", "a.b[5]", ""},
		{"index into object", "profile[0]", ""},
		{"key into array", "a.b.title", ""},
		{"scalar mid-path", "profile.name.first", ""},
		{"negative index", "a.b[-1]", ""},
		{"empty segment", "a..b", ""},
		{"unterminated bracket", "a.b[1", ""},
		{"empty path", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(data, tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveEmptyRoot(t *testing.T) {
	if got := Resolve(map[string]any{}, "x.y"); got != "" {
		t.Errorf("Resolve on empty map = %v, want empty string", got)
	}
	if got := Resolve(nil, "x"); got != "" {
		t.Errorf("Resolve on nil root = %v, want empty string", got)
	}
}

func TestResolveNilValue(t *testing.T) {
	data := map[string]any{"a": nil}
	if got := Resolve(data, "a"); got != "" {
		t.Errorf("Resolve of null leaf = %v, want empty string", got)
	}
	if got := Resolve(data, "a.b"); got != "" {
		t.Errorf("Resolve through null = %v, want empty string", got)
	}
}
