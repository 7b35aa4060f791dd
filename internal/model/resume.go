package model

import "encoding/json"

type ProfileData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Summary string `json:"summary"`
}

// SectionData is one resume content block. Type is usually one of the
// canonical kinds (experience, education, project, skill) but free-text
// extension types are allowed and render through exact-match repeat filters.
type SectionData struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Content map[string]any `json:"content"`
}

type ResumeData struct {
	Profile  ProfileData   `json:"profile"`
	Sections []SectionData `json:"sections"`
}

// Map converts the resume into the generic JSON tree the renderer resolves
// paths against. The round trip keeps struct tags and the renderer's view of
// the data in lockstep.
func (d *ResumeData) Map() map[string]any {
	if d == nil {
		return map[string]any{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// LayoutConfig carries document-level presentation settings applied by the
// export wrapper around the rendered template markup.
type LayoutConfig struct {
	Theme        string `json:"theme"`
	ColumnLayout string `json:"column_layout"`
	FontSize     string `json:"font_size"`
	PrimaryColor string `json:"primary_color"`

	SectionSpacing string `json:"section_spacing"`
	LineHeight     string `json:"line_height"`

	BorderStyle  string `json:"border_style"`
	BorderRadius string `json:"border_radius"`

	BackgroundColor  string `json:"background_color"`
	HeaderBackground string `json:"header_background"`
	Shadow           string `json:"shadow"`

	FontFamily     string `json:"font_family"`
	HeaderFontSize string `json:"header_font_size"`

	HeaderAlignment string `json:"header_alignment"`
	SectionStyle    string `json:"section_style"`
	AccentStyle     string `json:"accent_style"`
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Theme:            "modern-blue",
		ColumnLayout:     "single-column",
		FontSize:         "14px",
		PrimaryColor:     "#2563eb",
		SectionSpacing:   "24px",
		LineHeight:       "1.6",
		BorderStyle:      "none",
		BorderRadius:     "8px",
		BackgroundColor:  "#ffffff",
		HeaderBackground: "transparent",
		Shadow:           "lg",
		FontFamily:       "system",
		HeaderFontSize:   "28px",
		HeaderAlignment:  "center",
		SectionStyle:     "card",
		AccentStyle:      "border-left",
	}
}
