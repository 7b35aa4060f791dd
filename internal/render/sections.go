package render

import "strings"

// SectionKind is one of the canonical, normalized section types.
type SectionKind string

const (
	KindSkill      SectionKind = "skill"
	KindEducation  SectionKind = "education"
	KindExperience SectionKind = "experience"
	KindProject    SectionKind = "project"
)

// Accepted labels per canonical kind: English singular/plural plus the
// Chinese labels templates and imported resumes carry. Matching is
// case-insensitive and exact; no fuzzy or partial matches.
var sectionSynonyms = map[SectionKind][]string{
	KindSkill:      {"skill", "skills", "技能", "专业技能", "技能特长"},
	KindEducation:  {"education", "educations", "教育", "教育背景", "教育经历", "学历"},
	KindExperience: {"experience", "experiences", "work experience", "工作", "工作经历", "工作经验", "经历"},
	KindProject:    {"project", "projects", "项目", "项目经历", "项目经验"},
}

var sectionLookup = func() map[string]SectionKind {
	m := make(map[string]SectionKind)
	for kind, labels := range sectionSynonyms {
		for _, l := range labels {
			m[strings.ToLower(l)] = kind
		}
	}
	return m
}()

// NormalizeSectionType maps a free-text section label to its canonical kind.
// ok is false when no synonym matches; callers then use the raw label as an
// exact type filter rather than treating the miss as an error.
func NormalizeSectionType(label string) (SectionKind, bool) {
	kind, ok := sectionLookup[strings.ToLower(strings.TrimSpace(label))]
	return kind, ok
}
