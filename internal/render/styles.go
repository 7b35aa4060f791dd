package render

import "strings"

// Style properties are authored in underscore form (font_size). The
// interactive surface wants camelCase (fontSize), the export surface wants
// kebab-case (font-size). Both conversions keep the same property set:
// only empty values are dropped.

func mapStyles(styles map[string]string, convert func(string) string) map[string]string {
	if len(styles) == 0 {
		return nil
	}
	out := make(map[string]string, len(styles))
	for k, v := range styles {
		if v == "" {
			continue
		}
		out[convert(k)] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func camelCase(prop string) string {
	parts := strings.Split(prop, "_")
	if len(parts) == 1 {
		return prop
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func kebabCase(prop string) string {
	return strings.ReplaceAll(prop, "_", "-")
}
