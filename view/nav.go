package view

// NavItem is one sidebar link.
type NavItem struct {
	Path   string `json:"path"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// NavSection groups sidebar links under a heading.
type NavSection struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

var navLayout = []struct {
	title string
	slugs []string
}{
	{"Overview", []string{"dashboard", "methods", "predictions"}},
	{"Analysis", []string{"stand-analysis", "staffing", "risk-assessment"}},
}

// Nav builds the sidebar for the page at current. An entry is active when its
// path equals current exactly.
func Nav(current string) []NavSection {
	out := make([]NavSection, 0, len(navLayout))
	for _, section := range navLayout {
		ns := NavSection{Title: section.title}
		for _, slug := range section.slugs {
			p, ok := BySlug(slug)
			if !ok {
				continue
			}
			ns.Items = append(ns.Items, NavItem{Path: p.Path, Label: p.Label, Active: p.Path == current})
		}
		out = append(out, ns)
	}
	return out
}
