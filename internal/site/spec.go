package site

import "strings"

// Extras holds the four independent feature toggles of a site.
type Extras struct {
	Animations    bool `json:"animations" yaml:"animations"`
	Responsive    bool `json:"responsive" yaml:"responsive"`
	Accessibility bool `json:"accessibility" yaml:"accessibility"`
	SEO           bool `json:"seo" yaml:"seo"`
}

// Spec is the structured description of the website being designed.
// It is a plain value: copying a Spec never shares state with the original.
type Spec struct {
	SiteType       string  `json:"siteType" yaml:"siteType"`
	BrandName      string  `json:"brandName" yaml:"brandName"`
	Tagline        string  `json:"tagline" yaml:"tagline"`
	Palette        Palette `json:"palette" yaml:"palette"`
	CustomSections string  `json:"customSections" yaml:"customSections"`
	Extras         Extras  `json:"extras" yaml:"extras"`
}

// Default returns the specification every new session starts from.
func Default() Spec {
	return Spec{
		SiteType:       "Blog",
		BrandName:      "NovaByte",
		Tagline:        "Build something brilliant",
		Palette:        PaletteBlue,
		CustomSections: "",
		Extras: Extras{
			Animations:    true,
			Responsive:    true,
			Accessibility: true,
			SEO:           true,
		},
	}
}

// Sections returns the ordered section list of the site. A non-blank
// CustomSections always wins over the catalog defaults for SiteType.
// The result is freshly allocated on every call.
func (s Spec) Sections() []string {
	if strings.TrimSpace(s.CustomSections) != "" {
		return ParseSections(s.CustomSections)
	}
	return DefaultSections(s.SiteType)
}

// ParseSections splits a comma separated list, trimming every entry and
// dropping empty ones.
func ParseSections(raw string) []string {
	sections := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			sections = append(sections, part)
		}
	}
	return sections
}
