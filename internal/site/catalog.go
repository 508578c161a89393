package site

// Palette names one of the fixed color themes.
type Palette string

const (
	PaletteBlue    Palette = "blue"
	PalettePurple  Palette = "purple"
	PaletteEmerald Palette = "emerald"
	PaletteRose    Palette = "rose"
	PaletteOrange  Palette = "orange"
	PaletteGray    Palette = "gray"
)

// DefaultPalette is used whenever a palette value is not in the catalog.
const DefaultPalette = PaletteBlue

// Theme is the color triple used by the demo document.
type Theme struct {
	Background string `json:"background"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
}

// PaletteInfo describes a palette for both compilers and for UI listings.
type PaletteInfo struct {
	Name      Palette `json:"name"`
	Label     string  `json:"label"`
	Directive string  `json:"directive"` // one-line style directive for the prompt
	Theme     Theme   `json:"theme"`
}

var palettes = []PaletteInfo{
	{
		Name:      PaletteBlue,
		Label:     "Blue / Slate",
		Directive: "Use a blue/slate palette with subtle gradients and focus rings.",
		Theme:     Theme{Background: "#0f172a", Primary: "#3b82f6", Accent: "#38bdf8"},
	},
	{
		Name:      PalettePurple,
		Label:     "Purple / Indigo",
		Directive: "Use purple/indigo with glassmorphism accents.",
		Theme:     Theme{Background: "#0b1020", Primary: "#6366f1", Accent: "#a78bfa"},
	},
	{
		Name:      PaletteEmerald,
		Label:     "Emerald / Teal",
		Directive: "Use emerald/teal with soft shadows.",
		Theme:     Theme{Background: "#071a14", Primary: "#10b981", Accent: "#34d399"},
	},
	{
		Name:      PaletteRose,
		Label:     "Rose / Pink",
		Directive: "Use rose/pink with vibrant gradients.",
		Theme:     Theme{Background: "#1b0b13", Primary: "#f43f5e", Accent: "#fb7185"},
	},
	{
		Name:      PaletteOrange,
		Label:     "Orange / Amber",
		Directive: "Use orange/amber with warm highlights.",
		Theme:     Theme{Background: "#1a1206", Primary: "#f59e0b", Accent: "#fb923c"},
	},
	{
		Name:      PaletteGray,
		Label:     "Neutral / Gray",
		Directive: "Use neutral gray with clean minimalism.",
		Theme:     Theme{Background: "#0b0f14", Primary: "#94a3b8", Accent: "#cbd5e1"},
	},
}

// Valid reports whether p is one of the six catalog palettes.
func (p Palette) Valid() bool {
	_, ok := lookupPalette(p)
	return ok
}

// Info returns the catalog entry for p, falling back to DefaultPalette.
func (p Palette) Info() PaletteInfo {
	if info, ok := lookupPalette(p); ok {
		return info
	}
	info, _ := lookupPalette(DefaultPalette)
	return info
}

func lookupPalette(p Palette) (PaletteInfo, bool) {
	for _, info := range palettes {
		if info.Name == p {
			return info, true
		}
	}
	return PaletteInfo{}, false
}

// Palettes lists the catalog palettes in display order.
func Palettes() []PaletteInfo {
	out := make([]PaletteInfo, len(palettes))
	copy(out, palettes)
	return out
}

// siteTypes keeps the display order of the catalog.
var siteTypes = []string{
	"Blog",
	"Portfolio",
	"SaaS Landing Page",
	"E-commerce Product Page",
	"Documentation",
	"Restaurant",
	"Event/Conference",
	"Agency/Services",
	"Personal Bio/Link-in-bio",
	"Dashboard (static data)",
}

var sectionsByType = map[string][]string{
	"Blog":      {"Hero", "Featured Posts", "Latest Posts Grid", "Newsletter", "Footer"},
	"Portfolio": {"Hero", "Projects Grid", "About Me", "Testimonials", "Contact", "Footer"},
	"SaaS Landing Page": {
		"Navbar", "Hero", "Feature Highlights", "Product Screenshots",
		"Pricing", "Testimonials", "FAQ", "CTA", "Footer",
	},
	"E-commerce Product Page": {
		"Navbar", "Product Gallery", "Product Details", "Reviews", "Related Products", "Footer",
	},
	"Documentation":            {"Navbar", "Sidebar", "Docs Content Area", "Footer"},
	"Restaurant":               {"Hero", "Menu Highlights", "Gallery", "Reservations CTA", "Location & Hours", "Footer"},
	"Event/Conference":         {"Hero", "Speakers", "Schedule", "Tickets CTA", "Sponsors", "FAQ", "Footer"},
	"Agency/Services":          {"Hero", "Services", "Case Studies", "Process", "Testimonials", "Contact", "Footer"},
	"Personal Bio/Link-in-bio": {"Avatar + Bio", "Links List", "Socials", "Footer"},
	"Dashboard (static data)":  {"Sidebar", "Topbar", "Cards", "Charts Placeholder", "Table", "Footer"},
}

// SiteTypes lists the catalog site types in display order.
func SiteTypes() []string {
	out := make([]string, len(siteTypes))
	copy(out, siteTypes)
	return out
}

// DefaultSections returns a copy of the catalog sections for siteType, or an
// empty list when the type is not in the catalog.
func DefaultSections(siteType string) []string {
	sections := sectionsByType[siteType]
	out := make([]string, len(sections))
	copy(out, sections)
	return out
}

// KnownSiteType reports whether siteType is a catalog key.
func KnownSiteType(siteType string) bool {
	_, ok := sectionsByType[siteType]
	return ok
}
