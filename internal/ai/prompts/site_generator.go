package prompts

import (
	"fmt"
	"strings"

	"site_prompt_server/internal/site"
)

const roleStatement = `You are a senior front-end developer. Create a COMPLETE single-file website using plain HTML, CSS, and JavaScript (no frameworks, no external CDNs except Google Fonts allowed).`

const projectGoalTemplate = `Project goal: A %s website for "%s" with the tagline "%s".`

// designRequirements follow the palette directive in the design block.
var designRequirements = []string{
	"Modern, responsive layout that scales from mobile to desktop",
	"Clear visual hierarchy, generous spacing, smooth hover states",
	"Use the Inter or Manrope font from Google Fonts",
	"Include a favicon placeholder data URL",
	"Include a sticky navbar or header if appropriate",
}

const implementationDetails = `Implementation details:
- Provide ALL code in one HTML file between <html>...</html>
- Write clean, commented CSS inside a <style> tag; prefer CSS variables for theme colors
- Add small vanilla JS for interactivity (e.g., mobile nav toggle, FAQ accordion, testimonial slider if present)
- Include sample placeholder content and images using placeholders (e.g., viaPicsum or data URLs)
- Validate with WAI-ARIA best practices where relevant`

const outputFormat = `Output format:
- Return only the final HTML document, nothing else.`

// SiteGenerationSystemPrompt is sent as the system message when a compiled
// prompt is forwarded to a model.
const SiteGenerationSystemPrompt = "You are a helpful AI assistant that generates complete single-file websites. Reply with the HTML document only."

// CompileSitePrompt renders spec into the prompt handed to an AI code
// generator. The block structure is fixed: an empty section list still
// produces the section heading with no bullets.
func CompileSitePrompt(spec site.Spec) string {
	var b strings.Builder

	b.WriteString(roleStatement)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, projectGoalTemplate, spec.SiteType, spec.BrandName, spec.Tagline)
	b.WriteString("\n\n")

	b.WriteString("Design requirements:\n")
	writeBullet(&b, spec.Palette.Info().Directive)
	for _, req := range designRequirements {
		writeBullet(&b, req)
	}
	b.WriteString("\n")

	b.WriteString("Content sections to include (in order):\n")
	for _, section := range spec.Sections() {
		writeBullet(&b, section)
	}
	b.WriteString("\n")

	b.WriteString("Functionality requirements:\n")
	writeBullet(&b, yesNo(spec.Extras.Animations)+" to subtle animations: fade/slide on scroll, button micro-interactions")
	writeBullet(&b, yesNo(spec.Extras.Responsive)+" to fully responsive behavior with a mobile-first approach")
	writeBullet(&b, yesNo(spec.Extras.Accessibility)+" to proper semantics, aria-labels, focus states, color contrast")
	writeBullet(&b, yesNo(spec.Extras.SEO)+" to basic SEO meta tags (title, description, social preview)")
	b.WriteString("\n")

	b.WriteString(implementationDetails)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)
	b.WriteString("\n")

	return b.String()
}

func writeBullet(b *strings.Builder, text string) {
	b.WriteString("- ")
	b.WriteString(text)
	b.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
