// Package interpreter maps free-form chat commands onto site updates.
//
// Matching is rule based: every rule is a regular expression evaluated
// independently against the raw input line, so one line may set several
// fields at once. Rules never consume text, which means a greedy rule such
// as the tagline one may swallow phrases that other rules also match.
package interpreter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"site_prompt_server/internal/site"
)

// Result is the outcome of interpreting one line.
type Result struct {
	Update       site.PartialUpdate `json:"update"`
	WantsPreview bool               `json:"wantsPreview"`
	// Matched is false when no field rule fired. A preview-only line has
	// Matched=false and WantsPreview=true.
	Matched bool `json:"matched"`
}

type rule struct {
	field   string
	pattern *regexp.Regexp
	extract func(match []string) site.PartialUpdate
}

// rules run in this order; each field has exactly one rule except extras,
// whose toggles layer on top of each other.
var rules = []rule{
	{
		field:   "brandName",
		pattern: regexp.MustCompile(`(?i)(?:set\s+brand\s+to|brand\s*:?)\s*([\w\s&-]{2,})`),
		extract: func(m []string) site.PartialUpdate {
			return site.PartialUpdate{BrandName: site.String(strings.TrimSpace(m[1]))}
		},
	},
	{
		field:   "tagline",
		pattern: regexp.MustCompile(`(?i)(?:set\s+tagline\s+to|tagline\s*:?)\s*(.+)$`),
		extract: func(m []string) site.PartialUpdate {
			return site.PartialUpdate{Tagline: site.String(strings.TrimSpace(m[1]))}
		},
	},
	{
		field:   "siteType",
		pattern: regexp.MustCompile(`(?i)(?:set\s+site\s*type\s*to|site\s*type\s*|type\s*:?\s*)([\w\s/-]{3,})`),
		extract: func(m []string) site.PartialUpdate {
			return site.PartialUpdate{SiteType: site.String(TitleCase(strings.TrimSpace(m[1])))}
		},
	},
	{
		field:   "palette",
		pattern: regexp.MustCompile(`(?i)(?:palette|color|theme)\s*(?:to|:)?\s*(blue|purple|emerald|rose|orange|gray)`),
		extract: func(m []string) site.PartialUpdate {
			return site.PartialUpdate{Palette: site.PaletteRef(site.Palette(strings.ToLower(m[1])))}
		},
	},
	{
		field:   "customSections",
		pattern: regexp.MustCompile(`(?i)(?:sections\s*:?\s*)(.+)$`),
		extract: func(m []string) site.PartialUpdate {
			joined := strings.Join(site.ParseSections(m[1]), ", ")
			return site.PartialUpdate{CustomSections: site.String(joined)}
		},
	},
	toggle("animations", `animations`, false, func(p *site.ExtrasPatch, v *bool) { p.Animations = v }),
	toggle("animations", `animations`, true, func(p *site.ExtrasPatch, v *bool) { p.Animations = v }),
	toggle("seo", `seo`, false, func(p *site.ExtrasPatch, v *bool) { p.SEO = v }),
	toggle("seo", `seo`, true, func(p *site.ExtrasPatch, v *bool) { p.SEO = v }),
	toggle("accessibility", `(?:accessibility|a11y)`, false, func(p *site.ExtrasPatch, v *bool) { p.Accessibility = v }),
	toggle("accessibility", `(?:accessibility|a11y)`, true, func(p *site.ExtrasPatch, v *bool) { p.Accessibility = v }),
	toggle("responsive", `responsive`, false, func(p *site.ExtrasPatch, v *bool) { p.Responsive = v }),
	toggle("responsive", `responsive`, true, func(p *site.ExtrasPatch, v *bool) { p.Responsive = v }),
}

// toggle builds the rule for "disable X"/"turn off X" (on=false) or
// "enable X"/"turn on X" (on=true).
func toggle(flag, name string, on bool, set func(*site.ExtrasPatch, *bool)) rule {
	verb := `(?:disable|turn\s+off)`
	if on {
		verb = `(?:enable|turn\s+on)`
	}
	return rule{
		field:   "extras." + flag,
		pattern: regexp.MustCompile(`(?i)` + verb + `\s+` + name),
		extract: func([]string) site.PartialUpdate {
			var patch site.ExtrasPatch
			set(&patch, site.Bool(on))
			return site.PartialUpdate{Extras: &patch}
		},
	}
}

var (
	previewWord   = regexp.MustCompile(`(?i)\bpreview\b`)
	previewPhrase = regexp.MustCompile(`(?i)\bshow\b.+\bpreview\b`)
)

// Interpret maps one line of text onto an update against current. It never
// fails: an unrecognized line yields an empty update with Matched=false.
//
// When any toggle fires, the returned extras patch carries all four flags:
// the values of current.Extras with every detected toggle layered on top.
func Interpret(text string, current site.Spec) Result {
	var update site.PartialUpdate
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		update = update.Merge(r.extract(m))
	}

	if update.Extras != nil {
		full := site.PatchOf(current.Extras).Merge(*update.Extras)
		update.Extras = &full
	}

	return Result{
		Update:       update,
		WantsPreview: WantsPreview(text),
		Matched:      !update.IsEmpty(),
	}
}

// WantsPreview reports whether text asks for a rendered preview.
func WantsPreview(text string) bool {
	return previewWord.MatchString(text) || previewPhrase.MatchString(text)
}

// TitleCase upper-cases the first letter of every space separated word and
// lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
