// Package demo renders a self-contained preview document for a site spec.
//
// The output is trusted local content: values are interpolated verbatim,
// with the single exception of the embedded prompt comment, whose "<"
// characters are escaped so the comment can never open a tag.
package demo

import (
	"regexp"
	"strings"
	"text/template"
	"time"

	"site_prompt_server/internal/site"
)

// Compiler renders demo documents. The zero value stamps the current year.
type Compiler struct {
	now func() time.Time
}

// New returns a Compiler that stamps documents with the current year.
func New() *Compiler {
	return &Compiler{now: time.Now}
}

// WithClock returns a copy of c that reads the footer year from now.
func (c *Compiler) WithClock(now func() time.Time) *Compiler {
	return &Compiler{now: now}
}

type sectionView struct {
	ID    string
	Title string
	Lower string
}

type pageData struct {
	Spec          site.Spec
	Theme         site.Theme
	Sections      []sectionView
	PromptComment string
	Year          int
}

// Compile renders spec and the prompt text into one HTML document.
func (c *Compiler) Compile(spec site.Spec, promptText string) string {
	sections := spec.Sections()
	views := make([]sectionView, 0, len(sections))
	for _, title := range sections {
		views = append(views, sectionView{
			ID:    Slugify(title),
			Title: title,
			Lower: strings.ToLower(title),
		})
	}

	data := pageData{
		Spec:          spec,
		Theme:         ThemeFor(spec.Palette),
		Sections:      views,
		PromptComment: strings.ReplaceAll(promptText, "<", "&lt;"),
		Year:          c.clock()().Year(),
	}

	// pageTemplate only reads pageData fields and a strings.Builder never
	// fails a write, so execution has no error path.
	var b strings.Builder
	_ = pageTemplate.Execute(&b, data)
	return b.String()
}

func (c *Compiler) clock() func() time.Time {
	if c == nil || c.now == nil {
		return time.Now
	}
	return c.now
}

// Compile renders a document with the default Compiler.
func Compile(spec site.Spec, promptText string) string {
	return New().Compile(spec, promptText)
}

// ThemeFor resolves a palette to its color triple, falling back to the
// default palette for unknown values.
func ThemeFor(p site.Palette) site.Theme {
	return p.Info().Theme
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases title and replaces every run of non-alphanumeric
// characters with a single "-".
func Slugify(title string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
}

var pageTemplate = template.Must(template.New("demo").Parse(pageSource))
