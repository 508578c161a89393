// Package session holds the conversation that drives one site spec.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"site_prompt_server/internal/ai/prompts"
	"site_prompt_server/internal/demo"
	"site_prompt_server/internal/interpreter"
	"site_prompt_server/internal/site"
)

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const greeting = "Hi! Tell me how you want to change your website. For example: 'Set brand to NovaByte', 'Change site type to Portfolio', 'Palette purple', or 'Sections: Hero, Features, Pricing, FAQ, Footer'."

const helpText = "I couldn't detect a change. Try: 'Set brand to Alpha', 'Site type Portfolio', 'Tagline: Build boldly', 'Palette blue', 'Sections: Hero, Features, Pricing', 'Disable animations', or 'Enable SEO'. You can also type 'preview' to render the current spec."

const previewOnlyReply = "Rendering the latest preview now."

// Reply is what Send returns for one user line.
type Reply struct {
	Message Message            `json:"reply"`
	Result  interpreter.Result `json:"result"`
	Spec    site.Spec          `json:"spec"`
	// Preview holds the demo document when the line asked for one.
	Preview string `json:"preview,omitempty"`
}

// Session owns one site spec and the conversation that shaped it.
// All methods are safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	spec     site.Spec
	messages []Message
	demo     *demo.Compiler
}

// New starts a session with the default spec and the greeting message.
func New(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		spec:      site.Default(),
		messages:  []Message{{Role: RoleAssistant, Content: greeting}},
		demo:      demo.New(),
	}
}

// WithDemoCompiler replaces the compiler used for previews.
func (s *Session) WithDemoCompiler(c *demo.Compiler) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demo = c
	return s
}

// Spec returns the current spec.
func (s *Session) Spec() site.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send interprets one user line, applies any update and appends the user
// message and the assistant reply. Blank input is ignored and reports ok=false.
func (s *Session) Send(text string) (reply Reply, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, Message{Role: RoleUser, Content: text})

	res := interpreter.Interpret(text, s.spec)
	var content string
	switch {
	case res.Matched:
		s.spec = site.Apply(s.spec, res.Update)
		content = Summary(res.Update)
		if res.WantsPreview {
			content += "\nRendering a fresh preview..."
		} else {
			content += "\nType 'preview' to see the updated demo."
		}
	case res.WantsPreview:
		content = previewOnlyReply
	default:
		content = helpText
	}

	msg := Message{Role: RoleAssistant, Content: content}
	s.messages = append(s.messages, msg)

	reply = Reply{Message: msg, Result: res, Spec: s.spec}
	if res.WantsPreview {
		reply.Preview = s.previewLocked()
	}
	return reply, true
}

// Update applies a form-style update directly, without touching the conversation.
func (s *Session) Update(update site.PartialUpdate) site.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = site.Apply(s.spec, update)
	return s.spec
}

// Prompt compiles the current spec into the generator prompt.
func (s *Session) Prompt() string {
	return prompts.CompileSitePrompt(s.Spec())
}

// Preview compiles the current spec into a demo document.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewLocked()
}

func (s *Session) previewLocked() string {
	return s.demo.Compile(s.spec, prompts.CompileSitePrompt(s.spec))
}

// Reset restores the default spec and restarts the conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = site.Default()
	s.messages = []Message{{Role: RoleAssistant, Content: greeting}}
}

// Summary describes an update for the assistant reply.
func Summary(u site.PartialUpdate) string {
	var parts []string
	if u.BrandName != nil && *u.BrandName != "" {
		parts = append(parts, "Brand → "+*u.BrandName)
	}
	if u.Tagline != nil && *u.Tagline != "" {
		parts = append(parts, "Tagline → "+*u.Tagline)
	}
	if u.SiteType != nil && *u.SiteType != "" {
		parts = append(parts, "Site type → "+*u.SiteType)
	}
	if u.Palette != nil && *u.Palette != "" {
		parts = append(parts, "Palette → "+string(*u.Palette))
	}
	if u.CustomSections != nil {
		parts = append(parts, "Sections → "+*u.CustomSections)
	}
	if u.Extras != nil {
		e := u.Extras.ApplyTo(site.Extras{})
		parts = append(parts, fmt.Sprintf("Options → animations:%s, responsive:%s, a11y:%s, seo:%s",
			onOff(e.Animations), onOff(e.Responsive), onOff(e.Accessibility), onOff(e.SEO)))
	}
	if len(parts) == 0 {
		return "No changes detected."
	}
	return "Updated: " + strings.Join(parts, "; ")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
