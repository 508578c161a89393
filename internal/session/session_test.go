package session

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"site_prompt_server/internal/demo"
	"site_prompt_server/internal/site"
)

func TestNew(t *testing.T) {
	s := New("abc")
	if s.Spec() != site.Default() {
		t.Errorf("expected default spec, got %+v", s.Spec())
	}
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleAssistant || !strings.HasPrefix(msgs[0].Content, "Hi!") {
		t.Errorf("expected greeting, got %+v", msgs)
	}
}

func TestSend_Update(t *testing.T) {
	s := New("abc")
	reply, ok := s.Send("Set brand to Alpha Labs")
	if !ok {
		t.Fatal("expected the line to be handled")
	}
	if s.Spec().BrandName != "Alpha Labs" {
		t.Errorf("expected brand update, got %+v", s.Spec())
	}
	want := "Updated: Brand → Alpha Labs\nType 'preview' to see the updated demo."
	if reply.Message.Content != want {
		t.Errorf("expected %q, got %q", want, reply.Message.Content)
	}
	if reply.Preview != "" {
		t.Error("no preview was requested")
	}
	if len(s.Messages()) != 3 {
		t.Errorf("expected greeting + user + reply, got %d messages", len(s.Messages()))
	}
}

func TestSend_UpdateWithPreview(t *testing.T) {
	s := New("abc").WithDemoCompiler(demo.New().WithClock(func() time.Time {
		return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	reply, _ := s.Send("palette rose and preview")

	if !strings.HasSuffix(reply.Message.Content, "\nRendering a fresh preview...") {
		t.Errorf("unexpected reply %q", reply.Message.Content)
	}
	if !strings.Contains(reply.Preview, "--primary:#f43f5e") {
		t.Error("preview should use the updated palette")
	}
	if !strings.Contains(reply.Preview, "© 2030 NovaByte") {
		t.Error("preview should use the injected clock")
	}
}

func TestSend_PreviewOnly(t *testing.T) {
	s := New("abc")
	reply, _ := s.Send("preview")
	if reply.Message.Content != previewOnlyReply {
		t.Errorf("unexpected reply %q", reply.Message.Content)
	}
	if reply.Preview == "" {
		t.Error("expected a preview document")
	}
	if s.Spec() != site.Default() {
		t.Error("spec should be unchanged")
	}
}

func TestSend_NoMatch(t *testing.T) {
	s := New("abc")
	reply, _ := s.Send("what is this?")
	if reply.Message.Content != helpText {
		t.Errorf("expected help text, got %q", reply.Message.Content)
	}
	if reply.Result.Matched || reply.Result.WantsPreview {
		t.Errorf("unexpected result %+v", reply.Result)
	}
}

func TestSend_BlankIgnored(t *testing.T) {
	s := New("abc")
	if _, ok := s.Send("   "); ok {
		t.Error("blank input should be ignored")
	}
	if len(s.Messages()) != 1 {
		t.Error("blank input should not add messages")
	}
}

func TestUpdateAndReset(t *testing.T) {
	s := New("abc")
	s.Update(site.PartialUpdate{Extras: &site.ExtrasPatch{SEO: site.Bool(false)}})
	if s.Spec().Extras.SEO {
		t.Error("expected seo off")
	}
	s.Send("Set brand to Other")
	s.Reset()
	if s.Spec() != site.Default() || len(s.Messages()) != 1 {
		t.Error("reset should restore defaults and the greeting")
	}
}

func TestPrompt(t *testing.T) {
	s := New("abc")
	s.Send("Tagline: Ship faster")
	if !strings.Contains(s.Prompt(), `with the tagline "Ship faster"`) {
		t.Error("prompt should reflect the current spec")
	}
}

func TestSummary(t *testing.T) {
	u := site.PartialUpdate{
		BrandName:      site.String("A"),
		Palette:        site.PaletteRef(site.PaletteGray),
		CustomSections: site.String(""),
		Extras:         &site.ExtrasPatch{Animations: site.Bool(false), Responsive: site.Bool(true), Accessibility: site.Bool(true), SEO: site.Bool(false)},
	}
	want := "Updated: Brand → A; Palette → gray; Sections → ; Options → animations:off, responsive:on, a11y:on, seo:off"
	if got := Summary(u); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := Summary(site.PartialUpdate{}); got != "No changes detected." {
		t.Errorf("unexpected empty summary %q", got)
	}
}

func TestSession_ConcurrentSends(t *testing.T) {
	s := New("abc")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Send("disable animations")
			_ = s.Preview()
		}()
	}
	wg.Wait()
	if got := len(s.Messages()); got != 41 {
		t.Errorf("expected 41 messages, got %d", got)
	}
}

func TestManager(t *testing.T) {
	m := NewManager(2)
	a := m.Create()
	b := m.Create()
	if a.ID == b.ID {
		t.Fatal("session IDs must be unique")
	}

	got, err := m.Get(a.ID)
	if err != nil || got != a {
		t.Fatalf("expected session a, got %v, %v", got, err)
	}

	c := m.Create()
	if m.Len() != 2 {
		t.Errorf("expected limit of 2 sessions, got %d", m.Len())
	}
	if _, err := m.Get(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("oldest session should be evicted, got %v", err)
	}

	if err := m.Delete(c.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := m.Delete(c.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := m.Get(b.ID); err != nil {
		t.Errorf("session b should survive: %v", err)
	}
}
