package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	routes "site_prompt_server/api"
	"site_prompt_server/internal/ai"
	"site_prompt_server/internal/api"
	"site_prompt_server/internal/export"
	"site_prompt_server/internal/interpreter"
	"site_prompt_server/internal/session"
	"site_prompt_server/internal/site"
	"site_prompt_server/internal/store"
	"site_prompt_server/internal/types"
)

type fakeGenerator struct {
	err error
}

func (f *fakeGenerator) GenerateSiteAndStore(ctx context.Context, sessionID string, spec site.Spec, saver ai.ProjectSaver) (types.Project, error) {
	if f.err != nil {
		return types.Project{}, f.err
	}
	files, _ := export.SiteFiles(spec, "prompt", "<html>demo</html>", "<html>generated</html>")
	p := types.Project{ID: "gen-1", SessionID: sessionID, Spec: spec, Files: files, CreatedAt: time.Now()}
	return p, saver.SaveProject(ctx, p)
}

type testServer struct {
	router    *gin.Engine
	exportDir string
}

func newTestServer(t *testing.T, generator api.SiteGenerator) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	projects, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "projects.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { projects.Close() })

	exportDir := t.TempDir()
	h := api.NewAPIHandler(session.NewManager(10), generator, projects, export.NewExporter(exportDir, ""))

	router := gin.New()
	routes.RegisterRoutes(router, h)
	return &testServer{router: router, exportDir: exportDir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	return decode[api.SessionResponse](t, w).ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	if w := s.do(t, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCatalog(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodGet, "/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cat := decode[api.CatalogResponse](t, w)
	if len(cat.SiteTypes) != 10 || cat.SiteTypes[0] != "Blog" {
		t.Errorf("unexpected site types %v", cat.SiteTypes)
	}
	if len(cat.Palettes) != 6 || cat.Palettes[5].Label != "Neutral / Gray" {
		t.Errorf("unexpected palettes %+v", cat.Palettes)
	}
	if got := cat.DefaultSections["Blog"]; len(got) == 0 {
		t.Error("expected default sections for Blog")
	}
}

func TestCompilePrompt(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodPost, "/compile/prompt", map[string]any{"brandName": "Alpha Labs", "palette": "rose"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	prompt := decode[api.PromptResponse](t, w).Prompt
	if !strings.Contains(prompt, "Alpha Labs") || !strings.Contains(prompt, "rose/pink") {
		t.Errorf("prompt does not reflect body: %q", prompt)
	}
	if !strings.Contains(prompt, "Build something brilliant") {
		t.Error("omitted fields should keep their defaults")
	}
}

func TestCompileDemo(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodPost, "/compile/demo", map[string]any{"brandName": "Alpha Labs"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "<!doctype html>") || !strings.Contains(w.Body.String(), "Alpha Labs") {
		t.Errorf("expected an HTML document for the posted spec, got %q", w.Body.String())
	}
}

func TestCompile_BadBody(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/compile/prompt", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestInterpret(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodPost, "/interpret", map[string]any{"text": "Palette purple and preview"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	res := decode[interpreter.Result](t, w)
	if !res.Matched || !res.WantsPreview {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Update.Palette == nil || *res.Update.Palette != site.PalettePurple {
		t.Errorf("expected purple palette, got %+v", res.Update)
	}
}

func TestInterpret_PartialSpecKeepsDefaults(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodPost, "/interpret", map[string]any{
		"text": "disable seo",
		"spec": map[string]any{"brandName": "Acme"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	res := decode[interpreter.Result](t, w)
	if res.Update.Extras == nil {
		t.Fatalf("expected an extras patch, got %+v", res.Update)
	}
	got := res.Update.Extras.ApplyTo(site.Extras{})
	want := site.Extras{Animations: true, Responsive: true, Accessibility: true, SEO: false}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)

	w := s.do(t, http.MethodGet, "/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get session: %d", w.Code)
	}
	sess := decode[api.SessionResponse](t, w)
	if sess.Spec != site.Default() || len(sess.Messages) != 1 {
		t.Errorf("unexpected new session %+v", sess)
	}

	if w := s.do(t, http.MethodDelete, "/sessions/"+id, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/sessions/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/sessions/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func TestSendMessage(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)

	w := s.do(t, http.MethodPost, "/sessions/"+id+"/messages", api.MessageRequest{Text: "Set brand to Alpha Labs"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	res := decode[api.MessageResponse](t, w)
	if res.Spec.BrandName != "Alpha Labs" || !res.Matched || res.WantsPreview {
		t.Errorf("unexpected response %+v", res)
	}
	if !strings.HasPrefix(res.Reply, "Updated: Brand → Alpha Labs") {
		t.Errorf("unexpected reply %q", res.Reply)
	}
	if res.Preview != "" {
		t.Error("no preview was requested")
	}

	w = s.do(t, http.MethodPost, "/sessions/"+id+"/messages", api.MessageRequest{Text: "show me a preview"})
	res = decode[api.MessageResponse](t, w)
	if !res.WantsPreview || !strings.Contains(res.Preview, "Alpha Labs") {
		t.Errorf("expected preview of the updated spec, got %+v", res)
	}

	sess := decode[api.SessionResponse](t, s.do(t, http.MethodGet, "/sessions/"+id, nil))
	if len(sess.Messages) != 5 {
		t.Errorf("expected 5 messages, got %d", len(sess.Messages))
	}
}

func TestSendMessage_Blank(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)
	if w := s.do(t, http.MethodPost, "/sessions/"+id+"/messages", api.MessageRequest{Text: "   "}); w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	sess := decode[api.SessionResponse](t, s.do(t, http.MethodGet, "/sessions/"+id, nil))
	if len(sess.Messages) != 1 {
		t.Errorf("blank input should not add messages, got %d", len(sess.Messages))
	}
}

func TestSendMessage_UnknownSession(t *testing.T) {
	s := newTestServer(t, nil)
	if w := s.do(t, http.MethodPost, "/sessions/nope/messages", api.MessageRequest{Text: "preview"}); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestPatchSpec(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)

	w := s.do(t, http.MethodPatch, "/sessions/"+id+"/spec", map[string]any{
		"tagline": "Ship faster",
		"palette": "neon",
		"extras":  map[string]bool{"seo": false},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	spec := decode[site.Spec](t, w)
	if spec.Tagline != "Ship faster" {
		t.Errorf("tagline not applied: %+v", spec)
	}
	if spec.Palette != site.PaletteBlue {
		t.Errorf("unknown palette should be ignored, got %q", spec.Palette)
	}
	if spec.Extras.SEO || !spec.Extras.Animations {
		t.Errorf("extras should merge flag by flag: %+v", spec.Extras)
	}
}

func TestSessionPromptPreviewAndYAML(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/messages", api.MessageRequest{Text: "Sections: Hero, Pricing"})

	prompt := decode[api.PromptResponse](t, s.do(t, http.MethodGet, "/sessions/"+id+"/prompt", nil)).Prompt
	if !strings.Contains(prompt, "- Hero\n- Pricing\n") {
		t.Errorf("prompt should list custom sections: %q", prompt)
	}

	w := s.do(t, http.MethodGet, "/sessions/"+id+"/preview", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `id="pricing"`) {
		t.Errorf("preview should render the custom sections")
	}

	w = s.do(t, http.MethodGet, "/sessions/"+id+"/spec.yaml", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("spec.yaml: %d", w.Code)
	}
	spec, err := site.ParseYAML(w.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if spec.CustomSections != "Hero, Pricing" {
		t.Errorf("unexpected spec from yaml %+v", spec)
	}
}

func TestGenerate_NotConfigured(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)
	if w := s.do(t, http.MethodPost, "/sessions/"+id+"/generate", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestGenerate(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})
	id := s.createSession(t)

	w := s.do(t, http.MethodPost, "/sessions/"+id+"/generate", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}
	res := decode[api.GenerateResponse](t, w)
	if res.ProjectID != "gen-1" || res.HTML != "<html>generated</html>" {
		t.Errorf("unexpected response %+v", res)
	}

	files := decode[map[string]string](t, s.do(t, http.MethodGet, "/projects/gen-1/files", nil))
	if files["generated.html"] != "<html>generated</html>" {
		t.Errorf("generated project should be stored, got %v", files)
	}
}

func TestGenerate_BadModelReply(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{err: ai.ErrNoDocument})
	id := s.createSession(t)
	if w := s.do(t, http.MethodPost, "/sessions/"+id+"/generate", nil); w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestProjects(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/messages", api.MessageRequest{Text: "Set brand to Alpha Labs"})

	w := s.do(t, http.MethodPost, "/sessions/"+id+"/projects", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	saved := decode[api.ProjectResponse](t, w)
	if saved.ProjectID == "" || len(saved.Files) != 3 {
		t.Fatalf("unexpected project %+v", saved)
	}

	list := decode[[]store.ProjectSummary](t, s.do(t, http.MethodGet, "/projects", nil))
	if len(list) != 1 || list[0].BrandName != "Alpha Labs" {
		t.Errorf("unexpected listing %+v", list)
	}

	files := decode[map[string]string](t, s.do(t, http.MethodGet, "/projects/"+saved.ProjectID+"/files", nil))
	if !strings.Contains(files["prompt.txt"], "Alpha Labs") {
		t.Errorf("prompt.txt should reflect the spec: %q", files["prompt.txt"])
	}

	w = s.do(t, http.MethodGet, "/projects/"+saved.ProjectID+"/files/index.html", nil)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("file download: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w := s.do(t, http.MethodGet, "/projects/"+saved.ProjectID+"/files/missing.txt", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing file, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/projects/"+saved.ProjectID+"/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	res := decode[export.Result](t, w)
	if res.FilesWritten != 3 {
		t.Errorf("expected 3 files written, got %d", res.FilesWritten)
	}
	if _, err := os.Stat(filepath.Join(s.exportDir, saved.ProjectID, "spec.yaml")); err != nil {
		t.Errorf("spec.yaml not exported: %v", err)
	}

	if w := s.do(t, http.MethodDelete, "/projects/"+saved.ProjectID, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/projects/"+saved.ProjectID+"/files", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}
