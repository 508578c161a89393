package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"site_prompt_server/internal/ai"
	"site_prompt_server/internal/ai/prompts"
	"site_prompt_server/internal/demo"
	"site_prompt_server/internal/export"
	"site_prompt_server/internal/interpreter"
	"site_prompt_server/internal/session"
	"site_prompt_server/internal/site"
	"site_prompt_server/internal/store"
	"site_prompt_server/internal/types"
	"site_prompt_server/internal/utils"
)

// SessionManager tracks live conversation sessions.
type SessionManager interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
	Delete(id string) error
}

// SiteGenerator turns a spec into a model-generated project.
type SiteGenerator interface {
	GenerateSiteAndStore(ctx context.Context, sessionID string, spec site.Spec, saver ai.ProjectSaver) (types.Project, error)
}

// ProjectStore persists project snapshots.
type ProjectStore interface {
	SaveProject(ctx context.Context, p types.Project) error
	GetProject(ctx context.Context, id string) (*types.Project, error)
	ListProjects(ctx context.Context, limit int) ([]store.ProjectSummary, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectExporter writes project files out and optionally publishes them.
type ProjectExporter interface {
	Export(ctx context.Context, projectID string, files []types.GeneratedFile) (export.Result, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	sessions  SessionManager
	generator SiteGenerator // nil when no OpenAI key is configured
	projects  ProjectStore
	exporter  ProjectExporter
}

// NewAPIHandler initializes a new API handler with its dependencies.
// generator may be nil, in which case generation endpoints answer 503.
func NewAPIHandler(
	sessions SessionManager,
	generator SiteGenerator,
	projects ProjectStore,
	exporter ProjectExporter,
) *APIHandler {
	return &APIHandler{
		sessions:  sessions,
		generator: generator,
		projects:  projects,
		exporter:  exporter,
	}
}

// --- Structs for API Requests/Responses ---

type PromptResponse struct {
	Prompt string `json:"prompt"`
}

type InterpretRequest struct {
	Text string     `json:"text"`
	Spec *site.Spec `json:"spec"` // defaults to the starting spec when omitted
}

type SessionResponse struct {
	ID        string            `json:"id"`
	Spec      site.Spec         `json:"spec"`
	Messages  []session.Message `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
}

type MessageRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	Reply        string             `json:"reply"`
	Spec         site.Spec          `json:"spec"`
	Update       site.PartialUpdate `json:"update"`
	WantsPreview bool               `json:"wantsPreview"`
	Matched      bool               `json:"matched"`
	Preview      string             `json:"preview,omitempty"`
}

type GenerateResponse struct {
	ProjectID string `json:"projectId"`
	HTML      string `json:"html"`
}

type ProjectResponse struct {
	ProjectID string   `json:"projectId"`
	Files     []string `json:"files"`
}

type CatalogResponse struct {
	SiteTypes       []string            `json:"siteTypes"`
	Palettes        []site.PaletteInfo  `json:"palettes"`
	DefaultSections map[string][]string `json:"defaultSections"`
	Default         site.Spec           `json:"default"`
}

// --- Catalog & Stateless Compilers ---

// GET /catalog
func (h *APIHandler) GetCatalog(c *gin.Context) {
	siteTypes := site.SiteTypes()
	sections := make(map[string][]string, len(siteTypes))
	for _, t := range siteTypes {
		sections[t] = site.DefaultSections(t)
	}
	c.JSON(http.StatusOK, CatalogResponse{
		SiteTypes:       siteTypes,
		Palettes:        site.Palettes(),
		DefaultSections: sections,
		Default:         site.Default(),
	})
}

// bindSpec decodes a spec body over the default spec, so omitted fields keep
// their starting values.
func bindSpec(c *gin.Context) (site.Spec, bool) {
	spec := site.Default()
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return site.Spec{}, false
	}
	return spec, true
}

// POST /compile/prompt
func (h *APIHandler) CompilePrompt(c *gin.Context) {
	spec, ok := bindSpec(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, PromptResponse{Prompt: prompts.CompileSitePrompt(spec)})
}

// POST /compile/demo
func (h *APIHandler) CompileDemo(c *gin.Context) {
	spec, ok := bindSpec(c)
	if !ok {
		return
	}
	html := demo.Compile(spec, prompts.CompileSitePrompt(spec))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// POST /interpret
func (h *APIHandler) Interpret(c *gin.Context) {
	// A partial spec decodes over the starting spec, like bindSpec.
	spec := site.Default()
	req := InterpretRequest{Spec: &spec}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	current := site.Default()
	if req.Spec != nil {
		current = *req.Spec
	}
	c.JSON(http.StatusOK, interpreter.Interpret(req.Text, current))
}

// --- Sessions ---

func newSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Spec:      s.Spec(),
		Messages:  s.Messages(),
		CreatedAt: s.CreatedAt,
	}
}

// lookupSession resolves :id, writing a 404 when the session is unknown.
func (h *APIHandler) lookupSession(c *gin.Context) (*session.Session, bool) {
	id := c.Param("id")
	s, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return nil, false
		}
		log.Printf("Error loading session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil, false
	}
	return s, true
}

// POST /sessions
func (h *APIHandler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	log.Printf("Created session %s", s.ID)
	c.JSON(http.StatusCreated, newSessionResponse(s))
}

// GET /sessions/:id
func (h *APIHandler) GetSession(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

// DELETE /sessions/:id
func (h *APIHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /sessions/:id/messages
func (h *APIHandler) SendMessage(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	reply, handled := s.Send(req.Text)
	if !handled {
		// Blank input leaves the conversation untouched.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{
		Reply:        reply.Message.Content,
		Spec:         reply.Spec,
		Update:       reply.Result.Update,
		WantsPreview: reply.Result.WantsPreview,
		Matched:      reply.Result.Matched,
		Preview:      reply.Preview,
	})
}

// PATCH /sessions/:id/spec
func (h *APIHandler) PatchSpec(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	var update site.PartialUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.Update(update))
}

// GET /sessions/:id/prompt
func (h *APIHandler) GetPrompt(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, PromptResponse{Prompt: s.Prompt()})
}

// GET /sessions/:id/preview
func (h *APIHandler) GetPreview(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(s.Preview()))
}

// GET /sessions/:id/spec.yaml
func (h *APIHandler) GetSpecYAML(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	data, err := site.EncodeYAML(s.Spec())
	if err != nil {
		log.Printf("Error encoding spec for session %s: %v", s.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode spec"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="spec.yaml"`)
	c.Data(http.StatusOK, utils.ContentType("YAML"), data)
}

// POST /sessions/:id/generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Site generation is not configured"})
		return
	}

	log.Printf("Received generation request for session %s", s.ID)
	project, err := h.generator.GenerateSiteAndStore(c.Request.Context(), s.ID, s.Spec(), h.projects)
	if err != nil {
		log.Printf("Error generating site for session %s: %v", s.ID, err)
		if errors.Is(err, ai.ErrEmptyResponse) || errors.Is(err, ai.ErrNoDocument) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Model did not return a usable document"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate site"})
		return
	}

	log.Printf("Site generation successful for session %s. Project ID: %s", s.ID, project.ID)
	c.JSON(http.StatusCreated, GenerateResponse{
		ProjectID: project.ID,
		HTML:      project.FileMap()[export.GeneratedFile],
	})
}

// POST /sessions/:id/projects
func (h *APIHandler) SaveProject(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}

	spec := s.Spec()
	promptText := prompts.CompileSitePrompt(spec)
	files, err := export.SiteFiles(spec, promptText, demo.Compile(spec, promptText), "")
	if err != nil {
		log.Printf("Error building files for session %s: %v", s.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build project files"})
		return
	}

	project := types.Project{
		ID:        uuid.New().String(),
		SessionID: s.ID,
		Spec:      spec,
		Files:     files,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.projects.SaveProject(c.Request.Context(), project); err != nil {
		log.Printf("Error saving project for session %s: %v", s.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		return
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Filename
	}
	log.Printf("Saved project %s for session %s", project.ID, s.ID)
	c.JSON(http.StatusCreated, ProjectResponse{ProjectID: project.ID, Files: names})
}

// --- Projects ---

// lookupProject resolves :id, writing a 404 when the project is unknown.
func (h *APIHandler) lookupProject(c *gin.Context) (*types.Project, bool) {
	projectID := c.Param("id")
	p, err := h.projects.GetProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return nil, false
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return nil, false
	}
	return p, true
}

// GET /projects
func (h *APIHandler) ListProjects(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.projects.ListProjects(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}
	if list == nil {
		list = []store.ProjectSummary{}
	}
	c.JSON(http.StatusOK, list)
}

// GET /projects/:id/files
func (h *APIHandler) GetProjectFiles(c *gin.Context) {
	p, ok := h.lookupProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.FileMap())
}

// GET /projects/:id/files/*name
func (h *APIHandler) GetProjectFile(c *gin.Context) {
	p, ok := h.lookupProject(c)
	if !ok {
		return
	}
	name := strings.TrimPrefix(c.Param("name"), "/")
	for _, f := range p.Files {
		if f.Filename == name {
			c.Data(http.StatusOK, utils.ContentType(f.Type), []byte(f.Content))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "File not found in project"})
}

// POST /projects/:id/export
func (h *APIHandler) ExportProject(c *gin.Context) {
	p, ok := h.lookupProject(c)
	if !ok {
		return
	}
	if len(p.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project contains no files to export"})
		return
	}

	res, err := h.exporter.Export(c.Request.Context(), p.ID, p.Files)
	if err != nil {
		log.Printf("Error exporting project %s: %v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export project"})
		return
	}
	log.Printf("Project %s exported to %s", p.ID, res.Dir)
	c.JSON(http.StatusOK, res)
}

// DELETE /projects/:id
func (h *APIHandler) DeleteProject(c *gin.Context) {
	projectID := c.Param("id")
	if err := h.projects.DeleteProject(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error deleting project %s: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	c.Status(http.StatusNoContent)
}
