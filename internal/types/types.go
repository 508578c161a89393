package types

import (
	"time"

	"site_prompt_server/internal/site"
)

// GeneratedFile is one artifact produced for a site: the prompt, the demo
// document, the spec itself or a model-generated page.
type GeneratedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"` // e.g., "HTML", "Text", "YAML"
	Content  string `json:"content"`
}

// Project is a saved snapshot of a session's spec and its artifacts.
type Project struct {
	ID        string          `json:"projectId"`
	SessionID string          `json:"sessionId,omitempty"`
	Spec      site.Spec       `json:"spec"`
	Files     []GeneratedFile `json:"files"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FileMap returns the project files keyed by filename.
func (p Project) FileMap() map[string]string {
	files := make(map[string]string, len(p.Files))
	for _, f := range p.Files {
		files[f.Filename] = f.Content
	}
	return files
}
