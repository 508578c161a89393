package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"site_prompt_server/internal/ai/prompts"
	"site_prompt_server/internal/demo"
	"site_prompt_server/internal/export"
	"site_prompt_server/internal/site"
	"site_prompt_server/internal/types"
)

// GenerateSiteAndStore compiles spec, asks the model for the site, and saves
// the spec, prompt, demo and generated page as a new project.
func (g *Generator) GenerateSiteAndStore(ctx context.Context, sessionID string, spec site.Spec, saver ProjectSaver) (types.Project, error) {
	projectID := uuid.New().String()
	log.Printf("Generating site for project %s, session %s", projectID, sessionID)

	promptText := prompts.CompileSitePrompt(spec)
	generated, err := g.GenerateSite(ctx, promptText)
	if err != nil {
		return types.Project{}, err
	}

	files, err := export.SiteFiles(spec, promptText, demo.Compile(spec, promptText), generated)
	if err != nil {
		return types.Project{}, err
	}

	project := types.Project{
		ID:        projectID,
		SessionID: sessionID,
		Spec:      spec,
		Files:     files,
		CreatedAt: time.Now().UTC(),
	}
	if err := saver.SaveProject(ctx, project); err != nil {
		return types.Project{}, fmt.Errorf("failed to store project %s: %w", projectID, err)
	}

	log.Printf("Stored %d files for project %s", len(files), projectID)
	return project, nil
}
