// Package export writes site artifacts to disk and optionally hands the
// output directory to an external publish command.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"site_prompt_server/internal/site"
	"site_prompt_server/internal/types"
	"site_prompt_server/internal/utils"
)

// Artifact filenames.
const (
	SpecFile      = "spec.yaml"
	PromptFile    = "prompt.txt"
	DemoFile      = "index.html"
	GeneratedFile = "generated.html"
)

// ErrUnsafePath is returned for filenames that would escape the output directory.
var ErrUnsafePath = errors.New("unsafe file path")

// SiteFiles bundles the spec, the compiled prompt and the demo document.
// generatedHTML is included only when non-empty.
func SiteFiles(spec site.Spec, promptText, demoHTML, generatedHTML string) ([]types.GeneratedFile, error) {
	specYAML, err := site.EncodeYAML(spec)
	if err != nil {
		return nil, err
	}
	files := []types.GeneratedFile{
		newFile(SpecFile, string(specYAML)),
		newFile(PromptFile, promptText),
		newFile(DemoFile, demoHTML),
	}
	if generatedHTML != "" {
		files = append(files, newFile(GeneratedFile, generatedHTML))
	}
	return files, nil
}

func newFile(name, content string) types.GeneratedFile {
	return types.GeneratedFile{Filename: name, Type: utils.DetermineFileType(name), Content: content}
}

// WriteFiles writes files under dir, creating subdirectories as needed, and
// returns how many were written.
func WriteFiles(dir string, files []types.GeneratedFile) (int, error) {
	written := 0
	for _, f := range files {
		if !filepath.IsLocal(f.Filename) {
			return written, fmt.Errorf("%w: %s", ErrUnsafePath, f.Filename)
		}
		filePath := filepath.Join(dir, f.Filename)
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", f.Filename, err)
		}
		if err := os.WriteFile(filePath, []byte(f.Content), 0644); err != nil {
			return written, fmt.Errorf("failed to write file %s: %w", filePath, err)
		}
		written++
	}
	return written, nil
}

// Exporter writes project files under a base directory and runs the
// configured publish command on the result.
type Exporter struct {
	baseDir        string
	publishCommand string
}

// Result describes a finished export.
type Result struct {
	Dir           string `json:"dir"`
	FilesWritten  int    `json:"filesWritten"`
	PublishOutput string `json:"publishOutput,omitempty"`
}

// NewExporter creates an Exporter. An empty publishCommand disables publishing.
func NewExporter(baseDir, publishCommand string) *Exporter {
	return &Exporter{
		baseDir:        baseDir,
		publishCommand: strings.TrimSpace(publishCommand),
	}
}

// Export writes files to <baseDir>/<projectID> and, when a publish command is
// configured, runs it with the directory appended as the last argument.
func (e *Exporter) Export(ctx context.Context, projectID string, files []types.GeneratedFile) (Result, error) {
	if !filepath.IsLocal(projectID) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsafePath, projectID)
	}
	dir := filepath.Join(e.baseDir, projectID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create export dir: %w", err)
	}

	n, err := WriteFiles(dir, files)
	if err != nil {
		return Result{}, err
	}
	log.Printf("Wrote %d files to %s", n, dir)

	res := Result{Dir: dir, FilesWritten: n}
	if e.publishCommand == "" {
		return res, nil
	}

	out, err := e.publish(ctx, dir)
	if err != nil {
		return res, err
	}
	res.PublishOutput = out
	return res, nil
}

func (e *Exporter) publish(ctx context.Context, dir string) (string, error) {
	fields := strings.Fields(e.publishCommand)
	args := append(fields[1:], dir)

	cmd := exec.CommandContext(ctx, fields[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("Running publish command: %s", cmd.String())
	if err := cmd.Run(); err != nil {
		log.Printf("publish stderr: %s", stderr.String())
		return "", fmt.Errorf("publish command failed: %w (stderr: %s)", err, stderr.String())
	}

	output := strings.TrimSpace(stdout.String())
	log.Printf("publish stdout: %s", output)
	return output, nil
}
