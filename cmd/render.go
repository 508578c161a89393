package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"site_prompt_server/internal/ai/prompts"
	"site_prompt_server/internal/demo"
	"site_prompt_server/internal/export"
	"site_prompt_server/internal/types"
)

var (
	renderSpecPath string
	renderOutDir   string
	renderWatch    bool
)

const renderDebounce = 300 * time.Millisecond

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the prompt and demo page for a spec file",
	Long: `render compiles a YAML spec into prompt.txt and index.html under --out.
With --watch it keeps running and rebuilds whenever the spec file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := renderSite(renderSpecPath, renderOutDir)
		if err != nil {
			return err
		}
		log.Printf("Rendered %d files to %s", n, renderOutDir)
		if !renderWatch {
			return nil
		}
		if renderSpecPath == "" {
			return fmt.Errorf("--watch needs --spec")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watchSpec(ctx, renderSpecPath, renderOutDir, renderDebounce)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderSpecPath, "spec", "", "YAML spec file (default spec when omitted)")
	renderCmd.Flags().StringVar(&renderOutDir, "out", "site", "output directory")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "rebuild when the spec file changes")
	rootCmd.AddCommand(renderCmd)
}

// renderSite writes prompt.txt and index.html for the spec at specPath.
func renderSite(specPath, outDir string) (int, error) {
	spec, err := loadSpec(specPath)
	if err != nil {
		return 0, err
	}
	promptText := prompts.CompileSitePrompt(spec)
	files, err := export.SiteFiles(spec, promptText, demo.Compile(spec, promptText), "")
	if err != nil {
		return 0, err
	}

	// The spec file is the input here; writing it back could retrigger a watch.
	var out []types.GeneratedFile
	for _, f := range files {
		if f.Filename != export.SpecFile {
			out = append(out, f)
		}
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}
	return export.WriteFiles(outDir, out)
}

// watchSpec rebuilds the output whenever specPath changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are still seen.
func watchSpec(ctx context.Context, specPath, outDir string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(specPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	log.Printf("Watching %s for changes...", specPath)

	var buildTimer *time.Timer
	rebuild := make(chan struct{}, 1)
	defer func() {
		if buildTimer != nil {
			buildTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Println("Watch stopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)) {
				continue
			}
			log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())
			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			if n, err := renderSite(specPath, outDir); err != nil {
				log.Printf("Error during rebuild: %v", err)
			} else {
				log.Printf("Rebuilt %d files in %s", n, outDir)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}
