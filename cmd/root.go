package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"site_prompt_server/internal/site"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "siteprompt",
	Short: "Turn chat-style instructions into a website spec, a generator prompt and a demo page",
	Long: `siteprompt keeps a structured website specification, edits it from short
chat commands such as "Set brand to NovaByte" or "Palette purple", and compiles
it into a prompt for an AI site generator plus a self-contained demo page.

Run "siteprompt serve" for the HTTP API, or use the prompt, render and chat
commands locally.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config file, or directory holding config.yaml")
}

// loadSpec reads a spec file, or returns the default spec when path is empty.
func loadSpec(path string) (site.Spec, error) {
	if path == "" {
		return site.Default(), nil
	}
	return site.LoadFile(path)
}
