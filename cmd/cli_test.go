package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"site_prompt_server/internal/session"
)

func writeSpec(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestPromptCommand(t *testing.T) {
	specPath := writeSpec(t, t.TempDir(), "brandName: Alpha Labs\npalette: emerald\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"prompt", "--spec", specPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		promptSpecPath = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Alpha Labs") || !strings.Contains(out.String(), "emerald/teal") {
		t.Errorf("unexpected prompt %q", out.String())
	}
}

func TestRenderSite(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir, "brandName: Alpha Labs\ncustomSections: Hero, Pricing\n")
	outDir := filepath.Join(dir, "out")

	n, err := renderSite(specPath, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 files, got %d", n)
	}
	if !strings.Contains(readFile(t, filepath.Join(outDir, "prompt.txt")), "- Pricing\n") {
		t.Error("prompt.txt should list the custom sections")
	}
	if !strings.Contains(readFile(t, filepath.Join(outDir, "index.html")), `id="pricing"`) {
		t.Error("index.html should render the custom sections")
	}
	if _, err := os.Stat(filepath.Join(outDir, "spec.yaml")); !os.IsNotExist(err) {
		t.Error("render should not write the spec back out")
	}
}

func TestRenderSite_MissingSpec(t *testing.T) {
	if _, err := renderSite(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir()); err == nil {
		t.Error("expected an error for a missing spec file")
	}
}

func TestWatchSpec_Rebuilds(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir, "brandName: First Brand\n")
	outDir := filepath.Join(dir, "out")
	if _, err := renderSite(specPath, outDir); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchSpec(ctx, specPath, outDir, 20*time.Millisecond) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher a moment to register before touching the file.
	time.Sleep(100 * time.Millisecond)
	writeSpec(t, dir, "brandName: Second Brand\n")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(readFile(t, filepath.Join(outDir, "index.html")), "Second Brand") {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("index.html was not rebuilt after the spec changed")
}

func TestRunChat(t *testing.T) {
	outDir := t.TempDir()
	in := strings.NewReader(strings.Join([]string{
		"Set brand to Alpha Labs",
		"",
		"/prompt",
		"palette rose and preview",
		"/spec",
		"/quit",
		"Set brand to Ignored",
	}, "\n"))
	var out bytes.Buffer
	s := session.New("test")

	if err := runChat(s, in, &out, outDir); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{
		"Hi! Tell me how you want to change your website.",
		"Updated: Brand → Alpha Labs",
		`with the tagline "Build something brilliant"`,
		"Rendering a fresh preview...",
		"palette: rose",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if s.Spec().BrandName != "Alpha Labs" {
		t.Errorf("lines after /quit should not be read, brand is %q", s.Spec().BrandName)
	}
	if !strings.Contains(readFile(t, filepath.Join(outDir, "index.html")), "--primary:#f43f5e") {
		t.Error("preview should be written with the updated palette")
	}
}

func TestRunChat_Reset(t *testing.T) {
	s := session.New("test")
	var out bytes.Buffer
	in := strings.NewReader("Set brand to Alpha Labs\n/reset\n")
	if err := runChat(s, in, &out, t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if s.Spec().BrandName != "NovaByte" {
		t.Errorf("expected default brand after reset, got %q", s.Spec().BrandName)
	}
}

func TestFullUpdate(t *testing.T) {
	s := session.New("test")
	spec := s.Spec()
	spec.BrandName = "Alpha Labs"
	spec.Extras.SEO = false
	if got := s.Update(fullUpdate(spec)); got != spec {
		t.Errorf("expected %+v, got %+v", spec, got)
	}
}
