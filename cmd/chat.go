package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"site_prompt_server/internal/export"
	"site_prompt_server/internal/session"
	"site_prompt_server/internal/site"
	"site_prompt_server/internal/types"
	"site_prompt_server/internal/utils"
)

var (
	chatOutDir   string
	chatSpecPath string
)

const chatUsage = `Commands: /prompt prints the generator prompt, /spec prints the spec as YAML,
/reset starts over, /quit exits. Anything else is read as an instruction.`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Edit a spec interactively from chat-style instructions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New("local")
		if chatSpecPath != "" {
			spec, err := site.LoadFile(chatSpecPath)
			if err != nil {
				return err
			}
			s.Update(fullUpdate(spec))
		}
		return runChat(s, cmd.InOrStdin(), cmd.OutOrStdout(), chatOutDir)
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatOutDir, "out", "preview", "directory the demo page is written to on preview")
	chatCmd.Flags().StringVar(&chatSpecPath, "spec", "", "YAML spec file to start from")
	rootCmd.AddCommand(chatCmd)
}

// runChat reads instructions line by line until EOF or /quit.
func runChat(s *session.Session, in io.Reader, out io.Writer, outDir string) error {
	msgs := s.Messages()
	fmt.Fprintln(out, msgs[len(msgs)-1].Content)
	fmt.Fprintln(out, chatUsage)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/prompt":
			fmt.Fprint(out, s.Prompt())
			continue
		case "/spec":
			data, err := site.EncodeYAML(s.Spec())
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
			continue
		case "/reset":
			s.Reset()
			fmt.Fprintln(out, "Spec reset to defaults.")
			continue
		case "/help":
			fmt.Fprintln(out, chatUsage)
			continue
		}

		reply, ok := s.Send(line)
		if !ok {
			continue
		}
		fmt.Fprintln(out, reply.Message.Content)
		if reply.Preview != "" {
			if err := writePreview(outDir, reply.Preview); err != nil {
				fmt.Fprintf(out, "Could not write preview: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Preview written to %s\n", filepath.Join(outDir, export.DemoFile))
		}
	}
}

func writePreview(dir, html string) error {
	_, err := export.WriteFiles(dir, []types.GeneratedFile{{
		Filename: export.DemoFile,
		Type:     utils.DetermineFileType(export.DemoFile),
		Content:  html,
	}})
	return err
}

// fullUpdate turns a complete spec into an update that sets every field.
func fullUpdate(spec site.Spec) site.PartialUpdate {
	extras := site.PatchOf(spec.Extras)
	return site.PartialUpdate{
		SiteType:       site.String(spec.SiteType),
		BrandName:      site.String(spec.BrandName),
		Tagline:        site.String(spec.Tagline),
		Palette:        site.PaletteRef(spec.Palette),
		CustomSections: site.String(spec.CustomSections),
		Extras:         &extras,
	}
}
