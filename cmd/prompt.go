package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"site_prompt_server/internal/ai/prompts"
)

var promptSpecPath string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the generator prompt for a spec file",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadSpec(promptSpecPath)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), prompts.CompileSitePrompt(spec))
		return err
	},
}

func init() {
	promptCmd.Flags().StringVar(&promptSpecPath, "spec", "", "YAML spec file (default spec when omitted)")
	rootCmd.AddCommand(promptCmd)
}
