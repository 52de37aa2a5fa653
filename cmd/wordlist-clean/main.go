// Command wordlist-clean strips annotation markup (parenthetical notes,
// bracketed tags, part-of-speech prefixes) from the translations of a JSON
// word list and writes the cleaned list to a new file.
//
// Usage:
//
//	wordlist-clean INPUT -o OUTPUT [--split-phrases]
//
// Flags:
//
//	-o, --out          output file path (required)
//	--split-phrases    split phrases[*].translation on semicolons into phrases[*].translations
//	--config           path to config YAML (optional; falls back to CONFIG_PATH and env)
//
// Exit codes: 0 = success, 1 = error, 2 = usage error.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/q2019715/jieci-dictionary/internal/app"
	"github.com/q2019715/jieci-dictionary/internal/app/cleaner"
	"github.com/q2019715/jieci-dictionary/internal/config"
	"github.com/q2019715/jieci-dictionary/pkg/ctxutil"
)

const toolName = "wordlist-clean"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		outPath      string
		configPath   string
		splitPhrases bool
		started      bool
	)

	cmd := &cobra.Command{
		Use:   toolName + " INPUT -o OUTPUT",
		Short: "Strip annotation markup from word list translations",
		Long: `wordlist-clean reads a JSON array of word entries, removes parenthetical
notes, bracketed tags and leading part-of-speech abbreviations from every
translation, and writes the result as pretty-printed JSON.`,
		Args:          cobra.ExactArgs(1),
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started = true

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("split-phrases") {
				cfg.Cleaner.SplitPhrases = splitPhrases
			}

			ctx := ctxutil.WithTool(cmd.Context(), toolName)
			ctx = ctxutil.WithRunID(ctx, uuid.New())
			logger := app.NewLogger(ctx, cfg.Log)

			stats, err := cleaner.RewriteFile(args[0], outPath, cleaner.Options{
				SplitPhrases: cfg.Cleaner.SplitPhrases,
			}, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %d entries -> %s\n", stats.Entries, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output JSON file path")
	cmd.Flags().BoolVar(&splitPhrases, "split-phrases", false,
		"split phrases[*].translation on ;/； into a phrases[*].translations list")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config YAML")
	_ = cmd.MarkFlagRequired("out")

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		// Anything rejected before RunE is an argument or flag problem.
		if !started {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", toolName)
			return 2
		}
		return 1
	}
	return 0
}
