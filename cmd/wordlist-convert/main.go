// Command wordlist-convert streams a large JSON word list whose entries use
// mixed field names and shapes, and writes it back as canonical entries
// ({word, translations: [{type, translation}], phrases}).
//
// Usage:
//
//	wordlist-convert INPUT OUTPUT [--encoding ENC] [--chunk-size N]
//
// Flags:
//
//	--encoding     input text encoding (default utf-8; e.g. utf-8-sig, gbk, gb18030, utf-16le)
//	--chunk-size   bytes read from the input per refill (default 65536)
//	--config       path to config YAML (optional; falls back to CONFIG_PATH and env)
//
// Exit codes: 0 = success, 1 = error, 2 = input decode error or usage error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/q2019715/jieci-dictionary/internal/app"
	"github.com/q2019715/jieci-dictionary/internal/app/converter"
	"github.com/q2019715/jieci-dictionary/internal/config"
	"github.com/q2019715/jieci-dictionary/pkg/ctxutil"
)

const toolName = "wordlist-convert"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks a flag value rejected after parsing.
type usageError struct{ error }

func run(args []string, stdout, stderr io.Writer) int {
	var (
		encoding   string
		chunkSize  int
		configPath string
		started    bool
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cobra.Command{
		Use:   toolName + " INPUT OUTPUT",
		Short: "Convert a mixed-shape JSON word list into canonical entries",
		Long: `wordlist-convert reads a JSON array of word entries incrementally, maps
each entry onto the canonical {word, translations, phrases} shape, and writes
the result as a pretty-printed JSON array. Entries without a word are dropped.`,
		Args:          cobra.ExactArgs(2),
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started = true

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("encoding") {
				cfg.Converter.Encoding = encoding
			}
			if cmd.Flags().Changed("chunk-size") {
				if chunkSize < 1 {
					return usageError{fmt.Errorf("--chunk-size must be at least 1, got %d", chunkSize)}
				}
				cfg.Converter.ChunkSize = chunkSize
			}

			runCtx := ctxutil.WithTool(cmd.Context(), toolName)
			runCtx = ctxutil.WithRunID(runCtx, uuid.New())
			logger := app.NewLogger(runCtx, cfg.Log)

			result, err := converter.Run(runCtx, args[0], args[1], converter.Options{
				Encoding:  cfg.Converter.Encoding,
				ChunkSize: cfg.Converter.ChunkSize,
			}, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "converted %d entries -> %s\n", result.Written, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", "", "input text encoding (default utf-8)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "bytes read from the input per refill (default 65536)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config YAML")

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var decErr *converter.DecodeError
	var usageErr usageError
	switch {
	case errors.As(err, &decErr):
		fmt.Fprintf(stderr, "%s: cannot decode input as %s: %v\n", toolName, decErr.Encoding, decErr.Err)
		fmt.Fprintf(stderr, "hint: retry with a different --encoding, for example utf-8-sig, gbk or gb18030\n")
		return 2
	case !started, errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", toolName)
		return 2
	default:
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		return 1
	}
}
