package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"slangclip/internal/domain"
	"slangclip/internal/usecase"
)

type translateOptions struct {
	fromClipboard bool
	provider      string
	model         string
	tone          string
	apiKey        string
	copyResult    bool
	noHistory     bool
	verbose       bool
}

func newTranslateCommand(rt Runtime) *cobra.Command {
	var opts translateOptions

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text and stream the result",
		Long: `Translate Chinese text and stream the English result to stdout.

Text is taken from the arguments, from the clipboard with --clipboard,
or from stdin. Flags override the stored settings for this call only.
The API key can also be given with SLANGCLIP_API_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.Context(), rt, cmd.InOrStdin(), args, opts.fromClipboard)
			if err != nil {
				return err
			}

			events := streamEvents{out: cmd.OutOrStdout()}
			if opts.verbose {
				events.verbose = cmd.ErrOrStderr()
				rt.LogLevel = "debug"
			}
			services, err := rt.services(events)
			if err != nil {
				return err
			}
			defer services.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			apiKey := opts.apiKey
			if apiKey == "" {
				apiKey = strings.TrimSpace(os.Getenv("SLANGCLIP_API_KEY"))
			}
			copyResult := opts.copyResult
			_, err = services.Controller.TranslateWith(ctx, text, usecase.Overrides{
				APIKey:      apiKey,
				Provider:    domain.Provider(opts.provider),
				Model:       opts.model,
				Tone:        domain.Tone(opts.tone),
				AutoPaste:   &copyResult,
				SkipHistory: opts.noHistory,
			})
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "\ncancelled")
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.fromClipboard, "clipboard", false, "translate the current clipboard text")
	f.StringVar(&opts.provider, "provider", "", "provider: openai or gemini (default: stored setting)")
	f.StringVar(&opts.model, "model", "", "model name (default: stored setting)")
	f.StringVar(&opts.tone, "tone", "", "tone: casual, neutral or formal (default: stored setting)")
	f.StringVar(&opts.apiKey, "api-key", "", "API key (default: SLANGCLIP_API_KEY or stored setting)")
	f.BoolVar(&opts.copyResult, "copy", false, "copy the result to the clipboard")
	f.BoolVar(&opts.noHistory, "no-history", false, "do not record this translation in history")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print state transitions to stderr")
	return cmd
}

func readInput(ctx context.Context, rt Runtime, stdin io.Reader, args []string, fromClipboard bool) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case fromClipboard:
		if rt.Clipboard == nil {
			return "", errors.New("clipboard is not available")
		}
		text, err := rt.Clipboard.GetText(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return text, nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}
