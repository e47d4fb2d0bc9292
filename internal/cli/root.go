// Package cli is the headless command line front end. It shares the
// settings store, providers and controller with the desktop app.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"slangclip/internal/bootstrap"
	"slangclip/internal/domain"
	"slangclip/internal/host"
	"slangclip/internal/ports"
)

var version = "0.1.0"

// Runtime holds the collaborators commands are built from.
type Runtime struct {
	Build     func(bootstrap.Host) (bootstrap.Services, error)
	Clipboard ports.Clipboard
	// LogLevel keeps library logging off the terminal unless asked for.
	LogLevel string
}

// DefaultRuntime uses the real service graph and the system clipboard.
func DefaultRuntime() Runtime {
	return Runtime{Build: bootstrap.Build, Clipboard: host.SystemClipboard{}, LogLevel: "warn"}
}

// NewRootCommand assembles the command tree.
func NewRootCommand(rt Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "slangclip-cli",
		Short: "Translate Chinese text into natural American English",
		Long: `Translate Chinese text into casual, neutral or formal American English
using OpenAI or Gemini. Settings and history are shared with the desktop app.

Use "slangclip-cli translate --help" for translation options.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newTranslateCommand(rt),
		newModelsCommand(rt),
		newHistoryCommand(rt),
		newSettingsCommand(rt),
	)
	return root
}

func (rt Runtime) services(events ports.EventSink) (bootstrap.Services, error) {
	if events == nil {
		events = discardEvents{}
	}
	services, err := rt.Build(bootstrap.Host{Events: events, Clipboard: rt.Clipboard, LogLevel: rt.LogLevel})
	if err != nil {
		return bootstrap.Services{}, fmt.Errorf("failed to start: %w", err)
	}
	return services, nil
}

// streamEvents prints translation chunks as they arrive.
type streamEvents struct {
	out     io.Writer
	verbose io.Writer
}

func (s streamEvents) TranslationStateChanged(state domain.TranslationState, reason domain.TranslationReason) {
	if s.verbose != nil {
		fmt.Fprintf(s.verbose, "[%s] %s\n", state, reason)
	}
}

func (s streamEvents) TranslationChunk(chunk string) {
	fmt.Fprint(s.out, chunk)
}

func (s streamEvents) TranslationComplete(_ domain.TranslateResult) {
	fmt.Fprintln(s.out)
}

// Errors are returned from the command and printed once by cobra.
func (s streamEvents) TranslationError(_ domain.ErrorCode, _ string) {}

type discardEvents struct{}

func (discardEvents) TranslationStateChanged(_ domain.TranslationState, _ domain.TranslationReason) {}
func (discardEvents) TranslationChunk(_ string)                                                   {}
func (discardEvents) TranslationComplete(_ domain.TranslateResult)                                {}
func (discardEvents) TranslationError(_ domain.ErrorCode, _ string)                               {}

func maskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}
