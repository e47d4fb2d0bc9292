package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"slangclip/internal/domain"
	"slangclip/internal/host"
)

func TestReasonMessage(t *testing.T) {
	t.Parallel()

	cases := map[domain.TranslationReason]string{
		domain.ReasonReady:                  "Ready",
		domain.ReasonRequestSent:            "Translating...",
		domain.ReasonFirstChunk:             "Receiving translation",
		domain.ReasonResultPasted:           "Translation pasted",
		domain.ReasonResultReady:            "Translation ready",
		domain.ReasonResultReadyPasteFailed: "Translation ready (auto-paste failed)",
		domain.ReasonInvalidInput:           "Nothing to translate",
		domain.ReasonProviderFailed:         "Translation failed",
		domain.ReasonCancelled:              "Translation cancelled",
	}

	for reason, want := range cases {
		t.Run(string(reason), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, want, reasonMessage(reason))
		})
	}

	require.Empty(t, reasonMessage("unknown"))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	cases := map[domain.ErrorCode]string{
		domain.ErrorCodeStartup:   "Startup failed",
		domain.ErrorCodeProvider:  "Provider error",
		domain.ErrorCodeSettings:  "Settings could not be saved",
		domain.ErrorCodeClipboard: "Clipboard read failed",
		domain.ErrorCodePaste:     "Paste failed",
		domain.ErrorCodeHotkey:    "Global hotkey unavailable",
	}
	for code, want := range cases {
		t.Run(string(code), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, want, errorMessage(code, "ignored"))
		})
	}

	require.Equal(t, "API Key is missing", errorMessage(domain.ErrorCodeValidation, "API Key is missing"))
	require.Equal(t, "detail", errorMessage("unknown", "detail"))
	require.Equal(t, "Unknown error", errorMessage("unknown", ""))
}

func TestRequireReady(t *testing.T) {
	t.Parallel()

	app := &App{}
	require.Error(t, app.requireReady())

	bootErr := errors.New("boot")
	app.bootErr = bootErr
	require.ErrorIs(t, app.requireReady(), bootErr)

	_, err := app.Translate("你好")
	require.ErrorIs(t, err, bootErr)
}

func TestGetStatusWhenNotInitialized(t *testing.T) {
	t.Parallel()

	app := NewApp()
	status := app.GetStatus()
	require.Equal(t, domain.TranslationStateIdle, status.State)
	require.False(t, status.Active)

	app.bootErr = errors.New("boot")
	status = app.GetStatus()
	require.Equal(t, domain.TranslationStateFailed, status.State)
	require.False(t, status.Active)
	require.Equal(t, "boot", status.Message)
}

func TestResizeWindowClampsWithoutRuntime(t *testing.T) {
	t.Parallel()

	app := NewApp()
	app.bounds = host.Bounds{Min: host.Size{Width: 250, Height: 150}, Max: host.Size{Width: 600, Height: 800}}

	require.Equal(t, host.Size{Width: 250, Height: 800}, app.ResizeWindow(100.4, 1000))
	require.Equal(t, host.Size{Width: 400, Height: 500}, app.SetView(string(domain.ViewHistory)))
}

type recordingWindow struct {
	shows, hides int
}

func (w *recordingWindow) Show() { w.shows++ }
func (w *recordingWindow) Hide() { w.hides++ }

func TestMinimizedWindowReturnsOnFirstToggle(t *testing.T) {
	t.Parallel()

	window := &recordingWindow{}
	shown := 0
	app := NewApp()
	app.toggle = host.NewToggle(window, true, func() { shown++ })

	app.MinimizeWindow()
	require.False(t, app.toggle.Visible())

	app.toggle.Toggle()
	require.Equal(t, 1, window.shows)
	require.Zero(t, window.hides)
	require.Equal(t, 1, shown)
	require.True(t, app.toggle.Visible())
}

func TestEventSinkWithoutRuntimeIsNoop(t *testing.T) {
	t.Parallel()

	app := NewApp()
	app.TranslationStateChanged(domain.TranslationStatePending, domain.ReasonRequestSent)
	app.TranslationChunk("x")
	app.TranslationComplete(domain.TranslateResult{})
	app.TranslationError(domain.ErrorCodeProvider, "x")
	app.HideWindow()
	app.MinimizeWindow()

	_, err := app.GetClipboardText()
	require.Error(t, err)
}

func TestShowHandlerPrefillsFromClipboard(t *testing.T) {
	t.Parallel()

	page, err := assets.ReadFile("frontend/dist/index.html")
	require.NoError(t, err)

	html := string(page)
	start := strings.Index(html, `runtime.EventsOn("`+eventShow+`"`)
	require.NotEqual(t, -1, start, "no %s handler", eventShow)
	handler := html[start:]
	handler = handler[:strings.Index(handler, "});")]
	require.Contains(t, handler, "GetClipboardText()")
	require.Contains(t, handler, `$("input").value`)
}
