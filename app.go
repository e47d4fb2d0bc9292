package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"slangclip/internal/bootstrap"
	"slangclip/internal/domain"
	"slangclip/internal/host"
	"slangclip/internal/host/keystroke"
	"slangclip/internal/host/shortcut"
	"slangclip/internal/usecase"
)

const (
	eventState     = "slangclip:state"
	eventChunk     = "slangclip:chunk"
	eventComplete  = "slangclip:complete"
	eventError     = "slangclip:error"
	eventShow      = "slangclip:show"
	eventClipboard = "slangclip:clipboard"
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	services   bootstrap.Services
	controller *usecase.TranslationController
	paster     *host.KeystrokePaster
	bounds     host.Bounds
	toggle     *host.Toggle
	hotkey     *shortcut.Listener
	stopWatch  context.CancelFunc
	logger     *slog.Logger
	bootErr    error
}

func NewApp() *App {
	return &App{logger: slog.Default()}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	clipboard := &wailsClipboard{}
	keys := keystroke.New()
	services, err := bootstrap.Build(bootstrap.Host{
		Events:    a,
		Clipboard: clipboard,
		Focus:     focusReleaser{app: a},
		Keys:      keys,
	})
	if err != nil {
		a.bootErr = err
		a.TranslationError(domain.ErrorCodeStartup, err.Error())
		return
	}

	cfg := services.Config
	a.services = services
	a.controller = services.Controller
	a.logger = services.Logger
	a.paster = services.Paster
	keys.Warm()
	a.bounds = host.Bounds{
		Min: host.Size{Width: cfg.Window.MinWidth, Height: cfg.Window.MinHeight},
		Max: host.Size{Width: cfg.Window.MaxWidth, Height: cfg.Window.MaxHeight},
	}
	a.toggle = host.NewToggle(wailsWindow{app: a}, true, func() {
		runtime.EventsEmit(a.ctx, eventShow)
	})

	if cfg.Host.HotkeyEnabled {
		listener, err := shortcut.ListenToggle(func() { a.toggle.Toggle() }, a.logger)
		if err != nil {
			a.logger.Warn("global hotkey unavailable", "error", err)
			a.TranslationError(domain.ErrorCodeHotkey, err.Error())
		} else {
			a.hotkey = listener
		}
	}

	if cfg.Host.ClipboardWatch {
		watchCtx, cancel := context.WithCancel(ctx)
		a.stopWatch = cancel
		watcher := host.NewClipboardWatcher(clipboard, cfg.Host.ClipboardPoll(), func(text string) {
			runtime.EventsEmit(a.ctx, eventClipboard, map[string]string{"text": text})
		}, a.logger)
		go watcher.Run(watchCtx)
	}

	a.TranslationStateChanged(domain.TranslationStateIdle, domain.ReasonReady)
}

func (a *App) shutdown(_ context.Context) {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.hotkey != nil {
		if err := a.hotkey.Close(); err != nil {
			a.logger.Warn("unregister hotkey", "error", err)
		}
	}
	if err := a.services.Close(); err != nil {
		a.logger.Error("close settings store", "error", err)
	}
}

// Translate translates text with the stored settings, streaming chunks as events.
func (a *App) Translate(text string) (domain.TranslateResult, error) {
	if err := a.requireReady(); err != nil {
		return domain.TranslateResult{}, err
	}
	return a.controller.Translate(a.ctx, text)
}

// CancelTranslation aborts the in-flight translation, if any.
func (a *App) CancelTranslation() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.controller.Cancel(); err != nil && !errors.Is(err, usecase.ErrNoActiveTranslation) {
		return err
	}
	return nil
}

// GetStatus returns the current translation status.
func (a *App) GetStatus() domain.Status {
	if a.controller == nil {
		if a.bootErr != nil {
			return domain.Status{State: domain.TranslationStateFailed, Active: false, Message: a.bootErr.Error()}
		}
		return domain.Status{State: domain.TranslationStateIdle, Active: false}
	}
	return a.controller.Status()
}

// ListModels returns the model list for the stored provider and key.
func (a *App) ListModels() ([]string, error) {
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	return a.controller.ListModels(a.ctx)
}

func (a *App) GetSettings() (domain.Settings, error) {
	if err := a.requireReady(); err != nil {
		return domain.Settings{}, err
	}
	return a.controller.Settings(a.ctx)
}

func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	if err := a.requireReady(); err != nil {
		return domain.Settings{}, err
	}
	saved, err := a.controller.SaveSettings(a.ctx, settings)
	if err != nil {
		a.TranslationError(domain.ErrorCodeSettings, err.Error())
		return domain.Settings{}, err
	}
	return saved, nil
}

func (a *App) GetHistory() ([]domain.HistoryItem, error) {
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	return a.controller.History(a.ctx)
}

func (a *App) ClearHistory() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.controller.ClearHistory(a.ctx)
}

// UseHistoryItem pastes a stored translation into the previous application.
func (a *App) UseHistoryItem(id string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.controller.UseHistoryItem(a.ctx, id); err != nil {
		a.TranslationError(domain.ErrorCodePaste, err.Error())
		return err
	}
	return nil
}

// PasteText writes text to the clipboard and pastes it into the previous application.
func (a *App) PasteText(text string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.paster.Paste(a.ctx, text); err != nil {
		a.TranslationError(domain.ErrorCodePaste, err.Error())
		return err
	}
	return nil
}

// GetClipboardText returns the current clipboard text.
func (a *App) GetClipboardText() (string, error) {
	if a.ctx == nil {
		return "", fmt.Errorf("application is not initialized")
	}
	text, err := runtime.ClipboardGetText(a.ctx)
	if err != nil {
		a.TranslationError(domain.ErrorCodeClipboard, err.Error())
		return "", err
	}
	return text, nil
}

func (a *App) HideWindow() {
	if a.ctx == nil {
		return
	}
	runtime.WindowHide(a.ctx)
	if a.toggle != nil {
		a.toggle.SetVisible(false)
	}
}

// MinimizeWindow minimises the window. The toggle hotkey treats a
// minimised window as hidden.
func (a *App) MinimizeWindow() {
	if a.toggle != nil {
		a.toggle.SetVisible(false)
	}
	if a.ctx == nil {
		return
	}
	runtime.WindowMinimise(a.ctx)
}

// ResizeWindow rounds and clamps the requested size, applies it and returns it.
func (a *App) ResizeWindow(width, height float64) host.Size {
	size := a.bounds.Clamp(width, height)
	if a.ctx != nil {
		runtime.WindowSetSize(a.ctx, size.Width, size.Height)
	}
	return size
}

// SetView sizes the window for one of the UI screens.
func (a *App) SetView(view string) host.Size {
	size := host.ViewSize(domain.View(view))
	return a.ResizeWindow(float64(size.Width), float64(size.Height))
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	cfg := a.services.Config
	hotkey := ""
	if a.hotkey != nil {
		hotkey = shortcut.Label()
	}
	return map[string]string{
		"hotkey":      hotkey,
		"configFile":  cfg.Path,
		"storage":     cfg.Storage.Path,
		"openaiBase":  cfg.OpenAI.APIBaseURL,
		"geminiBase":  cfg.Gemini.APIBaseURL,
		"pasteDelay":  cfg.Host.PasteDelay().String(),
		"historySize": fmt.Sprint(domain.HistoryLimit),
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// TranslationStateChanged emits translation lifecycle updates to the frontend.
func (a *App) TranslationStateChanged(state domain.TranslationState, reason domain.TranslationReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventState, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": reasonMessage(reason),
	})
}

// TranslationChunk emits one streamed fragment.
func (a *App) TranslationChunk(chunk string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventChunk, map[string]string{"text": chunk})
}

// TranslationComplete emits the finished translation.
func (a *App) TranslationComplete(result domain.TranslateResult) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventComplete, result)
}

// TranslationError emits backend errors to the UI.
func (a *App) TranslationError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func reasonMessage(reason domain.TranslationReason) string {
	switch reason {
	case domain.ReasonReady:
		return "Ready"
	case domain.ReasonRequestSent:
		return "Translating..."
	case domain.ReasonFirstChunk:
		return "Receiving translation"
	case domain.ReasonResultPasted:
		return "Translation pasted"
	case domain.ReasonResultReady:
		return "Translation ready"
	case domain.ReasonResultReadyPasteFailed:
		return "Translation ready (auto-paste failed)"
	case domain.ReasonInvalidInput:
		return "Nothing to translate"
	case domain.ReasonProviderFailed:
		return "Translation failed"
	case domain.ReasonCancelled:
		return "Translation cancelled"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeValidation:
		// Validation messages are written for the user already.
		if detail != "" {
			return detail
		}
		return "Invalid input"
	case domain.ErrorCodeProvider:
		return "Provider error"
	case domain.ErrorCodeSettings:
		return "Settings could not be saved"
	case domain.ErrorCodeClipboard:
		return "Clipboard read failed"
	case domain.ErrorCodePaste:
		return "Paste failed"
	case domain.ErrorCodeHotkey:
		return "Global hotkey unavailable"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}

type wailsClipboard struct{}

func (c *wailsClipboard) GetText(ctx context.Context) (string, error) {
	return runtime.ClipboardGetText(ctx)
}

func (c *wailsClipboard) SetText(ctx context.Context, text string) error {
	return runtime.ClipboardSetText(ctx, text)
}

type wailsWindow struct {
	app *App
}

func (w wailsWindow) Show() {
	runtime.WindowUnminimise(w.app.ctx)
	runtime.WindowShow(w.app.ctx)
	runtime.WindowSetAlwaysOnTop(w.app.ctx, true)
}

func (w wailsWindow) Hide() {
	runtime.WindowHide(w.app.ctx)
}

// focusReleaser hides the window so the previously focused application
// receives the paste shortcut.
type focusReleaser struct {
	app *App
}

func (f focusReleaser) ReleaseFocus(_ context.Context) error {
	if f.app.ctx == nil {
		return fmt.Errorf("application is not initialized")
	}
	f.app.HideWindow()
	return nil
}
