package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
)

var (
	ErrTranslationInFlight = errors.New("a translation is already in progress")
	ErrNoActiveTranslation = errors.New("no translation in progress")
	ErrNoHistoryItem       = errors.New("history item not found")
)

// PipelineRunner runs one translation request while reporting its lifecycle.
type PipelineRunner interface {
	Run(ctx context.Context, req domain.TranslationRequest, onChunk ports.ChunkFunc, onState StateFunc) (string, error)
}

// Config controls controller behavior.
type Config struct {
	HistoryLimit int
}

// Deps groups the collaborators of TranslationController.
type Deps struct {
	Pipeline PipelineRunner
	Models   ports.ModelLister
	Store    ports.SettingsStore
	Paster   ports.Paster
	Notifier ports.Notifier
	Events   ports.EventSink
	Logger   *slog.Logger
}

// TranslationController is the entry point the UI shell and the CLI use: it
// resolves stored settings into a request, guards against re-entrant
// submission, relays progress to the event sink and records the result.
type TranslationController struct {
	pipeline  PipelineRunner
	models    ports.ModelLister
	store     ports.SettingsStore
	paster    ports.Paster
	events    ports.EventSink
	logger    *slog.Logger
	finalizer resultFinalizer

	storeMu *sync.Mutex

	mu      sync.Mutex
	current *activeTranslation
}

func NewTranslationController(deps Deps, cfg Config) *TranslationController {
	if cfg.HistoryLimit <= 0 || cfg.HistoryLimit > domain.HistoryLimit {
		cfg.HistoryLimit = domain.HistoryLimit
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	storeMu := &sync.Mutex{}

	return &TranslationController{
		pipeline: deps.Pipeline,
		models:   deps.Models,
		store:    deps.Store,
		paster:   deps.Paster,
		events:   deps.Events,
		logger:   logger,
		storeMu:  storeMu,
		finalizer: resultFinalizer{
			store:        deps.Store,
			paster:       deps.Paster,
			notifier:     deps.Notifier,
			events:       deps.Events,
			logger:       logger,
			storeMu:      storeMu,
			historyLimit: cfg.HistoryLimit,
			now:          time.Now,
			newID:        uuid.NewString,
		},
	}
}

// Overrides replaces stored settings for a single translation. Zero fields
// keep the stored value.
type Overrides struct {
	APIKey      string
	Provider    domain.Provider
	Model       string
	Tone        domain.Tone
	AutoPaste   *bool
	SkipHistory bool
}

func (o Overrides) apply(settings domain.Settings) domain.Settings {
	if o.APIKey != "" {
		settings.APIKey = o.APIKey
	}
	if o.Provider != "" {
		settings.Provider = domain.ParseProvider(string(o.Provider))
	}
	if o.Model != "" {
		settings.Model = o.Model
	}
	if o.Tone != "" {
		settings.Tone = domain.ParseTone(string(o.Tone))
	}
	if o.AutoPaste != nil {
		settings.AutoPaste = *o.AutoPaste
	}
	return settings
}

// Translate translates text with the stored provider, model, tone and key.
func (c *TranslationController) Translate(ctx context.Context, text string) (domain.TranslateResult, error) {
	return c.TranslateWith(ctx, text, Overrides{})
}

// TranslateWith is Translate with per-call overrides of the stored settings.
func (c *TranslationController) TranslateWith(ctx context.Context, text string, o Overrides) (domain.TranslateResult, error) {
	active, err := c.begin(ctx)
	if err != nil {
		return domain.TranslateResult{}, err
	}
	defer c.release(active)

	settings, err := c.loadSettings(ctx)
	if err != nil {
		c.events.TranslationError(domain.ErrorCodeSettings, err.Error())
		c.finish(active, domain.TranslationStateFailed, domain.ReasonInvalidInput)
		return domain.TranslateResult{}, err
	}
	settings = o.apply(settings)

	req := domain.TranslationRequest{
		Text:     text,
		APIKey:   settings.APIKey,
		Provider: settings.Provider,
		Model:    settings.Model,
		Tone:     settings.Tone,
	}

	onChunk := func(chunk string) {
		active.accumulator.Add(chunk)
		c.events.TranslationChunk(chunk)
	}
	onState := func(state domain.TranslationState) {
		active.setState(state)
		switch state {
		case domain.TranslationStatePending:
			c.events.TranslationStateChanged(state, domain.ReasonRequestSent)
		case domain.TranslationStateStreaming:
			c.events.TranslationStateChanged(state, domain.ReasonFirstChunk)
		}
	}

	translated, err := c.pipeline.Run(active.ctx, req, onChunk, onState)
	if err != nil {
		c.reportFailure(active, err)
		return domain.TranslateResult{}, err
	}

	result, reason := c.finalizer.Finalize(ctx, req, translated, settings.AutoPaste, !o.SkipHistory)
	c.events.TranslationComplete(result)
	c.finish(active, domain.TranslationStateComplete, reason)
	return result, nil
}

// Cancel aborts the in-flight translation. Chunks that arrive afterwards are dropped.
func (c *TranslationController) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ErrNoActiveTranslation
	}
	c.current.cancel()
	return nil
}

// Status returns the current backend status.
func (c *TranslationController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return domain.Status{State: domain.TranslationStateIdle, Active: false}
	}
	return domain.Status{
		State:   c.current.getState(),
		Active:  true,
		Partial: c.current.accumulator.Partial(),
	}
}

// ListModels returns the advisory model list for the stored provider. When
// the stored model is empty or not offered, the first listed model is
// selected and persisted.
func (c *TranslationController) ListModels(ctx context.Context) ([]string, error) {
	settings, err := c.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	models := c.models.ListModels(ctx, settings.Provider, settings.APIKey)
	if len(models) == 0 || (settings.Model != "" && slices.Contains(models, settings.Model)) {
		return models, nil
	}

	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	latest, err := c.store.Load(ctx)
	if err != nil {
		return models, nil
	}
	latest.Model = models[0]
	if err := c.store.Save(ctx, latest); err != nil {
		c.logger.Warn("failed to persist selected model", "error", err)
	}
	return models, nil
}

// Settings returns the stored preferences.
func (c *TranslationController) Settings(ctx context.Context) (domain.Settings, error) {
	return c.loadSettings(ctx)
}

// SaveSettings persists preferences. History is owned by the controller and
// is never overwritten from here.
func (c *TranslationController) SaveSettings(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	current, err := c.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	current.APIKey = in.APIKey
	current.Provider = in.Provider
	current.Model = in.Model
	current.Tone = in.Tone
	current.AutoPaste = in.AutoPaste
	current = current.Normalize()

	if err := c.store.Save(ctx, current); err != nil {
		return domain.Settings{}, err
	}
	return current, nil
}

// History returns the stored translations, newest first.
func (c *TranslationController) History(ctx context.Context) ([]domain.HistoryItem, error) {
	settings, err := c.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	return settings.History, nil
}

// ClearHistory removes every stored translation.
func (c *TranslationController) ClearHistory(ctx context.Context) error {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	settings, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	settings.History = []domain.HistoryItem{}
	return c.store.Save(ctx, settings)
}

// UseHistoryItem pastes a previous translation.
func (c *TranslationController) UseHistoryItem(ctx context.Context, id string) error {
	history, err := c.History(ctx)
	if err != nil {
		return err
	}
	item, ok := domain.FindHistory(history, id)
	if !ok {
		return ErrNoHistoryItem
	}
	return c.paster.Paste(ctx, item.Translated)
}

func (c *TranslationController) loadSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := c.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return settings.Normalize(), nil
}

func (c *TranslationController) begin(ctx context.Context) (*activeTranslation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return nil, ErrTranslationInFlight
	}

	translationCtx, cancel := context.WithCancel(ctx)
	active := &activeTranslation{
		ctx:         translationCtx,
		cancel:      cancel,
		state:       domain.TranslationStatePending,
		accumulator: newStreamAccumulator(),
	}
	c.current = active
	return active, nil
}

func (c *TranslationController) release(active *activeTranslation) {
	active.cancel()

	c.mu.Lock()
	if c.current == active {
		c.current = nil
	}
	c.mu.Unlock()
}

func (c *TranslationController) finish(active *activeTranslation, state domain.TranslationState, reason domain.TranslationReason) {
	active.setState(state)
	c.events.TranslationStateChanged(state, reason)
}

func (c *TranslationController) reportFailure(active *activeTranslation, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.events.TranslationError(domain.ErrorCodeValidation, validationErr.Error())
		c.finish(active, domain.TranslationStateFailed, domain.ReasonInvalidInput)
	case errors.Is(err, context.Canceled):
		c.finish(active, domain.TranslationStateFailed, domain.ReasonCancelled)
	default:
		c.events.TranslationError(domain.ErrorCodeProvider, err.Error())
		c.finish(active, domain.TranslationStateFailed, domain.ReasonProviderFailed)
	}
}
