package bootstrap

import (
	"log/slog"
	"os"

	"slangclip/internal/config"
	"slangclip/internal/domain"
	"slangclip/internal/host"
	"slangclip/internal/logging"
	"slangclip/internal/ports"
	"slangclip/internal/providers"
	"slangclip/internal/providers/gemini"
	"slangclip/internal/providers/openai"
	"slangclip/internal/settings"
	"slangclip/internal/usecase"
)

// Host is what the running shell contributes to the graph.
type Host struct {
	Events    ports.EventSink
	Clipboard ports.Clipboard
	// Focus and Keys are optional. Without Keys, pasting only writes the clipboard.
	Focus host.FocusReleaser
	Keys  host.Keystroker
	// LogLevel overrides the configured level when set.
	LogLevel string
}

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.TranslationController
	Adapter    *providers.Adapter
	Store      *settings.Store
	Paster     *host.KeystrokePaster
	Notifier   host.DesktopNotifier
	Config     config.Config
	Logger     *slog.Logger
}

// Close releases resources opened by Build.
func (s Services) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// Build wires all backend dependencies for the current runtime.
func Build(h Host) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}
	if h.LogLevel != "" {
		cfg.Log.Level = h.LogLevel
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)

	store, err := settings.Open(cfg.Storage.Path)
	if err != nil {
		return Services{}, err
	}

	adapter := providers.NewAdapter(map[domain.Provider]ports.TranslationProvider{
		domain.ProviderOpenAI: openai.NewProvider(openai.Config{
			APIBaseURL:   cfg.OpenAI.APIBaseURL,
			DefaultModel: cfg.OpenAI.DefaultModel,
		}),
		domain.ProviderGemini: gemini.NewProvider(gemini.Config{
			APIBaseURL:   cfg.Gemini.APIBaseURL,
			DefaultModel: cfg.Gemini.DefaultModel,
		}),
	}, logger)

	notifier := host.DesktopNotifier{Enabled: cfg.Host.NotificationsEnable}
	paster := host.NewKeystrokePaster(h.Clipboard, h.Focus, h.Keys, cfg.Host.PasteDelay(), logger)

	controller := usecase.NewTranslationController(usecase.Deps{
		Pipeline: usecase.NewPipeline(adapter, logger),
		Models:   adapter,
		Store:    store,
		Paster:   paster,
		Notifier: notifier,
		Events:   h.Events,
		Logger:   logger,
	}, usecase.Config{HistoryLimit: domain.HistoryLimit})

	logger.Debug("services ready",
		"config", cfg.Path,
		"storage", cfg.Storage.Path,
	)

	return Services{
		Controller: controller,
		Adapter:    adapter,
		Store:      store,
		Paster:     paster,
		Notifier:   notifier,
		Config:     cfg,
		Logger:     logger,
	}, nil
}
