package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appDirName = "slangclip"

// Config stores runtime configuration. Values come from built-in defaults,
// then the optional TOML file, then environment variables.
type Config struct {
	OpenAI  ProviderConfig `toml:"openai"`
	Gemini  ProviderConfig `toml:"gemini"`
	Storage StorageConfig  `toml:"storage"`
	Window  WindowConfig   `toml:"window"`
	Host    HostConfig     `toml:"host"`
	Log     LogConfig      `toml:"log"`

	// Path is the config file that was read, empty when none existed.
	Path string `toml:"-"`
}

type ProviderConfig struct {
	APIBaseURL   string `toml:"api_base_url"`
	DefaultModel string `toml:"default_model"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type WindowConfig struct {
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

type HostConfig struct {
	HotkeyEnabled       bool `toml:"hotkey_enabled"`
	PasteDelayMS        int  `toml:"paste_delay_ms"`
	ClipboardWatch      bool `toml:"clipboard_watch"`
	ClipboardPollMS     int  `toml:"clipboard_poll_ms"`
	NotificationsEnable bool `toml:"notifications"`
}

// PasteDelay is the pause between releasing focus and sending the paste keystroke.
func (h HostConfig) PasteDelay() time.Duration {
	return time.Duration(h.PasteDelayMS) * time.Millisecond
}

// ClipboardPoll is the clipboard watcher interval.
func (h HostConfig) ClipboardPoll() time.Duration {
	return time.Duration(h.ClipboardPollMS) * time.Millisecond
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Defaults returns the built-in configuration rooted at dir.
func Defaults(dir string) Config {
	return Config{
		OpenAI: ProviderConfig{
			APIBaseURL:   "https://api.openai.com/v1",
			DefaultModel: "gpt-3.5-turbo",
		},
		Gemini: ProviderConfig{
			APIBaseURL:   "https://generativelanguage.googleapis.com",
			DefaultModel: "gemini-1.5-flash",
		},
		Storage: StorageConfig{Path: filepath.Join(dir, "settings.db")},
		Window: WindowConfig{
			Width:     300,
			Height:    200,
			MinWidth:  250,
			MinHeight: 150,
			MaxWidth:  600,
			MaxHeight: 800,
		},
		Host: HostConfig{
			HotkeyEnabled:       true,
			PasteDelayMS:        100,
			ClipboardWatch:      true,
			ClipboardPollMS:     500,
			NotificationsEnable: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load resolves configuration from defaults, the config file and the environment.
func Load() (Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Config{}, errors.New("could not determine config directory")
	}
	dir := filepath.Join(base, appDirName)
	cfg := Defaults(dir)

	path := envOrDefault("SLANGCLIP_CONFIG", filepath.Join(dir, "config.toml"))
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		cfg.Path = path
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.OpenAI.APIBaseURL = envOrDefault("OPENAI_API_BASE", cfg.OpenAI.APIBaseURL)
	cfg.OpenAI.DefaultModel = envOrDefault("SLANGCLIP_OPENAI_MODEL", cfg.OpenAI.DefaultModel)
	cfg.Gemini.APIBaseURL = envOrDefault("GEMINI_API_BASE", cfg.Gemini.APIBaseURL)
	cfg.Gemini.DefaultModel = envOrDefault("SLANGCLIP_GEMINI_MODEL", cfg.Gemini.DefaultModel)
	cfg.Storage.Path = envOrDefault("SLANGCLIP_DB", cfg.Storage.Path)
	cfg.Host.HotkeyEnabled = envOrDefaultBool("SLANGCLIP_HOTKEY", cfg.Host.HotkeyEnabled)
	cfg.Host.PasteDelayMS = envOrDefaultInt("SLANGCLIP_PASTE_DELAY_MS", cfg.Host.PasteDelayMS)
	cfg.Host.ClipboardWatch = envOrDefaultBool("SLANGCLIP_CLIPBOARD_WATCH", cfg.Host.ClipboardWatch)
	cfg.Host.ClipboardPollMS = envOrDefaultInt("SLANGCLIP_CLIPBOARD_POLL_MS", cfg.Host.ClipboardPollMS)
	cfg.Host.NotificationsEnable = envOrDefaultBool("SLANGCLIP_NOTIFICATIONS", cfg.Host.NotificationsEnable)
	cfg.Log.Level = envOrDefault("SLANGCLIP_LOG_LEVEL", cfg.Log.Level)

	cfg.clamp()
	return cfg, nil
}

func (c *Config) clamp() {
	d := Defaults("")

	c.OpenAI.APIBaseURL = strings.TrimRight(firstNonEmpty(c.OpenAI.APIBaseURL, d.OpenAI.APIBaseURL), "/")
	c.Gemini.APIBaseURL = strings.TrimRight(firstNonEmpty(c.Gemini.APIBaseURL, d.Gemini.APIBaseURL), "/")

	if c.Window.MinWidth <= 0 {
		c.Window.MinWidth = d.Window.MinWidth
	}
	if c.Window.MinHeight <= 0 {
		c.Window.MinHeight = d.Window.MinHeight
	}
	if c.Window.MaxWidth < c.Window.MinWidth {
		c.Window.MaxWidth = max(d.Window.MaxWidth, c.Window.MinWidth)
	}
	if c.Window.MaxHeight < c.Window.MinHeight {
		c.Window.MaxHeight = max(d.Window.MaxHeight, c.Window.MinHeight)
	}
	c.Window.Width = min(max(c.Window.Width, c.Window.MinWidth), c.Window.MaxWidth)
	c.Window.Height = min(max(c.Window.Height, c.Window.MinHeight), c.Window.MaxHeight)

	if c.Host.PasteDelayMS < 0 {
		c.Host.PasteDelayMS = d.Host.PasteDelayMS
	}
	if c.Host.ClipboardPollMS < 50 {
		c.Host.ClipboardPollMS = d.Host.ClipboardPollMS
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
