package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	"slangclip/internal/config"
	"slangclip/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Startup reports config errors to the UI; the window still needs a size.
	cfg, err := config.Load()
	if err != nil {
		dir, _ := os.UserConfigDir()
		cfg = config.Defaults(dir)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level))

	app := NewApp()

	err = wails.Run(&options.App{
		Title:            "SlangClip",
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		MinWidth:         cfg.Window.MinWidth,
		MinHeight:        cfg.Window.MinHeight,
		MaxWidth:         cfg.Window.MaxWidth,
		MaxHeight:        cfg.Window.MaxHeight,
		Frameless:        true,
		AlwaysOnTop:      true,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		LogLevel:   logging.WailsLevel(cfg.Log.Level),
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Mac: &mac.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		slog.Error("run app", "error", err)
		os.Exit(1)
	}
}
