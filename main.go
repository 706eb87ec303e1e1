package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-classroom/internal/catalog"
	"github.com/ytget/yt-classroom/internal/config"
	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/logger"
	"github.com/ytget/yt-classroom/internal/platform"
	"github.com/ytget/yt-classroom/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-classroom"
	AppName = "YT Classroom"

	WindowWidth  = 900
	WindowHeight = 640
)

func main() {
	cfg, err := config.Load(config.DefaultDotEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Log version information
	log.Info("starting", "app", AppName, "version", version, "backend", cfg.Backend)

	// Create new Fyne app; its preferences also keep the signed-in session
	myApp := app.NewWithID(AppID)

	ctx := context.Background()
	gw, err := openGateway(ctx, cfg, config.NewSettings(myApp))
	if err != nil {
		log.Error("failed to open backend", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			log.Warn("failed to close backend", "error", err)
		}
	}()

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, ui.Backend{
		Gateway:        gw,
		Metadata:       metadataLookup(ctx, cfg, log),
		Playlists:      platform.NewPlaylistParserService(),
		Log:            log,
		EnrichParallel: cfg.EnrichParallel,
		RequestTimeout: cfg.RequestTimeout,
	})
	myApp.Lifecycle().SetOnStarted(root.Start)
	myApp.Lifecycle().SetOnStopped(root.Stop)

	// Show and run
	myWindow.ShowAndRun()
}

func openGateway(ctx context.Context, cfg *config.Config, settings *config.Settings) (*gateway.Gateway, error) {
	if cfg.Backend == config.BackendFirebase {
		return gateway.OpenFirebase(ctx, gateway.FirebaseConfig{
			APIKey:    cfg.FirebaseAPIKey,
			ProjectID: cfg.FirebaseProject,
		}, settings)
	}
	return gateway.NewMemoryGateway(gateway.NewMemory()), nil
}

// metadataLookup falls back to stored titles when no API key is configured
func metadataLookup(ctx context.Context, cfg *config.Config, log *logger.Logger) catalog.MetadataLookup {
	meta, err := platform.NewYouTubeMetadataService(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Info("video metadata disabled", "reason", err)
		return platform.DisabledMetadataService{}
	}
	return meta
}
