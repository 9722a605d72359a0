package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"emoji-zoo/internal/config"
	"emoji-zoo/internal/controllers"
	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"
	"emoji-zoo/internal/render"
	"emoji-zoo/internal/services"
	"emoji-zoo/internal/shutdown"
	"emoji-zoo/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Emoji Zoo"
	AppID      = "com.emojizoo.app"
	AppVersion = "1.0.0"
)

// Application owns one zoo window and everything behind it.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  *logger.ZerologLogger
	config  *config.Config

	controller *controllers.MainController
	view       *views.MainView

	store      *models.MarkerStore
	simulation *services.SimulationService
	scheduler  *services.Scheduler
	shutdown   *shutdown.Manager

	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	cfg, err := config.Load(config.DefaultSearchDirs()...)
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := NewApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}

// NewApplication wires the window, marker store, simulation and controller.
func NewApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	appLogger := newLogger(cfg)
	appLogger.Info("Application starting", map[string]interface{}{
		"version":     AppVersion,
		"config_file": cfg.File,
		"canvas":      fmt.Sprintf("%.0fx%.0f", cfg.Simulation.Width, cfg.Simulation.Height),
		"max_age":     cfg.Simulation.MaxAge,
		"tick_ms":     cfg.Simulation.TickInterval.Milliseconds(),
		"go_version":  runtime.Version(),
		"log_level":   cfg.LogLevel().String(),
	})

	rasterizer, err := render.NewGlyphRasterizer(
		cfg.Render.FontPath,
		cfg.Simulation.GlyphSize,
		cfg.Simulation.FontSize,
		appLogger.WithComponent("render"),
	)
	if err != nil {
		return nil, fmt.Errorf("glyph rasterizer: %w", err)
	}

	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.SetFixedSize(true)

	view := views.NewMainView(window, cfg.Simulation)

	store := models.NewMarkerStore(view.Surface(), rasterizer)
	simulation := services.NewSimulationService(store, cfg.Simulation, appLogger.WithComponent("simulation"))
	spawner := services.NewSpawnService(store, cfg.Simulation, services.NewRandom())
	controller := controllers.NewMainController(store, simulation, spawner, appLogger.WithComponent("controller"))
	scheduler := services.NewScheduler(
		cfg.Simulation.TickInterval,
		controller.Tick,
		fyne.DoAndWait,
		appLogger.WithComponent("scheduler"),
	)

	controller.SetView(view)
	view.SetTapHandler(controller.HandleTap)
	view.SetKeyHandler(func(r rune) { controller.HandleKey(r) })

	shutdownMgr := shutdown.NewManager(appLogger.WithComponent("shutdown"))
	shutdownMgr.Register(controller)
	shutdownMgr.Register(scheduler)

	appCtx, appCancel := context.WithCancel(ctx)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: controller,
		view:       view,
		store:      store,
		simulation: simulation,
		scheduler:  scheduler,
		shutdown:   shutdownMgr,
		ctx:        appCtx,
		cancel:     appCancel,
	}

	application.setupWindowEvents()

	appLogger.Info("Application initialized", map[string]interface{}{
		"font":     rasterizer.FontName(),
		"alphabet": len(cfg.Simulation.Alphabet),
	})

	return application, nil
}

// Run shows the window and blocks until it is closed.
func (app *Application) Run() error {
	app.shutdown.Listen(func() {
		fyne.Do(app.window.Close)
	})

	go func() {
		err := app.scheduler.Run(app.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Error("Scheduler stopped", err, nil)
		}
	}()

	go app.startStatsLogging()

	app.window.ShowAndRun()
	app.logger.Info("Application terminated", nil)
	return nil
}

func (app *Application) setupWindowEvents() {
	app.window.SetOnClosed(func() {
		app.logger.Info("Window closed, performing cleanup", nil)
		app.shutdown.Shutdown()
		app.cancel()
	})
}

// startStatsLogging reports simulation totals at debug level every 30 seconds.
func (app *Application) startStatsLogging() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fyne.Do(app.logStats)
		case <-app.ctx.Done():
			return
		}
	}
}

func (app *Application) logStats() {
	stats := app.simulation.GetStats()
	app.logger.Debug("Simulation stats", map[string]interface{}{
		"markers":       app.store.Len(),
		"frozen":        app.simulation.Frozen(),
		"ticks":         stats.Ticks,
		"expired":       stats.Expired,
		"fade_failures": stats.FadeFailures,
		"last_step_us":  stats.LastStep.Microseconds(),
		"goroutines":    runtime.NumGoroutine(),
	})
}

func newLogger(cfg *config.Config) *logger.ZerologLogger {
	if cfg.Log.JSON {
		return logger.NewZerolog(os.Stderr, cfg.LogLevel())
	}
	return logger.NewConsoleLogger(cfg.LogLevel())
}
