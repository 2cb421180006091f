package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/scenarios/config"
	"github.com/epeers/scenarios/docs"
	"github.com/epeers/scenarios/internal/assistant"
	"github.com/epeers/scenarios/internal/cache"
	"github.com/epeers/scenarios/internal/database"
	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/handlers"
	"github.com/epeers/scenarios/internal/presets"
	"github.com/epeers/scenarios/internal/repository"
	"github.com/epeers/scenarios/internal/scenario"
	"github.com/epeers/scenarios/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

// @title Portfolio Scenario Modeling API
// @version 1.0
// @description Forecasts, scenario comparison, and a portfolio assistant for an alternative-investment portfolio.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store: PostgreSQL when configured, otherwise in memory
	var store services.ScenarioStore
	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		repo := repository.NewScenarioRepository(db.Pool, cfg.SessionTTL)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		store = repo
		log.Info("Storing sessions in PostgreSQL")
	} else {
		store = cache.NewSessionCache(cfg.SessionTTL)
		log.Info("PG_URL not set, storing sessions in memory")
	}

	// Initialize calculator and presets
	model := forecast.Model{BaseYear: cfg.BaseYear, StartingNAV: cfg.StartingNAV}
	lib, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}
	if cfg.PresetsFile != "" {
		log.Infof("Loaded %d presets from %s", len(lib.All()), cfg.PresetsFile)
	}

	// Initialize assistant clients; keys arrive with each request
	portfolioAssistant := assistant.New(assistant.DefaultSnapshot(), map[assistant.Provider]assistant.Completer{
		assistant.ProviderOpenAI: assistant.NewOpenAIClient(cfg.OpenAIModel),
		assistant.ProviderGemini: assistant.NewGeminiClient(cfg.GeminiModel),
	})

	// Initialize services
	forecastSvc := services.NewForecastService(model, lib)
	scenarioSvc := services.NewScenarioService(store, scenario.NewComparator(model), lib)
	assistantSvc := services.NewAssistantService(portfolioAssistant, cfg.AssistantTimeout)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	handlers.RegisterRoutes(router,
		handlers.NewForecastHandler(forecastSvc),
		handlers.NewScenarioHandler(scenarioSvc),
		handlers.NewAssistantHandler(assistantSvc),
	)

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return scenarioSvc.RunSweeper(gctx, sweepInterval(cfg.SessionTTL))
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		// Give outstanding requests 5 seconds to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
	log.Info("Server exited")
}

// sweepInterval checks for idle sessions a few times per TTL, at most once a minute
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
