package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"site_prompt_server/api"
	"site_prompt_server/config"
	"site_prompt_server/internal/ai"
	handler "site_prompt_server/internal/api"
	"site_prompt_server/internal/export"
	"site_prompt_server/internal/session"
	"site_prompt_server/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// loadDotEnv loads a .env file from the working directory if there is one.
// It must run before the config is read.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}
}

func runServer() error {
	loadDotEnv()

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	// --- Dependency Initialization ---
	projectStore, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer projectStore.Close()
	log.Printf("Project store opened at %s", cfg.DatabasePath)

	// Generation stays disabled (503) without a key.
	var generator handler.SiteGenerator
	if cfg.OpenAIKey != "" {
		generator = ai.NewGenerator(cfg.OpenAIKey, cfg.OpenAIModel)
		log.Printf("Site generation enabled with model %s", cfg.OpenAIModel)
	}

	exporter := export.NewExporter(cfg.ExportDir, cfg.PublishCommand)
	if cfg.PublishCommand == "" {
		log.Println("Info: PUBLISH_COMMAND not set, exports are written to disk only.")
	}

	apiHandler := handler.NewAPIHandler(
		session.NewManager(cfg.SessionLimit),
		generator,
		projectStore,
		exporter,
	)

	// --- Start API Server ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Set timeouts to prevent slow client attacks
		ReadTimeout: 15 * time.Second,
		// Generation waits on the model, so writes get more room.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Printf("Received signal: %s. Shutting down server...", sig)
	case err := <-serverErr:
		log.Printf("API server listen error: %s", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
	return nil
}
