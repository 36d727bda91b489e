package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"multimodal-server/internal/config"
	"multimodal-server/internal/domain/dto"
	Iservices "multimodal-server/internal/domain/interfaces/services"
	"multimodal-server/internal/infra/handlers"
	"multimodal-server/internal/infra/logger"
	"multimodal-server/internal/infra/repository"
	"multimodal-server/internal/infra/routes"
	"multimodal-server/internal/infra/services"
	"multimodal-server/internal/middleware"
	client "multimodal-server/internal/pkg"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.NewLogger(ctx, cfg.LogLevel, true)

	osFs := afero.NewOsFs()
	uploadRoot, err := client.UploadFs(osFs, cfg.UploadDir)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to prepare upload directory: %v", err))
	}

	store := repository.NewLocalStore(osFs, uploadRoot)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	var uploadSvc Iservices.IUploadService = services.NewUploadService(store, log, cfg.MaxFileSize)
	var metadataSvc Iservices.IUserMetadataService = services.NewUserMetadataService(store, log, services.MaxMetadataFileSize)

	uploadHandlers := handlers.NewUploadHandlers(log, uploadSvc)
	metadataHandlers := handlers.NewUserMetadataHandlers(log, metadataSvc)

	serverInfo := dto.ServerInfo{
		Message: "Multimedia Upload Server",
		Version: "1.0.0",
		Config: dto.ServerConfig{
			MaxFileSize: humanize.IBytes(uint64(cfg.MaxFileSize)),
			UploadDir:   cfg.UploadDir,
			ExternalURL: cfg.BaseURL,
		},
	}

	routes := routes.NewRoutes(
		router,
		uploadHandlers,
		metadataHandlers,
		serverInfo,
		store.HTTPFileSystem(),
	)

	routes.Init()

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", cfg.Port), logrus.Fields{
			"upload_dir":    uploadRoot,
			"max_file_size": humanize.IBytes(uint64(cfg.MaxFileSize)),
			"external_url":  cfg.BaseURL,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
