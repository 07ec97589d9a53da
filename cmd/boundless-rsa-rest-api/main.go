// cmd/boundless-rsa-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/boundless-rsa/internal/api/rest/v1"
	"github.com/MGTheTrain/boundless-rsa/internal/app"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/connector"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/persistence"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("Failed to close database: ", err)
		}
	}()

	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *appServices
}

type appServices struct {
	cryptoKeyUpload    keys.CryptoKeyUploadService
	cryptoKeyDownload  keys.CryptoKeyDownloadService
	cryptoKeyMetadata  keys.CryptoKeyMetadataService
	cryptoKeyOperation keys.CryptoKeyOperationService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	log.Info("Database ready: ", cfg.Database.Type)

	cryptoKeyRepo, err := persistence.NewGormCryptoKeyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key repository: %w", err)
	}

	vaultConnector, err := connector.NewLocalVaultConnector(&cfg.Vault, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault connector: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	services, err := initializeApplicationServices(cfg, vaultConnector, cryptoKeyRepo, rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:       db,
		services: services,
	}, nil
}

// newRouter sets up CORS and the API routes
func newRouter(cfg *config.RestConfig, services *appServices) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:    cfg.AllowedOrigins,
		AllowAllOrigins: len(cfg.AllowedOrigins) == 0,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	v1.SetupRoutes(r,
		services.cryptoKeyUpload,
		services.cryptoKeyDownload,
		services.cryptoKeyMetadata,
		services.cryptoKeyOperation,
	)

	r.GET(v1.BasePath+"/openapi.yaml", func(c *gin.Context) {
		c.File("./api/openapi/v1/boundless-rsa.yaml")
	})

	return r
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, deps.services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// In-flight key generation may take up to the generation timeout.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RSA.GenerationTimeout+5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.RestConfig,
	vaultConn keys.VaultConnector,
	keyRepo keys.CryptoKeyRepository,
	rsaProcessor cryptoalg.RSAProcessor,
	log logger.Logger,
) (*appServices, error) {
	cryptoKeyUploadService, err := app.NewCryptoKeyUploadService(vaultConn, keyRepo, rsaProcessor, &cfg.RSA, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key upload service: %w", err)
	}

	cryptoKeyDownloadService, err := app.NewCryptoKeyDownloadService(vaultConn, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key download service: %w", err)
	}

	cryptoKeyMetadataService, err := app.NewCryptoKeyMetadataService(vaultConn, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key metadata service: %w", err)
	}

	cryptoKeyOperationService, err := app.NewCryptoKeyOperationService(vaultConn, keyRepo, rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key operation service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		cryptoKeyUpload:    cryptoKeyUploadService,
		cryptoKeyDownload:  cryptoKeyDownloadService,
		cryptoKeyMetadata:  cryptoKeyMetadataService,
		cryptoKeyOperation: cryptoKeyOperationService,
	}, nil
}
