package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storage-market-indexer/conf"
	"storage-market-indexer/controller"
	"storage-market-indexer/database"
	"storage-market-indexer/indexer"
	"storage-market-indexer/logger"
	"storage-market-indexer/service/indexer_service"
	"storage-market-indexer/storage"

	"github.com/ethereum/go-ethereum/ethclient"
)

// @title           Storage Market Indexer API
// @version         1.0
// @description     Read API over the InstaShare, StorageMarket and PublicShare events indexed from an EVM chain
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7281
// @BasePath  /api/v1

// @schemes https http

func main() {
	// Initialize all components
	app := initAll()
	defer app.cleanup()

	// Start indexer service (in goroutine)
	go app.indexerService.Start()
	logger.Infof("Indexer service started successfully")

	app.snapshotService.Start()

	// Start HTTP API service (in goroutine)
	go startServer(app.srv)
	logger.Infof("Indexer API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	logger.Infof("Shutting down indexer service...")

	app.snapshotService.Stop()
	app.indexerService.Stop()

	// Gracefully shutdown HTTP service
	shutdownServer(app.srv)

	logger.Infof("Server exited")
}

type application struct {
	indexerService  *indexer_service.IndexerService
	snapshotService *indexer_service.SnapshotService
	srv             *http.Server
	client          *ethclient.Client
}

// initAll initialize all components
func initAll() *application {
	// Parse command line parameters
	flag.Parse()
	fmt.Printf("Environment: %s\n", conf.GetEnv())

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Options{
		Level:      conf.Cfg.Log.Level,
		Format:     conf.Cfg.Log.Format,
		File:       conf.Cfg.Log.File,
		MaxSizeMB:  conf.Cfg.Log.MaxSizeMB,
		MaxBackups: conf.Cfg.Log.MaxBackups,
		MaxAgeDays: conf.Cfg.Log.MaxAgeDays,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := conf.Cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}
	logger.Infof("Configuration loaded: env=%s, chain=%s, port=%s", conf.GetEnv(), conf.Cfg.Chain.Name, conf.Cfg.IndexerPort)

	// Initialize database
	if err := initDatabase(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (optional, won't fail if disabled or unavailable)
	if err := database.InitRedis(database.RedisOptions{
		Enabled:  conf.Cfg.Redis.Enabled,
		Host:     conf.Cfg.Redis.Host,
		Port:     conf.Cfg.Redis.Port,
		Password: conf.Cfg.Redis.Password,
		DB:       conf.Cfg.Redis.DB,
		CacheTTL: conf.Cfg.Redis.CacheTTL,
	}); err != nil {
		logger.Warnf("Redis initialization failed (cache will be disabled): %v", err)
	}

	// Initialize snapshot storage
	stor, err := storage.NewStorage(conf.Cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Infof("Storage initialized: type=%s", conf.Cfg.Storage.Type)

	client, err := indexer.DialChainClient(conf.Cfg.Chain.RpcUrl)
	if err != nil {
		logger.Fatalf("Failed to connect to RPC node: %v", err)
	}

	indexerService, err := indexer_service.NewIndexerServiceFromConfig(database.DB, client, conf.Cfg)
	if err != nil {
		logger.Fatalf("Failed to create indexer service: %v", err)
	}

	snapshotService := indexer_service.NewSnapshotService(database.DB, stor,
		time.Duration(conf.Cfg.Indexer.SnapshotInterval)*time.Second)

	router := controller.SetupIndexerRouter(controller.RouterOptions{
		DB:              database.DB,
		IndexerService:  indexerService,
		SnapshotService: snapshotService,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + conf.Cfg.IndexerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &application{
		indexerService:  indexerService,
		snapshotService: snapshotService,
		srv:             srv,
		client:          client,
	}
}

func (a *application) cleanup() {
	if a.client != nil {
		a.client.Close()
	}
	if database.DB != nil {
		if err := database.DB.Close(); err != nil {
			logger.Warnf("Failed to close database: %v", err)
		}
	}
	if err := database.CloseRedis(); err != nil {
		logger.Warnf("Failed to close Redis: %v", err)
	}
	logger.Sync()
}

// initDatabase initialize database based on configuration
func initDatabase() error {
	dbType := database.DBType(conf.Cfg.Database.IndexerType)

	switch dbType {
	case database.DBTypeMySQL:
		config := &database.MySQLConfig{
			DSN:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
			LogSQL:       conf.Cfg.Database.LogSQL,
		}
		return database.InitDatabase(database.DBTypeMySQL, config)

	case database.DBTypeSQLite:
		config := &database.SQLiteConfig{
			DSN:    conf.Cfg.Database.Dsn,
			LogSQL: conf.Cfg.Database.LogSQL,
		}
		return database.InitDatabase(database.DBTypeSQLite, config)

	case database.DBTypePebble:
		config := &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		}
		return database.InitDatabase(database.DBTypePebble, config)

	default:
		logger.Infof("Indexer database type not specified, defaulting to PebbleDB")
		config := &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		}
		return database.InitDatabase(database.DBTypePebble, config)
	}
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	logger.Infof("Indexer API service starting on port %s...", conf.Cfg.IndexerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warnf("Server forced to shutdown: %v", err)
	}
}
