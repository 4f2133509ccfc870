package controller

import (
	"storage-market-indexer/conf"
	"storage-market-indexer/controller/handler"
	"storage-market-indexer/controller/respond"
	indexerDocs "storage-market-indexer/docs/indexer"
	"storage-market-indexer/database"
	"storage-market-indexer/service/indexer_service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions services exposed by the query API; nil DB means database.DB
type RouterOptions struct {
	DB              database.Database
	ChainName       string
	IndexerService  *indexer_service.IndexerService
	SnapshotService *indexer_service.SnapshotService
}

// SetupIndexerRouter setup indexer service router
func SetupIndexerRouter(opts RouterOptions) *gin.Engine {
	// Set Swagger host from config
	if conf.Cfg != nil && conf.Cfg.Indexer.SwaggerBaseUrl != "" {
		indexerDocs.SwaggerInfoindexer.Host = conf.Cfg.Indexer.SwaggerBaseUrl
	}

	chainName := opts.ChainName
	if chainName == "" && opts.IndexerService != nil {
		chainName = opts.IndexerService.ChainName()
	}

	syncStatusService := indexer_service.NewSyncStatusService(opts.DB, chainName)
	indexerQueryHandler := handler.NewIndexerQueryHandler(indexer_service.NewQueryService(opts.DB), syncStatusService)
	if opts.IndexerService != nil {
		syncStatusService.SetHeightSource(opts.IndexerService)
		indexerQueryHandler.SetRescanner(opts.IndexerService)
	}
	if opts.SnapshotService != nil {
		indexerQueryHandler.SetSnapshotService(opts.SnapshotService)
	}

	return newRouter(indexerQueryHandler)
}

func newRouter(h *handler.IndexerQueryHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.GET("/:address", h.GetUser)
			users.GET("/:address/files", h.ListUserFiles)
			users.GET("/:address/nodes", h.ListUserNodes)
			users.GET("/:address/history", h.ListUserHistory)
		}

		files := v1.Group("/files")
		{
			files.GET("/:id", h.GetFile)
			files.GET("/:id/history", h.ListFileHistory)
		}

		// Storage market routes
		v1.GET("/nodes/:id", h.GetNode)
		v1.GET("/providers", h.ListProviders)
		v1.GET("/providers/:id", h.GetProvider)
		v1.GET("/orders/:id", h.GetOrder)
		v1.GET("/buyers/:address", h.GetBuyer)
		v1.GET("/buyers/:address/orders", h.ListBuyerOrders)

		// Statistics routes
		v1.GET("/stats/system", h.GetSystemStats)
		v1.GET("/stats/market", h.GetMarketStats)
		v1.GET("/config", h.GetSystemConfig)

		// PublicShare key-value routes
		v1.GET("/kv", h.ListKeyValues)
		v1.GET("/kv/:id", h.GetKeyValue)

		v1.GET("/events/:id", h.GetEvent)

		// Sync status route
		v1.GET("/status", h.GetSyncStatus)
		v1.GET("/snapshots/latest", h.GetLatestSnapshot)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/rescan", h.RescanBlocks)
			admin.GET("/rescan/status", h.GetRescanStatus)
			admin.POST("/rescan/stop", h.StopRescan)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, respond.HealthResponse{
			Status:  "ok",
			Service: "indexer",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName("indexer")))

	return r
}
