package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storage-market-indexer/controller/respond"
	"storage-market-indexer/service/indexer_service"

	"github.com/gin-gonic/gin"
)

// Rescanner admin rescan operations of the indexer service
type Rescanner interface {
	ChainName() string
	RescanBlocksAsync(startHeight, endHeight int64) (string, error)
	GetRescanStatus() *indexer_service.RescanTask
	StopRescan() error
}

// IndexerQueryHandler indexer query handler
type IndexerQueryHandler struct {
	queryService      *indexer_service.QueryService
	syncStatusService *indexer_service.SyncStatusService
	snapshotService   *indexer_service.SnapshotService
	rescanner         Rescanner
}

// NewIndexerQueryHandler create indexer query handler instance
func NewIndexerQueryHandler(queryService *indexer_service.QueryService, syncStatusService *indexer_service.SyncStatusService) *IndexerQueryHandler {
	return &IndexerQueryHandler{
		queryService:      queryService,
		syncStatusService: syncStatusService,
	}
}

// SetSnapshotService sets the snapshot service (for /snapshots/latest)
func (h *IndexerQueryHandler) SetSnapshotService(snapshotService *indexer_service.SnapshotService) {
	h.snapshotService = snapshotService
}

// SetRescanner sets the indexer service (for rescan operations)
func (h *IndexerQueryHandler) SetRescanner(rescanner Rescanner) {
	h.rescanner = rescanner
}

// pageParams parse cursor/size query parameters
func pageParams(c *gin.Context) (string, int, bool) {
	cursor := c.Query("cursor")
	size := 0
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.InvalidParam(c, "size must be a non-negative integer")
			return "", 0, false
		}
		size = n
	}
	return cursor, size, true
}

// requireParam path parameter that must not be empty
func requireParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if value == "" {
		respond.InvalidParam(c, name+" is required")
		return "", false
	}
	return value, true
}

// writeResult map a service result onto the envelope
func writeResult(c *gin.Context, data interface{}, err error) {
	if err != nil {
		if errors.Is(err, indexer_service.ErrEntityNotFound) {
			respond.NotFound(c, err.Error())
			return
		}
		respond.ServerError(c, err.Error())
		return
	}
	respond.Success(c, data)
}

// ListUsers get user list
// @Summary      List users
// @Description  Query registered instance owners ordered by address, cursor pagination
// @Tags         Users
// @Produce      json
// @Param        cursor  query     string  false  "Last ID of the previous page"
// @Param        size    query     int     false  "Page size" default(20)
// @Success      200     {object}  respond.Response{data=indexer_service.Page[model.User]}
// @Failure      400     {object}  respond.Response
// @Failure      500     {object}  respond.Response
// @Router       /users [get]
func (h *IndexerQueryHandler) ListUsers(c *gin.Context) {
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListUsers(c.Request.Context(), cursor, size)
	writeResult(c, result, err)
}

// GetUser get user by address
// @Summary      Get user
// @Description  Query quota, lock status and counters of an instance owner
// @Tags         Users
// @Produce      json
// @Param        address  path      string  true  "Owner address"
// @Success      200      {object}  respond.Response{data=model.User}
// @Failure      404      {object}  respond.Response
// @Router       /users/{address} [get]
func (h *IndexerQueryHandler) GetUser(c *gin.Context) {
	address, ok := requireParam(c, "address")
	if !ok {
		return
	}
	user, err := h.queryService.GetUser(c.Request.Context(), address)
	writeResult(c, user, err)
}

// ListUserFiles get files owned by a user
// @Summary      List user files
// @Description  Query files of an owner, removed files included with is_active=false
// @Tags         Users
// @Produce      json
// @Param        address  path      string  true   "Owner address"
// @Param        cursor   query     string  false  "Last ID of the previous page"
// @Param        size     query     int     false  "Page size" default(20)
// @Success      200      {object}  respond.Response{data=indexer_service.Page[model.File]}
// @Router       /users/{address}/files [get]
func (h *IndexerQueryHandler) ListUserFiles(c *gin.Context) {
	address, ok := requireParam(c, "address")
	if !ok {
		return
	}
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListUserFiles(c.Request.Context(), address, cursor, size)
	writeResult(c, result, err)
}

// ListUserNodes get storage nodes of a user
// @Summary      List user storage nodes
// @Tags         Users
// @Produce      json
// @Param        address  path      string  true   "Owner address"
// @Param        cursor   query     string  false  "Last ID of the previous page"
// @Param        size     query     int     false  "Page size" default(20)
// @Success      200      {object}  respond.Response{data=indexer_service.Page[model.StorageNode]}
// @Router       /users/{address}/nodes [get]
func (h *IndexerQueryHandler) ListUserNodes(c *gin.Context) {
	address, ok := requireParam(c, "address")
	if !ok {
		return
	}
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListUserNodes(c.Request.Context(), address, cursor, size)
	writeResult(c, result, err)
}

// ListUserHistory get user action history
// @Summary      List user history
// @Tags         Users
// @Produce      json
// @Param        address  path      string  true   "Owner address"
// @Param        cursor   query     string  false  "Last ID of the previous page"
// @Param        size     query     int     false  "Page size" default(20)
// @Success      200      {object}  respond.Response{data=indexer_service.Page[model.UserHistory]}
// @Router       /users/{address}/history [get]
func (h *IndexerQueryHandler) ListUserHistory(c *gin.Context) {
	address, ok := requireParam(c, "address")
	if !ok {
		return
	}
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListUserHistory(c.Request.Context(), address, cursor, size)
	writeResult(c, result, err)
}

// GetFile get file by ID
// @Summary      Get file
// @Description  Query a file by its owner-cid ID
// @Tags         Files
// @Produce      json
// @Param        id   path      string  true  "File ID (owner-cid)"
// @Success      200  {object}  respond.Response{data=model.File}
// @Failure      404  {object}  respond.Response
// @Router       /files/{id} [get]
func (h *IndexerQueryHandler) GetFile(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	file, err := h.queryService.GetFile(c.Request.Context(), id)
	writeResult(c, file, err)
}

// ListFileHistory get file action history
// @Summary      List file history
// @Tags         Files
// @Produce      json
// @Param        id      path      string  true   "File ID (owner-cid)"
// @Param        cursor  query     string  false  "Last ID of the previous page"
// @Param        size    query     int     false  "Page size" default(20)
// @Success      200     {object}  respond.Response{data=indexer_service.Page[model.FileHistory]}
// @Router       /files/{id}/history [get]
func (h *IndexerQueryHandler) ListFileHistory(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListFileHistory(c.Request.Context(), id, cursor, size)
	writeResult(c, result, err)
}

// GetNode get storage node by ID
// @Summary      Get storage node
// @Tags         Market
// @Produce      json
// @Param        id   path      string  true  "Node ID"
// @Success      200  {object}  respond.Response{data=model.StorageNode}
// @Failure      404  {object}  respond.Response
// @Router       /nodes/{id} [get]
func (h *IndexerQueryHandler) GetNode(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	node, err := h.queryService.GetNode(c.Request.Context(), id)
	writeResult(c, node, err)
}

// ListProviders get storage provider list
// @Summary      List storage providers
// @Tags         Market
// @Produce      json
// @Param        cursor  query     string  false  "Last ID of the previous page"
// @Param        size    query     int     false  "Page size" default(20)
// @Success      200     {object}  respond.Response{data=indexer_service.Page[model.StorageProvider]}
// @Router       /providers [get]
func (h *IndexerQueryHandler) ListProviders(c *gin.Context) {
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListProviders(c.Request.Context(), cursor, size)
	writeResult(c, result, err)
}

// GetProvider get storage provider by ID
// @Summary      Get storage provider
// @Tags         Market
// @Produce      json
// @Param        id   path      string  true  "Sell ID, or provider address for sellID 0"
// @Success      200  {object}  respond.Response{data=model.StorageProvider}
// @Failure      404  {object}  respond.Response
// @Router       /providers/{id} [get]
func (h *IndexerQueryHandler) GetProvider(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	provider, err := h.queryService.GetProvider(c.Request.Context(), id)
	writeResult(c, provider, err)
}

// GetOrder get data order by ID
// @Summary      Get data order
// @Tags         Market
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  respond.Response{data=model.DataOrder}
// @Failure      404  {object}  respond.Response
// @Router       /orders/{id} [get]
func (h *IndexerQueryHandler) GetOrder(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	order, err := h.queryService.GetOrder(c.Request.Context(), id)
	writeResult(c, order, err)
}

// GetBuyer get buyer by address
// @Summary      Get buyer
// @Tags         Market
// @Produce      json
// @Param        address  path      string  true  "Buyer address"
// @Success      200      {object}  respond.Response{data=model.Buyer}
// @Failure      404      {object}  respond.Response
// @Router       /buyers/{address} [get]
func (h *IndexerQueryHandler) GetBuyer(c *gin.Context) {
	address, ok := requireParam(c, "address")
	if !ok {
		return
	}
	buyer, err := h.queryService.GetBuyer(c.Request.Context(), address)
	writeResult(c, buyer, err)
}

// ListBuyerOrders get orders of a buyer
// @Summary      List buyer orders
// @Tags         Market
// @Produce      json
// @Param        address  path      string  true   "Buyer address"
// @Param        cursor   query     string  false  "Last ID of the previous page"
// @Param        size     query     int     false  "Page size" default(20)
// @Success      200      {object}  respond.Response{data=indexer_service.Page[model.DataOrder]}
// @Router       /buyers/{address}/orders [get]
func (h *IndexerQueryHandler) ListBuyerOrders(c *gin.Context) {
	address, ok := requireParam(c, "address")
	if !ok {
		return
	}
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListBuyerOrders(c.Request.Context(), address, cursor, size)
	writeResult(c, result, err)
}

// GetSystemStats get InstaShare aggregate statistics
// @Summary      Get system stats
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  respond.Response{data=model.SystemStats}
// @Router       /stats/system [get]
func (h *IndexerQueryHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.queryService.GetSystemStats(c.Request.Context())
	writeResult(c, stats, err)
}

// GetMarketStats get marketplace aggregate statistics
// @Summary      Get market stats
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  respond.Response{data=model.MarketStats}
// @Router       /stats/market [get]
func (h *IndexerQueryHandler) GetMarketStats(c *gin.Context) {
	stats, err := h.queryService.GetMarketStats(c.Request.Context())
	writeResult(c, stats, err)
}

// GetSystemConfig get contract owner, pause flag and linked contracts
// @Summary      Get system config
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  respond.Response{data=model.SystemConfig}
// @Router       /config [get]
func (h *IndexerQueryHandler) GetSystemConfig(c *gin.Context) {
	cfg, err := h.queryService.GetSystemConfig(c.Request.Context())
	writeResult(c, cfg, err)
}

// ListKeyValues get PublicShare key-value list
// @Summary      List key-value pairs
// @Tags         PublicShare
// @Produce      json
// @Param        cursor  query     string  false  "Last ID of the previous page"
// @Param        size    query     int     false  "Page size" default(20)
// @Success      200     {object}  respond.Response{data=indexer_service.Page[model.KeyValuePair]}
// @Router       /kv [get]
func (h *IndexerQueryHandler) ListKeyValues(c *gin.Context) {
	cursor, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.queryService.ListKeyValues(c.Request.Context(), cursor, size)
	writeResult(c, result, err)
}

// GetKeyValue get key-value pair by batch position
// @Summary      Get key-value pair
// @Tags         PublicShare
// @Produce      json
// @Param        id   path      string  true  "Batch position"
// @Success      200  {object}  respond.Response{data=model.KeyValuePair}
// @Failure      404  {object}  respond.Response
// @Router       /kv/{id} [get]
func (h *IndexerQueryHandler) GetKeyValue(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	kv, err := h.queryService.GetKeyValue(c.Request.Context(), id)
	writeResult(c, kv, err)
}

// GetEvent get processed event record
// @Summary      Get processed event
// @Description  Query the ledger row of a processed log
// @Tags         Events
// @Produce      json
// @Param        id   path      string  true  "Event ID (txHash-logIndex)"
// @Success      200  {object}  respond.Response{data=model.EventRecord}
// @Failure      404  {object}  respond.Response
// @Router       /events/{id} [get]
func (h *IndexerQueryHandler) GetEvent(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	event, err := h.queryService.GetEvent(c.Request.Context(), id)
	writeResult(c, event, err)
}

// GetSyncStatus get indexer sync status
// @Summary      Get sync status
// @Description  Persisted sync height of the indexed chain next to the node head
// @Tags         Indexer Status
// @Produce      json
// @Success      200  {object}  respond.Response{data=indexer_service.SyncProgress}
// @Failure      500  {object}  respond.Response
// @Router       /status [get]
func (h *IndexerQueryHandler) GetSyncStatus(c *gin.Context) {
	progress, err := h.syncStatusService.GetProgress(c.Request.Context())
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}
	respond.Success(c, progress)
}

// GetLatestSnapshot get the most recent stats snapshot
// @Summary      Get latest snapshot
// @Tags         Indexer Status
// @Produce      json
// @Success      200  {object}  respond.Response{data=indexer_service.Snapshot}
// @Failure      404  {object}  respond.Response
// @Router       /snapshots/latest [get]
func (h *IndexerQueryHandler) GetLatestSnapshot(c *gin.Context) {
	if h.snapshotService == nil {
		respond.ServerError(c, "snapshot service not available")
		return
	}
	snapshot, err := h.snapshotService.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, indexer_service.ErrNoSnapshot) {
			respond.NotFound(c, err.Error())
			return
		}
		respond.ServerError(c, err.Error())
		return
	}
	respond.Success(c, snapshot)
}

// RescanBlocks trigger asynchronous block rescan
// @Summary      Rescan blocks
// @Description  Trigger asynchronous rescan of blocks within specified height range. Already processed logs are skipped.
// @Tags         Indexer Admin
// @Accept       json
// @Produce      json
// @Param        request  body      respond.RescanRequest  true  "Rescan request parameters"
// @Success      200      {object}  respond.Response{data=respond.RescanResponse}
// @Failure      400      {object}  respond.Response
// @Failure      500      {object}  respond.Response
// @Router       /admin/rescan [post]
func (h *IndexerQueryHandler) RescanBlocks(c *gin.Context) {
	if h.rescanner == nil {
		respond.ServerError(c, "indexer service not available")
		return
	}

	var req respond.RescanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, fmt.Sprintf("invalid request parameters: %v", err))
		return
	}
	if req.EndHeight < req.StartHeight {
		respond.InvalidParam(c, "end_height must be greater than or equal to start_height")
		return
	}

	taskID, err := h.rescanner.RescanBlocksAsync(req.StartHeight, req.EndHeight)
	if err != nil {
		respond.ServerError(c, fmt.Sprintf("failed to start rescan: %v", err))
		return
	}

	respond.Success(c, respond.RescanResponse{
		Message:     "Block rescan task started successfully",
		Chain:       h.rescanner.ChainName(),
		StartHeight: req.StartHeight,
		EndHeight:   req.EndHeight,
		TaskID:      taskID,
	})
}

// GetRescanStatus get rescan task status
// @Summary      Get rescan status
// @Description  Get current rescan task status
// @Tags         Indexer Admin
// @Produce      json
// @Success      200  {object}  respond.Response{data=respond.RescanStatusResponse}
// @Failure      500  {object}  respond.Response
// @Router       /admin/rescan/status [get]
func (h *IndexerQueryHandler) GetRescanStatus(c *gin.Context) {
	if h.rescanner == nil {
		respond.ServerError(c, "indexer service not available")
		return
	}
	task := h.rescanner.GetRescanStatus()
	respond.Success(c, respond.ToRescanStatusResponse(task, time.Now()))
}

// StopRescan stop the running rescan task
// @Summary      Stop rescan
// @Description  Cancel the running rescan task
// @Tags         Indexer Admin
// @Produce      json
// @Success      200  {object}  respond.Response{data=respond.RescanStopResponse}
// @Failure      400  {object}  respond.Response
// @Failure      500  {object}  respond.Response
// @Router       /admin/rescan/stop [post]
func (h *IndexerQueryHandler) StopRescan(c *gin.Context) {
	if h.rescanner == nil {
		respond.ServerError(c, "indexer service not available")
		return
	}
	task := h.rescanner.GetRescanStatus()
	if err := h.rescanner.StopRescan(); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}
	respond.Success(c, respond.RescanStopResponse{
		Message: "Rescan task stopped successfully",
		TaskID:  task.TaskID,
		Status:  string(indexer_service.RescanStatusCancelled),
	})
}
