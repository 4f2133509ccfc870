package controller

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storage-market-indexer/controller/handler"
	"storage-market-indexer/controller/respond"
	"storage-market-indexer/database"
	"storage-market-indexer/indexer"
	"storage-market-indexer/service/indexer_service"
	"storage-market-indexer/storage"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = common.HexToAddress("0x1111111111111111111111111111111111111111")

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeRescanner struct {
	task     *indexer_service.RescanTask
	startErr error
	stopErr  error
	started  [][2]int64
}

func (f *fakeRescanner) ChainName() string { return "testnet" }

func (f *fakeRescanner) RescanBlocksAsync(startHeight, endHeight int64) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	f.started = append(f.started, [2]int64{startHeight, endHeight})
	f.task = &indexer_service.RescanTask{
		TaskID:      "task-1",
		Chain:       "testnet",
		Status:      indexer_service.RescanStatusRunning,
		StartHeight: startHeight,
		EndHeight:   endHeight,
		TotalBlocks: endHeight - startHeight + 1,
		StartTime:   time.Now(),
	}
	return "task-1", nil
}

func (f *fakeRescanner) GetRescanStatus() *indexer_service.RescanTask {
	if f.task == nil {
		return &indexer_service.RescanTask{Chain: "testnet", Status: indexer_service.RescanStatusIdle}
	}
	return f.task
}

func (f *fakeRescanner) StopRescan() error {
	return f.stopErr
}

type testAPI struct {
	db        database.Database
	router    *gin.Engine
	handler   *handler.IndexerQueryHandler
	snapshots *indexer_service.SnapshotService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewPebbleDatabase(&database.PebbleConfig{FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	h := handler.NewIndexerQueryHandler(
		indexer_service.NewQueryService(db),
		indexer_service.NewSyncStatusService(db, "testnet"),
	)
	snapshots := indexer_service.NewSnapshotService(db, store, 0)
	h.SetSnapshotService(snapshots)

	return &testAPI{db: db, router: newRouter(h), handler: h, snapshots: snapshots}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(path, "/api/") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (a *testAPI) seed(t *testing.T) {
	t.Helper()
	p := indexer_service.NewEventProcessor(a.db)
	meta := func(block uint64, name string) indexer.EventMeta {
		return indexer.EventMeta{
			Contract:       common.HexToAddress("0x00000000000000000000000000000000000000c1"),
			ContractKind:   indexer.KindInstaShare,
			Name:           name,
			BlockNumber:    block,
			BlockTimestamp: int64(1_700_000_000 + block*12),
			TxHash:         common.BigToHash(new(big.Int).SetUint64(block)),
		}
	}
	events := []indexer.Event{
		&indexer.InstanceOwnerRegistered{
			EventMeta: meta(1, indexer.EventInstanceOwnerRegistered),
			Owner:     alice,
			FreeLoad:  big.NewInt(1000),
		},
		&indexer.FileUploaded{
			EventMeta:     meta(2, indexer.EventFileUploaded),
			Owner:         alice,
			Cid:           "bafyFile",
			Size:          big.NewInt(100),
			FileType:      "text/plain",
			FileName:      "a.txt",
			StorageNodeID: big.NewInt(0),
		},
	}
	for _, ev := range events {
		applied, err := p.Apply(context.Background(), ev)
		require.NoError(t, err)
		require.True(t, applied)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"indexer"}`, w.Body.String())

	w, _ = api.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	// checksummed input resolves the lowercase row
	w, env := api.do(t, http.MethodGet, "/api/v1/users/"+alice.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, respond.CodeSuccess, env.Code)
	var user struct {
		FreeLoad   string `json:"free_load"`
		TotalFiles int64  `json:"total_files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "900", user.FreeLoad)
	assert.Equal(t, int64(1), user.TotalFiles)

	w, env = api.do(t, http.MethodGet, "/api/v1/users/"+alice.Hex()+"/files", "")
	require.Equal(t, http.StatusOK, w.Code)
	var files struct {
		Items []struct {
			Cid string `json:"cid"`
		} `json:"items"`
		NextCursor string `json:"next_cursor"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &files))
	require.Len(t, files.Items, 1)
	assert.Equal(t, "bafyFile", files.Items[0].Cid)
	assert.Empty(t, files.NextCursor)

	w, env = api.do(t, http.MethodGet, "/api/v1/users/"+alice.Hex()+"/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Items []struct {
			Action string `json:"action"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history.Items, 1)
	assert.Equal(t, "REGISTER", history.Items[0].Action)
}

func TestFileRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	w, env := api.do(t, http.MethodGet, "/api/v1/files/"+alice.Hex()+"-bafyFile", "")
	require.Equal(t, http.StatusOK, w.Code)
	var file struct {
		Size     string `json:"size"`
		IsActive bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &file))
	assert.Equal(t, "100", file.Size)
	assert.True(t, file.IsActive)

	w, env = api.do(t, http.MethodGet, "/api/v1/files/"+alice.Hex()+"-bafyFile/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "UPLOAD")
}

func TestNotFoundAndInvalidParams(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodGet, "/api/v1/users/0x2222222222222222222222222222222222222222", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, respond.CodeNotFound, env.Code)

	w, env = api.do(t, http.MethodGet, "/api/v1/orders/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, respond.CodeNotFound, env.Code)

	w, env = api.do(t, http.MethodGet, "/api/v1/users?size=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, respond.CodeInvalidParam, env.Code)
}

func TestStatsOnEmptyStore(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodGet, "/api/v1/stats/system", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalFiles   int64  `json:"total_files"`
		TotalStorage string `json:"total_storage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Zero(t, stats.TotalFiles)
	assert.Equal(t, "0", stats.TotalStorage)

	w, _ = api.do(t, http.MethodGet, "/api/v1/stats/market", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(t, http.MethodGet, "/api/v1/config", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(t, http.MethodGet, "/api/v1/kv", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSyncStatusRoute(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var progress indexer_service.SyncProgress
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, "testnet", progress.ChainName)
	assert.Zero(t, progress.CurrentSyncHeight)
}

func TestLatestSnapshotRoute(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	w, env := api.do(t, http.MethodGet, "/api/v1/snapshots/latest", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, respond.CodeNotFound, env.Code)

	_, _, err := api.snapshots.Export(context.Background())
	require.NoError(t, err)

	w, env = api.do(t, http.MethodGet, "/api/v1/snapshots/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot indexer_service.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	require.NotNil(t, snapshot.System)
	assert.Equal(t, int64(1), snapshot.System.TotalFiles)
}

func TestRescanRoutesWithoutIndexer(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/api/v1/admin/rescan", `{"start_height":1,"end_height":2}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, respond.CodeServerError, env.Code)
}

func TestRescanRoutes(t *testing.T) {
	api := newTestAPI(t)
	rescanner := &fakeRescanner{}
	api.handler.SetRescanner(rescanner)

	w, env := api.do(t, http.MethodGet, "/api/v1/admin/rescan/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"status":"idle"`)

	w, env = api.do(t, http.MethodPost, "/api/v1/admin/rescan", `{"start_height":20,"end_height":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, respond.CodeInvalidParam, env.Code)
	assert.Empty(t, rescanner.started)

	w, env = api.do(t, http.MethodPost, "/api/v1/admin/rescan", `{"start_height":10,"end_height":20}`)
	require.Equal(t, http.StatusOK, w.Code)
	var started respond.RescanResponse
	require.NoError(t, json.Unmarshal(env.Data, &started))
	assert.Equal(t, "task-1", started.TaskID)
	assert.Equal(t, "testnet", started.Chain)
	assert.Equal(t, [][2]int64{{10, 20}}, rescanner.started)

	rescanner.task.ProcessedBlocks = 5
	w, env = api.do(t, http.MethodGet, "/api/v1/admin/rescan/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status respond.RescanStatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "running", status.Status)
	assert.Equal(t, int64(11), status.TotalBlocks)
	assert.InDelta(t, 45.45, status.Progress, 0.01)

	w, env = api.do(t, http.MethodPost, "/api/v1/admin/rescan/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "task-1")

	rescanner.stopErr = errors.New("no rescan task is running")
	w, env = api.do(t, http.MethodPost, "/api/v1/admin/rescan/stop", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, respond.CodeInvalidParam, env.Code)
}

func TestRescanStartFailure(t *testing.T) {
	api := newTestAPI(t)
	api.handler.SetRescanner(&fakeRescanner{startErr: errors.New("another rescan task is already running: x")})

	w, env := api.do(t, http.MethodPost, "/api/v1/admin/rescan", `{"start_height":0,"end_height":5}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, env.Message, "already running")
}
