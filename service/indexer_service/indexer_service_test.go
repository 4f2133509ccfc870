package indexer_service

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"storage-market-indexer/conf"
	"storage-market-indexer/indexer"
	"storage-market-indexer/model"
	"storage-market-indexer/model/dao"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instaContract = common.HexToAddress("0x00000000000000000000000000000000000000a1")

type stubChain struct {
	mu   sync.Mutex
	head uint64
	logs []types.Log
}

func (c *stubChain) BlockNumber(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.head, nil
}

func (c *stubChain) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []types.Log
	for _, l := range c.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (c *stubChain) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: number, Time: 1_700_000_000 + number.Uint64()}, nil
}

// uploadLog FileUploaded log as the InstaShare contract would emit it
func uploadLog(t *testing.T, block uint64, owner common.Address, cid string, size int64) types.Log {
	t.Helper()
	parsed, err := indexer.EmbeddedABI(indexer.KindInstaShare)
	require.NoError(t, err)
	ev := parsed.Events[indexer.EventFileUploaded]
	data, err := ev.Inputs.NonIndexed().Pack(owner, cid, big.NewInt(size), "text/plain", cid+".txt", big.NewInt(0))
	require.NoError(t, err)
	return types.Log{
		Address:     instaContract,
		Topics:      []common.Hash{ev.ID},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block)),
	}
}

func newTestIndexer(t *testing.T, chain *stubChain, startHeight uint64) (*IndexerService, *dao.IndexerSyncStatusDAO) {
	t.Helper()
	db := newTestStore(t)
	svc, err := NewIndexerService(db, chain, []*indexer.ContractSpec{
		{Name: "insta", Kind: indexer.KindInstaShare, Address: instaContract, StartBlock: 5},
	}, indexer.ScannerOptions{ChainName: "testnet", StartHeight: startHeight, BatchSize: 10, Interval: 10 * time.Millisecond})
	require.NoError(t, err)
	return svc, dao.NewIndexerSyncStatusDAO(db)
}

func waitRescan(t *testing.T, svc *IndexerService) *RescanTask {
	t.Helper()
	var task *RescanTask
	require.Eventually(t, func() bool {
		task = svc.GetRescanStatus()
		return task.Status != RescanStatusRunning
	}, 5*time.Second, 5*time.Millisecond)
	return task
}

func TestStartHeightFallsBackToEarliestContract(t *testing.T) {
	svc, _ := newTestIndexer(t, &stubChain{}, 0)
	assert.EqualValues(t, 5, svc.StartHeight())
}

func TestStartHeightResumesFromSyncStatus(t *testing.T) {
	db := newTestStore(t)
	require.NoError(t, dao.NewIndexerSyncStatusDAO(db).UpdateCurrentSyncHeight(context.Background(), "testnet", 40))

	specs := []*indexer.ContractSpec{{Name: "insta", Kind: indexer.KindInstaShare, Address: instaContract}}
	svc, err := NewIndexerService(db, &stubChain{}, specs, indexer.ScannerOptions{ChainName: "testnet", StartHeight: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 41, svc.StartHeight())

	// configured height ahead of the sync status wins
	svc, err = NewIndexerService(db, &stubChain{}, specs, indexer.ScannerOptions{ChainName: "testnet", StartHeight: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 100, svc.StartHeight())
}

func TestLiveScanPersistsSyncHeight(t *testing.T) {
	chain := &stubChain{head: 30, logs: []types.Log{
		uploadLog(t, 12, alice, "QmA", 10),
		uploadLog(t, 25, alice, "QmB", 5),
	}}
	svc, syncDAO := newTestIndexer(t, chain, 0)

	go svc.Start()
	require.Eventually(t, func() bool {
		status, err := syncDAO.GetByChainName(context.Background(), "testnet")
		return err == nil && status != nil && status.CurrentSyncHeight == 30
	}, 5*time.Second, 5*time.Millisecond)
	svc.Stop()

	stats, err := NewQueryService(svc.processor.db).GetSystemStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalFiles)
	assert.Equal(t, "15", stats.TotalStorage.String())
}

func TestRescanSkipsProcessedEvents(t *testing.T) {
	chain := &stubChain{head: 40, logs: []types.Log{
		uploadLog(t, 12, alice, "QmA", 10),
		uploadLog(t, 31, bob, "QmB", 7),
	}}
	svc, _ := newTestIndexer(t, chain, 0)
	ctx := context.Background()

	// apply the first log as the live scanner would have
	applied, err := svc.scanner.ScanRange(ctx, 5, 20, svc.handleEvent)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	taskID, err := svc.RescanBlocksAsync(5, 40)
	require.NoError(t, err)
	assert.NotEmpty(t, taskID)

	task := waitRescan(t, svc)
	assert.Equal(t, RescanStatusCompleted, task.Status)
	assert.Equal(t, taskID, task.TaskID)
	assert.EqualValues(t, 36, task.ProcessedBlocks)
	assert.EqualValues(t, 40, task.CurrentHeight)
	assert.EqualValues(t, 2, task.DecodedEvents)

	stats, err := NewQueryService(svc.processor.db).GetSystemStats(ctx)
	require.NoError(t, err)
	// QmA counted once despite being scanned twice
	assert.EqualValues(t, 2, stats.TotalFiles)
	assert.Equal(t, "17", stats.TotalStorage.String())
}

func TestRescanValidation(t *testing.T) {
	svc, _ := newTestIndexer(t, &stubChain{}, 0)

	_, err := svc.RescanBlocksAsync(-1, 10)
	assert.Error(t, err)
	_, err = svc.RescanBlocksAsync(10, 9)
	assert.Error(t, err)

	assert.Equal(t, RescanStatusIdle, svc.GetRescanStatus().Status)
	assert.Error(t, svc.StopRescan())
}

func TestContractSpecs(t *testing.T) {
	specs, err := ContractSpecs([]conf.ContractConfig{
		{Name: "insta", Kind: "INSTA_SHARE", Address: instaContract.Hex(), StartBlock: 3},
	})
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, indexer.KindInstaShare, specs[0].Kind)
	assert.EqualValues(t, 3, specs[0].StartBlock)
	assert.Nil(t, specs[0].ABI)

	_, err = ContractSpecs([]conf.ContractConfig{{Name: "x", Kind: "erc20", Address: instaContract.Hex()}})
	assert.Error(t, err)
	_, err = ContractSpecs([]conf.ContractConfig{{Name: "x", Kind: "public_share", Address: "nope"}})
	assert.Error(t, err)
}

func TestSyncStatusProgress(t *testing.T) {
	chain := &stubChain{head: 120}
	svc, syncDAO := newTestIndexer(t, chain, 0)
	require.NoError(t, syncDAO.UpdateCurrentSyncHeight(context.Background(), "testnet", 100))

	status := NewSyncStatusService(svc.processor.db, "testnet")
	_, err := status.GetLatestBlockHeight(context.Background())
	assert.Error(t, err)

	status.SetHeightSource(svc)
	progress, err := status.GetProgress(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 100, progress.CurrentSyncHeight)
	assert.EqualValues(t, 120, progress.LatestBlockHeight)
	assert.EqualValues(t, 20, progress.BlocksBehind)

	_, err = status.GetSyncStatusByChain(context.Background(), "other")
	assert.ErrorIs(t, err, ErrSyncStatusNotFound)

	all, err := status.GetAllSyncStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.IndexerSyncStatus{*mustStatus(t, status)}, all)
}

func mustStatus(t *testing.T, s *SyncStatusService) *model.IndexerSyncStatus {
	t.Helper()
	st, err := s.GetSyncStatus(context.Background())
	require.NoError(t, err)
	return st
}
