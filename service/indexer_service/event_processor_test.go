package indexer_service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"storage-market-indexer/database"
	"storage-market-indexer/indexer"
	"storage-market-indexer/model"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice    = common.HexToAddress("0xA11CE00000000000000000000000000000000001")
	bob      = common.HexToAddress("0xB0B0000000000000000000000000000000000002")
	provider = common.HexToAddress("0xFEED000000000000000000000000000000000003")
)

func newTestStore(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewPebbleDatabase(&database.PebbleConfig{FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newSQLiteStore(t *testing.T) database.Database {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteDatabase(&database.SQLiteConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// eachStore runs a handler scenario against the key-value and the relational store
func eachStore(t *testing.T, fn func(t *testing.T, db database.Database)) {
	t.Run("pebble", func(t *testing.T) { fn(t, newTestStore(t)) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

// sequence hands out increasing (block, logIndex, ts) tuples so every event has a distinct ledger ID
type sequence struct {
	block uint64
}

func (s *sequence) meta(name string, kind indexer.ContractKind) indexer.EventMeta {
	s.block++
	return indexer.EventMeta{
		Contract:       common.HexToAddress("0x00000000000000000000000000000000000000c1"),
		ContractName:   string(kind),
		ContractKind:   kind,
		Name:           name,
		BlockNumber:    s.block,
		BlockTimestamp: int64(1_700_000_000 + s.block*12),
		TxHash:         common.BigToHash(new(big.Int).SetUint64(s.block)),
		LogIndex:       0,
	}
}

func apply(t *testing.T, p *EventProcessor, ev indexer.Event) bool {
	t.Helper()
	applied, err := p.Apply(context.Background(), ev)
	require.NoError(t, err)
	return applied
}

func getEntity[T any, PT interface {
	*T
	model.Entity
}](t *testing.T, db database.Database, id string) PT {
	t.Helper()
	entity := PT(new(T))
	require.NoError(t, db.Get(context.Background(), entity, id))
	return entity
}

func systemStats(t *testing.T, db database.Database) *model.SystemStats {
	return getEntity[model.SystemStats](t, db, model.SystemStatsID)
}

func marketStats(t *testing.T, db database.Database) *model.MarketStats {
	return getEntity[model.MarketStats](t, db, model.MarketStatsID)
}

func register(seq *sequence, owner common.Address, freeLoad int64) *indexer.InstanceOwnerRegistered {
	return &indexer.InstanceOwnerRegistered{
		EventMeta: seq.meta(indexer.EventInstanceOwnerRegistered, indexer.KindInstaShare),
		Owner:     owner,
		FreeLoad:  big.NewInt(freeLoad),
	}
}

func upload(seq *sequence, owner common.Address, cid string, size, node int64) *indexer.FileUploaded {
	return &indexer.FileUploaded{
		EventMeta:     seq.meta(indexer.EventFileUploaded, indexer.KindInstaShare),
		Owner:         owner,
		Cid:           cid,
		Size:          big.NewInt(size),
		FileType:      "image/png",
		FileName:      cid + ".png",
		StorageNodeID: big.NewInt(node),
	}
}

func remove(seq *sequence, owner common.Address, cid string) *indexer.FileRemoved {
	return &indexer.FileRemoved{
		EventMeta: seq.meta(indexer.EventFileRemoved, indexer.KindInstaShare),
		Owner:     owner,
		Cid:       cid,
	}
}

func addNode(seq *sequence, owner common.Address, node, total int64) *indexer.StorageNodeAdded {
	return &indexer.StorageNodeAdded{
		EventMeta:       seq.meta(indexer.EventStorageNodeAdded, indexer.KindInstaShare),
		Owner:           owner,
		NodeID:          big.NewInt(node),
		ProviderAddress: provider,
		TotalSpace:      big.NewInt(total),
	}
}

func TestRegisterUploadRemoveRestoresFreeLoad(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, register(seq, alice, 1000))
		apply(t, p, upload(seq, alice, "QmA", 300, 0))

		user := getEntity[model.User](t, db, addressID(alice))
		assert.Equal(t, "700", user.FreeLoad.String())
		assert.Equal(t, "1000", user.MaxLoad.String())
		assert.EqualValues(t, 1, user.TotalFiles)

		apply(t, p, remove(seq, alice, "QmA"))

		user = getEntity[model.User](t, db, addressID(alice))
		assert.Equal(t, "1000", user.FreeLoad.String())
		assert.EqualValues(t, 0, user.TotalFiles)

		file := getEntity[model.File](t, db, fileID(alice, "QmA"))
		assert.False(t, file.IsActive)
		assert.Equal(t, model.FileStatusRemoved, file.Status)
		assert.NotZero(t, file.RemovedAt)

		stats := systemStats(t, db)
		assert.EqualValues(t, 1, stats.TotalUsers)
		assert.EqualValues(t, 0, stats.TotalFiles)
		assert.EqualValues(t, 0, stats.ActiveFiles)
		assert.Equal(t, "0", stats.TotalStorage.String())
	})
}

func TestUploadCreatesUserImplicitly(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, upload(seq, bob, "QmB", 50, 0))

		user := getEntity[model.User](t, db, addressID(bob))
		// freeLoad starts at zero and is allowed to go negative
		assert.Equal(t, "-50", user.FreeLoad.String())
		assert.EqualValues(t, 1, systemStats(t, db).TotalUsers)
	})
}

func TestNodeUsageFollowsUploadsAndRemovals(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, register(seq, alice, 10_000))
		apply(t, p, addNode(seq, alice, 1, 500))
		apply(t, p, upload(seq, alice, "QmA", 100, 1))

		node := getEntity[model.StorageNode](t, db, nodeID(alice, model.BigNumFromInt64(1)))
		assert.Equal(t, "100", node.UsedSpace.String())
		assert.Equal(t, "400", node.AvailableSpace.String())

		apply(t, p, remove(seq, alice, "QmA"))

		node = getEntity[model.StorageNode](t, db, nodeID(alice, model.BigNumFromInt64(1)))
		assert.Equal(t, "0", node.UsedSpace.String())
		assert.Equal(t, "500", node.AvailableSpace.String())

		file := getEntity[model.File](t, db, fileID(alice, "QmA"))
		assert.Equal(t, node.ID, file.StorageNode)
	})
}

func TestUploadToUnknownNodeLeavesNodesAlone(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, upload(seq, alice, "QmA", 100, 7))

		var node model.StorageNode
		err := db.Get(context.Background(), &node, nodeID(alice, model.BigNumFromInt64(7)))
		assert.ErrorIs(t, err, database.ErrNotFound)

		file := getEntity[model.File](t, db, fileID(alice, "QmA"))
		assert.Equal(t, "7", file.StorageNodeID.String())
	})
}

func TestStorageNodeUpdatedStoresVerbatim(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, addNode(seq, alice, 2, 1000))
		apply(t, p, &indexer.StorageNodeUpdated{
			EventMeta:      seq.meta(indexer.EventStorageNodeUpdated, indexer.KindInstaShare),
			Owner:          alice,
			NodeID:         big.NewInt(2),
			UsedSpace:      big.NewInt(600),
			AvailableSpace: big.NewInt(123),
		})

		node := getEntity[model.StorageNode](t, db, nodeID(alice, model.BigNumFromInt64(2)))
		assert.Equal(t, "600", node.UsedSpace.String())
		assert.Equal(t, "123", node.AvailableSpace.String())
		assert.Equal(t, "1000", node.TotalSpace.String())
	})
}

func TestDoubleDeactivateDecrementsOnce(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, addNode(seq, alice, 1, 100))
		apply(t, p, addNode(seq, alice, 2, 100))
		assert.EqualValues(t, 2, systemStats(t, db).ActiveNodes)

		for i := 0; i < 2; i++ {
			apply(t, p, &indexer.StorageNodeDeactivated{
				EventMeta: seq.meta(indexer.EventStorageNodeDeactivated, indexer.KindInstaShare),
				Owner:     alice,
				NodeID:    big.NewInt(1),
			})
		}

		stats := systemStats(t, db)
		assert.EqualValues(t, 1, stats.ActiveNodes)
		assert.EqualValues(t, 2, stats.TotalNodes)

		node := getEntity[model.StorageNode](t, db, nodeID(alice, model.BigNumFromInt64(1)))
		assert.False(t, node.IsActive)
		assert.NotZero(t, node.DeactivatedAt)

		user := getEntity[model.User](t, db, addressID(alice))
		assert.EqualValues(t, 2, user.TotalNodes)
	})
}

func TestRedundantStatusUpdateKeepsActiveFiles(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		status := func(active bool) *indexer.FileStatusUpdated {
			return &indexer.FileStatusUpdated{
				EventMeta: seq.meta(indexer.EventFileStatusUpdated, indexer.KindInstaShare),
				Owner:     alice,
				Cid:       "QmA",
				IsActive:  active,
			}
		}

		apply(t, p, upload(seq, alice, "QmA", 10, 0))
		apply(t, p, status(true))
		assert.EqualValues(t, 1, systemStats(t, db).ActiveFiles)

		apply(t, p, status(false))
		apply(t, p, status(false))
		assert.EqualValues(t, 0, systemStats(t, db).ActiveFiles)

		file := getEntity[model.File](t, db, fileID(alice, "QmA"))
		assert.Equal(t, model.FileStatusInactive, file.Status)

		apply(t, p, status(true))
		assert.EqualValues(t, 1, systemStats(t, db).ActiveFiles)
	})
}

func TestStatusUpdateOfUnknownFileIsNoop(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		assert.True(t, apply(t, p, &indexer.FileStatusUpdated{
			EventMeta: seq.meta(indexer.EventFileStatusUpdated, indexer.KindInstaShare),
			Owner:     alice,
			Cid:       "QmMissing",
			IsActive:  true,
		}))

		var stats model.SystemStats
		assert.ErrorIs(t, db.Get(context.Background(), &stats, model.SystemStatsID), database.ErrNotFound)
	})
}

func TestTotalFilesTracksUploadsMinusRemovals(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		cids := []string{"Qm1", "Qm2", "Qm3", "Qm4", "Qm5"}
		for _, cid := range cids {
			apply(t, p, upload(seq, alice, cid, 10, 0))
		}
		for _, cid := range cids[:2] {
			apply(t, p, remove(seq, alice, cid))
		}
		// removing a file never uploaded changes nothing
		apply(t, p, remove(seq, alice, "QmUnknown"))

		stats := systemStats(t, db)
		assert.EqualValues(t, 3, stats.TotalFiles)
		assert.EqualValues(t, 3, stats.ActiveFiles)
		assert.Equal(t, "30", stats.TotalStorage.String())
		assert.EqualValues(t, 3, getEntity[model.User](t, db, addressID(alice)).TotalFiles)
	})
}

func TestRemoveInactiveFileKeepsActiveCount(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, upload(seq, alice, "QmA", 10, 0))
		apply(t, p, upload(seq, alice, "QmB", 10, 0))
		apply(t, p, &indexer.FileStatusUpdated{
			EventMeta: seq.meta(indexer.EventFileStatusUpdated, indexer.KindInstaShare),
			Owner:     alice,
			Cid:       "QmA",
			IsActive:  false,
		})
		apply(t, p, remove(seq, alice, "QmA"))

		stats := systemStats(t, db)
		assert.EqualValues(t, 1, stats.TotalFiles)
		assert.EqualValues(t, 1, stats.ActiveFiles)
	})
}

func TestQuotaUpdates(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, register(seq, alice, 100))
		apply(t, p, &indexer.LoadIncreased{
			EventMeta:      seq.meta(indexer.EventLoadIncreased, indexer.KindInstaShare),
			Owner:          alice,
			AdditionalLoad: big.NewInt(50),
		})
		user := getEntity[model.User](t, db, addressID(alice))
		assert.Equal(t, "150", user.FreeLoad.String())
		assert.Equal(t, "150", user.MaxLoad.String())

		apply(t, p, &indexer.MaxLoadUpdated{
			EventMeta: seq.meta(indexer.EventMaxLoadUpdated, indexer.KindInstaShare),
			MaxLoad:   big.NewInt(999),
			Owner:     alice,
		})
		apply(t, p, &indexer.FreeLoadUpdated{
			EventMeta: seq.meta(indexer.EventFreeLoadUpdated, indexer.KindInstaShare),
			Owner:     alice,
			FreeLoad:  big.NewInt(7),
		})
		lockEv := &indexer.InstanceLockStatusUpdated{
			EventMeta: seq.meta(indexer.EventInstanceLockStatusUpdated, indexer.KindInstaShare),
			Owner:     alice,
			IsLocked:  true,
		}
		apply(t, p, lockEv)

		user = getEntity[model.User](t, db, addressID(alice))
		assert.Equal(t, "7", user.FreeLoad.String())
		assert.Equal(t, "999", user.MaxLoad.String())
		assert.True(t, user.IsLocked)

		history := getEntity[model.UserHistory](t, db, lockEv.EventID())
		assert.Equal(t, model.UserActionUpdateLockStatus, history.Action)
		assert.Equal(t, user.ID, history.User)
	})
}

func TestReplayIsNoop(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		ev := upload(seq, alice, "QmA", 10, 0)
		assert.True(t, apply(t, p, ev))
		assert.False(t, apply(t, p, ev))

		stats := systemStats(t, db)
		assert.EqualValues(t, 1, stats.TotalFiles)
		assert.Equal(t, "10", stats.TotalStorage.String())

		record := getEntity[model.EventRecord](t, db, ev.EventID())
		assert.Equal(t, indexer.EventFileUploaded, record.Name)
		assert.Equal(t, ev.BlockNumber, record.BlockNumber)
	})
}

func TestSystemConfigEvents(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, &indexer.OwnershipTransferred{
			EventMeta:     seq.meta(indexer.EventOwnershipTransferred, indexer.KindStorageMarket),
			PreviousOwner: alice,
			NewOwner:      bob,
		})
		apply(t, p, &indexer.Paused{EventMeta: seq.meta(indexer.EventPaused, indexer.KindStorageMarket), Account: bob})
		apply(t, p, &indexer.InstaShareContractUpdated{
			EventMeta:  seq.meta(indexer.EventInstaShareContractUpdated, indexer.KindStorageMarket),
			NewAddress: provider,
		})

		cfg := getEntity[model.SystemConfig](t, db, model.SystemConfigID)
		assert.Equal(t, addressID(bob), cfg.MarketOwner)
		assert.True(t, cfg.MarketPaused)
		assert.Empty(t, cfg.Owner)
		assert.False(t, cfg.Paused)
		assert.Equal(t, addressID(provider), cfg.InstaShareContract)

		apply(t, p, &indexer.Unpaused{EventMeta: seq.meta(indexer.EventUnpaused, indexer.KindStorageMarket), Account: bob})
		assert.False(t, getEntity[model.SystemConfig](t, db, model.SystemConfigID).MarketPaused)
	})
}

func TestConfigEventsScopedByContract(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, &indexer.OwnershipTransferred{
			EventMeta: seq.meta(indexer.EventOwnershipTransferred, indexer.KindInstaShare),
			NewOwner:  alice,
		})
		apply(t, p, &indexer.Paused{EventMeta: seq.meta(indexer.EventPaused, indexer.KindInstaShare), Account: alice})
		apply(t, p, &indexer.OwnershipTransferred{
			EventMeta:     seq.meta(indexer.EventOwnershipTransferred, indexer.KindStorageMarket),
			PreviousOwner: alice,
			NewOwner:      bob,
		})
		apply(t, p, &indexer.Unpaused{EventMeta: seq.meta(indexer.EventUnpaused, indexer.KindStorageMarket), Account: bob})
		// public share carries no config fields
		apply(t, p, &indexer.OwnershipTransferred{
			EventMeta: seq.meta(indexer.EventOwnershipTransferred, indexer.KindPublicShare),
			NewOwner:  provider,
		})

		cfg := getEntity[model.SystemConfig](t, db, model.SystemConfigID)
		assert.Equal(t, addressID(alice), cfg.Owner)
		assert.True(t, cfg.Paused)
		assert.Equal(t, addressID(bob), cfg.MarketOwner)
		assert.False(t, cfg.MarketPaused)
	})
}

func TestStatusUpdateAfterRemoveIsNoop(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, register(seq, alice, 1000))
		apply(t, p, upload(seq, alice, "QmA", 100, 0))
		apply(t, p, remove(seq, alice, "QmA"))
		ev := &indexer.FileStatusUpdated{
			EventMeta: seq.meta(indexer.EventFileStatusUpdated, indexer.KindInstaShare),
			Owner:     alice,
			Cid:       "QmA",
			IsActive:  true,
		}
		assert.True(t, apply(t, p, ev))

		file := getEntity[model.File](t, db, fileID(alice, "QmA"))
		assert.Equal(t, model.FileStatusRemoved, file.Status)
		assert.False(t, file.IsActive)

		stats := systemStats(t, db)
		assert.EqualValues(t, 0, stats.ActiveFiles)
		assert.EqualValues(t, 0, stats.TotalFiles)

		var history model.FileHistory
		assert.ErrorIs(t, db.Get(context.Background(), &history, ev.EventID()), database.ErrNotFound)
	})
}

func TestDoubleRemoveAppliesOnce(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		apply(t, p, register(seq, alice, 1000))
		apply(t, p, addNode(seq, alice, 1, 500))
		apply(t, p, upload(seq, alice, "QmA", 100, 1))
		apply(t, p, remove(seq, alice, "QmA"))
		second := remove(seq, alice, "QmA")
		assert.True(t, apply(t, p, second))

		user := getEntity[model.User](t, db, addressID(alice))
		assert.EqualValues(t, 0, user.TotalFiles)
		assert.Equal(t, "1000", user.FreeLoad.String())

		stats := systemStats(t, db)
		assert.EqualValues(t, 0, stats.TotalFiles)
		assert.EqualValues(t, 0, stats.ActiveFiles)
		assert.Equal(t, "0", stats.TotalStorage.String())

		node := getEntity[model.StorageNode](t, db, nodeID(alice, model.BigNumFromInt64(1)))
		assert.Equal(t, "0", node.UsedSpace.String())
		assert.Equal(t, "500", node.AvailableSpace.String())

		var history model.FileHistory
		assert.ErrorIs(t, db.Get(context.Background(), &history, second.EventID()), database.ErrNotFound)
	})
}

func TestLongCidGetsBoundedID(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		cid := "bafy" + strings.Repeat("a", 400)
		ev := upload(seq, alice, cid, 10, 0)
		ev.FileName = strings.Repeat("n", 600)
		apply(t, p, ev)

		id := fileID(alice, cid)
		assert.LessOrEqual(t, len(id), 191)
		file := getEntity[model.File](t, db, id)
		assert.Equal(t, cid, file.Cid)
		assert.Equal(t, ev.FileName, file.FileName)

		got, err := NewQueryService(db).GetFile(context.Background(), alice.Hex()+"-"+cid)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)

		apply(t, p, remove(seq, alice, cid))
		assert.Equal(t, model.FileStatusRemoved, getEntity[model.File](t, db, id).Status)
	})
}

type unknownEvent struct {
	indexer.EventMeta
}

func TestUnhandledEventRollsBack(t *testing.T) {
	eachStore(t, func(t *testing.T, db database.Database) {
		p := NewEventProcessor(db)
		seq := &sequence{}

		ev := &unknownEvent{EventMeta: seq.meta("Mystery", indexer.KindInstaShare)}
		_, err := p.Apply(context.Background(), ev)
		assert.ErrorIs(t, err, ErrUnhandledEvent)

		var record model.EventRecord
		assert.ErrorIs(t, db.Get(context.Background(), &record, ev.EventID()), database.ErrNotFound)
	})
}
