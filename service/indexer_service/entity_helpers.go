package indexer_service

import (
	"errors"

	"storage-market-indexer/database"
	"storage-market-indexer/indexer"
	"storage-market-indexer/model"

	"github.com/ethereum/go-ethereum/common"
)

// loadOrInit get-or-create: load the row by ID, or build a fresh one with init when it does not exist yet.
// init must set the ID. created reports whether the row is new.
func loadOrInit[T any, PT interface {
	*T
	model.Entity
}](tx database.Tx, id string, init func(PT)) (PT, bool, error) {
	entity := PT(new(T))
	err := tx.Get(entity, id)
	if err == nil {
		return entity, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, err
	}

	entity = PT(new(T))
	init(entity)
	return entity, true, nil
}

// loadExisting load the row by ID, nil when it does not exist
func loadExisting[T any, PT interface {
	*T
	model.Entity
}](tx database.Tx, id string) (PT, error) {
	entity := PT(new(T))
	if err := tx.Get(entity, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

// eventCtx state of one event being applied: its transaction, metadata and the lazily loaded stats singletons
type eventCtx struct {
	tx   database.Tx
	meta *indexer.EventMeta

	systemStats  *model.SystemStats
	marketStats  *model.MarketStats
	systemConfig *model.SystemConfig
}

func newEventCtx(tx database.Tx, meta *indexer.EventMeta) *eventCtx {
	return &eventCtx{tx: tx, meta: meta}
}

func (c *eventCtx) timestamp() int64 {
	return c.meta.BlockTimestamp
}

func (c *eventCtx) eventID() string {
	return c.meta.EventID()
}

func (c *eventCtx) put(entities ...model.Entity) error {
	for _, e := range entities {
		if err := c.tx.Put(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *eventCtx) system() (*model.SystemStats, error) {
	if c.systemStats != nil {
		return c.systemStats, nil
	}
	stats, _, err := loadOrInit[model.SystemStats](c.tx, model.SystemStatsID, func(s *model.SystemStats) {
		s.ID = model.SystemStatsID
	})
	if err != nil {
		return nil, err
	}
	c.systemStats = stats
	return stats, nil
}

func (c *eventCtx) market() (*model.MarketStats, error) {
	if c.marketStats != nil {
		return c.marketStats, nil
	}
	stats, _, err := loadOrInit[model.MarketStats](c.tx, model.MarketStatsID, func(s *model.MarketStats) {
		s.ID = model.MarketStatsID
	})
	if err != nil {
		return nil, err
	}
	c.marketStats = stats
	return stats, nil
}

func (c *eventCtx) config() (*model.SystemConfig, error) {
	if c.systemConfig != nil {
		return c.systemConfig, nil
	}
	cfg, _, err := loadOrInit[model.SystemConfig](c.tx, model.SystemConfigID, func(s *model.SystemConfig) {
		s.ID = model.SystemConfigID
	})
	if err != nil {
		return nil, err
	}
	c.systemConfig = cfg
	return cfg, nil
}

// flush persist every singleton touched by the handler
func (c *eventCtx) flush() error {
	if c.systemStats != nil {
		c.systemStats.UpdatedAt = c.timestamp()
		if err := c.tx.Put(c.systemStats); err != nil {
			return err
		}
	}
	if c.marketStats != nil {
		c.marketStats.UpdatedAt = c.timestamp()
		if err := c.tx.Put(c.marketStats); err != nil {
			return err
		}
	}
	if c.systemConfig != nil {
		c.systemConfig.UpdatedAt = c.timestamp()
		if err := c.tx.Put(c.systemConfig); err != nil {
			return err
		}
	}
	return nil
}

// getOrCreateUser counts a newly seen user into SystemStats.totalUsers
func (c *eventCtx) getOrCreateUser(owner common.Address) (*model.User, error) {
	id := addressID(owner)
	user, created, err := loadOrInit[model.User](c.tx, id, func(u *model.User) {
		u.ID = id
		u.Address = id
		u.CreatedAt = c.timestamp()
	})
	if err != nil {
		return nil, err
	}
	if created {
		stats, err := c.system()
		if err != nil {
			return nil, err
		}
		stats.TotalUsers++
	}
	return user, nil
}

func (c *eventCtx) userHistory(user *model.User, action string) *model.UserHistory {
	return &model.UserHistory{
		ID:              c.eventID(),
		User:            user.ID,
		Action:          action,
		Timestamp:       c.timestamp(),
		BlockNumber:     c.meta.BlockNumber,
		TransactionHash: c.meta.TxHash.Hex(),
	}
}

func (c *eventCtx) fileHistory(fileID string, action string, actor common.Address) *model.FileHistory {
	return &model.FileHistory{
		ID:              c.eventID(),
		File:            fileID,
		Action:          action,
		Actor:           addressID(actor),
		Timestamp:       c.timestamp(),
		BlockNumber:     c.meta.BlockNumber,
		TransactionHash: c.meta.TxHash.Hex(),
	}
}

func addressID(addr common.Address) string {
	return model.AddressID(addr.Hex())
}

func fileID(owner common.Address, cid string) string {
	return model.FileID(owner.Hex(), cid)
}

func nodeID(owner common.Address, nodeNumber model.BigNum) string {
	return model.PairID(owner.Hex(), nodeNumber.String())
}
