package indexer_service

import (
	"storage-market-indexer/indexer"
	"storage-market-indexer/model"
)

func (p *EventProcessor) onInstanceOwnerRegistered(c *eventCtx, ev *indexer.InstanceOwnerRegistered) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}

	// re-registration overwrites the quota
	user.FreeLoad = model.NewBigNum(ev.FreeLoad)
	user.MaxLoad = model.NewBigNum(ev.FreeLoad)
	user.IsLocked = ev.IsLocked
	user.UpdatedAt = c.timestamp()

	return c.put(user, c.userHistory(user, model.UserActionRegister))
}

func (p *EventProcessor) onFileUploaded(c *eventCtx, ev *indexer.FileUploaded) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}

	size := model.NewBigNum(ev.Size)
	id := fileID(ev.Owner, ev.Cid)
	file := &model.File{
		ID:            id,
		Owner:         user.ID,
		Cid:           ev.Cid,
		Size:          size,
		FileType:      ev.FileType,
		FileName:      ev.FileName,
		StorageNodeID: model.NewBigNum(ev.StorageNodeID),
		IsActive:      true,
		Status:        model.FileStatusActive,
		CreatedAt:     c.timestamp(),
		UpdatedAt:     c.timestamp(),
	}

	if file.StorageNodeID.Sign() > 0 {
		file.StorageNode = nodeID(ev.Owner, file.StorageNodeID)
		if err := p.applyUsageDelta(c, file.StorageNode, size); err != nil {
			return err
		}
	}

	user.TotalFiles++
	user.FreeLoad = user.FreeLoad.Sub(size)
	user.UpdatedAt = c.timestamp()

	stats, err := c.system()
	if err != nil {
		return err
	}
	stats.TotalFiles++
	stats.ActiveFiles++
	stats.TotalStorage = stats.TotalStorage.Add(size)

	return c.put(file, user, c.fileHistory(id, model.FileActionUpload, ev.Owner))
}

func (p *EventProcessor) onFileRemoved(c *eventCtx, ev *indexer.FileRemoved) error {
	id := fileID(ev.Owner, ev.Cid)
	file, err := loadExisting[model.File](c.tx, id)
	if err != nil || file == nil {
		return err
	}
	// removal is terminal, later events for the file are ignored
	if file.Status == model.FileStatusRemoved {
		return nil
	}

	// capture before overwrite
	wasActive := file.IsActive
	size := file.Size

	file.IsActive = false
	file.Status = model.FileStatusRemoved
	file.RemovedAt = c.timestamp()
	file.UpdatedAt = c.timestamp()

	if file.StorageNode != "" {
		if err := p.applyUsageDelta(c, file.StorageNode, model.BigNum{}.Sub(size)); err != nil {
			return err
		}
	}

	user, err := loadExisting[model.User](c.tx, file.Owner)
	if err != nil {
		return err
	}
	if user != nil {
		user.TotalFiles--
		user.FreeLoad = user.FreeLoad.Add(size)
		user.UpdatedAt = c.timestamp()
		if err := c.put(user); err != nil {
			return err
		}
	}

	stats, err := c.system()
	if err != nil {
		return err
	}
	stats.TotalFiles--
	if wasActive {
		stats.ActiveFiles--
	}
	stats.TotalStorage = stats.TotalStorage.Sub(size)

	return c.put(file, c.fileHistory(id, model.FileActionRemove, ev.Owner))
}

func (p *EventProcessor) onFileStatusUpdated(c *eventCtx, ev *indexer.FileStatusUpdated) error {
	id := fileID(ev.Owner, ev.Cid)
	file, err := loadExisting[model.File](c.tx, id)
	if err != nil || file == nil || file.Status == model.FileStatusRemoved {
		return err
	}

	wasActive := file.IsActive
	file.IsActive = ev.IsActive
	if ev.IsActive {
		file.Status = model.FileStatusActive
	} else {
		file.Status = model.FileStatusInactive
	}
	file.UpdatedAt = c.timestamp()

	// only real transitions move the counter
	if wasActive != ev.IsActive {
		stats, err := c.system()
		if err != nil {
			return err
		}
		if ev.IsActive {
			stats.ActiveFiles++
		} else {
			stats.ActiveFiles--
		}
	}

	return c.put(file, c.fileHistory(id, model.FileActionUpdate, ev.Owner))
}

func (p *EventProcessor) onFreeLoadUpdated(c *eventCtx, ev *indexer.FreeLoadUpdated) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}
	user.FreeLoad = model.NewBigNum(ev.FreeLoad)
	user.UpdatedAt = c.timestamp()
	return c.put(user, c.userHistory(user, model.UserActionUpdateFreeLoad))
}

func (p *EventProcessor) onMaxLoadUpdated(c *eventCtx, ev *indexer.MaxLoadUpdated) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}
	user.MaxLoad = model.NewBigNum(ev.MaxLoad)
	user.UpdatedAt = c.timestamp()
	return c.put(user, c.userHistory(user, model.UserActionUpdateMaxLoad))
}

func (p *EventProcessor) onInstanceLockStatusUpdated(c *eventCtx, ev *indexer.InstanceLockStatusUpdated) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}
	user.IsLocked = ev.IsLocked
	user.UpdatedAt = c.timestamp()
	return c.put(user, c.userHistory(user, model.UserActionUpdateLockStatus))
}

func (p *EventProcessor) onLoadIncreased(c *eventCtx, ev *indexer.LoadIncreased) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}
	extra := model.NewBigNum(ev.AdditionalLoad)
	user.MaxLoad = user.MaxLoad.Add(extra)
	user.FreeLoad = user.FreeLoad.Add(extra)
	user.UpdatedAt = c.timestamp()
	return c.put(user, c.userHistory(user, model.UserActionIncreaseLoad))
}

func (p *EventProcessor) onStorageNodeAdded(c *eventCtx, ev *indexer.StorageNodeAdded) error {
	user, err := c.getOrCreateUser(ev.Owner)
	if err != nil {
		return err
	}

	number := model.NewBigNum(ev.NodeID)
	total := model.NewBigNum(ev.TotalSpace)
	node := &model.StorageNode{
		ID:              nodeID(ev.Owner, number),
		NodeID:          number,
		Owner:           user.ID,
		ProviderAddress: addressID(ev.ProviderAddress),
		TotalSpace:      total,
		UsedSpace:       model.BigNum{},
		AvailableSpace:  total,
		IsActive:        true,
		PurchaseTime:    c.timestamp(),
		CreatedAt:       c.timestamp(),
		UpdatedAt:       c.timestamp(),
	}

	user.TotalNodes++
	user.UpdatedAt = c.timestamp()

	stats, err := c.system()
	if err != nil {
		return err
	}
	stats.TotalNodes++
	stats.ActiveNodes++

	return c.put(node, user)
}

func (p *EventProcessor) onStorageNodeUpdated(c *eventCtx, ev *indexer.StorageNodeUpdated) error {
	return p.setUsageAbsolute(c, nodeID(ev.Owner, model.NewBigNum(ev.NodeID)), model.NewBigNum(ev.UsedSpace), model.NewBigNum(ev.AvailableSpace))
}

func (p *EventProcessor) onStorageNodeDeactivated(c *eventCtx, ev *indexer.StorageNodeDeactivated) error {
	node, err := loadExisting[model.StorageNode](c.tx, nodeID(ev.Owner, model.NewBigNum(ev.NodeID)))
	if err != nil || node == nil {
		return err
	}
	if !node.IsActive {
		return nil
	}

	node.IsActive = false
	node.DeactivatedAt = c.timestamp()
	node.UpdatedAt = c.timestamp()

	stats, err := c.system()
	if err != nil {
		return err
	}
	stats.ActiveNodes--

	return c.put(node)
}

// applyUsageDelta add delta to a node's usedSpace and recompute availableSpace; a missing node is ignored
func (p *EventProcessor) applyUsageDelta(c *eventCtx, id string, delta model.BigNum) error {
	node, err := loadExisting[model.StorageNode](c.tx, id)
	if err != nil || node == nil {
		return err
	}
	node.UsedSpace = node.UsedSpace.Add(delta)
	node.AvailableSpace = node.TotalSpace.Sub(node.UsedSpace)
	node.UpdatedAt = c.timestamp()
	return c.put(node)
}

// setUsageAbsolute store the provider-reported usage verbatim, without recomputing; a missing node is ignored
func (p *EventProcessor) setUsageAbsolute(c *eventCtx, id string, used, available model.BigNum) error {
	node, err := loadExisting[model.StorageNode](c.tx, id)
	if err != nil || node == nil {
		return err
	}
	node.UsedSpace = used
	node.AvailableSpace = available
	node.UpdatedAt = c.timestamp()
	return c.put(node)
}

// onOwnershipTransferred InstaShare and StorageMarket keep separate owners in the config row
func (p *EventProcessor) onOwnershipTransferred(c *eventCtx, ev *indexer.OwnershipTransferred) error {
	switch c.meta.ContractKind {
	case indexer.KindInstaShare, indexer.KindStorageMarket:
	default:
		return nil
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if c.meta.ContractKind == indexer.KindStorageMarket {
		cfg.MarketOwner = addressID(ev.NewOwner)
	} else {
		cfg.Owner = addressID(ev.NewOwner)
	}
	return nil
}

func (p *EventProcessor) onPaused(c *eventCtx, paused bool) error {
	switch c.meta.ContractKind {
	case indexer.KindInstaShare, indexer.KindStorageMarket:
	default:
		return nil
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if c.meta.ContractKind == indexer.KindStorageMarket {
		cfg.MarketPaused = paused
	} else {
		cfg.Paused = paused
	}
	return nil
}
