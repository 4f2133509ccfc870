package indexer_service

import (
	"strconv"

	"storage-market-indexer/indexer"
	"storage-market-indexer/logger"
	"storage-market-indexer/model"
)

func (p *EventProcessor) onStorageProviderRegistered(c *eventCtx, ev *indexer.StorageProviderRegistered) error {
	sellID := model.NewBigNum(ev.SellID)
	address := addressID(ev.ProviderAddress)
	id := sellID.String()
	if sellID.IsZero() {
		id = address
	}

	provider, created, err := loadOrInit[model.StorageProvider](c.tx, id, func(sp *model.StorageProvider) {
		sp.ID = id
		sp.CreatedAt = c.timestamp()
	})
	if err != nil {
		return err
	}

	previous := provider.AvailableSpace
	available := model.NewBigNum(ev.AvailableSpace)

	// re-registration refreshes terms but keeps totalOrders and createdAt
	provider.SellID = sellID
	provider.ProviderAddress = address
	provider.AvailableSpace = available
	provider.PricePerMBPerMonth = model.NewBigNum(ev.PricePerMBPerMonth)
	provider.StakedETH = model.NewBigNum(ev.StakedETH)
	provider.IsValid = true
	provider.UpdatedAt = c.timestamp()

	stats, err := c.market()
	if err != nil {
		return err
	}
	if created {
		stats.TotalProviders++
	}
	stats.TotalStorageAvailable = stats.TotalStorageAvailable.Add(available.Sub(previous))

	return c.put(provider, &model.ProviderAddress{ID: address, ProviderID: id})
}

func (p *EventProcessor) onDataOrderCreated(c *eventCtx, ev *indexer.DataOrderCreated) error {
	orderID := model.NewBigNum(ev.OrderID)
	id := orderID.String()

	existing, err := loadExisting[model.DataOrder](c.tx, id)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Warnf("Data order %s already exists, skip %s", id, c.eventID())
		return nil
	}

	providerID, err := p.resolveProvider(c, addressID(ev.ProviderAddress))
	if err != nil {
		return err
	}
	provider, err := loadExisting[model.StorageProvider](c.tx, providerID)
	if err != nil {
		return err
	}
	if provider != nil {
		provider.TotalOrders++
		provider.UpdatedAt = c.timestamp()
		if err := c.put(provider); err != nil {
			return err
		}
	}

	buyerID := addressID(ev.BuyerAddress)
	buyer, _, err := loadOrInit[model.Buyer](c.tx, buyerID, func(b *model.Buyer) {
		b.ID = buyerID
		b.Address = buyerID
		b.CreatedAt = c.timestamp()
	})
	if err != nil {
		return err
	}
	space := model.NewBigNum(ev.StorageSpace)
	cost := model.NewBigNum(ev.TotalCost)
	buyer.TotalOrders++
	buyer.TotalSpent = buyer.TotalSpent.Add(cost)
	buyer.UpdatedAt = c.timestamp()

	stats, err := c.market()
	if err != nil {
		return err
	}
	stats.TotalOrders++
	stats.TotalStorageSold = stats.TotalStorageSold.Add(space)
	stats.TotalVolume = stats.TotalVolume.Add(cost)
	if buyer.TotalOrders == 1 {
		stats.TotalBuyers++
	}

	order := &model.DataOrder{
		ID:                   id,
		OrderID:              orderID,
		Provider:             providerID,
		ProviderAddress:      addressID(ev.ProviderAddress),
		Buyer:                buyerID,
		StorageSpace:         space,
		TotalCost:            cost,
		StakedETH:            model.NewBigNum(ev.StakedETH),
		VerificationContract: addressID(ev.VerificationContract),
		CreatedAt:            c.timestamp(),
		TransactionHash:      c.meta.TxHash.Hex(),
	}
	return c.put(buyer, order)
}

// resolveProvider map a provider address to its StorageProvider ID, the address itself when never registered
func (p *EventProcessor) resolveProvider(c *eventCtx, address string) (string, error) {
	link, err := loadExisting[model.ProviderAddress](c.tx, address)
	if err != nil {
		return "", err
	}
	if link == nil || link.ProviderID == "" {
		return address, nil
	}
	return link.ProviderID, nil
}

func (p *EventProcessor) onInstaShareContractUpdated(c *eventCtx, ev *indexer.InstaShareContractUpdated) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cfg.InstaShareContract = addressID(ev.NewAddress)
	return nil
}

// onBatchSet upsert one KeyValuePair per position; surplus keys or values are ignored
func (p *EventProcessor) onBatchSet(c *eventCtx, ev *indexer.BatchSet) error {
	n := len(ev.Keys)
	if len(ev.Values) < n {
		n = len(ev.Values)
	}
	for i := 0; i < n; i++ {
		kv := &model.KeyValuePair{
			ID:              strconv.Itoa(i),
			Key:             ev.Keys[i],
			Value:           ev.Values[i],
			BlockNumber:     c.meta.BlockNumber,
			BlockTimestamp:  c.timestamp(),
			TransactionHash: c.meta.TxHash.Hex(),
		}
		if err := c.put(kv); err != nil {
			return err
		}
	}
	return nil
}
