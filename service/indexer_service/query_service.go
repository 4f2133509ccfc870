package indexer_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storage-market-indexer/database"
	"storage-market-indexer/model"
	"storage-market-indexer/model/dao"
)

// ErrEntityNotFound requested row does not exist
var ErrEntityNotFound = errors.New("not found")

// Page one page of a cursor-paginated listing
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor"`
}

// QueryService read side of the derived dataset
type QueryService struct {
	userDAO        *dao.EntityDAO[model.User, *model.User]
	userHistoryDAO *dao.EntityDAO[model.UserHistory, *model.UserHistory]
	fileDAO        *dao.EntityDAO[model.File, *model.File]
	fileHistoryDAO *dao.EntityDAO[model.FileHistory, *model.FileHistory]
	nodeDAO        *dao.EntityDAO[model.StorageNode, *model.StorageNode]
	providerDAO    *dao.EntityDAO[model.StorageProvider, *model.StorageProvider]
	buyerDAO       *dao.EntityDAO[model.Buyer, *model.Buyer]
	orderDAO       *dao.EntityDAO[model.DataOrder, *model.DataOrder]
	systemStatsDAO *dao.EntityDAO[model.SystemStats, *model.SystemStats]
	marketStatsDAO *dao.EntityDAO[model.MarketStats, *model.MarketStats]
	configDAO      *dao.EntityDAO[model.SystemConfig, *model.SystemConfig]
	kvDAO          *dao.EntityDAO[model.KeyValuePair, *model.KeyValuePair]
	eventDAO       *dao.EntityDAO[model.EventRecord, *model.EventRecord]
}

// NewQueryService create query service instance; nil db means database.DB
func NewQueryService(db database.Database) *QueryService {
	return &QueryService{
		userDAO:        dao.NewEntityDAO[model.User](db),
		userHistoryDAO: dao.NewEntityDAO[model.UserHistory](db),
		fileDAO:        dao.NewEntityDAO[model.File](db),
		fileHistoryDAO: dao.NewEntityDAO[model.FileHistory](db),
		nodeDAO:        dao.NewEntityDAO[model.StorageNode](db),
		providerDAO:    dao.NewEntityDAO[model.StorageProvider](db),
		buyerDAO:       dao.NewEntityDAO[model.Buyer](db),
		orderDAO:       dao.NewEntityDAO[model.DataOrder](db),
		systemStatsDAO: dao.NewEntityDAO[model.SystemStats](db),
		marketStatsDAO: dao.NewEntityDAO[model.MarketStats](db),
		configDAO:      dao.NewEntityDAO[model.SystemConfig](db),
		kvDAO:          dao.NewEntityDAO[model.KeyValuePair](db),
		eventDAO:       dao.NewEntityDAO[model.EventRecord](db),
	}
}

// normalizeAddress lowercase hex address as used in row IDs
func normalizeAddress(address string) string {
	return model.AddressID(strings.TrimSpace(address))
}

// normalizePairID lowercase the owner half of an owner-key ID, the key half is case-sensitive (cids)
func normalizePairID(id string) string {
	id = strings.TrimSpace(id)
	owner, key, ok := strings.Cut(id, "-")
	if !ok {
		return id
	}
	return model.PairID(owner, key)
}

// normalizeFileID accept owner-cid with the full cid, long cids map onto their digest key
func normalizeFileID(id string) string {
	id = strings.TrimSpace(id)
	owner, cid, ok := strings.Cut(id, "-")
	if !ok {
		return id
	}
	return model.FileID(owner, cid)
}

func getOne[T any, PT interface {
	*T
	model.Entity
}](ctx context.Context, d *dao.EntityDAO[T, PT], kind, id string) (PT, error) {
	entity, err := d.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	if entity == nil {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrEntityNotFound)
	}
	return entity, nil
}

func page[T any](items []T, next string, err error) (*Page[T], error) {
	if err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, NextCursor: next}, nil
}

func (s *QueryService) GetUser(ctx context.Context, address string) (*model.User, error) {
	id := normalizeAddress(address)
	return getOne(ctx, s.userDAO, "user", id)
}

func (s *QueryService) ListUsers(ctx context.Context, cursor string, size int) (*Page[model.User], error) {
	return page(s.userDAO.List(ctx, cursor, size))
}

// ListUserFiles files owned by the address, removed ones included
func (s *QueryService) ListUserFiles(ctx context.Context, address, cursor string, size int) (*Page[model.File], error) {
	return page(s.fileDAO.ListBy(ctx, "owner", normalizeAddress(address), cursor, size))
}

func (s *QueryService) ListUserNodes(ctx context.Context, address, cursor string, size int) (*Page[model.StorageNode], error) {
	return page(s.nodeDAO.ListBy(ctx, "owner", normalizeAddress(address), cursor, size))
}

func (s *QueryService) ListUserHistory(ctx context.Context, address, cursor string, size int) (*Page[model.UserHistory], error) {
	return page(s.userHistoryDAO.ListBy(ctx, "user_id", normalizeAddress(address), cursor, size))
}

// GetFile file by owner-cid ID
func (s *QueryService) GetFile(ctx context.Context, id string) (*model.File, error) {
	id = normalizeFileID(id)
	return getOne(ctx, s.fileDAO, "file", id)
}

func (s *QueryService) ListFileHistory(ctx context.Context, id, cursor string, size int) (*Page[model.FileHistory], error) {
	return page(s.fileHistoryDAO.ListBy(ctx, "file_id", normalizeFileID(id), cursor, size))
}

// GetNode storage node by owner-nodeId ID
func (s *QueryService) GetNode(ctx context.Context, id string) (*model.StorageNode, error) {
	id = normalizePairID(id)
	return getOne(ctx, s.nodeDAO, "node", id)
}

func (s *QueryService) ListProviders(ctx context.Context, cursor string, size int) (*Page[model.StorageProvider], error) {
	return page(s.providerDAO.List(ctx, cursor, size))
}

// GetProvider provider by sellID, or by address for providers registered without one
func (s *QueryService) GetProvider(ctx context.Context, id string) (*model.StorageProvider, error) {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "0x") || strings.HasPrefix(id, "0X") {
		id = normalizeAddress(id)
	}
	return getOne(ctx, s.providerDAO, "provider", id)
}

func (s *QueryService) GetOrder(ctx context.Context, id string) (*model.DataOrder, error) {
	id = strings.TrimSpace(id)
	return getOne(ctx, s.orderDAO, "order", id)
}

func (s *QueryService) GetBuyer(ctx context.Context, address string) (*model.Buyer, error) {
	id := normalizeAddress(address)
	return getOne(ctx, s.buyerDAO, "buyer", id)
}

func (s *QueryService) ListBuyerOrders(ctx context.Context, address, cursor string, size int) (*Page[model.DataOrder], error) {
	return page(s.orderDAO.ListBy(ctx, "buyer", normalizeAddress(address), cursor, size))
}

// GetSystemStats current totals; all zero before the first event
func (s *QueryService) GetSystemStats(ctx context.Context) (*model.SystemStats, error) {
	stats, err := s.systemStatsDAO.Get(ctx, model.SystemStatsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get system stats: %w", err)
	}
	if stats == nil {
		return &model.SystemStats{ID: model.SystemStatsID}, nil
	}
	return stats, nil
}

// GetMarketStats current market totals; all zero before the first event
func (s *QueryService) GetMarketStats(ctx context.Context) (*model.MarketStats, error) {
	stats, err := s.marketStatsDAO.Get(ctx, model.MarketStatsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get market stats: %w", err)
	}
	if stats == nil {
		return &model.MarketStats{ID: model.MarketStatsID}, nil
	}
	return stats, nil
}

func (s *QueryService) GetSystemConfig(ctx context.Context) (*model.SystemConfig, error) {
	cfg, err := s.configDAO.Get(ctx, model.SystemConfigID)
	if err != nil {
		return nil, fmt.Errorf("failed to get system config: %w", err)
	}
	if cfg == nil {
		return &model.SystemConfig{ID: model.SystemConfigID}, nil
	}
	return cfg, nil
}

func (s *QueryService) ListKeyValues(ctx context.Context, cursor string, size int) (*Page[model.KeyValuePair], error) {
	return page(s.kvDAO.List(ctx, cursor, size))
}

func (s *QueryService) GetKeyValue(ctx context.Context, id string) (*model.KeyValuePair, error) {
	id = strings.TrimSpace(id)
	return getOne(ctx, s.kvDAO, "key value", id)
}

// GetEvent processed event by txHash-logIndex
func (s *QueryService) GetEvent(ctx context.Context, id string) (*model.EventRecord, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	return getOne(ctx, s.eventDAO, "event", id)
}
