package dao

import (
	"context"
	"errors"

	"storage-market-indexer/database"
	"storage-market-indexer/model"
)

// EntityDAO read access to one entity table, with a Redis read-through cache on single-row lookups
type EntityDAO[T any, PT interface {
	*T
	model.Entity
}] struct {
	db database.Database
}

// NewEntityDAO create entity DAO instance; nil db falls back to the global database
func NewEntityDAO[T any, PT interface {
	*T
	model.Entity
}](db database.Database) *EntityDAO[T, PT] {
	if db == nil {
		db = database.DB
	}
	return &EntityDAO[T, PT]{db: db}
}

func (dao *EntityDAO[T, PT]) table() string {
	return PT(new(T)).TableName()
}

// Get get entity by ID, nil when it does not exist
func (dao *EntityDAO[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	cacheKey := database.CacheKey(dao.table(), id)

	cached := PT(new(T))
	if err := database.GetCache(cacheKey, cached); err == nil {
		return cached, nil
	}

	entity := PT(new(T))
	if err := dao.db.Get(ctx, entity, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	_ = database.SetCache(cacheKey, entity)
	return entity, nil
}

// List list entities ordered by ID with cursor pagination.
// Returns: entities, nextCursor (empty when exhausted), error
func (dao *EntityDAO[T, PT]) List(ctx context.Context, cursor string, size int) ([]T, string, error) {
	return dao.list(ctx, database.ListOptions{Cursor: cursor, Size: size})
}

// ListBy list entities whose secondary index field equals value, with cursor pagination
func (dao *EntityDAO[T, PT]) ListBy(ctx context.Context, field, value, cursor string, size int) ([]T, string, error) {
	return dao.list(ctx, database.ListOptions{IndexField: field, IndexValue: value, Cursor: cursor, Size: size})
}

func (dao *EntityDAO[T, PT]) list(ctx context.Context, opts database.ListOptions) ([]T, string, error) {
	items := make([]T, 0)
	next, err := dao.db.List(ctx, PT(new(T)), &items, opts)
	if err != nil {
		return nil, "", err
	}
	return items, next, nil
}

// Count total rows of the table
func (dao *EntityDAO[T, PT]) Count(ctx context.Context) (int64, error) {
	return dao.db.Count(ctx, PT(new(T)))
}
