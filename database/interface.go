package database

import (
	"context"

	"storage-market-indexer/model"
)

// Database entity store used by the event processor and the query API
type Database interface {
	// Begin open a read-write transaction. Writes become visible atomically on Commit.
	Begin(ctx context.Context) (Tx, error)

	// Get load a single entity by ID into dest, ErrNotFound on miss
	Get(ctx context.Context, dest model.Entity, id string) error

	// List page through rows of proto's table ordered by ID into dest (a pointer to a slice of
	// proto's struct type). Returns the cursor for the next page, empty when exhausted.
	List(ctx context.Context, proto model.Entity, dest interface{}, opts ListOptions) (string, error)

	// Count number of rows in proto's table
	Count(ctx context.Context, proto model.Entity) (int64, error)

	Close() error
}

// Tx a single-writer transaction with read-your-writes semantics
type Tx interface {
	Get(dest model.Entity, id string) error
	Put(entity model.Entity) error
	Commit() error
	Rollback() error
	// Touched cache keys of every entity written in this transaction
	Touched() []string
}

// ListOptions cursor pagination and optional secondary index filter
type ListOptions struct {
	IndexField string // Column name, must be one of the entity's IndexFields
	IndexValue string
	Cursor     string // Last ID of the previous page
	Size       int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func (o ListOptions) pageSize() int {
	if o.Size <= 0 {
		return DefaultPageSize
	}
	if o.Size > MaxPageSize {
		return MaxPageSize
	}
	return o.Size
}

// DBType database type
type DBType string

const (
	DBTypeMySQL  DBType = "mysql"
	DBTypePebble DBType = "pebble"
	DBTypeSQLite DBType = "sqlite"
)

// Global database instance
var DB Database

// currentDBType stores the current database type
var currentDBType DBType

// InitDatabase initialize database with specified type
func InitDatabase(dbType DBType, config interface{}) error {
	var err error

	switch dbType {
	case DBTypeMySQL:
		DB, err = NewMySQLDatabase(config)
	case DBTypeSQLite:
		DB, err = NewSQLiteDatabase(config)
	case DBTypePebble:
		DB, err = NewPebbleDatabase(config)
	default:
		return ErrUnsupportedDBType
	}
	if err == nil {
		currentDBType = dbType
	}

	return err
}

// GetDBType get current database type
func GetDBType() DBType {
	return currentDBType
}

// CacheKey cache key of a single entity row
func CacheKey(table, id string) string {
	return "entity:" + table + ":" + id
}

// touchSet records cache keys written by a transaction, in first-write order
type touchSet struct {
	keys []string
	seen map[string]struct{}
}

func (t *touchSet) touch(entity model.Entity) {
	key := CacheKey(entity.TableName(), entity.GetID())
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[key]; ok {
		return
	}
	t.seen[key] = struct{}{}
	t.keys = append(t.keys, key)
}

func (t *touchSet) Touched() []string {
	return append([]string(nil), t.keys...)
}
