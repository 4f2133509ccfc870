package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"storage-market-indexer/logger"
	"storage-market-indexer/model"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// PebbleDatabase PebbleDB implementation. All tables share one DB and are
// separated by key prefix:
//
//	t:{table}:{id}                    -> JSON(entity)
//	m:{table}:{id}                    -> JSON(index field values of the row)
//	i:{table}:{field}:{value}\x00{id} -> {id}
type PebbleDatabase struct {
	db *pebble.DB

	// one write transaction at a time, the indexed batch is not merged with concurrent writers
	writeMu sync.Mutex
}

// PebbleConfig PebbleDB configuration
type PebbleConfig struct {
	DataDir string
	FS      vfs.FS // Optional, vfs.NewMem() in tests
}

const (
	prefixRow   = "t:"
	prefixMeta  = "m:"
	prefixIndex = "i:"
)

// NewPebbleDatabase create PebbleDB database instance
func NewPebbleDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*PebbleConfig)
	if !ok {
		return nil, fmt.Errorf("invalid PebbleDB config type")
	}

	opts := &pebble.Options{}
	path := filepath.Join(cfg.DataDir, "indexer_db")
	if cfg.FS != nil {
		opts.FS = cfg.FS
		path = ""
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
		}
		logger.Infof("PebbleDB data directory: %s", cfg.DataDir)
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", path, err)
	}

	logger.Infof("PebbleDB database opened successfully")
	return &PebbleDatabase{db: db}, nil
}

func rowPrefix(table string) string {
	return prefixRow + table + ":"
}

func rowKey(table, id string) []byte {
	return []byte(rowPrefix(table) + id)
}

func metaKey(table, id string) []byte {
	return []byte(prefixMeta + table + ":" + id)
}

func indexPrefix(table, field, value string) string {
	return prefixIndex + table + ":" + field + ":" + value + "\x00"
}

// upperBound smallest key greater than every key starting with prefix (IDs are printable)
func upperBound(prefix string) []byte {
	return append([]byte(prefix), 0xff)
}

// lowerBound first key of prefix after cursor
func lowerBound(prefix, cursor string) []byte {
	if cursor == "" {
		return []byte(prefix)
	}
	return []byte(prefix + cursor + "\x00")
}

type pebbleReader interface {
	Get(key []byte) ([]byte, io.Closer, error)
}

func getJSON(r pebbleReader, key []byte, dest interface{}) error {
	data, closer, err := r.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	defer closer.Close()

	return json.Unmarshal(data, dest)
}

// Get load entity by ID
func (p *PebbleDatabase) Get(ctx context.Context, dest model.Entity, id string) error {
	return getJSON(p.db, rowKey(dest.TableName(), id), dest)
}

// List page through a table, or through one value of a secondary index
func (p *PebbleDatabase) List(ctx context.Context, proto model.Entity, dest interface{}, opts ListOptions) (string, error) {
	table := proto.TableName()
	size := opts.pageSize()

	var ids []string
	var values [][]byte

	if opts.IndexField == "" {
		prefix := rowPrefix(table)
		iter, err := p.db.NewIter(&pebble.IterOptions{
			LowerBound: lowerBound(prefix, opts.Cursor),
			UpperBound: upperBound(prefix),
		})
		if err != nil {
			return "", err
		}
		for iter.First(); iter.Valid() && len(ids) <= size; iter.Next() {
			ids = append(ids, string(iter.Key()[len(prefix):]))
			values = append(values, append([]byte(nil), iter.Value()...))
		}
		if err := iter.Close(); err != nil {
			return "", err
		}
	} else {
		if !hasIndex(proto, opts.IndexField) {
			return "", fmt.Errorf("%w: %s.%s", ErrUnknownIndex, table, opts.IndexField)
		}
		prefix := indexPrefix(table, opts.IndexField, opts.IndexValue)
		iter, err := p.db.NewIter(&pebble.IterOptions{
			LowerBound: lowerBound(prefix, opts.Cursor),
			UpperBound: upperBound(prefix),
		})
		if err != nil {
			return "", err
		}
		for iter.First(); iter.Valid() && len(ids) <= size; iter.Next() {
			ids = append(ids, string(iter.Value()))
		}
		if err := iter.Close(); err != nil {
			return "", err
		}
		for _, id := range ids {
			data, closer, err := p.db.Get(rowKey(table, id))
			if err != nil {
				return "", fmt.Errorf("index %s points to missing row %s: %w", opts.IndexField, id, err)
			}
			values = append(values, append([]byte(nil), data...))
			closer.Close()
		}
	}

	nextCursor := ""
	if len(ids) > size {
		ids = ids[:size]
		values = values[:size]
		nextCursor = ids[size-1]
	}

	buf := bytes.NewBufferString("[")
	buf.Write(bytes.Join(values, []byte(",")))
	buf.WriteString("]")
	if err := json.Unmarshal(buf.Bytes(), dest); err != nil {
		return "", fmt.Errorf("failed to decode %s rows: %w", table, err)
	}
	return nextCursor, nil
}

// Count number of rows in a table
func (p *PebbleDatabase) Count(ctx context.Context, proto model.Entity) (int64, error) {
	prefix := rowPrefix(proto.TableName())
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var count int64
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

func hasIndex(proto model.Entity, field string) bool {
	indexed, ok := proto.(model.Indexed)
	if !ok {
		return false
	}
	_, ok = indexed.IndexFields()[field]
	return ok
}

// Begin open a write transaction backed by an indexed batch
func (p *PebbleDatabase) Begin(ctx context.Context) (Tx, error) {
	p.writeMu.Lock()
	return &pebbleTx{
		owner: p,
		batch: p.db.NewIndexedBatch(),
	}, nil
}

func (p *PebbleDatabase) Close() error {
	return p.db.Close()
}

type pebbleTx struct {
	touchSet
	owner  *PebbleDatabase
	batch  *pebble.Batch
	closed bool
}

func (t *pebbleTx) Get(dest model.Entity, id string) error {
	if t.closed {
		return ErrTxClosed
	}
	return getJSON(t.batch, rowKey(dest.TableName(), id), dest)
}

func (t *pebbleTx) Put(entity model.Entity) error {
	if t.closed {
		return ErrTxClosed
	}
	id := entity.GetID()
	if id == "" {
		return ErrEmptyID
	}
	table := entity.TableName()

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", table, id, err)
	}
	if err := t.batch.Set(rowKey(table, id), data, nil); err != nil {
		return err
	}

	if indexed, ok := entity.(model.Indexed); ok {
		if err := t.reindex(table, id, indexed.IndexFields()); err != nil {
			return err
		}
	}

	t.touch(entity)
	return nil
}

// reindex replace the secondary index entries of a row
func (t *pebbleTx) reindex(table, id string, fields map[string]string) error {
	var previous map[string]string
	if err := getJSON(t.batch, metaKey(table, id), &previous); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	for field, value := range previous {
		if fields[field] == value {
			continue
		}
		if err := t.batch.Delete([]byte(indexPrefix(table, field, value)+id), nil); err != nil {
			return err
		}
	}
	for field, value := range fields {
		if err := t.batch.Set([]byte(indexPrefix(table, field, value)+id), []byte(id), nil); err != nil {
			return err
		}
	}

	meta, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return t.batch.Set(metaKey(table, id), meta, nil)
}

func (t *pebbleTx) Commit() error {
	if t.closed {
		return ErrTxClosed
	}
	defer t.release()
	return t.batch.Commit(pebble.Sync)
}

// Rollback discard the batch; a no-op after Commit so it can be deferred
func (t *pebbleTx) Rollback() error {
	if t.closed {
		return nil
	}
	t.release()
	return nil
}

func (t *pebbleTx) release() {
	t.closed = true
	t.batch.Close()
	t.owner.writeMu.Unlock()
}
