package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storage-market-indexer/logger"
	"storage-market-indexer/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// GormDatabase relational implementation shared by MySQL and SQLite
type GormDatabase struct {
	db *gorm.DB
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	LogSQL       bool
}

// SQLiteConfig SQLite configuration, DSN ":memory:" or a file path
type SQLiteConfig struct {
	DSN    string
	LogSQL bool
}

func gormConfig(logSQL bool) *gorm.Config {
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}
	// the std logger is redirected to zap by logger.Init; lookup misses are expected and not logged
	return &gorm.Config{
		Logger: gormlogger.New(log.Default(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

// NewMySQLDatabase create MySQL database instance
func NewMySQLDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*MySQLConfig)
	if !ok {
		return nil, fmt.Errorf("invalid MySQL config type")
	}

	// Connect database
	db, err := gorm.Open(mysql.Open(cfg.DSN), gormConfig(cfg.LogSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect MySQL: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Infof("MySQL database connected successfully")

	return newGormDatabase(db)
}

// NewSQLiteDatabase create SQLite database instance (pure Go driver)
func NewSQLiteDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*SQLiteConfig)
	if !ok {
		return nil, fmt.Errorf("invalid SQLite config type")
	}
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(cfg.LogSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %s: %w", dsn, err)
	}

	// sqlite allows a single writer
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Infof("SQLite database opened: %s", dsn)
	return newGormDatabase(db)
}

func newGormDatabase(db *gorm.DB) (*GormDatabase, error) {
	models := make([]interface{}, 0, len(model.AllEntities()))
	for _, entity := range model.AllEntities() {
		models = append(models, entity)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormDatabase{db: db}, nil
}

// GetGormDB underlying gorm handle
func (g *GormDatabase) GetGormDB() *gorm.DB {
	return g.db
}

func takeByID(db *gorm.DB, dest model.Entity, id string) error {
	err := db.Where("id = ?", id).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (g *GormDatabase) Get(ctx context.Context, dest model.Entity, id string) error {
	return takeByID(g.db.WithContext(ctx), dest, id)
}

func (g *GormDatabase) List(ctx context.Context, proto model.Entity, dest interface{}, opts ListOptions) (string, error) {
	size := opts.pageSize()
	query := g.db.WithContext(ctx).Model(proto)
	if opts.IndexField != "" {
		if !hasIndex(proto, opts.IndexField) {
			return "", fmt.Errorf("%w: %s.%s", ErrUnknownIndex, proto.TableName(), opts.IndexField)
		}
		// column name comes from the entity's own index list, never from the request
		query = query.Where(clause.Eq{Column: clause.Column{Name: opts.IndexField}, Value: opts.IndexValue})
	}
	if opts.Cursor != "" {
		query = query.Where("id > ?", opts.Cursor)
	}

	var ids []string
	if err := query.Order("id ASC").Limit(size+1).Pluck("id", &ids).Error; err != nil {
		return "", err
	}

	nextCursor := ""
	if len(ids) > size {
		ids = ids[:size]
		nextCursor = ids[size-1]
	}
	if len(ids) == 0 {
		return "", g.db.WithContext(ctx).Model(proto).Where("1 = 0").Find(dest).Error
	}
	if err := g.db.WithContext(ctx).Model(proto).Where("id IN ?", ids).Order("id ASC").Find(dest).Error; err != nil {
		return "", err
	}
	return nextCursor, nil
}

func (g *GormDatabase) Count(ctx context.Context, proto model.Entity) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(proto).Count(&count).Error
	return count, err
}

func (g *GormDatabase) Begin(ctx context.Context) (Tx, error) {
	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTx{tx: tx}, nil
}

func (g *GormDatabase) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormTx struct {
	touchSet
	tx     *gorm.DB
	closed bool
}

func (t *gormTx) Get(dest model.Entity, id string) error {
	if t.closed {
		return ErrTxClosed
	}
	return takeByID(t.tx, dest, id)
}

func (t *gormTx) Put(entity model.Entity) error {
	if t.closed {
		return ErrTxClosed
	}
	if entity.GetID() == "" {
		return ErrEmptyID
	}
	if err := t.tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", entity.TableName(), entity.GetID(), err)
	}
	t.touch(entity)
	return nil
}

func (t *gormTx) Commit() error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true
	return t.tx.Commit().Error
}

func (t *gormTx) Rollback() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.tx.Rollback().Error
}
