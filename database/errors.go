package database

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnsupportedDBType = errors.New("unsupported database type")
	ErrTxClosed          = errors.New("transaction already closed")
	ErrEmptyID           = errors.New("entity id is empty")
	ErrUnknownIndex      = errors.New("unknown index field")
)
