package indexer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EventMeta block and log metadata shared by every decoded event
type EventMeta struct {
	Contract       common.Address // Emitting contract
	ContractName   string         // Configured contract label
	ContractKind   ContractKind
	Name           string // Event name, e.g. FileUploaded
	BlockNumber    uint64
	BlockHash      common.Hash
	BlockTimestamp int64 // Block timestamp in seconds
	TxHash         common.Hash
	LogIndex       uint
	Params         string // Decoded arguments as JSON
}

// Meta lets every typed event expose its metadata
func (m *EventMeta) Meta() *EventMeta {
	return m
}

// EventID deterministic per-log ID: txHash-logIndex
func (m *EventMeta) EventID() string {
	return EventID(m.TxHash, m.LogIndex)
}

// EventID build the txHash-logIndex row ID used for history rows and the processed-event ledger
func EventID(txHash common.Hash, logIndex uint) string {
	return fmt.Sprintf("%s-%d", txHash.Hex(), logIndex)
}

// Event a decoded contract event
type Event interface {
	Meta() *EventMeta
}
