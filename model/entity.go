package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Entity a row of the derived dataset, addressed by a deterministic string ID
type Entity interface {
	TableName() string
	GetID() string
}

// Indexed entities expose secondary lookup fields (column name -> value)
type Indexed interface {
	IndexFields() map[string]string
}

// Singleton row IDs
const (
	SystemStatsID  = "system"
	MarketStatsID  = "market"
	SystemConfigID = "1"
)

// MaxFileKeyLen longest cid kept verbatim in a File ID; keeps the key within an indexable varchar(191)
const MaxFileKeyLen = 128

// fileKeyPrefix marks a cid replaced by its keccak256 digest
const fileKeyPrefix = "keccak:"

// AddressID normalises an address into the lowercase hex form used for row IDs
func AddressID(address string) string {
	return strings.ToLower(address)
}

// PairID joins an owner address and a per-owner key, e.g. "0xabc-QmCid" or "0xabc-1"
func PairID(owner, key string) string {
	return AddressID(owner) + "-" + key
}

// FileKey the per-owner key of a file: the cid itself, or its keccak256 digest when longer than MaxFileKeyLen
func FileKey(cid string) string {
	if len(cid) <= MaxFileKeyLen {
		return cid
	}
	return fileKeyPrefix + crypto.Keccak256Hash([]byte(cid)).Hex()
}

// FileID row ID of the file uploaded by owner under cid
func FileID(owner, cid string) string {
	return PairID(owner, FileKey(cid))
}
