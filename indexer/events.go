package indexer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event names
const (
	EventInstanceOwnerRegistered   = "InstanceOwnerRegistered"
	EventFileUploaded              = "FileUploaded"
	EventFileRemoved               = "FileRemoved"
	EventFileStatusUpdated         = "FileStatusUpdated"
	EventFreeLoadUpdated           = "FreeLoadUpdated"
	EventMaxLoadUpdated            = "MaxLoadUpdated"
	EventInstanceLockStatusUpdated = "InstanceLockStatusUpdated"
	EventLoadIncreased             = "LoadIncreased"
	EventStorageNodeAdded          = "StorageNodeAdded"
	EventStorageNodeUpdated        = "StorageNodeUpdated"
	EventStorageNodeDeactivated    = "StorageNodeDeactivated"
	EventOwnershipTransferred      = "OwnershipTransferred"
	EventPaused                    = "Paused"
	EventUnpaused                  = "Unpaused"
	EventStorageProviderRegistered = "StorageProviderRegistered"
	EventDataOrderCreated          = "DataOrderCreated"
	EventInstaShareContractUpdated = "InstaShareContractUpdated"
	EventBatchSet                  = "BatchSet"
)

// InstaShare events

type InstanceOwnerRegistered struct {
	EventMeta
	Owner    common.Address
	FreeLoad *big.Int
	IsLocked bool
}

type FileUploaded struct {
	EventMeta
	Owner         common.Address
	Cid           string
	Size          *big.Int
	FileType      string
	FileName      string
	StorageNodeID *big.Int
}

type FileRemoved struct {
	EventMeta
	Owner common.Address
	Cid   string
}

type FileStatusUpdated struct {
	EventMeta
	Owner    common.Address
	Cid      string
	IsActive bool
}

type FreeLoadUpdated struct {
	EventMeta
	Owner    common.Address
	FreeLoad *big.Int
}

type MaxLoadUpdated struct {
	EventMeta
	MaxLoad *big.Int
	Owner   common.Address
}

type InstanceLockStatusUpdated struct {
	EventMeta
	Owner    common.Address
	IsLocked bool
}

type LoadIncreased struct {
	EventMeta
	Owner          common.Address
	AdditionalLoad *big.Int
}

type StorageNodeAdded struct {
	EventMeta
	Owner           common.Address
	NodeID          *big.Int
	ProviderAddress common.Address
	TotalSpace      *big.Int
}

type StorageNodeUpdated struct {
	EventMeta
	Owner          common.Address
	NodeID         *big.Int
	UsedSpace      *big.Int
	AvailableSpace *big.Int
}

type StorageNodeDeactivated struct {
	EventMeta
	Owner  common.Address
	NodeID *big.Int
}

// Ownable / Pausable events, emitted by both InstaShare and StorageMarket

type OwnershipTransferred struct {
	EventMeta
	PreviousOwner common.Address
	NewOwner      common.Address
}

type Paused struct {
	EventMeta
	Account common.Address
}

type Unpaused struct {
	EventMeta
	Account common.Address
}

// StorageMarket events

type StorageProviderRegistered struct {
	EventMeta
	SellID             *big.Int
	ProviderAddress    common.Address
	AvailableSpace     *big.Int
	PricePerMBPerMonth *big.Int
	StakedETH          *big.Int
}

type DataOrderCreated struct {
	EventMeta
	OrderID              *big.Int
	ProviderAddress      common.Address
	BuyerAddress         common.Address
	StorageSpace         *big.Int
	TotalCost            *big.Int
	StakedETH            *big.Int
	VerificationContract common.Address
}

type InstaShareContractUpdated struct {
	EventMeta
	NewAddress common.Address
}

// PublicShare events

type BatchSet struct {
	EventMeta
	Keys   []string
	Values []string
}
