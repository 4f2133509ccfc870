package indexer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrUnknownEvent the log's topic0 matches no event of its contract's ABI
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUnknownContract the log was emitted by an address that is not configured
	ErrUnknownContract = errors.New("unknown contract")
)

// ContractSpec one indexed contract with its resolved ABI
type ContractSpec struct {
	Name       string
	Kind       ContractKind
	Address    common.Address
	StartBlock uint64
	ABI        *abi.ABI
}

// LogDecoder turns raw logs into typed events
type LogDecoder struct {
	contracts map[common.Address]*ContractSpec
}

// NewLogDecoder create a decoder for the given contracts
func NewLogDecoder(specs []*ContractSpec) (*LogDecoder, error) {
	d := &LogDecoder{contracts: make(map[common.Address]*ContractSpec, len(specs))}
	for _, spec := range specs {
		if spec.ABI == nil {
			parsed, err := EmbeddedABI(spec.Kind)
			if err != nil {
				return nil, fmt.Errorf("contract %s: %w", spec.Name, err)
			}
			spec.ABI = parsed
		}
		if _, dup := d.contracts[spec.Address]; dup {
			return nil, fmt.Errorf("contract address %s configured twice", spec.Address.Hex())
		}
		d.contracts[spec.Address] = spec
	}
	return d, nil
}

// Contracts configured contract specs
func (d *LogDecoder) Contracts() []*ContractSpec {
	specs := make([]*ContractSpec, 0, len(d.contracts))
	for _, spec := range d.contracts {
		specs = append(specs, spec)
	}
	return specs
}

// Decode match a log against its contract's ABI and build the typed event.
// blockTime is the block timestamp in seconds.
func (d *LogDecoder) Decode(log types.Log, blockTime int64) (Event, error) {
	spec, ok := d.contracts[log.Address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, log.Address.Hex())
	}
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("%w: anonymous log", ErrUnknownEvent)
	}
	event, err := spec.ABI.EventByID(log.Topics[0])
	if err != nil {
		return nil, fmt.Errorf("%w: topic %s", ErrUnknownEvent, log.Topics[0].Hex())
	}

	values := make(map[string]interface{})
	if err := event.Inputs.NonIndexed().UnpackIntoMap(values, log.Data); err != nil {
		return nil, fmt.Errorf("unpack %s data: %w", event.Name, err)
	}
	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("unpack %s topics: %w", event.Name, err)
	}

	params, err := json.Marshal(jsonParams(values))
	if err != nil {
		return nil, fmt.Errorf("encode %s params: %w", event.Name, err)
	}

	meta := EventMeta{
		Contract:       log.Address,
		ContractName:   spec.Name,
		ContractKind:   spec.Kind,
		Name:           event.Name,
		BlockNumber:    log.BlockNumber,
		BlockHash:      log.BlockHash,
		BlockTimestamp: blockTime,
		TxHash:         log.TxHash,
		LogIndex:       log.Index,
		Params:         string(params),
	}
	return buildEvent(meta, &argReader{event: event.Name, values: values})
}

func buildEvent(meta EventMeta, r *argReader) (Event, error) {
	var ev Event
	switch meta.Name {
	case EventInstanceOwnerRegistered:
		ev = &InstanceOwnerRegistered{EventMeta: meta, Owner: r.address("ownerAddress"), FreeLoad: r.bigInt("freeLoad"), IsLocked: r.boolean("isLocked")}
	case EventFileUploaded:
		ev = &FileUploaded{
			EventMeta:     meta,
			Owner:         r.address("owner"),
			Cid:           r.str("cid"),
			Size:          r.bigInt("size"),
			FileType:      r.str("fileType"),
			FileName:      r.str("fileName"),
			StorageNodeID: r.bigInt("storageNodeId"),
		}
	case EventFileRemoved:
		ev = &FileRemoved{EventMeta: meta, Owner: r.address("owner"), Cid: r.str("cid")}
	case EventFileStatusUpdated:
		ev = &FileStatusUpdated{EventMeta: meta, Owner: r.address("owner"), Cid: r.str("cid"), IsActive: r.boolean("isActive")}
	case EventFreeLoadUpdated:
		ev = &FreeLoadUpdated{EventMeta: meta, Owner: r.address("ownerAddress"), FreeLoad: r.bigInt("freeLoad")}
	case EventMaxLoadUpdated:
		ev = &MaxLoadUpdated{EventMeta: meta, MaxLoad: r.bigInt("newMaxLoad"), Owner: r.address("ownerAddress")}
	case EventInstanceLockStatusUpdated:
		ev = &InstanceLockStatusUpdated{EventMeta: meta, Owner: r.address("owner"), IsLocked: r.boolean("isLocked")}
	case EventLoadIncreased:
		ev = &LoadIncreased{EventMeta: meta, Owner: r.address("owner"), AdditionalLoad: r.bigInt("additionalLoad")}
	case EventStorageNodeAdded:
		ev = &StorageNodeAdded{
			EventMeta:       meta,
			Owner:           r.address("owner"),
			NodeID:          r.bigInt("nodeId"),
			ProviderAddress: r.address("providerAddress"),
			TotalSpace:      r.bigInt("totalSpace"),
		}
	case EventStorageNodeUpdated:
		ev = &StorageNodeUpdated{
			EventMeta:      meta,
			Owner:          r.address("owner"),
			NodeID:         r.bigInt("nodeId"),
			UsedSpace:      r.bigInt("usedSpace"),
			AvailableSpace: r.bigInt("availableSpace"),
		}
	case EventStorageNodeDeactivated:
		ev = &StorageNodeDeactivated{EventMeta: meta, Owner: r.address("owner"), NodeID: r.bigInt("nodeId")}
	case EventOwnershipTransferred:
		ev = &OwnershipTransferred{EventMeta: meta, PreviousOwner: r.address("previousOwner"), NewOwner: r.address("newOwner")}
	case EventPaused:
		ev = &Paused{EventMeta: meta, Account: r.address("account")}
	case EventUnpaused:
		ev = &Unpaused{EventMeta: meta, Account: r.address("account")}
	case EventStorageProviderRegistered:
		ev = &StorageProviderRegistered{
			EventMeta:          meta,
			SellID:             r.bigInt("sellID"),
			ProviderAddress:    r.address("providerAddress"),
			AvailableSpace:     r.bigInt("availableSpace"),
			PricePerMBPerMonth: r.bigInt("pricePerMBPerMonth"),
			StakedETH:          r.bigInt("stakedETH"),
		}
	case EventDataOrderCreated:
		ev = &DataOrderCreated{
			EventMeta:            meta,
			OrderID:              r.bigInt("orderID"),
			ProviderAddress:      r.address("providerAddress"),
			BuyerAddress:         r.address("buyerAddress"),
			StorageSpace:         r.bigInt("storageSpace"),
			TotalCost:            r.bigInt("totalCost"),
			StakedETH:            r.bigInt("stakedETH"),
			VerificationContract: r.address("verificationContract"),
		}
	case EventInstaShareContractUpdated:
		ev = &InstaShareContractUpdated{EventMeta: meta, NewAddress: r.address("newAddress")}
	case EventBatchSet:
		ev = &BatchSet{EventMeta: meta, Keys: r.strings("_keys"), Values: r.strings("_values")}
	default:
		return nil, fmt.Errorf("%w: %s has no handler", ErrUnknownEvent, meta.Name)
	}
	if r.err != nil {
		return nil, r.err
	}
	return ev, nil
}

// argReader typed access to unpacked arguments, keeping the first mismatch
type argReader struct {
	event  string
	values map[string]interface{}
	err    error
}

func (r *argReader) get(name string) interface{} {
	v, ok := r.values[name]
	if !ok && r.err == nil {
		r.err = fmt.Errorf("%s: missing argument %s", r.event, name)
	}
	return v
}

func (r *argReader) mismatch(name string, v interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: argument %s has type %T", r.event, name, v)
	}
}

func (r *argReader) address(name string) common.Address {
	v := r.get(name)
	a, ok := v.(common.Address)
	if !ok && v != nil {
		r.mismatch(name, v)
	}
	return a
}

func (r *argReader) bigInt(name string) *big.Int {
	v := r.get(name)
	n, ok := v.(*big.Int)
	if !ok {
		if v != nil {
			r.mismatch(name, v)
		}
		return new(big.Int)
	}
	return n
}

func (r *argReader) str(name string) string {
	v := r.get(name)
	s, ok := v.(string)
	if !ok && v != nil {
		r.mismatch(name, v)
	}
	return s
}

func (r *argReader) boolean(name string) bool {
	v := r.get(name)
	b, ok := v.(bool)
	if !ok && v != nil {
		r.mismatch(name, v)
	}
	return b
}

func (r *argReader) strings(name string) []string {
	v := r.get(name)
	s, ok := v.([]string)
	if !ok && v != nil {
		r.mismatch(name, v)
	}
	return s
}

// jsonParams render unpacked values with decimal integers and lowercase addresses
func jsonParams(values map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		switch x := v.(type) {
		case *big.Int:
			out[k] = x.String()
		case common.Address:
			out[k] = strings.ToLower(x.Hex())
		case common.Hash:
			out[k] = x.Hex()
		default:
			out[k] = v
		}
	}
	return out
}
