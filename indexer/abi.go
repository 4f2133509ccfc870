package indexer

import (
	"bytes"
	"embed"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/tidwall/gjson"
)

//go:embed abi/*.json
var abiFS embed.FS

// ContractKind selects the event set and handlers of an indexed contract
type ContractKind string

const (
	KindInstaShare    ContractKind = "insta_share"
	KindStorageMarket ContractKind = "storage_market"
	KindPublicShare   ContractKind = "public_share"
)

// Valid reports whether the kind has an embedded ABI
func (k ContractKind) Valid() bool {
	switch k {
	case KindInstaShare, KindStorageMarket, KindPublicShare:
		return true
	}
	return false
}

// EmbeddedABI parsed ABI bundled for a contract kind
func EmbeddedABI(kind ContractKind) (*abi.ABI, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown contract kind %q", kind)
	}
	data, err := abiFS.ReadFile("abi/" + string(kind) + ".json")
	if err != nil {
		return nil, err
	}
	return ParseABI(data)
}

// LoadABIFile read an ABI from disk. Both a bare ABI array and a build
// artifact ({"abi": [...], "bytecode": ...}) are accepted.
func LoadABIFile(path string) (*abi.ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read abi file %s: %w", path, err)
	}
	parsed, err := ParseABI(data)
	if err != nil {
		return nil, fmt.Errorf("parse abi file %s: %w", path, err)
	}
	return parsed, nil
}

// ParseABI parse an ABI array or an artifact carrying one under "abi"
func ParseABI(data []byte) (*abi.ABI, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("abi is not valid JSON")
	}
	raw := gjson.ParseBytes(data)
	if raw.IsObject() {
		raw = raw.Get("abi")
		if !raw.IsArray() {
			return nil, fmt.Errorf("artifact has no abi array")
		}
	}
	parsed, err := abi.JSON(bytes.NewReader([]byte(raw.Raw)))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
