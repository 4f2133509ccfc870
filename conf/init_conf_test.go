package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf_test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
chain:
  rpc_url: "http://localhost:8545"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7281", cfg.IndexerPort)
	assert.Equal(t, "pebble", cfg.Database.IndexerType)
	assert.Equal(t, "evm", cfg.Chain.Name)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 10, cfg.Indexer.ScanInterval)
	assert.Equal(t, 500, cfg.Indexer.BatchSize)
	assert.Equal(t, "localhost:7281", cfg.Indexer.SwaggerBaseUrl)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Indexer.Contracts)
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigContracts(t *testing.T) {
	path := writeConfig(t, `
chain:
  name: "sepolia"
  rpc_url: "http://localhost:8545"
  confirmations: 3
indexer:
  contracts:
    - kind: "Insta_Share"
      address: "0x00000000000000000000000000000000000000aa"
      start_block: 120
    - name: "market"
      kind: "storage_market"
      address: "0x00000000000000000000000000000000000000bb"
      abi_file: "./abi/StorageMarket.json"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint64(3), cfg.Chain.Confirmations)
	require.Len(t, cfg.Indexer.Contracts, 2)
	assert.Equal(t, "insta_share", cfg.Indexer.Contracts[0].Kind)
	assert.Equal(t, "insta_share", cfg.Indexer.Contracts[0].Name)
	assert.Equal(t, int64(120), cfg.Indexer.Contracts[0].StartBlock)
	assert.Equal(t, "market", cfg.Indexer.Contracts[1].Name)
	assert.Equal(t, "./abi/StorageMarket.json", cfg.Indexer.Contracts[1].AbiFile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateContractWithoutAddress(t *testing.T) {
	cfg := &Config{
		Chain:   ChainConfig{RpcUrl: "http://localhost:8545"},
		Indexer: IndexerConfig{Contracts: []ContractConfig{{Name: "x", Kind: "public_share"}}},
	}
	assert.Error(t, cfg.Validate())
}
