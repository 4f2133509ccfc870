package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileIDKeepsShortCids(t *testing.T) {
	assert.Equal(t, "0xa1-QmCid", FileID("0xA1", "QmCid"))
	assert.Equal(t, "0xa1-QmCid", PairID("0xA1", FileKey("QmCid")))
}

func TestFileIDBoundsLongCids(t *testing.T) {
	owner := "0xA11CE00000000000000000000000000000000001"
	long := strings.Repeat("b", MaxFileKeyLen+1)

	id := FileID(owner, long)
	assert.True(t, strings.HasPrefix(id, AddressID(owner)+"-keccak:0x"))
	assert.LessOrEqual(t, len(id), 191)
	assert.Equal(t, id, FileID(owner, long))
	assert.NotEqual(t, id, FileID(owner, long+"c"))

	edge := strings.Repeat("b", MaxFileKeyLen)
	assert.Equal(t, AddressID(owner)+"-"+edge, FileID(owner, edge))
	assert.LessOrEqual(t, len(FileID(owner, edge)), 191)
}
