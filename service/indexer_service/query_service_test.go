package indexer_service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storage-market-indexer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryServiceReadsHandlerOutput(t *testing.T) {
	db := newTestStore(t)
	p := NewEventProcessor(db)
	q := NewQueryService(db)
	seq := &sequence{}
	ctx := context.Background()

	apply(t, p, register(seq, alice, 1000))
	apply(t, p, addNode(seq, alice, 1, 500))
	apply(t, p, upload(seq, alice, "QmA", 10, 1))
	apply(t, p, upload(seq, alice, "QmB", 20, 0))
	apply(t, p, upload(seq, bob, "QmC", 30, 0))

	// mixed-case address resolves to the lowercase row
	user, err := q.GetUser(ctx, alice.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 2, user.TotalFiles)

	files, err := q.ListUserFiles(ctx, alice.Hex(), "", 1)
	require.NoError(t, err)
	require.Len(t, files.Items, 1)
	assert.NotEmpty(t, files.NextCursor)

	rest, err := q.ListUserFiles(ctx, alice.Hex(), files.NextCursor, 10)
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Empty(t, rest.NextCursor)
	assert.NotEqual(t, files.Items[0].Cid, rest.Items[0].Cid)

	nodes, err := q.ListUserNodes(ctx, alice.Hex(), "", 10)
	require.NoError(t, err)
	require.Len(t, nodes.Items, 1)
	assert.Equal(t, "10", nodes.Items[0].UsedSpace.String())

	history, err := q.ListUserHistory(ctx, alice.Hex(), "", 10)
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, model.UserActionRegister, history.Items[0].Action)

	// owner half of the ID is case-insensitive, cid is not
	file, err := q.GetFile(ctx, alice.Hex()+"-QmA")
	require.NoError(t, err)
	assert.Equal(t, "QmA", file.Cid)

	_, err = q.GetFile(ctx, strings.ToLower(alice.Hex())+"-qma")
	assert.True(t, errors.Is(err, ErrEntityNotFound))

	fileHistory, err := q.ListFileHistory(ctx, file.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, fileHistory.Items, 1)
	assert.Equal(t, model.FileActionUpload, fileHistory.Items[0].Action)

	stats, err := q.GetSystemStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalFiles)
	assert.EqualValues(t, 2, stats.TotalUsers)
}

func TestQueryServiceEmptyStore(t *testing.T) {
	q := NewQueryService(newTestStore(t))
	ctx := context.Background()

	stats, err := q.GetSystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SystemStatsID, stats.ID)
	assert.Equal(t, "0", stats.TotalStorage.String())

	market, err := q.GetMarketStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, market.TotalOrders)

	cfg, err := q.GetSystemConfig(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.Paused)

	_, err = q.GetUser(ctx, alice.Hex())
	assert.ErrorIs(t, err, ErrEntityNotFound)
	_, err = q.GetOrder(ctx, "1")
	assert.ErrorIs(t, err, ErrEntityNotFound)
	_, err = q.GetEvent(ctx, "0xabc-0")
	assert.ErrorIs(t, err, ErrEntityNotFound)

	users, err := q.ListUsers(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, users.Items)
	assert.Empty(t, users.NextCursor)
}

func TestQueryServiceMarket(t *testing.T) {
	db := newTestStore(t)
	p := NewEventProcessor(db)
	q := NewQueryService(db)
	seq := &sequence{}
	ctx := context.Background()

	apply(t, p, registerProvider(seq, 0, provider, 100))
	apply(t, p, createOrder(seq, 1, alice, 10, 5))
	apply(t, p, createOrder(seq, 2, alice, 10, 5))

	sp, err := q.GetProvider(ctx, provider.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 2, sp.TotalOrders)

	buyer, err := q.GetBuyer(ctx, alice.Hex())
	require.NoError(t, err)
	assert.Equal(t, "10", buyer.TotalSpent.String())

	orders, err := q.ListBuyerOrders(ctx, alice.Hex(), "", 10)
	require.NoError(t, err)
	assert.Len(t, orders.Items, 2)

	providers, err := q.ListProviders(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, providers.Items, 1)
}
