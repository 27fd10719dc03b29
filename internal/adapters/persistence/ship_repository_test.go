package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

func TestGormShipStore_UpsertShipThenGet(t *testing.T) {
	db := newTestDB(t)
	store := persistence.NewGormShipStore(db)
	ctx := context.Background()

	s, err := ship.New("SHIP-1", 1, "JW-MK-I", "MK-I", 100, 3, "Jackshaw", 10, 5, "X1-AB", nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShip(ctx, 1, "X1-AB", s))

	row, err := store.GetShipRow(ctx, 1, "SHIP-1")
	require.NoError(t, err)
	assert.Equal(t, "SHIP-1", row.ShipSymbol)
	assert.Equal(t, "JW-MK-I", row.ShipType)
	assert.Equal(t, 100, row.MaxCargo)
	assert.Equal(t, "X1-AB", row.HomeSystem)
}

func TestGormShipStore_UpsertShipIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := persistence.NewGormShipStore(db)
	ctx := context.Background()

	s1, err := ship.New("SHIP-1", 1, "JW-MK-I", "MK-I", 100, 3, "Jackshaw", 10, 5, "X1-AB", nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShip(ctx, 1, "X1-AB", s1))

	s2, err := ship.New("SHIP-1", 1, "JW-MK-II", "MK-II", 150, 4, "Jackshaw", 10, 5, "X1-AB", nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShip(ctx, 1, "X1-AB", s2))

	row, err := store.GetShipRow(ctx, 1, "SHIP-1")
	require.NoError(t, err)
	assert.Equal(t, "JW-MK-II", row.ShipType)
	assert.Equal(t, 150, row.MaxCargo)
}

func TestGormShipStore_GetShipRowNotFound(t *testing.T) {
	db := newTestDB(t)
	store := persistence.NewGormShipStore(db)

	_, err := store.GetShipRow(context.Background(), 1, "NOPE")
	require.Error(t, err)
	var persistErr *persistence.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, persistence.NotFound, persistErr.Kind)
}

func TestGormShipStore_GetShipRowScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	store := persistence.NewGormShipStore(db)
	ctx := context.Background()

	s, err := ship.New("SHIP-1", 1, "JW-MK-I", "MK-I", 100, 3, "Jackshaw", 10, 5, "X1-AB", nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpsertShip(ctx, 1, "X1-AB", s))

	_, err = store.GetShipRow(ctx, 2, "SHIP-1")
	require.Error(t, err)
}
