package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimocha/crazy-sevens/internal/game"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	// Create test room data
	roomData := &RoomData{
		Code:        "TEST123",
		State:       1,
		Players:     []PlayerData{{ID: "p1", Name: "玩家一", Seat: 0, Ready: true}},
		PlayerOrder: []string{"p1"},
		CreatedAt:   time.Now().Unix(),
	}

	// Save
	err := store.SaveRoom(ctx, roomData.Code, roomData)
	assert.NoError(t, err)

	// Load
	loadedData, err := store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.NotNil(t, loadedData)
	assert.Equal(t, roomData.Code, loadedData.Code)
	assert.Equal(t, roomData.State, loadedData.State)
	assert.Equal(t, roomData.Players, loadedData.Players)

	// List
	codes, err := store.GetAllRoomCodes(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"TEST123"}, codes)

	// Expire
	require.NoError(t, store.SetRoomExpiration(ctx, roomData.Code, time.Hour))
	mr.FastForward(2 * time.Hour)
	loadedData, err = store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loadedData)

	require.NoError(t, store.SaveRoom(ctx, roomData.Code, roomData))

	// Delete
	err = store.DeleteRoom(ctx, roomData.Code)
	assert.NoError(t, err)

	// Verify Delete
	loadedData, err = store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loadedData)
}

func TestRedisStore_GameSnapshotRoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	// The game state is plain values, so the snapshot must survive
	// a marshal/unmarshal cycle unchanged, RNG word included
	st, err := game.New(3, []game.SeatKind{game.SeatHuman, game.SeatHuman, game.SeatBot}, 42)
	require.NoError(t, err)

	roomData := &RoomData{
		Code:        "GAME42",
		State:       2,
		PlayerOrder: []string{"p1", "p2", "p3"},
		CreatedAt:   time.Now().Unix(),
		Game:        &st,
	}

	require.NoError(t, store.SaveRoom(ctx, roomData.Code, roomData))

	loaded, err := store.LoadRoom(ctx, roomData.Code)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NotNil(t, loaded.Game)
	assert.Equal(t, st, *loaded.Game)
}

func TestRedisStore_Session(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	session := &PlayerSessionData{
		PlayerID:       "p1",
		PlayerName:     "玩家一",
		ReconnectToken: "tok-abc",
		RoomCode:       "123456",
		IsOnline:       true,
	}

	require.NoError(t, store.SaveSession(ctx, session))

	loaded, err := store.LoadSession(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.PlayerName, loaded.PlayerName)
	assert.Equal(t, session.ReconnectToken, loaded.ReconnectToken)
	assert.Equal(t, session.RoomCode, loaded.RoomCode)
	assert.True(t, loaded.IsOnline)

	require.NoError(t, store.DeleteSession(ctx, "p1"))
	loaded, err = store.LoadSession(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
