package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pusdatin/simontok/internal/common/config"
)

func TestMemoryStorePushPop(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.PushFlash(ctx, "sid-1", Flash{Level: FlashSuccess, Message: "satu"}))
	require.NoError(t, store.PushFlash(ctx, "sid-1", Flash{Level: FlashError, Message: "dua"}))
	require.NoError(t, store.PushFlash(ctx, "sid-2", Flash{Level: FlashInfo, Message: "lain"}))

	flashes, err := store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, "satu", flashes[0].Message)
	assert.Equal(t, "dua", flashes[1].Message)

	// Popping drains the queue.
	flashes, err = store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, flashes)

	// Other sessions are untouched.
	flashes, err = store.PopFlashes(ctx, "sid-2")
	require.NoError(t, err)
	require.Len(t, flashes, 1)
	assert.Equal(t, FlashInfo, flashes[0].Level)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())

	flashes, err := store.PopFlashes(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestRedisStorePushPop(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := NewRedisStore(zap.NewNop(), config.SessionRedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.PushFlash(ctx, "sid-1", Flash{Level: FlashSuccess, Message: "tersimpan"}))
	require.NoError(t, store.PushFlash(ctx, "sid-1", Flash{Level: FlashError, Message: "gagal"}))

	flashes, err := store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, FlashSuccess, flashes[0].Level)
	assert.Equal(t, "gagal", flashes[1].Message)

	flashes, err = store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	_, err := NewStore(zap.NewNop(), &config.SessionConfig{Type: "etcd"})
	assert.Error(t, err)
}

func TestAccountRoles(t *testing.T) {
	admin := &Account{Role: RoleAdmin, Office: "PJB"}
	regular := &Account{Role: RoleRegular, Office: "TKY"}

	assert.True(t, admin.IsAdmin())
	assert.False(t, regular.IsAdmin())
	assert.True(t, admin.IsCentral("PJB"))
	assert.False(t, regular.IsCentral("PJB"))

	var nobody *Account
	assert.False(t, nobody.IsAdmin())
	assert.False(t, nobody.IsCentral("PJB"))
}
