package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	data := &Data{Username: "alice", CSRFToken: "tok", Flashes: []Flash{{Category: FlashInfo, Message: "hi"}}}
	require.NoError(t, store.Save(ctx, "sid", data, time.Minute))

	data.Flashes[0].Message = "mutated"
	got, err = store.Load(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hi", got.Flashes[0].Message)

	require.NoError(t, store.Delete(ctx, "sid"))
	got, err = store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "sid", &Data{Username: "alice"}, time.Minute))

	now = now.Add(2 * time.Minute)
	got, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_DeleteByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "a1", &Data{Username: "alice"}, time.Minute))
	require.NoError(t, store.Save(ctx, "a2", &Data{Username: "alice"}, time.Minute))
	require.NoError(t, store.Save(ctx, "b1", &Data{Username: "bob"}, time.Minute))
	require.NoError(t, store.Save(ctx, "anon", &Data{CSRFToken: "tok"}, time.Minute))

	require.NoError(t, store.DeleteByUsername(ctx, "alice"))

	for _, id := range []string{"a1", "a2"} {
		got, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got, id)
	}
	bob, err := store.Load(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, bob)
	assert.Equal(t, "bob", bob.Username)
	assert.Equal(t, 2, store.Len())
}
