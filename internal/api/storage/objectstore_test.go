package storage

import (
	"context"
	"testing"

	"api"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreTest(t *testing.T) *ObjectStore {
	api.InitConfig("../../../.env.test")

	store, err := NewObjectStore()
	require.NoError(t, err, "Failed to initialize object store")
	return store
}

func TestObjectStore_RoundTrip(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	key := ObjectKey(uuid.NewString(), uuid.NewString(), "logo.png")
	payload := []byte("not actually a png, but the bytes must survive untouched")

	require.NoError(t, store.Put(ctx, key, payload, "image/png"))
	defer store.Remove(ctx, []string{key})

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestObjectStore_RemoveMakesUnreachable(t *testing.T) {
	store := setupStoreTest(t)
	ctx := context.Background()

	key := ObjectKey(uuid.NewString(), uuid.NewString(), "draft.txt")
	require.NoError(t, store.Put(ctx, key, []byte("ephemeral"), "text/plain"))

	require.NoError(t, store.Remove(ctx, []string{key}))

	_, err := store.Get(ctx, key)
	assert.Error(t, err, "removed blob must not be readable")
}

func TestObjectStore_RemoveMissingKeysNoError(t *testing.T) {
	store := setupStoreTest(t)

	key := ObjectKey(uuid.NewString(), uuid.NewString(), "never-uploaded.bin")
	assert.NoError(t, store.Remove(context.Background(), []string{key}))
}
