package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutAssignsID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Put(ctx, "items", Document{Fields: map[string]any{"title": "a"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Fields["title"])
}

func TestMemoryStorePutKeepsGivenID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Put(ctx, "items", Document{ID: "fixed", Fields: map[string]any{"title": "a"}})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	// Putting under the same id replaces the document wholesale.
	_, err = s.Put(ctx, "items", Document{ID: "fixed", Fields: map[string]any{"other": "b"}})
	require.NoError(t, err)

	got, err := s.Get(ctx, "items", "fixed")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Fields["other"])
	assert.NotContains(t, got.Fields, "title")
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "items", "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreIsolatesCallerMaps(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	fields := map[string]any{"tags": []string{"a"}}
	id, err := s.Put(ctx, "items", Document{Fields: fields})
	require.NoError(t, err)

	// Mutating the map handed to Put must not reach the store.
	fields["tags"] = []string{"mutated"}

	got, err := s.Get(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Fields["tags"])

	// Mutating a read result must not reach the store either.
	got.Fields["tags"].([]string)[0] = "mutated"
	again, err := s.Get(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Fields["tags"])
}

func TestMemoryStoreListOrders(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, ts := range []int64{30, 10, 20} {
		_, err := s.Put(ctx, "items", Document{
			ID:     string(rune('a' + i)),
			Fields: map[string]any{"updated_at": ts},
		})
		require.NoError(t, err)
	}

	docs, err := s.List(ctx, "items", "updated_at", true)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)
	assert.Equal(t, "b", docs[2].ID)

	docs, err = s.List(ctx, "items", "updated_at", false)
	require.NoError(t, err)
	assert.Equal(t, "b", docs[0].ID)
}

func TestMemoryStoreListEmptyCollection(t *testing.T) {
	s := NewMemoryStore()

	docs, err := s.List(context.Background(), "items", "updated_at", true)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Put(ctx, "items", Document{Fields: map[string]any{"title": "a"}})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "items", id))
	require.ErrorIs(t, s.Delete(ctx, "items", id), ErrNotFound)
}

func TestMemoryStoreUpdateFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Put(ctx, "items", Document{Fields: map[string]any{
		"title":    "a",
		"favorite": true,
	}})
	require.NoError(t, err)

	err = s.UpdateFields(ctx, "items", id, map[string]any{
		"title":    "b",
		"favorite": nil, // nil means remove
		"count":    int64(3),
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Fields["title"])
	assert.NotContains(t, got.Fields, "favorite")
	assert.Equal(t, int64(3), got.Fields["count"])
}

func TestMemoryStoreUpdateFieldsMissing(t *testing.T) {
	s := NewMemoryStore()

	err := s.UpdateFields(context.Background(), "items", "nope", map[string]any{"title": "b"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCollectionsAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Put(ctx, "owners/a/items", Document{ID: "x", Fields: map[string]any{"title": "a"}})
	require.NoError(t, err)

	_, err = s.Get(ctx, "owners/b/items", "x")
	require.ErrorIs(t, err, ErrNotFound)
}
