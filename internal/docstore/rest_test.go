package docstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultkit/go-pin-vault/internal/logger"
)

func newRESTTestStore(t *testing.T, handler http.HandlerFunc) DocumentStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTStore(RESTConfig{BaseURL: srv.URL, Timeout: time.Second}, logger.Nop())
}

func TestRESTStorePutWithoutID(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody restDocument

	store := newRESTTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(restDocument{ID: "srv-1", Fields: gotBody.Fields}))
	})

	id, err := store.Put(context.Background(), "owners/o1/items", Document{
		Fields: map[string]any{"title": "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", id)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/collections/owners%2Fo1%2Fitems/documents", gotPath)
	assert.Equal(t, "a", gotBody.Fields["title"])
}

func TestRESTStorePutWithID(t *testing.T) {
	var gotPath, gotMethod string

	store := newRESTTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(restDocument{}))
	})

	id, err := store.Put(context.Background(), "items", Document{
		ID:     "fixed",
		Fields: map[string]any{"title": "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/collections/items/documents/fixed", gotPath)
}

func TestRESTStoreGet(t *testing.T) {
	store := newRESTTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(restDocument{
			ID:     "d1",
			Fields: map[string]any{"title": "a", "updated_at": float64(42)},
		}))
	})

	doc, err := store.Get(context.Background(), "items", "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)
	assert.Equal(t, "a", doc.Fields["title"])
}

func TestRESTStoreGetNotFound(t *testing.T) {
	store := newRESTTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such document", http.StatusNotFound)
	})

	_, err := store.Get(context.Background(), "items", "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRESTStoreListPassesOrdering(t *testing.T) {
	var gotQuery map[string]string

	store := newRESTTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"order_by":  r.URL.Query().Get("order_by"),
			"direction": r.URL.Query().Get("direction"),
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(restDocumentList{
			Documents: []restDocument{
				{ID: "b", Fields: map[string]any{"updated_at": float64(20)}},
				{ID: "a", Fields: map[string]any{"updated_at": float64(10)}},
			},
		}))
	})

	docs, err := store.List(context.Background(), "items", "updated_at", true)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "updated_at", gotQuery["order_by"])
	assert.Equal(t, "desc", gotQuery["direction"])
}

func TestRESTStoreDelete(t *testing.T) {
	var gotMethod, gotPath string

	store := newRESTTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, store.Delete(context.Background(), "items", "d1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/collections/items/documents/d1", gotPath)
}

func TestRESTStoreUpdateFieldsSendsNulls(t *testing.T) {
	var gotBody map[string]map[string]any

	store := newRESTTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := store.UpdateFields(context.Background(), "items", "d1", map[string]any{
		"title": "b",
		"iv":    nil,
	})
	require.NoError(t, err)

	fields := gotBody["fields"]
	assert.Equal(t, "b", fields["title"])
	// The removal marker must survive serialization as an explicit null.
	v, present := fields["iv"]
	assert.True(t, present, "nil field must be sent, not dropped")
	assert.Nil(t, v)
}

func TestRESTStoreServerError(t *testing.T) {
	store := newRESTTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := store.Get(context.Background(), "items", "d1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}
