package menu

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-ops/internal/models"
)

type recordingIndexer struct {
	mu      sync.Mutex
	indexed []SearchDocument
	removed []string
	err     error
}

func (r *recordingIndexer) Index(_ context.Context, doc SearchDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, doc)
	return r.err
}

func (r *recordingIndexer) Remove(_ context.Context, menuItemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, menuItemID)
	return r.err
}

type esCall struct {
	method string
	path   string
	body   []byte
}

func newESServer(t *testing.T, status func(r *http.Request) int) (*elasticsearch.Client, *[]esCall) {
	var (
		mu    sync.Mutex
		calls []esCall
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, esCall{method: r.Method, path: r.URL.Path, body: body})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status(r))
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}, DisableRetry: true})
	require.NoError(t, err)
	return client, &calls
}

func TestESIndex_Sync(t *testing.T) {
	client, calls := newESServer(t, func(*http.Request) int { return http.StatusOK })
	index := NewESIndex(client, "menu_items")

	n, err := index.Sync(context.Background(), testCatalog())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, *calls, 3)
	assert.Equal(t, http.MethodPut, (*calls)[0].method)
	assert.Equal(t, "/menu_items/_doc/item-1", (*calls)[0].path)
	assert.Equal(t, "/menu_items/_refresh", (*calls)[2].path)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal((*calls)[0].body, &doc))
	assert.Equal(t, "Shakshuka", doc["name"])
	assert.Equal(t, []interface{}{"breakfast", "dinner"}, doc["session_ids"])
	assert.Equal(t, []interface{}{"Breakfast", "Sunset Dinner"}, doc["sessions"])
}

func TestESIndex_Errors(t *testing.T) {
	client, _ := newESServer(t, func(r *http.Request) int {
		if r.Method == http.MethodDelete {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	})
	index := NewESIndex(client, "menu_items")

	assert.NoError(t, index.Remove(context.Background(), "ghost"), "missing documents are already removed")

	doc, ok := testCatalog().SearchDocument("item-2")
	require.True(t, ok)
	assert.Error(t, index.Index(context.Background(), doc))
}

func TestService_ReindexesAfterCommittedWrites(t *testing.T) {
	svc, repo, _ := newTestService(t)
	indexer := &recordingIndexer{}
	svc.indexer = indexer
	ctx := context.Background()

	_, err := svc.Assign(ctx, testActor, "item-1", "lunch")
	require.NoError(t, err)
	require.Len(t, indexer.indexed, 1)
	assert.Equal(t, []string{"breakfast", "lunch"}, indexer.indexed[0].SessionIDs)

	_, err = svc.Assign(ctx, testActor, "item-1", "lunch")
	require.NoError(t, err)
	assert.Len(t, indexer.indexed, 1, "a no-op assignment is not reindexed")

	repo.InsertMappingFunc = func(context.Context, models.MenuSessionMapping) error {
		return stderrors.New("connection reset")
	}
	_, err = svc.Assign(ctx, testActor, "item-1", "dinner")
	require.Error(t, err)
	assert.Len(t, indexer.indexed, 1, "failed writes are not reindexed")

	require.NoError(t, svc.DeleteMenuItem(ctx, testActor, "item-2"))
	assert.Equal(t, []string{"item-2"}, indexer.removed)
}

func TestService_IndexFailureDoesNotFailAction(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.indexer = &recordingIndexer{err: stderrors.New("cluster red")}

	result, err := svc.Remove(context.Background(), testActor, "item-2", "dinner")
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"Lunch"}, result.Sessions)
}
