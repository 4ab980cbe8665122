package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"franchise-ops/internal/models"
)

// SearchMapping is the index mapping used for menu item documents.
const SearchMapping = `{
	"mappings": {
		"properties": {
			"id":          {"type": "keyword"},
			"name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
			"description": {"type": "text"},
			"category":    {"type": "keyword"},
			"price":       {"type": "double"},
			"vegetarian":  {"type": "boolean"},
			"gluten_free": {"type": "boolean"},
			"dairy_free":  {"type": "boolean"},
			"popular":     {"type": "boolean"},
			"allergens":   {"type": "keyword"},
			"sessions":    {"type": "keyword"},
			"session_ids": {"type": "keyword"}
		}
	}
}`

// SearchDocument is a menu item as stored in the search index. Session ids are
// kept next to the derived names so filters survive a session rename.
type SearchDocument struct {
	models.MenuItem
	SessionIDs []string `json:"session_ids"`
}

// Indexer keeps a search index in step with the catalog. The service calls it
// after a write has been committed; its errors never fail the write.
type Indexer interface {
	Index(ctx context.Context, doc SearchDocument) error
	Remove(ctx context.Context, menuItemID string) error
}

// SearchDocument builds the index document for one item.
func (c *Catalog) SearchDocument(itemID string) (SearchDocument, bool) {
	item, ok := c.Item(itemID)
	if !ok {
		return SearchDocument{}, false
	}
	ids := []string{}
	for _, m := range c.Mappings(itemID) {
		ids = append(ids, m.SessionID)
	}
	return SearchDocument{MenuItem: item, SessionIDs: ids}, true
}

// SearchDocuments snapshots the catalog as index documents.
func (c *Catalog) SearchDocuments() []SearchDocument {
	items := c.Items()
	docs := make([]SearchDocument, 0, len(items))
	for _, item := range items {
		if doc, ok := c.SearchDocument(item.ID); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// ESIndex is the Elasticsearch Indexer.
type ESIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewESIndex(client *elasticsearch.Client, index string) *ESIndex {
	return &ESIndex{client: client, index: index}
}

func (e *ESIndex) Index(ctx context.Context, doc SearchDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode menu item %s: %w", doc.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("index menu item %s: %w", doc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index menu item %s: %s", doc.ID, res.Status())
	}
	return nil
}

// Remove deletes the item's document. A missing document is not an error.
func (e *ESIndex) Remove(ctx context.Context, menuItemID string) error {
	req := esapi.DeleteRequest{Index: e.index, DocumentID: menuItemID}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("remove menu item %s: %w", menuItemID, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove menu item %s: %s", menuItemID, res.Status())
	}
	return nil
}

// Sync writes every catalog item to the index, refreshes it once, and returns
// how many documents were written.
func (e *ESIndex) Sync(ctx context.Context, catalog *Catalog) (int, error) {
	docs := catalog.SearchDocuments()
	for _, doc := range docs {
		if err := e.Index(ctx, doc); err != nil {
			return 0, err
		}
	}

	res, err := e.client.Indices.Refresh(
		e.client.Indices.Refresh.WithContext(ctx),
		e.client.Indices.Refresh.WithIndex(e.index),
	)
	if err != nil {
		return 0, fmt.Errorf("refresh %s: %w", e.index, err)
	}
	res.Body.Close()

	return len(docs), nil
}
