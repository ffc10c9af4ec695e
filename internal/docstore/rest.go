// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package docstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vaultkit/go-pin-vault/internal/logger"
)

// RESTConfig configures the HTTP document store client.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

// restStore is a [DocumentStore] speaking to the remote document store over
// its HTTP API. Transport security and the store's own access control are
// the remote side's responsibility; this client only moves opaque fields.
type restStore struct {
	client *resty.Client
	log    *logger.Logger
}

// restDocument is the wire shape of a document.
type restDocument struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type restDocumentList struct {
	Documents []restDocument `json:"documents"`
}

// NewRESTStore constructs a [DocumentStore] over the document API at
// cfg.BaseURL.
func NewRESTStore(cfg RESTConfig, log *logger.Logger) DocumentStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &restStore{client: cli, log: log}
}

func (s *restStore) Put(ctx context.Context, collection string, doc Document) (string, error) {
	var (
		resp *resty.Response
		err  error
		out  restDocument
	)

	if doc.ID == "" {
		resp, err = s.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(restDocument{Fields: doc.Fields}).
			SetResult(&out).
			Post(collectionURL(collection))
	} else {
		resp, err = s.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(restDocument{Fields: doc.Fields}).
			SetResult(&out).
			Put(documentURL(collection, doc.ID))
		out.ID = doc.ID
	}
	if err != nil {
		return "", fmt.Errorf("put document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	if out.ID == "" {
		return "", fmt.Errorf("document store returned no id")
	}
	return out.ID, nil
}

func (s *restStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var out restDocument
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(documentURL(collection, id))
	if err != nil {
		return Document{}, fmt.Errorf("get document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return Document{}, err
	}

	return Document{ID: id, Fields: out.Fields}, nil
}

func (s *restStore) List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	direction := "asc"
	if desc {
		direction = "desc"
	}

	var out restDocumentList
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"order_by":  orderBy,
			"direction": direction,
		}).
		SetResult(&out).
		Get(collectionURL(collection))
	if err != nil {
		return nil, fmt.Errorf("list documents request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(out.Documents))
	for _, d := range out.Documents {
		docs = append(docs, Document{ID: d.ID, Fields: d.Fields})
	}
	return docs, nil
}

func (s *restStore) Delete(ctx context.Context, collection, id string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Delete(documentURL(collection, id))
	if err != nil {
		return fmt.Errorf("delete document request: %w", err)
	}
	return mapHTTPError(resp)
}

func (s *restStore) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	// Explicit nulls in the JSON body tell the remote side to remove those
	// fields from storage.
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"fields": fields}).
		Patch(documentURL(collection, id))
	if err != nil {
		return fmt.Errorf("update document request: %w", err)
	}
	return mapHTTPError(resp)
}

func collectionURL(collection string) string {
	return "/api/collections/" + url.PathEscape(collection) + "/documents"
}

func documentURL(collection, id string) string {
	return collectionURL(collection) + "/" + url.PathEscape(id)
}

func mapHTTPError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	case resp.IsError():
		return fmt.Errorf("document store replied %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	default:
		return nil
	}
}
