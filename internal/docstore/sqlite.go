// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vaultkit/go-pin-vault/internal/logger"
	"github.com/vaultkit/go-pin-vault/migrations"
)

// sqliteStore is a [DocumentStore] backed by a local SQLite database.
// Documents live in a single table keyed by (collection, doc_id); the field
// map is stored as a JSON column, with updated_at mirrored into its own
// column so List can order without parsing JSON.
type sqliteStore struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at dsn,
// verifies the connection and applies pending migrations.
func NewSQLiteStore(ctx context.Context, dsn string, log *logger.Logger) (DocumentStore, error) {
	if err := createDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if err = migrations.Migrate(db); err != nil {
		return nil, err
	}
	log.Debug().Str("func", "NewSQLiteStore").Msg("connected to document database")

	return &sqliteStore{db: db, log: log}, nil
}

func createDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}
	return nil
}

func (s *sqliteStore) Put(ctx context.Context, collection string, doc Document) (string, error) {
	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}

	payload, err := json.Marshal(doc.Fields)
	if err != nil {
		return "", fmt.Errorf("encode document fields: %w", err)
	}

	query, args, err := sq.Insert("documents").
		Columns("collection", "doc_id", "fields", "updated_at").
		Values(collection, id, string(payload), sortKey(doc.Fields)).
		Suffix(`ON CONFLICT (collection, doc_id) DO UPDATE
			SET fields = excluded.fields, updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build upsert query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Err(err).Str("func", "sqliteStore.Put").Str("doc_id", id).Msg("failed to upsert document")
		return "", fmt.Errorf("upsert document %s: %w", id, err)
	}
	return id, nil
}

func (s *sqliteStore) Get(ctx context.Context, collection, id string) (Document, error) {
	query, args, err := sq.Select("fields").
		From("documents").
		Where(sq.Eq{"collection": collection, "doc_id": id}).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("build select query: %w", err)
	}

	var payload string
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		s.log.Err(err).Str("func", "sqliteStore.Get").Str("doc_id", id).Msg("failed to query document")
		return Document{}, fmt.Errorf("query document %s: %w", id, err)
	}

	fields, err := decodeFields(payload)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: fields}, nil
}

func (s *sqliteStore) List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	// Ordering is restricted to the mirrored updated_at column; ordering by
	// arbitrary JSON fields is not supported by this backend.
	if orderBy != "updated_at" {
		return nil, fmt.Errorf("order by %q is not supported by the sqlite backend", orderBy)
	}

	query, args, err := sq.Select("doc_id", "fields").
		From("documents").
		Where(sq.Eq{"collection": collection}).
		OrderBy("updated_at "+direction, "doc_id "+direction).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Err(err).Str("func", "sqliteStore.List").Str("collection", collection).Msg("failed to query documents")
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			id      string
			payload string
		)
		if err = rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		fields, err := decodeFields(payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}

	return docs, nil
}

func (s *sqliteStore) Delete(ctx context.Context, collection, id string) error {
	query, args, err := sq.Delete("documents").
		Where(sq.Eq{"collection": collection, "doc_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Err(err).Str("func", "sqliteStore.Delete").Str("doc_id", id).Msg("failed to delete document")
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFields reads, merges and rewrites the JSON field map inside one
// transaction so two concurrent partial updates cannot lose each other's
// fields.
func (s *sqliteStore) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := sq.Select("fields").
		From("documents").
		Where(sq.Eq{"collection": collection, "doc_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build select query: %w", err)
	}

	var payload string
	if err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("query document %s: %w", id, err)
	}

	stored, err := decodeFields(payload)
	if err != nil {
		return err
	}
	for k, v := range fields {
		if v == nil {
			delete(stored, k)
			continue
		}
		stored[k] = v
	}

	merged, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode document fields: %w", err)
	}

	updateQuery, updateArgs, err := sq.Update("documents").
		Set("fields", string(merged)).
		Set("updated_at", sortKey(stored)).
		Where(sq.Eq{"collection": collection, "doc_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err = tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		s.log.Err(err).Str("func", "sqliteStore.UpdateFields").Str("doc_id", id).Msg("failed to update document")
		return fmt.Errorf("update document %s: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// sortKey extracts the updated_at field (Unix milliseconds) for the
// mirrored ordering column.
func sortKey(fields map[string]any) int64 {
	if f, ok := asFloat(fields["updated_at"]); ok {
		return int64(f)
	}
	return 0
}

func decodeFields(payload string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("decode document fields: %w", err)
	}
	return fields, nil
}
