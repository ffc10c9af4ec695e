// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

// Package vault is the orchestrator of the encrypted vault: it composes
// the crypto primitives, the session manager, the PIN credential manager
// and the document store into the CRUD surface the UI consumes.
//
// Invariants enforced here:
//   - every operation is gated by an active session, checked before any
//     store call;
//   - an item's salt is generated once at creation and never changes;
//   - a fresh iv is produced by every encryption and persisted together
//     with its ciphertext, never apart from it;
//   - writes to a single item id are serialized so concurrent updates
//     cannot pair a new iv with stale ciphertext.
package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vaultkit/go-pin-vault/internal/credential"
	"github.com/vaultkit/go-pin-vault/internal/crypto"
	"github.com/vaultkit/go-pin-vault/internal/docstore"
	"github.com/vaultkit/go-pin-vault/internal/logger"
	"github.com/vaultkit/go-pin-vault/internal/session"
	"github.com/vaultkit/go-pin-vault/models"
)

// service is the private implementation of [Service].
type service struct {
	store    docstore.DocumentStore
	keys     crypto.KeyChain
	sessions *session.Manager
	creds    credential.Manager
	log      *logger.Logger

	now func() time.Time

	// mu guards itemLocks; each item lock serializes writes to one item id.
	mu        sync.Mutex
	itemLocks map[string]*sync.Mutex
}

// Option configures the service.
type Option func(*service)

// WithClock replaces the time source used for item timestamps. Tests use
// it to make timestamps deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService constructs the vault [Service].
func NewService(store docstore.DocumentStore, keys crypto.KeyChain, sessions *session.Manager, creds credential.Manager, log *logger.Logger, opts ...Option) Service {
	s := &service{
		store:     store,
		keys:      keys,
		sessions:  sessions,
		creds:     creds,
		log:       log,
		now:       time.Now,
		itemLocks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SetupPin(pin string) error {
	if err := s.creds.Setup(pin); err != nil {
		if errors.Is(err, credential.ErrInvalidPin) {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return err
	}

	s.sessions.Begin()
	s.log.Info().Msg("pin credential established, vault unlocked")
	return nil
}

func (s *service) Unlock(pin string) error {
	ok, err := s.creds.Verify(pin)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Warn().Msg("unlock rejected: pin hash mismatch")
		return ErrAuthenticationFailed
	}

	s.sessions.Begin()
	s.log.Debug().Msg("vault unlocked")
	return nil
}

func (s *service) Lock() {
	s.sessions.Lock()
	s.log.Debug().Msg("vault locked")
}

func (s *service) Status() Status {
	if !s.creds.HasCredential() {
		return StatusNoCredential
	}
	if s.sessions.Unlocked() {
		return StatusUnlocked
	}
	return StatusLocked
}

func (s *service) Create(ctx context.Context, params CreateParams, pin string) (models.VaultItem, error) {
	if err := s.sessions.Gate(); err != nil {
		return models.VaultItem{}, err
	}
	if err := validateCreate(params); err != nil {
		return models.VaultItem{}, err
	}
	if err := s.verifyPin(pin); err != nil {
		return models.VaultItem{}, err
	}

	salt, err := s.keys.GenerateSalt()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: generate salt: %w", crypto.ErrEncryptionFailed, err)
	}

	now := s.now().UTC()
	item := models.VaultItem{
		OwnerID:    params.OwnerID,
		Type:       params.Type,
		Title:      params.Title,
		Salt:       salt,
		Metadata:   params.Metadata,
		CreatedAt:  now,
		UpdatedAt:  now,
		AccessedAt: now,
	}

	if params.Content != "" {
		key := s.keys.DeriveKey(pin, salt)
		item.Ciphertext, item.IV, err = s.keys.Encrypt([]byte(params.Content), key)
		if err != nil {
			return models.VaultItem{}, err
		}
	}

	id, err := s.store.Put(ctx, collectionFor(params.OwnerID), docstore.Document{Fields: itemToFields(item)})
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: put item: %w", ErrStorage, err)
	}
	item.ID = id

	s.sessions.Extend()
	s.log.Debug().Str("item_id", id).Str("type", string(item.Type)).Msg("vault item created")
	return item, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]models.VaultItem, error) {
	if err := s.sessions.Gate(); err != nil {
		return nil, err
	}

	docs, err := s.store.List(ctx, collectionFor(ownerID), fieldUpdatedAt, true)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", ErrStorage, err)
	}

	items := make([]models.VaultItem, 0, len(docs))
	for _, doc := range docs {
		item, err := itemFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		items = append(items, item)
	}

	s.sessions.Extend()
	return items, nil
}

func (s *service) Read(ctx context.Context, ownerID, itemID string) (models.VaultItem, error) {
	lock := s.lockFor(ownerID, itemID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.sessions.Gate(); err != nil {
		return models.VaultItem{}, err
	}

	doc, err := s.store.Get(ctx, collectionFor(ownerID), itemID)
	if err != nil {
		return models.VaultItem{}, s.storageError("get item", itemID, err)
	}

	item, err := itemFromDocument(doc)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	accessedAt := s.now().UTC()
	err = s.store.UpdateFields(ctx, collectionFor(ownerID), itemID, map[string]any{
		fieldAccessedAt: accessedAt.UnixMilli(),
	})
	if err != nil {
		return models.VaultItem{}, s.storageError("touch item", itemID, err)
	}
	item.AccessedAt = accessedAt

	s.sessions.Extend()
	return item, nil
}

func (s *service) DecryptContent(item models.VaultItem, pin string) (string, error) {
	if err := s.sessions.Gate(); err != nil {
		return "", err
	}

	// Items without content decrypt to the empty string; only items that
	// actually hold ciphertext need their crypto parameters.
	if !item.HasContent() {
		s.sessions.Extend()
		return "", nil
	}
	if len(item.Salt) == 0 || len(item.IV) == 0 {
		return "", fmt.Errorf("%w: item %s misses salt or iv", crypto.ErrDecryptionFailed, item.ID)
	}

	key := s.keys.DeriveKey(pin, item.Salt)
	plaintext, err := s.keys.Decrypt(item.Ciphertext, key, item.IV)
	if err != nil {
		return "", err
	}

	s.sessions.Extend()
	return string(plaintext), nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID string, upd models.ItemUpdate, pin string) error {
	lock := s.lockFor(ownerID, itemID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.sessions.Gate(); err != nil {
		return err
	}
	if upd.Empty() {
		s.sessions.Extend()
		return nil
	}
	if upd.Title != nil && *upd.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	doc, err := s.store.Get(ctx, collectionFor(ownerID), itemID)
	if err != nil {
		return s.storageError("get item", itemID, err)
	}
	current, err := itemFromDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	fields := make(map[string]any)

	if upd.Title != nil {
		fields[fieldTitle] = *upd.Title
	}

	if upd.Content != nil {
		if err := s.verifyPin(pin); err != nil {
			return err
		}
		if *upd.Content == "" {
			// Content removed: ciphertext and iv leave storage, the salt
			// stays for the item's lifetime.
			fields[fieldCiphertext] = nil
			fields[fieldIV] = nil
		} else {
			// Same salt, hence the same derived key; the iv and ciphertext
			// are always replaced as a pair.
			key := s.keys.DeriveKey(pin, current.Salt)
			ciphertext, iv, err := s.keys.Encrypt([]byte(*upd.Content), key)
			if err != nil {
				return err
			}
			fields[fieldCiphertext] = base64.StdEncoding.EncodeToString(ciphertext)
			fields[fieldIV] = base64.StdEncoding.EncodeToString(iv)
		}
	}

	if upd.Metadata != nil && !upd.Metadata.Empty() {
		merged := upd.Metadata.Apply(current.Metadata)
		for k, v := range metadataFields(merged) {
			fields[k] = v
		}
	}

	fields[fieldUpdatedAt] = s.now().UTC().UnixMilli()

	if err := s.store.UpdateFields(ctx, collectionFor(ownerID), itemID, fields); err != nil {
		return s.storageError("update item", itemID, err)
	}

	s.sessions.Extend()
	s.log.Debug().Str("item_id", itemID).Bool("content_changed", upd.Content != nil).Msg("vault item updated")
	return nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID string) error {
	lock := s.lockFor(ownerID, itemID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.sessions.Gate(); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, collectionFor(ownerID), itemID); err != nil {
		return s.storageError("delete item", itemID, err)
	}

	s.sessions.Extend()
	s.log.Debug().Str("item_id", itemID).Msg("vault item deleted")
	return nil
}

// verifyPin checks the PIN hash before content is encrypted under a key
// derived from it. Without this check a mistyped PIN would silently
// encrypt new content under a key the real PIN can never reproduce.
func (s *service) verifyPin(pin string) error {
	ok, err := s.creds.Verify(pin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthenticationFailed
	}
	return nil
}

func (s *service) lockFor(ownerID, itemID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ownerID + "/" + itemID
	lock, ok := s.itemLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.itemLocks[key] = lock
	}
	return lock
}

func (s *service) storageError(op, itemID string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	s.log.Err(err).Str("item_id", itemID).Msg("document store operation failed")
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, itemID, err)
}

func validateCreate(params CreateParams) error {
	if params.OwnerID == "" {
		return fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	if !params.Type.Valid() {
		return fmt.Errorf("%w: unknown item type %q", ErrValidation, params.Type)
	}
	if params.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}

func collectionFor(ownerID string) string {
	return "owners/" + ownerID + "/items"
}
