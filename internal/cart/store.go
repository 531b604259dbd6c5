package cart

import (
	"context"
	"encoding/json"
	"sync"

	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
)

// Store persists one cart envelope per session. Load returns an empty
// cart (no error) when the session has nothing stored; unreadable
// payloads surface a CodeStorageRead error so the caller can fail open.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, cart Cart) error
	Delete(ctx context.Context, sessionID string) error
}

func encodeCart(cart Cart) ([]byte, error) {
	raw, err := json.Marshal(cart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageWrite, err, "encode cart")
	}
	return raw, nil
}

// decodeCart accepts the canonical envelope or a bare line-item array,
// the shape older sessions persisted before the zipcode scope existed.
func decodeCart(raw []byte) (Cart, error) {
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err == nil {
		return cart, nil
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeStorageRead, err, "decode cart")
	}
	return Cart{Items: items}, nil
}

// MemoryStore is an in-process Store used in tests and local wiring.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	m.mu.RLock()
	raw, ok := m.data[sessionID]
	m.mu.RUnlock()
	if !ok {
		return Cart{}, nil
	}
	return decodeCart(raw)
}

func (m *MemoryStore) Save(ctx context.Context, sessionID string, cart Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[sessionID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.data, sessionID)
	m.mu.Unlock()
	return nil
}

// Seed stores a raw payload, bypassing encode. Test hook for corrupt data.
func (m *MemoryStore) Seed(sessionID string, raw []byte) {
	m.mu.Lock()
	m.data[sessionID] = raw
	m.mu.Unlock()
}
