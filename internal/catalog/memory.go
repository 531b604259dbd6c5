package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
	"github.com/google/uuid"
)

// MemoryProvider serves dishes from an in-memory index. It stands in for
// the CMS-backed menu service during development and in tests.
type MemoryProvider struct {
	dishes map[uuid.UUID]*Dish
}

// NewMemoryProvider indexes the given dishes by ID.
func NewMemoryProvider(dishes []Dish) *MemoryProvider {
	index := make(map[uuid.UUID]*Dish, len(dishes))
	for i := range dishes {
		dish := dishes[i]
		index[dish.ID] = &dish
	}
	return &MemoryProvider{dishes: index}
}

// NewMemoryProviderFromSeed loads a JSON dish list from disk.
func NewMemoryProviderFromSeed(path string) (*MemoryProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	var dishes []Dish
	if err := json.Unmarshal(raw, &dishes); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	return NewMemoryProvider(dishes), nil
}

// GetDish returns the dish with the given ID or a not-found error.
func (p *MemoryProvider) GetDish(ctx context.Context, id uuid.UUID) (*Dish, error) {
	dish, ok := p.dishes[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
	}
	return dish, nil
}
