package service

import (
	"context"
	"fmt"

	"invoicr/internal/model"
	"invoicr/internal/storage"
)

// PredefinedItemService manages the reusable line items offered in the
// invoice form.
type PredefinedItemService struct {
	Store *storage.Store
}

// List returns all predefined items.
func (s *PredefinedItemService) List(ctx context.Context) ([]model.PredefinedItem, error) {
	var items []model.PredefinedItem
	if err := s.Store.Load(ctx, storage.CollectionPredefinedItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add appends a new predefined item.
func (s *PredefinedItemService) Add(ctx context.Context, item model.PredefinedItem) (model.PredefinedItem, error) {
	unlock := s.Store.Lock(storage.CollectionPredefinedItems)
	defer unlock()

	var items []model.PredefinedItem
	if err := s.Store.Load(ctx, storage.CollectionPredefinedItems, &items); err != nil {
		return model.PredefinedItem{}, err
	}
	var maxID int64
	for _, existing := range items {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	item.ID = nextID(maxID)
	items = append(items, item)
	if err := s.Store.Save(ctx, storage.CollectionPredefinedItems, items); err != nil {
		return model.PredefinedItem{}, err
	}
	return item, nil
}

// Delete removes a predefined item.
func (s *PredefinedItemService) Delete(ctx context.Context, id int64) error {
	unlock := s.Store.Lock(storage.CollectionPredefinedItems)
	defer unlock()

	var items []model.PredefinedItem
	if err := s.Store.Load(ctx, storage.CollectionPredefinedItems, &items); err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return fmt.Errorf("predefined item %d: %w", id, ErrNotFound)
	}
	return s.Store.Save(ctx, storage.CollectionPredefinedItems, kept)
}

// AsLineItem copies a predefined item into a fresh invoice line with
// quantity 1.
func AsLineItem(item model.PredefinedItem) model.LineItem {
	return model.LineItem{
		Description: item.Description,
		Quantity:    1,
		Rate:        item.Rate,
		Amount:      item.Rate,
		RateType:    model.RateCustom,
	}
}
