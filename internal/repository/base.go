// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"itinfo/internal/models"
	"itinfo/internal/store"
)

// newestFirst orders by creation time descending, breaking ties by primary key.
func newestFirst(pk string) []store.Order {
	return []store.Order{{Column: "created_at", Desc: true}, {Column: pk, Desc: true}}
}

// getOne loads a single row by primary key, mapping a miss to NOT_FOUND.
func getOne(ctx context.Context, s store.Store, table, resource, pk string, id uint, dest any, preload ...string) error {
	found, err := s.QueryOne(ctx, table, store.Query{
		Preload: preload,
		Filters: []store.Filter{store.Eq(pk, id)},
	}, dest)
	if err != nil {
		return err
	}
	if !found {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}
