package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("storage: not found")
	ErrUnknownTable = errors.New("storage: unknown table")
)

type Repository interface {
	SelectAll(ctx context.Context, table Table, filter ListFilter) ([]Entry, error)
	Select(ctx context.Context, table Table, id string) (Entry, error)
	Insert(ctx context.Context, table Table, id, data string) error
	Update(ctx context.Context, table Table, id, data string) error
	Upsert(ctx context.Context, table Table, id, data string) error
	Delete(ctx context.Context, table Table, id string) error
	// Transfer moves an entry between tables in one transaction. The entry
	// lands at the end of the destination table.
	Transfer(ctx context.Context, from, to Table, id string) error
}
