package layoutsync

import (
	"context"
	"errors"

	"boda-backend/seating"
)

var (
	// ErrNoLayout is returned by Store.Latest when no layout document exists yet.
	ErrNoLayout = errors.New("no layout stored")

	// ErrStoreUnavailable wraps network, timeout and server failures of the store.
	ErrStoreUnavailable = errors.New("layout store unavailable")
)

// Store is the layout store of record.
type Store interface {
	// Latest returns the most recently created layout, or ErrNoLayout.
	Latest(ctx context.Context) (*seating.Layout, error)
	// Create appends a new layout document; it becomes the current one.
	Create(ctx context.Context, espacios seating.Grid) (*seating.Layout, error)
	// Replace overwrites espacios of an existing document.
	Replace(ctx context.Context, id uint, espacios seating.Grid) (*seating.Layout, error)
}

// GuestDirectory is the read-only guest list.
type GuestDirectory interface {
	Parties(ctx context.Context) ([]seating.Party, error)
}
