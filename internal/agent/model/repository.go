package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStore keeps one QueryContext per session key. Implementations must
// serialize updates per key; semantics are last-write-wins. Sessions are
// created lazily on first reference and never explicitly destroyed.
type SessionStore interface {
	// Get returns the context for a session key and whether one exists.
	Get(ctx context.Context, sessionID string) (QueryContext, bool, error)

	// Put upserts the context for a session key.
	Put(ctx context.Context, sessionID string, qc QueryContext) error
}

// TyreFinder reads the addtyres collection. All lookups are read-only.
type TyreFinder interface {
	// FindBySize returns tyres whose stock contains the exact size.
	FindBySize(ctx context.Context, size string) ([]Tyre, error)

	// FindByBrand returns tyres whose brand matches the given value as a
	// case-insensitive substring. An empty brand matches every tyre.
	FindByBrand(ctx context.Context, brand string) ([]Tyre, error)

	// FindTubeless returns tyres whose type contains "tubeless"
	// (case-insensitive), optionally narrowed by a brand substring.
	FindTubeless(ctx context.Context, brand string) ([]Tyre, error)
}

// OrderFinder reads the clientorders collection.
type OrderFinder interface {
	// FindOrders returns orders containing any of the given tyre references,
	// optionally bounded by a creation-time window. An empty tyreIDs set
	// yields an unfiltered order query: all orders regardless of contained
	// tyre, which is distinct from "no orders".
	FindOrders(ctx context.Context, tyreIDs []primitive.ObjectID, window *DateWindow) ([]Order, error)
}
