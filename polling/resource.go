// Package polling manages the fetch lifecycle of remote collections that
// views render and periodically reload. A Resource tracks one collection
// with three facets: loading (first fetch in flight), refreshing (a reload
// in flight) and error (last completed fetch failed). A successful fetch
// replaces the collection wholesale and clears the error. A failed fetch
// records the error and leaves the previous collection untouched, so a view
// keeps its stale rows instead of flashing empty.
//
// Resources never retry and never schedule their own reloads: a ticker or a
// user action drives Refresh. Completions that arrive after Close, or after
// a newer fetch was issued, are discarded without touching state.
package polling

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrClosed is returned when a resource is used after Close.
	ErrClosed = errors.New("resource closed")

	// ErrNotLoaded is returned by Refresh before any Load supplied a fetch.
	ErrNotLoaded = errors.New("no fetch loaded")
)

// FetchFunc loads one snapshot of a remote collection. Implementations
// capture their own constraint parameters (filters, page size) at the call
// site; the resource passes them through untouched.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Resource holds one remote collection and its fetch facets. The zero value
// is not usable; create resources with New.
type Resource[T any] struct {
	lock       sync.Mutex
	fetch      FetchFunc[T]
	items      []T
	err        error
	loaded     bool   // a first Load was issued
	closed     bool
	loading    bool   // first fetch in flight
	refreshing int    // reloads in flight
	generation uint64 // newest issued fetch owns the state
}

// New creates an empty resource. Until the first Load succeeds the
// collection is empty and no facet is set, which is the true empty state.
func New[T any]() *Resource[T] {
	return &Resource[T]{}
}

// Load issues a fetch and stores it for later refreshes. The first Load
// raises the loading facet; any further Load is treated as a reload of the
// collection under new parameters and raises refreshing instead. The return
// value reflects this fetch's own outcome even when a newer fetch has
// already superseded it.
func (r *Resource[T]) Load(ctx context.Context, fetch FetchFunc[T]) error {
	if fetch == nil {
		return errors.New("[Resource.Load] fetch is required")
	}

	r.lock.Lock()
	if r.closed {
		r.lock.Unlock()
		return ErrClosed
	}
	r.fetch = fetch
	initial := !r.loaded
	r.loaded = true
	r.lock.Unlock()

	return r.run(ctx, fetch, initial)
}

// Refresh re-runs the fetch stored by the last Load, raising the refreshing
// facet while it is in flight.
func (r *Resource[T]) Refresh(ctx context.Context) error {
	r.lock.Lock()
	fetch := r.fetch
	closed := r.closed
	r.lock.Unlock()

	if closed {
		return ErrClosed
	}
	if fetch == nil {
		return ErrNotLoaded
	}

	return r.run(ctx, fetch, false)
}

func (r *Resource[T]) run(ctx context.Context, fetch FetchFunc[T], initial bool) error {
	r.lock.Lock()
	if initial {
		r.loading = true
	} else {
		r.refreshing++
	}
	r.generation++
	generation := r.generation
	r.lock.Unlock()

	items, err := fetch(ctx)

	r.lock.Lock()
	defer r.lock.Unlock()

	if initial {
		r.loading = false
	} else {
		r.refreshing--
	}

	// A completion that is stale, or lands after Close, must not write
	// state the owner no longer expects to change.
	if r.closed || generation != r.generation {
		return err
	}

	if err != nil {
		r.err = err
		return err
	}

	r.items = items
	r.err = nil
	return nil
}

// Items returns a snapshot of the collection.
func (r *Resource[T]) Items() []T {
	r.lock.Lock()
	defer r.lock.Unlock()
	return slices.Clone(r.items)
}

// Err returns the error recorded by the last completed fetch, or nil after a
// success.
func (r *Resource[T]) Err() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.err
}

// Loading reports whether the first fetch is still in flight.
func (r *Resource[T]) Loading() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.loading
}

// Refreshing reports whether any reload is in flight.
func (r *Resource[T]) Refreshing() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.refreshing > 0
}

// Close detaches the resource from its owner. In-flight fetches finish but
// their completions are discarded.
func (r *Resource[T]) Close() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.closed = true
}
