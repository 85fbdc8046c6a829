package own

import "sync/atomic"

// arcCount is the counter shared by every view of one Arc allocation.
type arcCount struct {
	n       atomic.Int64
	release func()
}

// Arc is a reference-counted value whose counter is updated atomically, so
// clones may be handed to other goroutines. A single *Arc handle is still
// owned by one goroutine at a time; share clones, not the handle.
type Arc[T any] struct {
	v T
	c *arcCount
}

// NewArc returns the first reference to v. release, if not nil, runs when
// the last reference is released.
func NewArc[T any](v T, release func()) *Arc[T] {
	c := &arcCount{release: onceFunc(release)}
	c.n.Store(1)

	return &Arc[T]{v: v, c: c}
}

// Valid reports whether the handle still holds a reference.
func (a *Arc[T]) Valid() bool {
	return a != nil && a.c != nil
}

// Get returns the referenced value.
func (a *Arc[T]) Get() (T, bool) {
	if !a.Valid() {
		var zero T
		return zero, false
	}

	return a.v, true
}

// Count returns a snapshot of the number of live references, or 0 for an
// empty handle.
func (a *Arc[T]) Count() int {
	if !a.Valid() {
		return 0
	}

	return int(a.c.n.Load())
}

// Clone returns a new reference to the same allocation.
func (a *Arc[T]) Clone() *Arc[T] {
	if !a.Valid() {
		return nil
	}

	a.c.n.Add(1)

	return &Arc[T]{v: a.v, c: a.c}
}

// Release drops this reference. The release hook runs on whichever
// goroutine drops the last reference.
func (a *Arc[T]) Release() {
	if !a.Valid() {
		return
	}

	c := a.c
	a.clear()

	if c.n.Add(-1) == 0 && c.release != nil {
		c.release()
	}
}

func (a *Arc[T]) clear() {
	var zero T
	a.v, a.c = zero, nil
}

func moveArc[S, T any](a *Arc[S], v T) *Arc[T] {
	out := &Arc[T]{v: v, c: a.c}
	a.clear()

	return out
}

// EraseArc moves the reference held by a into an Arc[any].
func EraseArc[S any](a *Arc[S]) *Arc[any] {
	if !a.Valid() {
		return nil
	}

	return moveArc[S, any](a, a.v)
}

// DowncastArc moves the reference held by a into an Arc[S] if it holds an S.
// On failure a is left untouched.
func DowncastArc[S any](a *Arc[any]) (*Arc[S], bool) {
	if !a.Valid() {
		return nil, false
	}

	s, ok := a.v.(S)
	if !ok {
		return nil, false
	}

	return moveArc(a, s), true
}

// MapArc moves the reference held by a into an Arc[T] viewing f of its value.
func MapArc[S, T any](a *Arc[S], f func(S) T) *Arc[T] {
	if !a.Valid() {
		return nil
	}

	return moveArc(a, f(a.v))
}
