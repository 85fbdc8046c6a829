package own

import "sync"

// Box is an exclusively owned value. A Box moves when it is cast: the source
// handle becomes empty and the result owns the value and its release hook.
type Box[T any] struct {
	v       T
	full    bool
	release func()
}

// NewBox returns a Box owning v. release, if not nil, runs once on Drop.
func NewBox[T any](v T, release func()) *Box[T] {
	return &Box[T]{v: v, full: true, release: onceFunc(release)}
}

// Valid reports whether the box still owns a value.
func (b *Box[T]) Valid() bool {
	return b != nil && b.full
}

// Get returns the owned value without moving it.
func (b *Box[T]) Get() (T, bool) {
	if !b.Valid() {
		var zero T
		return zero, false
	}

	return b.v, true
}

// Take moves the value out of the box. The caller becomes responsible for
// whatever the release hook would have done; the hook is discarded.
func (b *Box[T]) Take() (T, bool) {
	v, ok := b.Get()
	if ok {
		b.clear()
	}

	return v, ok
}

// Drop empties the box and runs its release hook.
func (b *Box[T]) Drop() {
	if !b.Valid() {
		return
	}

	release := b.release
	b.clear()

	if release != nil {
		release()
	}
}

func (b *Box[T]) clear() {
	var zero T
	b.v, b.full, b.release = zero, false, nil
}

// moveBox transfers ownership of b to a new box holding v.
func moveBox[S, T any](b *Box[S], v T) *Box[T] {
	out := &Box[T]{v: v, full: true, release: b.release}
	b.clear()

	return out
}

// EraseBox moves b into a Box[any]. It returns nil if b is empty.
func EraseBox[S any](b *Box[S]) *Box[any] {
	if !b.Valid() {
		return nil
	}

	return moveBox[S, any](b, b.v)
}

// DowncastBox moves b into a Box[S] if it holds an S. On failure b is left
// untouched and still owns its value.
func DowncastBox[S any](b *Box[any]) (*Box[S], bool) {
	if !b.Valid() {
		return nil, false
	}

	s, ok := b.v.(S)
	if !ok {
		return nil, false
	}

	return moveBox(b, s), true
}

// MapBox moves b into a Box[T] holding f of its value.
func MapBox[S, T any](b *Box[S], f func(S) T) *Box[T] {
	if !b.Valid() {
		return nil
	}

	return moveBox(b, f(b.v))
}

// onceFunc wraps a release hook so that it runs at most once.
func onceFunc(f func()) func() {
	if f == nil {
		return nil
	}

	return sync.OnceFunc(f)
}
