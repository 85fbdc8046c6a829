package own

// rcCount is the counter shared by every view of one Rc allocation.
type rcCount struct {
	n       int
	release func()
}

// Rc is a reference-counted value. Its counter is not synchronized: an Rc and
// all of its clones must stay on one goroutine. Use Arc to share across
// goroutines.
type Rc[T any] struct {
	v T
	c *rcCount
}

// NewRc returns the first reference to v. release, if not nil, runs when the
// last reference is released.
func NewRc[T any](v T, release func()) *Rc[T] {
	return &Rc[T]{v: v, c: &rcCount{n: 1, release: onceFunc(release)}}
}

// Valid reports whether the handle still holds a reference.
func (r *Rc[T]) Valid() bool {
	return r != nil && r.c != nil
}

// Get returns the referenced value.
func (r *Rc[T]) Get() (T, bool) {
	if !r.Valid() {
		var zero T
		return zero, false
	}

	return r.v, true
}

// Count returns the number of live references to the allocation, or 0 for
// an empty handle.
func (r *Rc[T]) Count() int {
	if !r.Valid() {
		return 0
	}

	return r.c.n
}

// Clone returns a new reference to the same allocation.
func (r *Rc[T]) Clone() *Rc[T] {
	if !r.Valid() {
		return nil
	}

	r.c.n++

	return &Rc[T]{v: r.v, c: r.c}
}

// Release drops this reference. The release hook runs when the count reaches
// zero. Releasing an empty handle is a no-op.
func (r *Rc[T]) Release() {
	if !r.Valid() {
		return
	}

	c := r.c
	r.clear()

	c.n--
	if c.n == 0 && c.release != nil {
		c.release()
	}
}

func (r *Rc[T]) clear() {
	var zero T
	r.v, r.c = zero, nil
}

// moveRc transfers the reference held by r to a new handle viewing v.
func moveRc[S, T any](r *Rc[S], v T) *Rc[T] {
	out := &Rc[T]{v: v, c: r.c}
	r.clear()

	return out
}

// EraseRc moves the reference held by r into an Rc[any].
func EraseRc[S any](r *Rc[S]) *Rc[any] {
	if !r.Valid() {
		return nil
	}

	return moveRc[S, any](r, r.v)
}

// DowncastRc moves the reference held by r into an Rc[S] if it holds an S.
// On failure r is left untouched.
func DowncastRc[S any](r *Rc[any]) (*Rc[S], bool) {
	if !r.Valid() {
		return nil, false
	}

	s, ok := r.v.(S)
	if !ok {
		return nil, false
	}

	return moveRc(r, s), true
}

// MapRc moves the reference held by r into an Rc[T] viewing f of its value.
func MapRc[S, T any](r *Rc[S], f func(S) T) *Rc[T] {
	if !r.Valid() {
		return nil
	}

	return moveRc(r, f(r.v))
}
