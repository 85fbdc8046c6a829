package own_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dyncast-generator/own"
)

func TestRc_SharedCounterAcrossViews(t *testing.T) {
	released := 0
	r := own.NewRc(&sample{n: 1}, func() { released++ })
	keep := r.Clone()
	require.Equal(t, 2, keep.Count())

	erased := own.EraseRc(r)
	assert.False(t, r.Valid())
	assert.Equal(t, 2, erased.Count(), "moving a reference does not change the count")

	typed, ok := own.DowncastRc[*sample](erased)
	require.True(t, ok)
	assert.Same(t, mustGet(t, keep), mustGet(t, typed))

	typed.Release()
	assert.Equal(t, 1, keep.Count())
	assert.Equal(t, 0, released)

	keep.Release()
	assert.Equal(t, 1, released)
	assert.Equal(t, 0, keep.Count())

	keep.Release()
	assert.Equal(t, 1, released)
}

func TestRc_DowncastMissLeavesSource(t *testing.T) {
	r := own.EraseRc(own.NewRc(&sample{n: 3}, nil))
	clone := r.Clone()

	_, ok := own.DowncastRc[int](r)
	require.False(t, ok)
	assert.True(t, r.Valid())
	assert.Equal(t, 2, clone.Count())
}

func TestRc_Map(t *testing.T) {
	r := own.NewRc(&sample{n: 5}, nil)
	n := own.MapRc(r, func(s *sample) int { return s.n })

	v, ok := n.Get()
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, n.Count())
	assert.Nil(t, own.MapRc(r, func(s *sample) int { return s.n }))
	assert.Nil(t, r.Clone())
}

func TestArc_ConcurrentClones(t *testing.T) {
	var released sync.WaitGroup
	released.Add(1)

	a := own.NewArc(&sample{n: 9}, released.Done)

	const workers = 32

	var wg sync.WaitGroup
	for range workers {
		c := a.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			erased := own.EraseArc(c)
			typed, ok := own.DowncastArc[*sample](erased)
			if ok {
				typed.Release()
			}
		}()
	}

	wg.Wait()
	require.Equal(t, 1, a.Count())

	a.Release()
	released.Wait()
	assert.Equal(t, 0, a.Count())
}

func TestArc_MissAndMap(t *testing.T) {
	a := own.EraseArc(own.NewArc(&sample{n: 2}, nil))

	_, ok := own.DowncastArc[string](a)
	require.False(t, ok)
	require.True(t, a.Valid())

	m := own.MapArc(a, func(v any) string { return "mapped" })
	v, _ := m.Get()
	assert.Equal(t, "mapped", v)
	assert.False(t, a.Valid())
	assert.Equal(t, 1, m.Count())
}

func mustGet[T any](t *testing.T, r *own.Rc[T]) T {
	t.Helper()

	v, ok := r.Get()
	require.True(t, ok)

	return v
}
