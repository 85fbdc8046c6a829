package dyncast_test

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dyncast-generator/dyncast"
	"dyncast-generator/own"
	"dyncast-generator/view"
)

func TestCanCast_DefaultMarkersNoInterfaces(t *testing.T) {
	l := &Local{}
	assert.True(t, dyncast.CanCast[*Local](l))
	assert.True(t, dyncast.CanCast[any](l))
	assert.False(t, dyncast.CanCast[any](l, view.Transfer), "Local declares no markers")
	assert.False(t, dyncast.CanCast[Unrelated](l))
	assert.False(t, dyncast.CanCast[any](nil))

	f := &File{}
	assert.True(t, dyncast.CanCast[*File](f))
	assert.True(t, dyncast.CanCast[any](f, view.Transfer, view.Concurrent))
	assert.True(t, dyncast.CanCast[dyncast.Castable](f, view.Concurrent))
	assert.False(t, dyncast.CanCast[*File](f, view.Transfer), "the concrete view carries no markers")
	assert.False(t, dyncast.CanCast[Namer](f, view.Relocatable))
	assert.False(t, dyncast.CanCast[io.Reader](f))
}

func TestCastRef_IdentityAndCrossCast(t *testing.T) {
	f := &File{name: "a", size: 3}

	self, ok := dyncast.CastRef[*File](f)
	require.True(t, ok)
	assert.Same(t, f, self)

	n, ok := dyncast.CastRef[Namer](f)
	require.True(t, ok)
	assert.Equal(t, "a", n.Name())

	// Namer -> Sizer through the generic capability.
	s, ok := dyncast.CastRef[Sizer](n.(dyncast.Castable))
	require.True(t, ok)
	assert.Equal(t, 3, s.Size())

	back, ok := dyncast.CastRef[*File](s.(dyncast.Castable))
	require.True(t, ok)
	assert.Same(t, f, back)

	qualified, ok := dyncast.CastRef[Sizer](f, view.Transfer, view.Concurrent)
	require.True(t, ok)
	assert.Equal(t, 3, qualified.Size())

	_, ok = dyncast.CastRef[Unrelated](f)
	assert.False(t, ok)

	_, ok = dyncast.CastRef[*File](nil)
	assert.False(t, ok)
}

func TestCastMut(t *testing.T) {
	f := &File{size: 1}

	m, ok := dyncast.CastMut[*File](f)
	require.True(t, ok)
	m.Grow(4)
	assert.Equal(t, 5, f.size)

	_, ok = dyncast.CastMut[fmt.Stringer](f)
	assert.False(t, ok, "String is implemented but not declared")
}

func TestCastBox(t *testing.T) {
	drops := 0
	f := &File{name: "boxed"}
	b := own.NewBox(f, func() { drops++ })

	miss, ok := dyncast.CastBox[Unrelated](b)
	require.False(t, ok)
	assert.Nil(t, miss)
	require.True(t, b.Valid(), "a miss hands the box back untouched")
	got, _ := b.Get()
	assert.Same(t, f, got)

	n, ok := dyncast.CastBox[Namer](b)
	require.True(t, ok)
	assert.False(t, b.Valid())

	nv, _ := n.Get()
	assert.Equal(t, "boxed", nv.Name())

	back, ok := dyncast.CastBox[*File](n)
	require.True(t, ok)
	bv, _ := back.Get()
	assert.Same(t, f, bv)

	back.Drop()
	assert.Equal(t, 1, drops)

	_, ok = dyncast.CastBox[*File](back)
	assert.False(t, ok, "empty box")
}

func TestCastRc_SharesCounter(t *testing.T) {
	released := false
	f := &File{name: "rc"}
	r := own.NewRc(f, func() { released = true })
	keep := r.Clone()

	_, ok := dyncast.CastRc[Unrelated](r)
	require.False(t, ok)
	require.True(t, r.Valid())
	assert.Equal(t, 2, r.Count())

	s, ok := dyncast.CastRc[Sizer](r)
	require.True(t, ok)
	assert.False(t, r.Valid())
	assert.Equal(t, 2, s.Count())

	s.Release()
	assert.False(t, released)
	keep.Release()
	assert.True(t, released)
}

func TestCastArc(t *testing.T) {
	f := &File{name: "arc", size: 2}
	a := own.NewArc(f, nil)

	const workers = 16

	var wg sync.WaitGroup
	for range workers {
		c := a.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, ok := dyncast.CastArc[Namer](c, view.Transfer)
			if assert.True(t, ok) {
				n.Release()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, a.Count())

	self, ok := dyncast.CastArc[*File](a)
	require.True(t, ok)
	v, _ := self.Get()
	assert.Same(t, f, v)
}

func TestCastArc_WithoutSharedMarkersAlwaysFails(t *testing.T) {
	l := &Local{id: 1}
	a := own.NewArc(l, nil)

	for _, try := range []func() bool{
		func() bool { _, ok := dyncast.CastArc[*Local](a); return ok },
		func() bool { _, ok := dyncast.CastArc[any](a); return ok },
		func() bool { _, ok := dyncast.CastArc[dyncast.Castable](a); return ok },
	} {
		assert.False(t, try())
		assert.True(t, a.Valid())
		assert.Equal(t, 1, a.Count())
	}

	// The other kinds are unaffected.
	_, ok := dyncast.CastRef[*Local](l)
	assert.True(t, ok)
}

func TestContractViolation(t *testing.T) {
	liar := &Liar{}

	err := recoverErr(t, func() { dyncast.CastRef[Namer](liar) })
	require.ErrorIs(t, err, dyncast.ErrContract)

	var ce *dyncast.ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, own.KindRef, ce.Kind)
	assert.Equal(t, view.Of[Namer](), ce.View)
	assert.Contains(t, ce.Reason, "finalized as")

	err = recoverErr(t, func() { dyncast.CastRef[Sizer](liar) })
	require.ErrorIs(t, err, dyncast.ErrContract)
	assert.Contains(t, err.Error(), "produced nothing")

	b := own.NewBox(liar, nil)
	err = recoverErr(t, func() { dyncast.CastBox[Namer](b) })
	require.ErrorIs(t, err, dyncast.ErrContract)

	_, ok := dyncast.CastArc[Namer](own.NewArc(liar, nil))
	assert.False(t, ok, "Liar does not declare the shared markers")
}

func recoverErr(t *testing.T, f func()) (err error) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")

		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()

	f()

	return errors.New("unreachable")
}

func ExampleCastRef() {
	f := &File{name: "notes.txt", size: 12}

	n, _ := dyncast.CastRef[Namer](f)
	s, _ := dyncast.CastRef[Sizer](n.(dyncast.Castable))
	fmt.Println(n.Name(), s.Size())

	_, ok := dyncast.CastRef[io.Reader](f)
	fmt.Println(ok)

	// Output:
	// notes.txt 12
	// false
}

func ExampleCastBox() {
	b := own.NewBox(&File{name: "owned"}, func() { fmt.Println("dropped") })

	if _, ok := dyncast.CastBox[io.Writer](b); !ok {
		fmt.Println("still valid:", b.Valid())
	}

	n, _ := dyncast.CastBox[Namer](b)
	fmt.Println("moved:", !b.Valid())
	n.Drop()

	// Output:
	// still valid: true
	// moved: true
	// dropped
}

func TestOwnedCast_InterfaceRoundTrip(t *testing.T) {
	f := &File{name: "trip", size: 3}

	t.Run("box", func(t *testing.T) {
		n, ok := dyncast.CastBox[Namer](own.NewBox(f, nil))
		require.True(t, ok)

		s, ok := dyncast.CastBox[Sizer](n)
		require.True(t, ok)
		assert.False(t, n.Valid())

		back, ok := dyncast.CastBox[*File](s)
		require.True(t, ok)
		v, _ := back.Get()
		assert.Same(t, f, v)
	})

	t.Run("rc", func(t *testing.T) {
		r := own.NewRc(f, nil)
		keep := r.Clone()

		n, ok := dyncast.CastRc[Namer](r)
		require.True(t, ok)

		s, ok := dyncast.CastRc[Sizer](n, view.Transfer)
		require.True(t, ok)

		back, ok := dyncast.CastRc[*File](s)
		require.True(t, ok)
		v, _ := back.Get()
		assert.Same(t, f, v)
		assert.Equal(t, 2, keep.Count())
	})

	t.Run("arc", func(t *testing.T) {
		n, ok := dyncast.CastArc[Namer](own.NewArc(f, nil), view.Concurrent)
		require.True(t, ok)

		s, ok := dyncast.CastArc[Sizer](n)
		require.True(t, ok)

		back, ok := dyncast.CastArc[*File](s)
		require.True(t, ok)
		v, _ := back.Get()
		assert.Same(t, f, v)
		assert.Equal(t, 1, back.Count())
	})
}

func TestOwnedCast_NotCastableMisses(t *testing.T) {
	b := own.NewBox("plain", nil)
	_, ok := dyncast.CastBox[any](b)
	assert.False(t, ok)
	assert.True(t, b.Valid())

	var none Namer
	r := own.NewRc(none, nil)
	_, ok = dyncast.CastRc[*File](r)
	assert.False(t, ok)
	assert.True(t, r.Valid())
}
