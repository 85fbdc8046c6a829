package bad

import "io"

type Reader interface {
	Read([]byte) (int, error)
}

type Number interface {
	~int | ~float64
}

var NotAType = 1

//dyncast:views Reader
type NoRead struct{}

//dyncast:views Raeder
type Typo struct{}

//dyncast:views NotAType
type Var struct{}

//dyncast:views Number
type Constraint struct{}

//dyncast:views io.Nope
type Missing struct{}

//dyncast:views json.Marshaler
type NotImported struct{}

//dyncast
type Box[T any] struct{ v T }

//dyncast
type Alias = NoRead

//dyncast
type Iface interface{}

//dyncast:markers trasfer
type BadMarker struct{}

var _ io.Reader
