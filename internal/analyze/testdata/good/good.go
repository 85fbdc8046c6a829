package good

import (
	"fmt"
	stdio "io"
)

type Reader interface {
	Read(p []byte) (int, error)
}

// Widget is declared with every kind of view name.
//
//dyncast:views Reader stdio.Writer fmt.Stringer error
//dyncast:markers transfer
type Widget struct{}

func (*Widget) Read([]byte) (int, error)    { return 0, stdio.EOF }
func (*Widget) Write(p []byte) (int, error) { return len(p), nil }
func (*Widget) String() string              { return "widget" }
func (*Widget) Error() string               { return "widget" }

//dyncast
type Celsius float64

type (
	// Grouped is declared by a declaration file.
	Grouped struct{}

	Plain struct{}
)

var _ fmt.Stringer = (*Widget)(nil)
