package mutate

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an action addresses an element that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports which action addressed which index in a collection of which length.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e IndexError) Unwrap() error { return ErrIndexOutOfRange }
