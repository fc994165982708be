package session

import (
	"encoding/json"
	"strconv"
)

// Selection is an index into a collection, or none.
type Selection struct {
	index int
	ok    bool
}

// None is the empty selection.
var None = Selection{}

// At selects index i.
func At(i int) Selection { return Selection{index: i, ok: true} }

// Index returns the selected index and whether anything is selected.
func (s Selection) Index() (int, bool) { return s.index, s.ok }

func (s Selection) IsNone() bool { return !s.ok }

// Is reports whether s selects exactly index i.
func (s Selection) Is(i int) bool { return s.ok && s.index == i }

func (s Selection) String() string {
	if !s.ok {
		return "none"
	}
	return strconv.Itoa(s.index)
}

// MarshalJSON encodes none as null and a selection as its index.
func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.ok {
		return []byte("null"), nil
	}
	return json.Marshal(s.index)
}
