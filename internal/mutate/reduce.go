// Package mutate holds the pure list transitions shared by the user and prompt collections.
package mutate

type kind int

const (
	kindAdd kind = iota + 1
	kindRemove
	kindModify
	kindLoad
)

func (k kind) String() string {
	switch k {
	case kindAdd:
		return "add"
	case kindRemove:
		return "remove"
	case kindModify:
		return "modify"
	case kindLoad:
		return "load"
	default:
		return "unknown"
	}
}

// Action is one of the four list transitions. Its zero value is not usable; build actions
// with Add, Remove, Modify or Load.
type Action[T any] struct {
	kind    kind
	index   int
	payload T
	loaded  []T
}

func Add[T any](v T) Action[T] {
	return Action[T]{kind: kindAdd, payload: v}
}

func Remove[T any](i int) Action[T] {
	return Action[T]{kind: kindRemove, index: i}
}

func Modify[T any](i int, v T) Action[T] {
	return Action[T]{kind: kindModify, index: i, payload: v}
}

// Load replaces the whole sequence. It is a rehydration from storage, not a new write.
func Load[T any](xs []T) Action[T] {
	return Action[T]{kind: kindLoad, loaded: xs}
}

// Name is the action tag ("add", "remove", "modify", "load").
func (a Action[T]) Name() string { return a.kind.String() }

// Index is the addressed position for remove/modify, -1 otherwise.
func (a Action[T]) Index() int {
	switch a.kind {
	case kindRemove, kindModify:
		return a.index
	default:
		return -1
	}
}

// Persists reports whether the result of this action must be written back to storage.
func (a Action[T]) Persists() bool { return a.kind != kindLoad }

// Reduce applies a to state and returns the next sequence. It never writes through state's
// backing array; the result is always a fresh slice.
func Reduce[T any](state []T, a Action[T]) ([]T, error) {
	switch a.kind {
	case kindAdd:
		out := make([]T, 0, len(state)+1)
		out = append(out, state...)
		return append(out, a.payload), nil

	case kindRemove:
		if a.index < 0 || a.index >= len(state) {
			return state, IndexError{Op: "remove", Index: a.index, Len: len(state)}
		}
		out := make([]T, 0, len(state)-1)
		out = append(out, state[:a.index]...)
		return append(out, state[a.index+1:]...), nil

	case kindModify:
		if a.index < 0 || a.index >= len(state) {
			return state, IndexError{Op: "modify", Index: a.index, Len: len(state)}
		}
		out := make([]T, len(state))
		copy(out, state)
		out[a.index] = a.payload
		return out, nil

	case kindLoad:
		out := make([]T, len(a.loaded))
		copy(out, a.loaded)
		return out, nil
	}
	// Only reachable through a zero Action, which the constructors never produce.
	panic("mutate: zero Action")
}
