package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type badIndexError struct {
	kind string
	arg  string
}

func (e badIndexError) Error() string {
	return fmt.Sprintf("invalid %s index: %q (want a non-negative integer)", e.kind, e.arg)
}
