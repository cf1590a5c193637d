package cli

import "fmt"

type notFoundError struct {
	kind string
	name string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.name)
}

func errNotFound(kind, name string) error {
	return notFoundError{kind: kind, name: name}
}
