package search

import "errors"

var (
	// ErrBadOptions indicates an invalid Options value.
	ErrBadOptions = errors.New("search: invalid options")

	// ErrNoImprovement indicates that a hill-climb step exhausted its
	// attempt budget without finding a strictly better tree.
	ErrNoImprovement = errors.New("search: no improving mutation found")
)
