package search

import "errors"

var (
	// ErrInvalidTopK is returned when a caller asks for zero or fewer results.
	ErrInvalidTopK = errors.New("topK must be a positive integer")

	// ErrUnknownLeaf is returned by Leaf for an id that is not an indexed leaf.
	ErrUnknownLeaf = errors.New("unknown menu leaf")
)
