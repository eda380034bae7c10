package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFilter is returned for an identifier with no registry entry.
	ErrUnknownFilter = errors.New("filter: unknown filter id")

	// ErrTooManyFilters is returned for a configuration longer than MaxFilters.
	ErrTooManyFilters = errors.New("filter: too many filters")

	// ErrInvalidTypeSize is returned for a type size outside 1..255 or one a
	// filter cannot work with.
	ErrInvalidTypeSize = errors.New("filter: invalid type size")

	// ErrInvalidMeta is returned when a slot's metadata is out of range.
	ErrInvalidMeta = errors.New("filter: invalid filter metadata")

	// ErrFilterConflict is returned when an identifier is already bound to a
	// different function pair.
	ErrFilterConflict = errors.New("filter: id already registered with different functions")

	// ErrReservedID is returned when registering below GlobalRegisteredStart.
	ErrReservedID = errors.New("filter: id reserved for built-in filters")

	// ErrRegistrySealed is returned when registering after a pipeline was built.
	ErrRegistrySealed = errors.New("filter: registry sealed")

	// ErrBlockShape is returned by the N-dimensional filters when the block
	// shape is missing or does not describe the block.
	ErrBlockShape = errors.New("filter: invalid block shape")
)

// Direction tells which half of a filter pair failed.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

func (d Direction) String() string {
	if d == DirectionBackward {
		return "backward"
	}
	return "forward"
}

// StageError reports the pipeline stage at which a transform failed.
type StageError struct {
	Direction Direction
	Stage     int // slot index in the configuration
	ID        ID
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("filter: %s stage %d (%s): %v", e.Direction, e.Stage, e.ID, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
