package touchviz

import (
	"errors"
	"fmt"
)

// Errors returned by touchviz. Contact errors are wrapped in *ContactError;
// use errors.Is to test for them.
var (
	// ErrUnknownContact is returned when an event references an id that is
	// not currently tracked.
	ErrUnknownContact = errors.New("touchviz: unknown contact")

	// ErrDuplicateContact is returned when a down event arrives for an id
	// that is already tracked.
	ErrDuplicateContact = errors.New("touchviz: duplicate contact")

	// ErrTextureUpload is returned by New when the host cannot create the
	// marker texture. The overlay cannot work without it.
	ErrTextureUpload = errors.New("touchviz: marker texture upload failed")

	// ErrNilHost is returned by New when host is nil.
	ErrNilHost = errors.New("touchviz: nil host")

	// ErrInvalidRadius is returned for a non-positive marker radius.
	ErrInvalidRadius = errors.New("touchviz: invalid marker radius")

	// ErrInvalidOpacity is returned for an opacity outside [0, 1].
	ErrInvalidOpacity = errors.New("touchviz: invalid opacity")

	// ErrInvalidHistoryDepth is returned for a history depth outside
	// [0, MaxHistoryDepth].
	ErrInvalidHistoryDepth = errors.New("touchviz: invalid history depth")

	// ErrClosed is returned by event handlers after Close.
	ErrClosed = errors.New("touchviz: visualizer closed")
)

// ContactError records a failed operation on one contact.
type ContactError struct {
	Op  string
	ID  int32
	Err error
}

func (e *ContactError) Error() string {
	return fmt.Sprintf("%s contact %d: %v", e.Op, e.ID, e.Err)
}

func (e *ContactError) Unwrap() error { return e.Err }

func contactError(op string, id int32, err error) error {
	return &ContactError{Op: op, ID: id, Err: err}
}
