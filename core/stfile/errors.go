// core/stfile/errors.go
package stfile

import (
	"errors"
	"fmt"
)

var (
	// ErrFileType: the path does not name a .st file.
	ErrFileType = errors.New("not a structure-type (.st) file")
	// ErrFileAccess: the file could not be opened or read.
	ErrFileAccess = errors.New("cannot access structure file")
	// ErrMalformedRecord: a header directive or body record does not parse.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrIncompleteHeader: one of the four mandatory descriptor lines is missing.
	ErrIncompleteHeader = errors.New("incomplete structure header")
)

// RecordError locates a malformed line. It matches ErrMalformedRecord with
// errors.Is and unwraps to the underlying cause.
type RecordError struct {
	Line  int // 1-based line number in the source
	Label string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d (%s): %v: %v", e.Line, e.Label, ErrMalformedRecord, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func (e *RecordError) Is(target error) bool { return target == ErrMalformedRecord }
