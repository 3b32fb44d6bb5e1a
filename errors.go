package kvrange

import (
	"errors"
	"fmt"
)

// Usage errors raised synchronously on bad input. None of them are
// transient; callers should treat them as programming errors.
var (
	// ErrUnknownEncoding means the configured key or value encoding scheme
	// is not recognized.
	ErrUnknownEncoding = errors.New("unknown encoding scheme")

	// ErrInvalidKey means a user-supplied record key is nil, empty or
	// otherwise absent where a concrete key is required.
	ErrInvalidKey = errors.New("key is missing or empty")

	// ErrUnimplementedEncoding means an adjacency or range operation was
	// invoked while the configured key encoding is not the bytewise scheme;
	// those operations are defined only for bytewise keys.
	ErrUnimplementedEncoding = errors.New("operation requires the bytewise key encoding")

	// ErrInvalidSelector is the common base of all SelectorError values.
	ErrInvalidSelector = errors.New("invalid selector")
)

// SelectorError reports mutually exclusive selector fields. It unwraps to
// ErrInvalidSelector so callers can match the kind with errors.Is.
type SelectorError struct {
	Field    string
	Conflict string
}

func selErrf(field, conflict string) error {
	return &SelectorError{Field: field, Conflict: conflict}
}

func (e *SelectorError) Unwrap() error {
	return ErrInvalidSelector
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector: %s cannot be combined with %s", e.Field, e.Conflict)
}

// DataError reports malformed encoded data, quoting a bounded excerpt of
// the offending bytes.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}
