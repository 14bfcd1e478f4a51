package vcs

import (
	"errors"
	"fmt"
)

// Kind classifies why a blob could not be decoded.
type Kind int

const (
	// LengthMismatch means the OSC length prefix disagrees with the bytes
	// that follow it. Points at a framing bug upstream.
	LengthMismatch Kind = iota + 1
	// Truncated means the input is too short to hold a gzip header.
	Truncated
	// NotGzip means the payload doesn't start with the gzip magic bytes,
	// usually because "Optimize Kyma Control Communication" is off.
	NotGzip
	// Decompression means the gzip stream is corrupt.
	Decompression
	// InvalidUTF8 means the inflated bytes are not UTF-8 text.
	InvalidUTF8
)

// Sentinel errors, one per Kind. A *DecodeError matches its Kind's sentinel
// with errors.Is.
var (
	ErrLengthMismatch = errors.New("vcs: blob length mismatch")
	ErrTruncated      = errors.New("vcs: blob truncated")
	ErrNotGzip        = errors.New("vcs: blob is not gzip")
	ErrDecompression  = errors.New("vcs: blob decompression failed")
	ErrInvalidUTF8    = errors.New("vcs: decoded blob is not valid UTF-8")

	// ErrDecodedTooLarge is wrapped by a Decompression error when the
	// inflated document exceeds the decoder's size limit.
	ErrDecodedTooLarge = errors.New("vcs: decoded blob too large")

	// ErrTrailingData is wrapped by a Decompression error when a headerless
	// blob has bytes after the end of its DEFLATE stream.
	ErrTrailingData = errors.New("vcs: trailing data after deflate stream")
)

// Errors returned by the message and packet helpers. These are never
// wrapped in a *DecodeError.
var (
	ErrUnexpectedAddress   = errors.New("vcs: unexpected address")
	ErrUnexpectedArguments = errors.New("vcs: expected a single blob argument")
	ErrUnexpectedPacket    = errors.New("vcs: expected an OSC message")
	ErrEventPairs          = errors.New("vcs: event data is not a whole number of pairs")
)

func (k Kind) String() string {
	switch k {
	case LengthMismatch:
		return "LengthMismatch"
	case Truncated:
		return "Truncated"
	case NotGzip:
		return "NotGzip"
	case Decompression:
		return "Decompression"
	case InvalidUTF8:
		return "InvalidUTF8"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case LengthMismatch:
		return ErrLengthMismatch
	case Truncated:
		return ErrTruncated
	case NotGzip:
		return ErrNotGzip
	case Decompression:
		return ErrDecompression
	case InvalidUTF8:
		return ErrInvalidUTF8
	default:
		return nil
	}
}

// DecodeError describes why a blob could not be decoded.
type DecodeError struct {
	Kind Kind

	// Declared and Actual are set for LengthMismatch and Truncated: the
	// length the input claims (or needs) and the length it has.
	Declared int
	Actual   int

	// Err is the underlying inflate error for Decompression.
	Err error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case LengthMismatch:
		return fmt.Sprintf("%v: declared %d bytes, got %d", ErrLengthMismatch, e.Declared, e.Actual)
	case Truncated:
		return fmt.Sprintf("%v: need at least %d bytes, got %d", ErrTruncated, e.Declared, e.Actual)
	case Decompression:
		if e.Err != nil {
			return fmt.Sprintf("%v: %v", ErrDecompression, e.Err)
		}
	}
	if s := e.Kind.sentinel(); s != nil {
		return s.Error()
	}
	return "vcs: " + e.Kind.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *DecodeError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// IsKind reports whether err is a *DecodeError of kind k.
func IsKind(err error, k Kind) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Kind == k
}
