package feltcodec

import (
	"errors"
	"fmt"
)

// ErrorKind classifies encoding and decoding failures.
type ErrorKind int

const (
	KindBufferUnderrun ErrorKind = iota + 1
	KindDiscriminantOutOfRange
	KindRangeViolation
	KindLengthMismatch
	KindInvalidValue
	KindUnresolvedBinding
	KindAmbiguousBinding
)

func (k ErrorKind) String() string {
	switch k {
	case KindBufferUnderrun:
		return "buffer underrun"
	case KindDiscriminantOutOfRange:
		return "discriminant out of range"
	case KindRangeViolation:
		return "range violation"
	case KindLengthMismatch:
		return "length mismatch"
	case KindInvalidValue:
		return "invalid value"
	case KindUnresolvedBinding:
		return "unresolved binding"
	case KindAmbiguousBinding:
		return "ambiguous binding"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Error carries the failure classification and the felt offset at which it occurred.
// For decoding the offset is the cursor position, for encoding the buffer length.
type Error struct {
	Kind   ErrorKind
	Offset int
	Type   string
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "feltcodec: " + e.Kind.String()
	if e.Kind != KindUnresolvedBinding && e.Kind != KindAmbiguousBinding {
		msg += fmt.Sprintf(" at felt %d", e.Offset)
	}
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is an *Error of the same kind, so the Err* sentinels
// below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is, one per kind.
var (
	ErrBufferUnderrun         = &Error{Kind: KindBufferUnderrun}
	ErrDiscriminantOutOfRange = &Error{Kind: KindDiscriminantOutOfRange}
	ErrRangeViolation         = &Error{Kind: KindRangeViolation}
	ErrLengthMismatch         = &Error{Kind: KindLengthMismatch}
	ErrInvalidValue           = &Error{Kind: KindInvalidValue}
	ErrUnresolvedBinding      = &Error{Kind: KindUnresolvedBinding}
	ErrAmbiguousBinding       = &Error{Kind: KindAmbiguousBinding}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// OffsetOf returns the felt offset of the first *Error in err's chain.
func OffsetOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset, true
	}
	return 0, false
}

func newError(kind ErrorKind, offset int, typ string, format string, args ...any) *Error {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Offset: offset, Type: typ, Detail: detail}
}
