package cat

import (
	"errors"
	"fmt"
)

// ErrMalformed is the single coarse failure every codec error wraps.
// Callers that only care about success or failure test with errors.Is.
var ErrMalformed = errors.New("malformed CAT data")

// ErrorKind narrows a ProtocolError down for diagnostics.
type ErrorKind int

const (
	// ShortBuffer indicates fewer bytes than the smallest possible frame or field.
	ShortBuffer ErrorKind = iota
	// MnemonicMismatch indicates the reply does not carry the command mnemonic.
	MnemonicMismatch
	// LengthMismatch indicates a parameter or field length other than expected.
	LengthMismatch
	// MissingTerminator indicates the reply has no ';' terminator.
	MissingTerminator
	// InvalidDigit indicates a non-digit byte inside a numeric field.
	InvalidDigit
	// OutOfRange indicates a value outside the protocol-defined range.
	OutOfRange
	// UnknownCode indicates a character outside an enumeration's table.
	UnknownCode
)

func (k ErrorKind) String() string {
	switch k {
	case ShortBuffer:
		return "short buffer"
	case MnemonicMismatch:
		return "mnemonic mismatch"
	case LengthMismatch:
		return "length mismatch"
	case MissingTerminator:
		return "missing terminator"
	case InvalidDigit:
		return "invalid digit"
	case OutOfRange:
		return "out of range"
	case UnknownCode:
		return "unknown code"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// ProtocolError describes why a frame or field was rejected.
type ProtocolError struct {
	Kind   ErrorKind
	Field  string // field or command being processed
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Kind, e.Detail)
}

// Unwrap makes every ProtocolError match ErrMalformed.
func (e *ProtocolError) Unwrap() error {
	return ErrMalformed
}

// KindOf returns the ErrorKind of err if it is (or wraps) a ProtocolError.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, field, format string, args ...interface{}) error {
	return &ProtocolError{Kind: kind, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// IDMismatchError reports a well-formed identification reply from an
// unexpected radio model. It is a validation failure, not a parse failure,
// so it does not wrap ErrMalformed.
type IDMismatchError struct {
	Got  uint16
	Want uint16
}

func (e *IDMismatchError) Error() string {
	return fmt.Sprintf("unexpected radio id %04d (%s), want %04d (%s)",
		e.Got, ModelName(e.Got), e.Want, ModelName(e.Want))
}
