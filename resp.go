package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete is returned when the input ends before a complete value was decoded.
	//
	// ErrIncomplete is always returned as is and never wrapped.
	ErrIncomplete = errors.New("incomplete value")

	// ErrMalformed is wrapped by all errors returned for input that does not match the protocol.
	ErrMalformed = errors.New("malformed value")
)

var (
	// ErrBlobLengthLimitExceeded is returned when a blob declares a length larger than the configured limit.
	ErrBlobLengthLimitExceeded = malformed("blob length exceeds configured limit")

	// ErrInvalidAggregateLength is returned when decoding an aggregate type header with a length that can not be
	// represented.
	ErrInvalidAggregateLength = malformed("invalid aggregate type length")

	// ErrInvalidBigNumber is returned when decoding an invalid big number.
	ErrInvalidBigNumber = malformed("invalid big number")

	// ErrInvalidBoolean is returned when decoding an invalid boolean.
	ErrInvalidBoolean = malformed("invalid boolean")

	// ErrInvalidDouble is returned when decoding an invalid double.
	ErrInvalidDouble = malformed("invalid double")

	// ErrInvalidNumber is returned when decoding an invalid number or a number that does not fit into an uint64.
	ErrInvalidNumber = malformed("invalid number")

	// ErrInvalidType is returned when decoding a value with an unknown type prefix.
	ErrInvalidType = malformed("invalid type")

	// ErrInvalidUTF8 is returned when a simple string, simple error, blob error or verbatim string is not valid UTF-8.
	ErrInvalidUTF8 = malformed("invalid UTF-8")

	// ErrInvalidVerbatimStringPrefix is returned when decoding a verbatim string without a known format prefix.
	ErrInvalidVerbatimStringPrefix = malformed("invalid verbatim string prefix")

	// ErrMaxDepthExceeded is returned when aggregates are nested deeper than the configured limit.
	ErrMaxDepthExceeded = malformed("maximum nesting depth exceeded")

	// ErrUnexpectedEOL is returned when a line or blob is not terminated by \r\n.
	ErrUnexpectedEOL = malformed("unexpected EOL")

	// ErrUnexpectedType is returned when a field does not start with the expected type prefix.
	ErrUnexpectedType = malformed("encountered unexpected RESP type")
)

func malformed(msg string) error {
	return fmt.Errorf("%w: %s", ErrMalformed, msg)
}

const (
	// DefaultMaxBlobLength is the maximum blob length used by decoders that have no explicit limit configured.
	//
	// This matches the default value of the proto-max-bulk-len option in Redis.
	DefaultMaxBlobLength = 512 << 20 // 512MiB

	// DefaultMaxDepth is the maximum aggregate nesting depth used by decoders that have no explicit limit configured.
	DefaultMaxDepth = 512
)

// Type is an enum of the known RESP types with the values of the constants being the single-byte prefix characters.
//
// RESP2 uses a subset of these types. Bulk strings and integers use the same prefixes as blob strings and numbers.
type Type byte

const (
	// TypeInvalid is used to denote invalid RESP types.
	TypeInvalid Type = 0
	// TypeArray is the RESP protocol type for arrays.
	TypeArray Type = '*'
	// TypeAttribute is the RESP protocol type for attributes.
	TypeAttribute Type = '|'
	// TypeBigNumber is the RESP protocol type for big numbers.
	TypeBigNumber Type = '('
	// TypeBoolean is the RESP protocol type for booleans.
	TypeBoolean Type = '#'
	// TypeDouble is the RESP protocol type for double.
	TypeDouble Type = ','
	// TypeBlobError is the RESP protocol type for blob errors.
	TypeBlobError Type = '!'
	// TypeBlobString is the RESP protocol type for blob strings, called bulk strings in RESP2.
	TypeBlobString Type = '$'
	// TypeEnd is the RESP protocol type for stream ends.
	TypeEnd Type = '.'
	// TypeMap is the RESP protocol type for maps.
	TypeMap Type = '%'
	// TypeNull is the RESP protocol type for null.
	TypeNull Type = '_'
	// TypeNumber is the RESP protocol type for numbers, called integers in RESP2.
	TypeNumber Type = ':'
	// TypePush is the RESP protocol type for push data.
	TypePush Type = '>'
	// TypeSet is the RESP protocol type for sets.
	TypeSet Type = '~'
	// TypeSimpleError is the RESP protocol type for simple errors.
	TypeSimpleError Type = '-'
	// TypeSimpleString is the RESP protocol type for simple strings.
	TypeSimpleString Type = '+'
	// TypeVerbatimString is the RESP protocol type for verbatim strings.
	TypeVerbatimString Type = '='
)

var _ fmt.Stringer = TypeInvalid

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	return string(t)
}
