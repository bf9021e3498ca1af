// Package wire implements the low level fields shared by RESP2 and RESP3 values.
//
// All functions take the input as their first argument and return the input remaining after the field. On error the
// returned input is always the unmodified argument. Returned payloads are sub-slices of the input with their capacity
// clipped to their length.
package wire

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/nussjustin/resp"
)

// Limit resolves a configured limit. 0 selects def and negative values disable the limit.
func Limit(n, def int) int {
	switch {
	case n == 0:
		return def
	case n < 0:
		return math.MaxInt
	default:
		return n
	}
}

func expect(b []byte, t resp.Type) error {
	if len(b) == 0 {
		return resp.ErrIncomplete
	}
	if b[0] != byte(t) {
		return fmt.Errorf("%w: expected %q, got %q", resp.ErrUnexpectedType, t, b[0])
	}
	return nil
}

// lineLength returns the length of the line at the start of b, excluding the \r\n.
func lineLength(b []byte) (int, error) {
	i := bytes.IndexAny(b, "\r\n")
	switch {
	case i < 0:
		return 0, resp.ErrIncomplete
	case b[i] == '\n':
		return 0, fmt.Errorf("%w: expected \\r\\n, got \\n", resp.ErrUnexpectedEOL)
	case i+1 == len(b):
		return 0, resp.ErrIncomplete
	case b[i+1] != '\n':
		return 0, fmt.Errorf("%w: expected \\r\\n, got %q", resp.ErrUnexpectedEOL, b[i:i+2])
	}
	return i, nil
}

// Line reads a line starting with the prefix t and ending in \r\n, returning the bytes in between.
//
// The line may be empty but must not contain \r or \n.
func Line(b []byte, t resp.Type) (rest, line []byte, err error) {
	if err := expect(b, t); err != nil {
		return b, nil, err
	}
	n, err := lineLength(b[1:])
	if err != nil {
		return b, nil, err
	}
	return b[1+n+2:], b[1 : 1+n : 1+n], nil
}

// Text reads a line like Line, but additionally requires the line to be valid UTF-8.
func Text(b []byte, t resp.Type) (rest, text []byte, err error) {
	rest, text, err = Line(b, t)
	if err != nil {
		return b, nil, err
	}
	if !utf8.Valid(text) {
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidUTF8, text)
	}
	return rest, text, nil
}

// Uint reads an unsigned decimal number starting with the prefix t and ending in \r\n.
//
// Invalid characters are reported as soon as they are encountered, even if the line is not yet complete.
func Uint(b []byte, t resp.Type) (rest []byte, n uint64, err error) {
	if err := expect(b, t); err != nil {
		return b, 0, err
	}

	i := 1
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			break
		}
		d := uint64(c - '0')
		if n > (math.MaxUint64-d)/10 {
			return b, 0, fmt.Errorf("%w: %s... overflows uint64", resp.ErrInvalidNumber, b[1:i+1])
		}
		n = n*10 + d
	}

	switch {
	case i == len(b):
		return b, 0, resp.ErrIncomplete
	case b[i] == '\n':
		return b, 0, fmt.Errorf("%w: expected \\r\\n, got \\n", resp.ErrUnexpectedEOL)
	case b[i] != '\r':
		return b, 0, fmt.Errorf("%w: invalid character %q", resp.ErrInvalidNumber, b[i])
	case i == 1:
		return b, 0, fmt.Errorf("%w: expected number, got empty value", resp.ErrInvalidNumber)
	case i+1 == len(b):
		return b, 0, resp.ErrIncomplete
	case b[i+1] != '\n':
		return b, 0, fmt.Errorf("%w: expected \\r\\n, got %q", resp.ErrUnexpectedEOL, b[i:i+2])
	}
	return b[i+2:], n, nil
}

// Float reads a floating point number starting with the prefix t and ending in \r\n.
//
// Everything accepted by strconv.ParseFloat is accepted, including inf, -inf and nan. Values too large for a float64
// are returned as +Inf or -Inf.
func Float(b []byte, t resp.Type) (rest []byte, f float64, err error) {
	rest, line, err := Line(b, t)
	if err != nil {
		return b, 0, err
	}
	if len(line) == 0 {
		return b, 0, fmt.Errorf("%w: missing value", resp.ErrInvalidDouble)
	}
	f, err = strconv.ParseFloat(string(line), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return b, 0, fmt.Errorf("%w: %q", resp.ErrInvalidDouble, line)
	}
	return rest, f, nil
}

// Exact reads n bytes followed by \r\n.
//
// n must be less than or equal to math.MaxInt-2.
func Exact(b []byte, n int) (rest, body []byte, err error) {
	if len(b) > n && b[n] != '\r' {
		return b, nil, fmt.Errorf("%w: expected \\r\\n after %d bytes, got %q", resp.ErrUnexpectedEOL, n, b[n])
	}
	if len(b) < n+2 {
		return b, nil, resp.ErrIncomplete
	}
	if b[n+1] != '\n' {
		return b, nil, fmt.Errorf("%w: expected \\r\\n after %d bytes, got %q", resp.ErrUnexpectedEOL, n, b[n:n+2])
	}
	return b[n+2:], b[:n:n], nil
}

// Blob reads a length prefixed blob starting with the prefix t.
//
// Lengths larger than limit are rejected before the body is read.
func Blob(b []byte, t resp.Type, limit int) (rest, body []byte, err error) {
	rest, n, err := Uint(b, t)
	if err != nil {
		return b, nil, err
	}
	if n > uint64(limit) || n > math.MaxInt-2 {
		return b, nil, fmt.Errorf("%w: got length %d", resp.ErrBlobLengthLimitExceeded, n)
	}
	rest, body, err = Exact(rest, int(n))
	if err != nil {
		return b, nil, err
	}
	return rest, body, nil
}

// Count reads the header of an aggregate type starting with the prefix t, returning the number of elements.
//
// Counts are limited to math.MaxInt/2 so that map sizes can always be doubled.
func Count(b []byte, t resp.Type) (rest []byte, n int, err error) {
	rest, u, err := Uint(b, t)
	if err != nil {
		return b, 0, err
	}
	if u > math.MaxInt/2 {
		return b, 0, fmt.Errorf("%w: got length %d", resp.ErrInvalidAggregateLength, u)
	}
	return rest, int(u), nil
}

// Capacity returns the capacity to preallocate for n aggregate elements of at least size bytes each, given that only
// remaining bytes of input are available.
func Capacity(n, size, remaining int) int {
	return min(n, remaining/size)
}

// Literal checks if b starts with lit.
//
// If b is shorter than lit but a prefix of it, ErrIncomplete is returned. If b does not start with lit, ok is false
// and no error is returned.
func Literal(b []byte, lit string) (rest []byte, ok bool, err error) {
	if len(b) < len(lit) {
		if string(b) == lit[:len(b)] {
			return b, false, resp.ErrIncomplete
		}
		return b, false, nil
	}
	if string(b[:len(lit)]) != lit {
		return b, false, nil
	}
	return b[len(lit):], true, nil
}
