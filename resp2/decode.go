// Package resp2 implements a zero-copy decoder for the RESP2 protocol.
package resp2

import (
	"fmt"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/internal/wire"
)

const nullBulkString = "$-1\r\n"

// Decoder decodes RESP2 values.
//
// The zero value is ready to use. A Decoder must not be modified while it is in use, but can otherwise be used
// concurrently.
type Decoder struct {
	// MaxDepth defines the maximum number of nested arrays. If the input contains deeper nested arrays, an error
	// wrapping resp.ErrMaxDepthExceeded will be returned.
	// If MaxDepth is 0, resp.DefaultMaxDepth is used instead.
	// A negative < 0 value disables the limit.
	MaxDepth int

	// MaxBlobLength defines the maximum length of bulk strings. If the input contains a larger bulk string, an error
	// wrapping resp.ErrBlobLengthLimitExceeded will be returned without waiting for the body.
	// If MaxBlobLength is 0, resp.DefaultMaxBlobLength is used instead.
	// A negative < 0 value disables the limit.
	MaxBlobLength int
}

var defaultDecoder Decoder

// Decode decodes the value at the start of b using a zero Decoder.
//
// See Decoder.Decode for details.
func Decode(b []byte) (rest []byte, v Value, err error) {
	return defaultDecoder.Decode(b)
}

// Decode decodes the value at the start of b and returns it together with the input following the value.
//
// If b does not contain a complete value, resp.ErrIncomplete is returned and the call should be retried once more
// data is available. All other errors wrap resp.ErrMalformed.
//
// The returned value references b. On error v is nil and rest is b.
func (d *Decoder) Decode(b []byte) (rest []byte, v Value, err error) {
	rest, v, err = d.decode(b, 0)
	if err != nil {
		return b, nil, err
	}
	return rest, v, nil
}

func (d *Decoder) decode(b []byte, depth int) ([]byte, Value, error) {
	if len(b) == 0 {
		return b, nil, resp.ErrIncomplete
	}

	switch resp.Type(b[0]) {
	case resp.TypeSimpleString:
		rest, s, err := wire.Text(b, resp.TypeSimpleString)
		if err != nil {
			return b, nil, err
		}
		return rest, SimpleString(s), nil
	case resp.TypeSimpleError:
		rest, s, err := wire.Text(b, resp.TypeSimpleError)
		if err != nil {
			return b, nil, err
		}
		return rest, Error(s), nil
	case resp.TypeNumber:
		rest, n, err := wire.Uint(b, resp.TypeNumber)
		if err != nil {
			return b, nil, err
		}
		return rest, Integer(n), nil
	case resp.TypeBlobString:
		// $-1\r\n would otherwise be rejected as a bulk string with an invalid length.
		rest, ok, err := wire.Literal(b, nullBulkString)
		switch {
		case err != nil:
			return b, nil, err
		case ok:
			return rest, Null{}, nil
		}
		rest, s, err := wire.Blob(b, resp.TypeBlobString, wire.Limit(d.MaxBlobLength, resp.DefaultMaxBlobLength))
		if err != nil {
			return b, nil, err
		}
		return rest, BulkString(s), nil
	case resp.TypeArray:
		return d.decodeArray(b, depth)
	default:
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidType, b[0])
	}
}

func (d *Decoder) decodeArray(b []byte, depth int) ([]byte, Value, error) {
	rest, n, err := wire.Count(b, resp.TypeArray)
	if err != nil {
		return b, nil, err
	}
	if limit := wire.Limit(d.MaxDepth, resp.DefaultMaxDepth); depth >= limit {
		return b, nil, fmt.Errorf("%w: limit is %d", resp.ErrMaxDepthExceeded, limit)
	}

	// Each element takes at least 3 bytes (e.g. ":1\r\n" is 4, "+\r\n" is 3).
	arr := make(Array, 0, wire.Capacity(n, 3, len(rest)))
	for range n {
		var v Value
		if rest, v, err = d.decode(rest, depth+1); err != nil {
			return b, nil, err
		}
		arr = append(arr, v)
	}
	return rest, arr, nil
}
