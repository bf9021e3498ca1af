// Package resp3 implements a zero-copy decoder for the RESP3 protocol.
//
// Aggregate types with a known length (arrays, maps, sets, attributes and push data) are decoded including all of
// their elements. Aggregate types of unknown length are returned as header values (StreamArray, StreamMap and
// StreamSet) followed by their elements and a StreamEnd, each decoded by a separate call.
package resp3

import (
	"bytes"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/internal/wire"
)

const (
	literalNull        = "_\r\n"
	literalTrue        = "#t\r\n"
	literalFalse       = "#f\r\n"
	literalStreamArray = "*?\r\n"
	literalStreamMap   = "%?\r\n"
	literalStreamSet   = "~?\r\n"
	literalStreamEnd   = ".\r\n"
)

const verbatimPrefixLength = 3

// Decoder decodes RESP3 values.
//
// The zero value is ready to use. A Decoder must not be modified while it is in use, but can otherwise be used
// concurrently.
type Decoder struct {
	// MaxDepth defines the maximum number of nested aggregates. If the input contains deeper nested aggregates, an
	// error wrapping resp.ErrMaxDepthExceeded will be returned.
	// If MaxDepth is 0, resp.DefaultMaxDepth is used instead.
	// A negative < 0 value disables the limit.
	MaxDepth int

	// MaxBlobLength defines the maximum length of blob strings, blob errors and verbatim strings. If the input
	// contains a larger value, an error wrapping resp.ErrBlobLengthLimitExceeded will be returned without waiting
	// for the body.
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

func (d *Decoder) blobLimit() int {
	return wire.Limit(d.MaxBlobLength, resp.DefaultMaxBlobLength)
}

func (d *Decoder) checkDepth(depth int) error {
	if limit := wire.Limit(d.MaxDepth, resp.DefaultMaxDepth); depth >= limit {
		return fmt.Errorf("%w: limit is %d", resp.ErrMaxDepthExceeded, limit)
	}
	return nil
}

func (d *Decoder) decode(b []byte, depth int) ([]byte, Value, error) {
	if len(b) == 0 {
		return b, nil, resp.ErrIncomplete
	}

	// Literals must be checked before the general rule for the same type, since for example *?\r\n would otherwise
	// be rejected as an array with an invalid length.
	switch t := resp.Type(b[0]); t {
	case resp.TypeBlobString:
		rest, s, err := wire.Blob(b, t, d.blobLimit())
		if err != nil {
			return b, nil, err
		}
		return rest, Blob(s), nil
	case resp.TypeSimpleString:
		rest, s, err := wire.Text(b, t)
		if err != nil {
			return b, nil, err
		}
		return rest, SimpleString(s), nil
	case resp.TypeSimpleError:
		rest, s, err := wire.Text(b, t)
		if err != nil {
			return b, nil, err
		}
		return rest, SimpleError(s), nil
	case resp.TypeNumber:
		rest, n, err := wire.Uint(b, t)
		if err != nil {
			return b, nil, err
		}
		return rest, Number(n), nil
	case resp.TypeNull:
		return decodeLiteral(b, literalNull, Null{})
	case resp.TypeDouble:
		rest, f, err := wire.Float(b, t)
		if err != nil {
			return b, nil, err
		}
		return rest, Double(f), nil
	case resp.TypeBoolean:
		return decodeBoolean(b)
	case resp.TypeBlobError:
		return d.decodeBlobError(b)
	case resp.TypeVerbatimString:
		return d.decodeVerbatimString(b)
	case resp.TypeBigNumber:
		return decodeBigNumber(b)
	case resp.TypeArray:
		rest, ok, err := wire.Literal(b, literalStreamArray)
		switch {
		case err != nil:
			return b, nil, err
		case ok:
			return rest, StreamArray{}, nil
		}
		rest, vs, err := d.decodeValues(b, t, depth)
		if err != nil {
			return b, nil, err
		}
		return rest, Array(vs), nil
	case resp.TypeMap:
		rest, ok, err := wire.Literal(b, literalStreamMap)
		switch {
		case err != nil:
			return b, nil, err
		case ok:
			return rest, StreamMap{}, nil
		}
		rest, es, err := d.decodeEntries(b, t, depth)
		if err != nil {
			return b, nil, err
		}
		return rest, Map(es), nil
	case resp.TypeSet:
		rest, ok, err := wire.Literal(b, literalStreamSet)
		switch {
		case err != nil:
			return b, nil, err
		case ok:
			return rest, StreamSet{}, nil
		}
		rest, vs, err := d.decodeValues(b, t, depth)
		if err != nil {
			return b, nil, err
		}
		return rest, Set(vs), nil
	case resp.TypeAttribute:
		rest, es, err := d.decodeEntries(b, t, depth)
		if err != nil {
			return b, nil, err
		}
		return rest, Attribute(es), nil
	case resp.TypePush:
		rest, vs, err := d.decodeValues(b, t, depth)
		if err != nil {
			return b, nil, err
		}
		return rest, Push(vs), nil
	case resp.TypeEnd:
		return decodeLiteral(b, literalStreamEnd, StreamEnd{})
	default:
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidType, b[0])
	}
}

func decodeLiteral(b []byte, lit string, v Value) ([]byte, Value, error) {
	rest, ok, err := wire.Literal(b, lit)
	switch {
	case err != nil:
		return b, nil, err
	case !ok:
		return b, nil, fmt.Errorf("%w: expected %q, got %q", resp.ErrUnexpectedEOL, lit, b[:min(len(b), len(lit))])
	}
	return rest, v, nil
}

func decodeBoolean(b []byte) ([]byte, Value, error) {
	for _, c := range []struct {
		lit string
		v   Boolean
	}{
		{lit: literalTrue, v: true},
		{lit: literalFalse, v: false},
	} {
		rest, ok, err := wire.Literal(b, c.lit)
		switch {
		case err != nil:
			return b, nil, err
		case ok:
			return rest, c.v, nil
		}
	}
	return b, nil, fmt.Errorf("%w: got %q", resp.ErrInvalidBoolean, b[:min(len(b), len(literalTrue))])
}

func (d *Decoder) decodeBlobError(b []byte) ([]byte, Value, error) {
	rest, body, err := wire.Blob(b, resp.TypeBlobError, d.blobLimit())
	if err != nil {
		return b, nil, err
	}
	if !utf8.Valid(body) {
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidUTF8, body)
	}
	code, message := body, body[len(body):]
	if i := bytes.IndexByte(body, ' '); i >= 0 {
		code, message = body[:i:i], body[i+1:]
	}
	return rest, BlobError{Code: code, Message: message}, nil
}

func (d *Decoder) decodeVerbatimString(b []byte) ([]byte, Value, error) {
	rest, body, err := wire.Blob(b, resp.TypeVerbatimString, d.blobLimit())
	if err != nil {
		return b, nil, err
	}
	if len(body) < verbatimPrefixLength+1 || body[verbatimPrefixLength] != ':' {
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidVerbatimStringPrefix, body[:min(len(body), verbatimPrefixLength+1)])
	}

	var format VerbatimFormat
	switch string(body[:verbatimPrefixLength]) {
	case "txt":
		format = FormatText
	case "mkd":
		format = FormatMarkdown
	default:
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidVerbatimStringPrefix, body[:verbatimPrefixLength])
	}

	text := body[verbatimPrefixLength+1:]
	if !utf8.Valid(text) {
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidUTF8, text)
	}
	return rest, VerbatimString{Format: format, Text: text}, nil
}

func decodeBigNumber(b []byte) ([]byte, Value, error) {
	rest, line, err := wire.Line(b, resp.TypeBigNumber)
	if err != nil {
		return b, nil, err
	}

	digits := line
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return b, nil, fmt.Errorf("%w: expected digits, got %q", resp.ErrInvalidBigNumber, line)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidBigNumber, line)
		}
	}

	n, ok := new(big.Int).SetString(string(line), 10)
	if !ok {
		return b, nil, fmt.Errorf("%w: %q", resp.ErrInvalidBigNumber, line)
	}
	return rest, BigNumber{Int: n}, nil
}

// decodeValues decodes the header of an aggregate of type t and as many values as the header specifies.
func (d *Decoder) decodeValues(b []byte, t resp.Type, depth int) ([]byte, []Value, error) {
	rest, n, err := wire.Count(b, t)
	if err != nil {
		return b, nil, err
	}
	if err := d.checkDepth(depth); err != nil {
		return b, nil, err
	}

	vs := make([]Value, 0, wire.Capacity(n, 3, len(rest)))
	for range n {
		var v Value
		if rest, v, err = d.decode(rest, depth+1); err != nil {
			return b, nil, err
		}
		vs = append(vs, v)
	}
	return rest, vs, nil
}

// decodeEntries decodes the header of an aggregate of type t and twice as many values as the header specifies.
func (d *Decoder) decodeEntries(b []byte, t resp.Type, depth int) ([]byte, []MapEntry, error) {
	rest, n, err := wire.Count(b, t)
	if err != nil {
		return b, nil, err
	}
	if err := d.checkDepth(depth); err != nil {
		return b, nil, err
	}

	es := make([]MapEntry, 0, wire.Capacity(n, 6, len(rest)))
	for range n {
		var e MapEntry
		if rest, e.Key, err = d.decode(rest, depth+1); err != nil {
			return b, nil, err
		}
		if rest, e.Value, err = d.decode(rest, depth+1); err != nil {
			return b, nil, err
		}
		es = append(es, e)
	}
	return rest, es, nil
}
