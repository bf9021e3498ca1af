// Package stream implements reading of RESP values from an io.Reader on top of the zero-copy decoders in resp2 and
// resp3.
package stream

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/internal/wire"
)

const (
	// DefaultBufferSize is the initial size of the buffer allocated by a Reader.
	DefaultBufferSize = 4096

	// DefaultMaxBufferSize defines the default buffer limit used when Reader.MaxBufferSize is 0.
	DefaultMaxBufferSize = 1 << 30 // 1GiB
)

// maxConsecutiveEmptyReads is the number of reads returning no data and no error after which a Reader gives up.
const maxConsecutiveEmptyReads = 100

// ErrBufferLimitExceeded is returned by Reader.Next when a single value does not fit into the buffer.
var ErrBufferLimitExceeded = errors.New("buffer limit exceeded")

// DecodeFunc decodes the value at the start of b. resp2.Decode and resp3.Decode are valid DecodeFuncs.
type DecodeFunc[V any] func(b []byte) (rest []byte, v V, err error)

// Reader reads values from an io.Reader.
//
// Values returned by Next reference the internal buffer of the Reader and are only valid until the next call to Next
// or Reset.
//
// A Reader is not safe for concurrent use.
type Reader[V any] struct {
	// MaxBufferSize defines the maximum size of the internal buffer and thereby the maximum encoded size of a single
	// value. If a value does not fit into the buffer, ErrBufferLimitExceeded is returned.
	// If MaxBufferSize is 0, DefaultMaxBufferSize is used instead.
	// A negative < 0 value disables the limit.
	MaxBufferSize int

	decode DecodeFunc[V]
	r      io.Reader

	buf        []byte
	start, end int

	// err is set once the input can not be decoded any further and is returned by all following calls to Next.
	err error

	// readErr holds an error returned together with data by the underlying io.Reader.
	readErr error
}

// NewReader returns a *Reader that reads from r and decodes values using decode.
func NewReader[V any](r io.Reader, decode DecodeFunc[V]) *Reader[V] {
	return &Reader[V]{decode: decode, r: r}
}

// Buffered returns the number of bytes that have been read from the underlying io.Reader but not yet decoded.
func (rr *Reader[V]) Buffered() int {
	return rr.end - rr.start
}

// Reset sets the underlying io.Reader to r and resets all internal state. The allocated buffer is reused.
func (rr *Reader[V]) Reset(r io.Reader) {
	rr.r = r
	rr.start, rr.end = 0, 0
	rr.err, rr.readErr = nil, nil
}

// Next reads and returns the next value.
//
// At the end of the input Next returns io.EOF. If the input ends inside a value, io.ErrUnexpectedEOF is returned
// instead.
//
// Malformed input and values exceeding the buffer limit leave the Reader unusable. In this case all further calls
// return the same error until Reset is called. Other errors returned by the underlying io.Reader do not discard any
// data and the call can be retried.
func (rr *Reader[V]) Next() (V, error) {
	var zero V

	if rr.err != nil {
		return zero, rr.err
	}

	for {
		if rr.start < rr.end {
			rest, v, err := rr.decode(rr.buf[rr.start:rr.end])
			switch {
			case err == nil:
				rr.start = rr.end - len(rest)
				return v, nil
			case !errors.Is(err, resp.ErrIncomplete):
				rr.err = err
				return zero, err
			}
		}

		switch err := rr.fill(); {
		case err == io.EOF && rr.start < rr.end:
			return zero, io.ErrUnexpectedEOF
		case errors.Is(err, ErrBufferLimitExceeded):
			rr.err = err
			return zero, err
		case err != nil:
			return zero, err
		}
	}
}

// fill reads at least one more byte into the buffer, compacting or growing the buffer as needed.
func (rr *Reader[V]) fill() error {
	if err := rr.readErr; err != nil {
		rr.readErr = nil
		return err
	}

	if rr.start > 0 {
		rr.end = copy(rr.buf, rr.buf[rr.start:rr.end])
		rr.start = 0
	}

	if rr.end == len(rr.buf) {
		if err := rr.grow(); err != nil {
			return err
		}
	}

	for range maxConsecutiveEmptyReads {
		n, err := rr.r.Read(rr.buf[rr.end:])
		if n < 0 || n > len(rr.buf)-rr.end {
			return fmt.Errorf("stream: invalid read count %d", n)
		}
		rr.end += n

		if n > 0 {
			rr.readErr = err
			return nil
		}
		if err != nil {
			return err
		}
	}

	return io.ErrNoProgress
}

func (rr *Reader[V]) grow() error {
	limit := wire.Limit(rr.MaxBufferSize, DefaultMaxBufferSize)
	if len(rr.buf) >= limit {
		return fmt.Errorf("%w: limit is %d bytes", ErrBufferLimitExceeded, limit)
	}

	size := DefaultBufferSize
	if n := len(rr.buf); n > 0 {
		size = math.MaxInt
		if n <= math.MaxInt/2 {
			size = n * 2
		}
	}

	buf := make([]byte, min(size, limit))
	copy(buf, rr.buf[:rr.end])
	rr.buf = buf
	return nil
}
