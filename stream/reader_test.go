package stream_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/resp2"
	"github.com/nussjustin/resp/resp3"
	"github.com/nussjustin/resp/stream"
)

const input = "+OK\r\n" +
	"*3\r\n:1\r\n$3\r\nfoo\r\n_\r\n" +
	"%1\r\n+key\r\n#t\r\n" +
	"*?\r\n:1\r\n.\r\n" +
	"$5\r\nhello\r\n"

var expected = []resp3.Value{
	resp3.SimpleString("OK"),
	resp3.Array{resp3.Number(1), resp3.Blob("foo"), resp3.Null{}},
	resp3.Map{{Key: resp3.SimpleString("key"), Value: resp3.Boolean(true)}},
	resp3.StreamArray{},
	resp3.Number(1),
	resp3.StreamEnd{},
	resp3.Blob("hello"),
}

// readAll reads values until an error is returned, copying each value to check for retained references.
func readAll(tb testing.TB, rr *stream.Reader[resp3.Value]) ([]resp3.Value, error) {
	tb.Helper()

	var vs []resp3.Value
	for {
		v, err := rr.Next()
		if err != nil {
			return vs, err
		}
		vs = append(vs, clone(v))
	}
}

func clone(v resp3.Value) resp3.Value {
	switch v := v.(type) {
	case resp3.Blob:
		return resp3.Blob(bytes.Clone(v))
	case resp3.SimpleString:
		return resp3.SimpleString(bytes.Clone(v))
	case resp3.Array:
		vs := make(resp3.Array, len(v))
		for i := range v {
			vs[i] = clone(v[i])
		}
		return vs
	case resp3.Map:
		es := make(resp3.Map, len(v))
		for i := range v {
			es[i] = resp3.MapEntry{Key: clone(v[i].Key), Value: clone(v[i].Value)}
		}
		return es
	default:
		return v
	}
}

func TestReaderNext(t *testing.T) {
	for _, c := range []struct {
		name string
		r    func(io.Reader) io.Reader
	}{
		{name: "Plain", r: func(r io.Reader) io.Reader { return r }},
		{name: "OneByte", r: iotest.OneByteReader},
		{name: "HalfReader", r: iotest.HalfReader},
		{name: "DataErr", r: iotest.DataErrReader},
	} {
		t.Run(c.name, func(t *testing.T) {
			rr := stream.NewReader[resp3.Value](c.r(strings.NewReader(input)), resp3.Decode)

			vs, err := readAll(t, rr)
			require.ErrorIs(t, err, io.EOF)
			assert.Equal(t, expected, vs)
			assert.Zero(t, rr.Buffered())
		})
	}
}

func TestReaderNextRESP2(t *testing.T) {
	rr := stream.NewReader[resp2.Value](iotest.OneByteReader(strings.NewReader("$-1\r\n*1\r\n:5\r\n")), resp2.Decode)

	v, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp2.Null{}, v)

	v, err = rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp2.Array{resp2.Integer(5)}, v)

	_, err = rr.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderDecoder(t *testing.T) {
	d := resp3.Decoder{MaxBlobLength: 2}
	rr := stream.NewReader[resp3.Value](strings.NewReader("$2\r\nab\r\n$3\r\nabc\r\n"), d.Decode)

	v, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.Blob("ab"), v)

	_, err = rr.Next()
	require.ErrorIs(t, err, resp.ErrBlobLengthLimitExceeded)
}

func TestReaderUnexpectedEOF(t *testing.T) {
	for _, in := range []string{"$5\r\nhel", "*2\r\n:1\r\n", "+OK\r"} {
		rr := stream.NewReader[resp3.Value](iotest.OneByteReader(strings.NewReader(in)), resp3.Decode)

		_, err := rr.Next()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF, "input %q", in)
		assert.Equal(t, len(in), rr.Buffered(), "input %q", in)
	}
}

func TestReaderMalformed(t *testing.T) {
	rr := stream.NewReader[resp3.Value](strings.NewReader("+OK\r\nA\r\n+next\r\n"), resp3.Decode)

	v, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.SimpleString("OK"), v)

	for range 2 {
		v, err = rr.Next()
		require.ErrorIs(t, err, resp.ErrInvalidType)
		require.ErrorIs(t, err, resp.ErrMalformed)
		assert.Nil(t, v)
	}

	rr.Reset(strings.NewReader("+next\r\n"))

	v, err = rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.SimpleString("next"), v)
}

func TestReaderGrow(t *testing.T) {
	body := strings.Repeat("x", 3*stream.DefaultBufferSize)
	in := "$12288\r\n" + body + "\r\n+after\r\n"

	rr := stream.NewReader[resp3.Value](iotest.HalfReader(strings.NewReader(in)), resp3.Decode)

	vs, err := readAll(t, rr)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []resp3.Value{resp3.Blob(body), resp3.SimpleString("after")}, vs)
}

func TestReaderMaxBufferSize(t *testing.T) {
	rr := stream.NewReader[resp3.Value](strings.NewReader("+short\r\n$16\r\n0123456789abcdef\r\n"), resp3.Decode)
	rr.MaxBufferSize = 16

	v, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.SimpleString("short"), v)

	_, err = rr.Next()
	require.ErrorIs(t, err, stream.ErrBufferLimitExceeded)

	_, err = rr.Next()
	require.ErrorIs(t, err, stream.ErrBufferLimitExceeded)
}

func TestReaderReadError(t *testing.T) {
	rr := stream.NewReader[resp3.Value](iotest.TimeoutReader(iotest.OneByteReader(strings.NewReader("+OK\r\n"))), resp3.Decode)

	_, err := rr.Next()
	require.ErrorIs(t, err, iotest.ErrTimeout)
	assert.Equal(t, 1, rr.Buffered())

	v, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.SimpleString("OK"), v)
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) {
	return 0, nil
}

func TestReaderNoProgress(t *testing.T) {
	rr := stream.NewReader[resp3.Value](emptyReader{}, resp3.Decode)

	_, err := rr.Next()
	require.ErrorIs(t, err, io.ErrNoProgress)
}

func TestReaderReset(t *testing.T) {
	rr := stream.NewReader[resp3.Value](strings.NewReader("+a\r\n+b\r\n"), resp3.Decode)

	v, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.SimpleString("a"), v)
	assert.Equal(t, 4, rr.Buffered())

	rr.Reset(strings.NewReader(":1\r\n"))
	assert.Zero(t, rr.Buffered())

	v, err = rr.Next()
	require.NoError(t, err)
	assert.Equal(t, resp3.Number(1), v)

	_, err = rr.Next()
	require.ErrorIs(t, err, io.EOF)
}
