package wire_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/internal/wire"
)

func TestLimit(t *testing.T) {
	assert.Equal(t, 10, wire.Limit(0, 10))
	assert.Equal(t, 5, wire.Limit(5, 10))
	assert.Equal(t, math.MaxInt, wire.Limit(-1, 10))
}

func TestLine(t *testing.T) {
	for _, c := range []struct {
		in   string
		line string
		rest string
		err  error
	}{
		{err: resp.ErrIncomplete},
		{in: "+", err: resp.ErrIncomplete},
		{in: "+OK", err: resp.ErrIncomplete},
		{in: "+OK\r", err: resp.ErrIncomplete},

		{in: "-OK\r\n", err: resp.ErrUnexpectedType},
		{in: "+OK\n", err: resp.ErrUnexpectedEOL},
		{in: "+OK\r\r", err: resp.ErrUnexpectedEOL},
		{in: "+O\nK\r\n", err: resp.ErrUnexpectedEOL},
		{in: "+O\rK\r\n", err: resp.ErrUnexpectedEOL},

		{in: "+\r\n"},
		{in: "+OK\r\n", line: "OK"},
		{in: "+hello world\r\n:1\r\n", line: "hello world", rest: ":1\r\n"},
	} {
		rest, line, err := wire.Line([]byte(c.in), resp.TypeSimpleString)
		if c.err != nil {
			require.ErrorIs(t, err, c.err, "input %q", c.in)
			assert.Equal(t, c.in, string(rest), "input %q", c.in)
			assert.Nil(t, line, "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.line, string(line), "input %q", c.in)
		assert.Equal(t, c.rest, string(rest), "input %q", c.in)
		assert.Equal(t, len(line), cap(line), "input %q", c.in)
	}
}

func TestText(t *testing.T) {
	_, text, err := wire.Text([]byte("+h\xc3\xa9llo\r\n"), resp.TypeSimpleString)
	require.NoError(t, err)
	assert.Equal(t, "héllo", string(text))

	rest, _, err := wire.Text([]byte("+\xff\r\n"), resp.TypeSimpleString)
	require.ErrorIs(t, err, resp.ErrInvalidUTF8)
	require.ErrorIs(t, err, resp.ErrMalformed)
	assert.Equal(t, "+\xff\r\n", string(rest))
}

func TestUint(t *testing.T) {
	for _, c := range []struct {
		in  string
		n   uint64
		err error
	}{
		{err: resp.ErrIncomplete},
		{in: ":", err: resp.ErrIncomplete},
		{in: ":1", err: resp.ErrIncomplete},
		{in: ":12", err: resp.ErrIncomplete},
		{in: ":12\r", err: resp.ErrIncomplete},

		{in: "$12\r\n", err: resp.ErrUnexpectedType},
		{in: ":\r\n", err: resp.ErrInvalidNumber},
		{in: ":\r", err: resp.ErrInvalidNumber},
		{in: ":-1\r\n", err: resp.ErrInvalidNumber},
		{in: ":+1\r\n", err: resp.ErrInvalidNumber},
		{in: ":1a", err: resp.ErrInvalidNumber},
		{in: ":1.0\r\n", err: resp.ErrInvalidNumber},
		{in: ":1\n", err: resp.ErrUnexpectedEOL},
		{in: ":1\r\r", err: resp.ErrUnexpectedEOL},
		{in: ":18446744073709551616\r\n", err: resp.ErrInvalidNumber},
		{in: ":99999999999999999999999\r\n", err: resp.ErrInvalidNumber},

		{in: ":0\r\n"},
		{in: ":007\r\n", n: 7},
		{in: ":1234\r\n", n: 1234},
		{in: ":18446744073709551615\r\n", n: math.MaxUint64},
	} {
		rest, n, err := wire.Uint([]byte(c.in), resp.TypeNumber)
		if c.err != nil {
			require.ErrorIs(t, err, c.err, "input %q", c.in)
			assert.Equal(t, c.in, string(rest), "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.n, n, "input %q", c.in)
		assert.Empty(t, rest, "input %q", c.in)
	}
}

func TestFloat(t *testing.T) {
	for _, c := range []struct {
		in  string
		f   float64
		err error
	}{
		{in: ",", err: resp.ErrIncomplete},
		{in: ",1.5", err: resp.ErrIncomplete},
		{in: ",\r\n", err: resp.ErrInvalidDouble},
		{in: ",1a\r\n", err: resp.ErrInvalidDouble},
		{in: ",-\r\n", err: resp.ErrInvalidDouble},

		{in: ",1.5\r\n", f: 1.5},
		{in: ",-0.25\r\n", f: -0.25},
		{in: ",1e3\r\n", f: 1000},
		{in: ",10\r\n", f: 10},
		{in: ",inf\r\n", f: math.Inf(1)},
		{in: ",-inf\r\n", f: math.Inf(-1)},
		{in: ",1e400\r\n", f: math.Inf(1)},
		{in: ",-1e400\r\n", f: math.Inf(-1)},
		{in: ",1e-400\r\n", f: 0},
	} {
		_, f, err := wire.Float([]byte(c.in), resp.TypeDouble)
		if c.err != nil {
			require.ErrorIs(t, err, c.err, "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.f, f, "input %q", c.in)
	}

	_, f, err := wire.Float([]byte(",nan\r\n"), resp.TypeDouble)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))
}

func TestExact(t *testing.T) {
	for _, c := range []struct {
		in   string
		n    int
		body string
		err  error
	}{
		{n: 0, err: resp.ErrIncomplete},
		{in: "\r", n: 0, err: resp.ErrIncomplete},
		{in: "hel", n: 5, err: resp.ErrIncomplete},
		{in: "hello", n: 5, err: resp.ErrIncomplete},
		{in: "hello\r", n: 5, err: resp.ErrIncomplete},

		{in: "hello!", n: 5, err: resp.ErrUnexpectedEOL},
		{in: "hello\r\r", n: 5, err: resp.ErrUnexpectedEOL},
		{in: "hello world\r\n", n: 5, err: resp.ErrUnexpectedEOL},

		{in: "\r\n", n: 0},
		{in: "hello\r\n", n: 5, body: "hello"},
		{in: "he\r\nlo\r\n", n: 6, body: "he\r\nlo"},
	} {
		rest, body, err := wire.Exact([]byte(c.in), c.n)
		if c.err != nil {
			require.ErrorIs(t, err, c.err, "input %q", c.in)
			assert.Equal(t, c.in, string(rest), "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.body, string(body), "input %q", c.in)
		assert.Equal(t, len(body), cap(body), "input %q", c.in)
		assert.Empty(t, rest, "input %q", c.in)
	}
}

func TestBlob(t *testing.T) {
	rest, body, err := wire.Blob([]byte("$5\r\nhello\r\n+OK\r\n"), resp.TypeBlobString, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "+OK\r\n", string(rest))

	_, _, err = wire.Blob([]byte("$5\r\nhello\r\n"), resp.TypeBlobString, 4)
	require.ErrorIs(t, err, resp.ErrBlobLengthLimitExceeded)

	_, _, err = wire.Blob([]byte("$18446744073709551615\r\n"), resp.TypeBlobString, math.MaxInt)
	require.ErrorIs(t, err, resp.ErrBlobLengthLimitExceeded)

	_, _, err = wire.Blob([]byte("$5\r\nhel"), resp.TypeBlobString, 5)
	require.ErrorIs(t, err, resp.ErrIncomplete)
}

func TestCount(t *testing.T) {
	_, n, err := wire.Count([]byte("*3\r\n"), resp.TypeArray)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, _, err = wire.Count([]byte("*18446744073709551615\r\n"), resp.TypeArray)
	require.ErrorIs(t, err, resp.ErrInvalidAggregateLength)

	_, _, err = wire.Count([]byte("*-1\r\n"), resp.TypeArray)
	require.ErrorIs(t, err, resp.ErrInvalidNumber)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 3, wire.Capacity(3, 3, 100))
	assert.Equal(t, 1, wire.Capacity(math.MaxInt/2, 3, 5))
	assert.Equal(t, 0, wire.Capacity(10, 6, 0))
}

func TestLiteral(t *testing.T) {
	const lit = "$-1\r\n"

	for i := range len(lit) {
		rest, ok, err := wire.Literal([]byte(lit[:i]), lit)
		require.ErrorIs(t, err, resp.ErrIncomplete, "prefix %q", lit[:i])
		assert.False(t, ok)
		assert.Equal(t, lit[:i], string(rest))
	}

	rest, ok, err := wire.Literal([]byte(lit+"+OK\r\n"), lit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "+OK\r\n", string(rest))

	for _, in := range []string{"$1", "$-2\r\n", "$-1\r\r", strings.Repeat("x", 10)} {
		rest, ok, err := wire.Literal([]byte(in), lit)
		require.NoError(t, err, "input %q", in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, in, string(rest))
	}
}
