// Package fuzz contains the decode entry points and seed inputs shared by the fuzz tests.
package fuzz

import (
	"fmt"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/resp2"
	"github.com/nussjustin/resp/resp3"
)

// DecodeFunc decodes a single value from the start of b, discarding the value itself.
type DecodeFunc func(b []byte) (rest []byte, ok bool, err error)

var DecodeFuncs = []struct {
	Name string
	Func DecodeFunc
}{
	{Name: "RESP2", Func: func(b []byte) ([]byte, bool, error) { rest, v, err := resp2.Decode(b); return rest, v != nil, err }},
	{Name: "RESP3", Func: func(b []byte) ([]byte, bool, error) { rest, v, err := resp3.Decode(b); return rest, v != nil, err }},
}

// Decode decodes data with all DecodeFuncs and returns 1 if any of them decoded a value.
func Decode(data []byte) int {
	var ret int
	for _, f := range DecodeFuncs {
		if _, _, err := f.Func(data); err == nil {
			ret = 1
		}
	}
	return ret
}

func aggregateInputs(t resp.Type) []string {
	return []string{
		fmt.Sprint(t, "\r\n"),
		fmt.Sprint(t, "-0\r\n"),
		fmt.Sprint(t, "-1\r\n"),
		fmt.Sprint(t, "0\r\n"),
		fmt.Sprint(t, "1\r\n"),
		fmt.Sprint(t, "1\r\n_\r\n"),
		fmt.Sprint(t, "2\r\n:1\r\n"),
		fmt.Sprint(t, "?\r\n"),
		fmt.Sprint(t, "18446744073709551615\r\n"),
	}
}

func blobInputs(t resp.Type) []string {
	return []string{
		fmt.Sprint(t, "\r\n"),
		fmt.Sprint(t, "-0\r\n"),
		fmt.Sprint(t, "-1\r\n"),
		fmt.Sprint(t, "0\r\n"),
		fmt.Sprint(t, "1\r\n"),
		fmt.Sprint(t, "5\r\nhello\r\n"),
		fmt.Sprint(t, "5\r\nhello world\r\n"),
		fmt.Sprint(t, "?\r\n"),
	}
}

// Inputs returns the seed inputs for fuzz tests.
func Inputs() []string {
	var inputs []string

	for _, t := range []resp.Type{resp.TypeArray, resp.TypeAttribute, resp.TypeMap, resp.TypePush, resp.TypeSet} {
		inputs = append(inputs, aggregateInputs(t)...)
	}
	for _, t := range []resp.Type{resp.TypeBlobError, resp.TypeBlobString, resp.TypeVerbatimString} {
		inputs = append(inputs, blobInputs(t)...)
	}

	return append(inputs,
		fmt.Sprint(resp.TypeBigNumber, "\r\n"),
		fmt.Sprint(resp.TypeBigNumber, "-0\r\n"),
		fmt.Sprint(resp.TypeBigNumber, "-100\r\n"),
		fmt.Sprint(resp.TypeBigNumber, "-1844674407370955161518446744073709551615\r\n"),
		fmt.Sprint(resp.TypeBigNumber, "0\r\n"),
		fmt.Sprint(resp.TypeBigNumber, "100\r\n"),
		fmt.Sprint(resp.TypeBigNumber, "1844674407370955161518446744073709551615\r\n"),

		fmt.Sprint(resp.TypeBoolean, "\r\n"),
		fmt.Sprint(resp.TypeBoolean, "f\r\n"),
		fmt.Sprint(resp.TypeBoolean, "t\r\n"),
		fmt.Sprint(resp.TypeBoolean, "x\r\n"),

		fmt.Sprint(resp.TypeDouble, "\r\n"),
		fmt.Sprint(resp.TypeDouble, "+inf\r\n"),
		fmt.Sprint(resp.TypeDouble, "-0\r\n"),
		fmt.Sprint(resp.TypeDouble, "-100\r\n"),
		fmt.Sprint(resp.TypeDouble, "-inf\r\n"),
		fmt.Sprint(resp.TypeDouble, ".\r\n"),
		fmt.Sprint(resp.TypeDouble, ".0\r\n"),
		fmt.Sprint(resp.TypeDouble, "0.\r\n"),
		fmt.Sprint(resp.TypeDouble, "100.100\r\n"),
		fmt.Sprint(resp.TypeDouble, "nan\r\n"),

		fmt.Sprint(resp.TypeEnd, "\r\n"),
		fmt.Sprint(resp.TypeNull, "\r\n"),

		fmt.Sprint(resp.TypeNumber, "\r\n"),
		fmt.Sprint(resp.TypeNumber, "+184467440737095516150\r\n"),
		fmt.Sprint(resp.TypeNumber, "-100\r\n"),
		fmt.Sprint(resp.TypeNumber, "0\r\n"),
		fmt.Sprint(resp.TypeNumber, "100\r\n"),
		fmt.Sprint(resp.TypeNumber, "18446744073709551615\r\n"),
		fmt.Sprint(resp.TypeNumber, "18446744073709551616\r\n"),

		fmt.Sprint(resp.TypeSimpleError, "\r\n"),
		fmt.Sprint(resp.TypeSimpleError, "hello\r\n"),
		fmt.Sprint(resp.TypeSimpleError, "hello\nworld\r\n"),

		fmt.Sprint(resp.TypeSimpleString, "\r\n"),
		fmt.Sprint(resp.TypeSimpleString, "hello\r\n"),
		fmt.Sprint(resp.TypeSimpleString, "hello\nworld\r\n"),

		fmt.Sprint(resp.TypeVerbatimString, "5\r\n:foo!\r\n"),
		fmt.Sprint(resp.TypeVerbatimString, "5\r\nfoo:!\r\n"),
		fmt.Sprint(resp.TypeVerbatimString, "5\r\ntxt:!\r\n"),
		fmt.Sprint(resp.TypeVerbatimString, "5\r\nmkd:!\r\n"),

		// Trailing data after a complete value.
		"%0\r\n0",
		"+OK\r\n+OK\r\n",
		"*1\r\n:1\r\n$3\r\nfo",
		"$-1\r\n*",
	)
}
