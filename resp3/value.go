package resp3

import (
	"math/big"
)

// Value is a decoded RESP3 value.
//
// Value is implemented by all types in this package except MapEntry and VerbatimFormat. Other packages can not
// implement Value, so a type switch over these types is exhaustive.
type Value interface {
	resp3()
}

// Blob is a decoded blob string. It can contain arbitrary bytes.
type Blob []byte

// SimpleString is a decoded simple string. It is always valid UTF-8.
type SimpleString []byte

// SimpleError is a decoded simple error. It is always valid UTF-8.
type SimpleError []byte

// Number is a decoded number.
type Number uint64

// Null is a decoded null.
type Null struct{}

// Double is a decoded double.
type Double float64

// Boolean is a decoded boolean.
type Boolean bool

// BlobError is a decoded blob error, split into the error code and message.
//
// Code and Message are always valid UTF-8. If the error contains no space, Message is empty.
type BlobError struct {
	Code    []byte
	Message []byte
}

// VerbatimFormat is the format of a verbatim string.
type VerbatimFormat uint8

const (
	// FormatText is the format of verbatim strings with the txt prefix.
	FormatText VerbatimFormat = iota + 1
	// FormatMarkdown is the format of verbatim strings with the mkd prefix.
	FormatMarkdown
)

// String returns the wire prefix of the format.
func (f VerbatimFormat) String() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "mkd"
	default:
		return "invalid"
	}
}

// VerbatimString is a decoded verbatim string. Text is always valid UTF-8.
type VerbatimString struct {
	Format VerbatimFormat
	Text   []byte
}

// BigNumber is a decoded big number.
//
// Unlike other values, Int does not reference the decoded input.
type BigNumber struct {
	Int *big.Int
}

// String returns the number in base 10.
func (n BigNumber) String() string {
	return n.Int.String()
}

// Array is a decoded array.
type Array []Value

// MapEntry is a single key value pair of a Map or Attribute.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is a decoded map. Entries are kept in wire order and duplicate keys are not removed.
type Map []MapEntry

// Set is a decoded set. Elements are kept in wire order and duplicates are not removed.
type Set []Value

// Attribute is a decoded attribute. The value the attribute belongs to is decoded separately.
type Attribute []MapEntry

// Push is decoded push data.
type Push []Value

// StreamArray is the header of an array of unknown length. The elements follow as separate values until StreamEnd.
type StreamArray struct{}

// StreamSet is the header of a set of unknown length. The elements follow as separate values until StreamEnd.
type StreamSet struct{}

// StreamMap is the header of a map of unknown length. The keys and values follow as separate values until
// StreamEnd.
type StreamMap struct{}

// StreamEnd marks the end of a StreamArray, StreamSet or StreamMap.
type StreamEnd struct{}

func (Blob) resp3()           {}
func (SimpleString) resp3()   {}
func (SimpleError) resp3()    {}
func (Number) resp3()         {}
func (Null) resp3()           {}
func (Double) resp3()         {}
func (Boolean) resp3()        {}
func (BlobError) resp3()      {}
func (VerbatimString) resp3() {}
func (BigNumber) resp3()      {}
func (Array) resp3()          {}
func (Map) resp3()            {}
func (Set) resp3()            {}
func (Attribute) resp3()      {}
func (Push) resp3()           {}
func (StreamArray) resp3()    {}
func (StreamSet) resp3()      {}
func (StreamMap) resp3()      {}
func (StreamEnd) resp3()      {}
