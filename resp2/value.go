package resp2

// Value is a decoded RESP2 value.
//
// Value is implemented by SimpleString, Error, Integer, BulkString, Null and Array. Other packages can not implement
// Value, so a type switch over these types is exhaustive.
type Value interface {
	resp2()
}

// SimpleString is a decoded simple string. It is always valid UTF-8.
type SimpleString []byte

// Error is a decoded error. It is always valid UTF-8.
type Error []byte

// Integer is a decoded integer.
type Integer uint64

// BulkString is a decoded bulk string. It can contain arbitrary bytes.
type BulkString []byte

// Null is a decoded null bulk string ($-1).
type Null struct{}

// Array is a decoded array.
type Array []Value

func (SimpleString) resp2() {}
func (Error) resp2()        {}
func (Integer) resp2()      {}
func (BulkString) resp2()   {}
func (Null) resp2()         {}
func (Array) resp2()        {}
