// Package resp contains the types shared by the RESP2 and RESP3 decoders in the resp2 and resp3 subpackages.
//
// The decoders never copy payloads. Decoded values reference the input slice they were decoded from and must not be
// used after the input is modified or reused.
//
// Decoding is incremental: if the input does not contain a complete value, the decoders return ErrIncomplete and the
// caller is expected to retry with the same input extended with more data. All other errors wrap ErrMalformed and
// mean that the input can never become valid, no matter how much data is appended.
//
// The stream subpackage implements the buffering loop needed to decode values from an io.Reader.
package resp
