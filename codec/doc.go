// Package codec turns typed values into byte payloads and back.
//
// A Codec is supplied by the caller for each value type exchanged through the
// collective package. The codecs here cover plain Go values (JSON, gob),
// protobuf messages and kyber group elements.
//
// Payloads carry no framing of their own: EncodeBatch concatenates encodings
// back to back and reports the length of each one, and it is up to the caller
// to keep the length table next to the buffer.
package codec
