// Package codec abstracts the record encodings models are written in, so the
// same decoded items and collections can be emitted as JSON lines or CBOR.
package codec

import (
	"errors"
	"io"
)

// Encoder writes one record per call to an underlying stream.
type Encoder interface {
	Encode(record any) error
}

// Decoder reads one record per call and returns io.EOF when the stream ends.
type Decoder interface {
	Decode(record any) error
}

// Marshaler is the write side of a record encoding.
type Marshaler interface {
	Marshal(record any) ([]byte, error)
	NewEncoder(w io.Writer) Encoder
}

// Unmarshaler is the read side of a record encoding.
type Unmarshaler interface {
	Unmarshal(data []byte, record any) error
	NewDecoder(r io.Reader) Decoder
}

// DecodeEach decodes records of type T from d until the stream ends, calling
// visit on each. It stops at the first decode or visit error.
func DecodeEach[T any](d Decoder, visit func(T) error) error {
	for {
		var record T
		if err := d.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := visit(record); err != nil {
			return err
		}
	}
}
