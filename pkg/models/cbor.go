package models

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/kdepim/akonadi.go/internal/codec"
)

// CborMarshaler encodes models as CBOR with RFC 3339 time tags and canonical
// map ordering, so equal values always produce equal bytes.
type CborMarshaler struct {
}

var (
	_ codec.Marshaler   = CborMarshaler{}
	_ codec.Unmarshaler = CborUnmarshaler{}
)

func (c CborMarshaler) Marshal(v interface{}) ([]byte, error) {
	em := getCborEncoder()
	return em.Marshal(v)
}

func (c CborMarshaler) NewEncoder(w io.Writer) codec.Encoder {
	em := getCborEncoder()
	return em.NewEncoder(w)
}

type CborUnmarshaler struct {
}

func (c CborUnmarshaler) Unmarshal(data []byte, dst interface{}) error {
	dm := getCborDecoder()
	return dm.Unmarshal(data, dst)
}

func (c CborUnmarshaler) NewDecoder(r io.Reader) codec.Decoder {
	dm := getCborDecoder()
	return dm.NewDecoder(r)
}

func getCborEncoder() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:    cbor.SortCanonical,
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		panic(err)
	}

	return em
}

func getCborDecoder() cbor.DecMode {
	dm, err := cbor.DecOptions{
		TimeTagToAny: cbor.TimeTagToTime,
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return dm
}
