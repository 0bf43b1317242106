package codec_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/kdepim/akonadi.go/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func TestDecodeEach(t *testing.T) {
	input := `{"kind":"item","id":1}` + "\n" + `{"kind":"collection","id":4}` + "\n"

	var got []record
	err := codec.DecodeEach(json.NewDecoder(strings.NewReader(input)), func(r record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []record{{Kind: "item", ID: 1}, {Kind: "collection", ID: 4}}, got)
}

func TestDecodeEach_Empty(t *testing.T) {
	calls := 0
	err := codec.DecodeEach(json.NewDecoder(strings.NewReader("")), func(record) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestDecodeEach_StopsOnError(t *testing.T) {
	stop := errors.New("stop")
	input := `{"id":1} {"id":2} {"id":3}`

	calls := 0
	err := codec.DecodeEach(json.NewDecoder(strings.NewReader(input)), func(r record) error {
		calls++
		if r.ID == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)

	err = codec.DecodeEach(json.NewDecoder(strings.NewReader(`{"id":1} nope`)), func(record) error { return nil })
	assert.Error(t, err)
}
