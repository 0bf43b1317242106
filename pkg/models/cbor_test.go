package models

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCborMarshaler_CachePolicyRoundTrip(t *testing.T) {
	policy := CachePolicy{
		InheritFromParent: false,
		IntervalCheckTime: 5,
		CacheTimeout:      30,
		SyncOnDemand:      true,
		LocalParts:        []string{"PLD:ENVELOPE", "PLD:HEAD"},
	}

	encoded, err := CborMarshaler{}.Marshal(policy)
	require.NoError(t, err)

	var decoded CachePolicy
	require.NoError(t, CborUnmarshaler{}.Unmarshal(encoded, &decoded))
	assert.Equal(t, policy, decoded)
}

func TestCborMarshaler_IsDeterministic(t *testing.T) {
	item := NewItem(12)
	item.AddAttribute(&RawAttribute{Kind: "b", Value: []byte("2")})
	item.AddAttribute(&RawAttribute{Kind: "a", Value: []byte("1")})
	item.SetPart(Part{Label: "RFC822", Data: []byte("body")})
	item.SetPart(Part{Label: "HEAD", Data: []byte("head")})

	first, err := CborMarshaler{}.Marshal(item)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := CborMarshaler{}.Marshal(item)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, again), "encoding changed between runs")
	}
}

func TestCborMarshaler_TimeIsTagged(t *testing.T) {
	ts := time.Date(2009, time.March, 8, 16, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, CborMarshaler{}.NewEncoder(&buf).Encode(ts))

	var decoded any
	require.NoError(t, CborUnmarshaler{}.NewDecoder(&buf).Decode(&decoded))
	got, ok := decoded.(time.Time)
	require.True(t, ok, "expected time.Time, got %T", decoded)
	assert.True(t, ts.Equal(got))
}
