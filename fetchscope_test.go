package akonadi

import (
	"testing"
	"time"

	"github.com/kdepim/akonadi.go/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestItemFetchScopeToWire(t *testing.T) {
	full := models.ItemFetchScope{
		FullPayload:                    true,
		AllAttributes:                  true,
		CacheOnly:                      true,
		CheckForCachedPayloadPartsOnly: true,
		IgnoreRetrievalErrors:          true,
		ExternalPayload:                true,
		AncestorRetrieval:              models.AncestorAll,
		ChangedSince:                   time.Unix(1700000000, 0),
	}
	full.FetchPayloadPart("RFC822")
	full.FetchPayloadPart("HEAD")
	full.FetchPayloadPart("RFC822")
	full.FetchAttribute(models.DisplayAttributeType)

	parts := models.ItemFetchScope{AncestorRetrieval: models.AncestorParent}
	parts.FetchPayloadPart("ENVELOPE")

	tests := []struct {
		name     string
		scope    models.ItemFetchScope
		expected string
	}{
		{
			name:     "default",
			expected: "(UID REMOTEID REMOTEREVISION COLLECTIONID FLAGS SIZE DATETIME)",
		},
		{
			name:  "everything",
			scope: full,
			expected: "FULLPAYLOAD ALLATTR CACHEONLY CHECKCACHEDPARTSONLY IGNOREERRORS EXTERNALPAYLOAD " +
				"ANCESTORS INF CHANGEDSINCE 1700000000 " +
				"(UID REMOTEID REMOTEREVISION COLLECTIONID FLAGS SIZE DATETIME PLD RFC822 PLD HEAD ATR ENTITYDISPLAY)",
		},
		{
			name:     "parent only",
			scope:    parts,
			expected: "ANCESTORS 1 (UID REMOTEID REMOTEREVISION COLLECTIONID FLAGS SIZE DATETIME PLD ENVELOPE)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := ItemFetchScopeToWire(tt.scope)
			assert.Equal(t, tt.expected, string(wire))
			assert.NotContains(t, string(wire), "\n")
		})
	}
}
