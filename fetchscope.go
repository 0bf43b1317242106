package akonadi

import (
	"bytes"
	"strconv"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/models"
)

var fetchBaseFields = []string{
	constants.KeyUID,
	constants.KeyRemoteID,
	constants.KeyRemoteRevision,
	constants.KeyCollectionID,
	constants.KeyFlags,
	constants.KeySize,
	constants.KeyDateTime,
}

// ItemFetchScopeToWire returns the FETCH parameters for scope: the options that
// differ from their defaults followed by the parenthesized field list.
func ItemFetchScopeToWire(scope models.ItemFetchScope) []byte {
	var b bytes.Buffer
	option := func(s string) {
		b.WriteString(s)
		b.WriteByte(' ')
	}

	if scope.FullPayload {
		option(constants.ParamFullPayload)
	}
	if scope.AllAttributes {
		option(constants.ParamAllAttributes)
	}
	if scope.CacheOnly {
		option(constants.ParamCacheOnly)
	}
	if scope.CheckForCachedPayloadPartsOnly {
		option(constants.ParamCheckCachedPartsOnly)
	}
	if scope.IgnoreRetrievalErrors {
		option(constants.ParamIgnoreErrors)
	}
	if scope.ExternalPayload {
		option(constants.ParamExternalPayload)
	}
	switch scope.AncestorRetrieval {
	case models.AncestorParent:
		option(constants.ParamAncestors + " 1")
	case models.AncestorAll:
		option(constants.ParamAncestors + " INF")
	}
	if !scope.ChangedSince.IsZero() {
		option(constants.ParamChangedSince + " " + strconv.FormatInt(scope.ChangedSince.Unix(), 10))
	}

	b.WriteByte('(')
	for i, field := range fetchBaseFields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
	}
	for _, part := range scope.PayloadParts {
		b.WriteByte(' ')
		b.Write(EncodePartIdentifier(models.PartPayload, part, 0))
	}
	for _, kind := range scope.Attributes {
		b.WriteByte(' ')
		b.Write(EncodePartIdentifier(models.PartAttribute, kind, 0))
	}
	b.WriteByte(')')
	return b.Bytes()
}
