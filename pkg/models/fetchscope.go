package models

import "time"

// AncestorRetrieval selects how much of the parent chain a fetch returns.
type AncestorRetrieval int

const (
	AncestorNone AncestorRetrieval = iota
	AncestorParent
	AncestorAll
)

// ItemFetchScope describes what an item fetch should return.
// The zero value fetches only the item's basic fields.
type ItemFetchScope struct {
	FullPayload   bool
	PayloadParts  []string
	AllAttributes bool
	Attributes    []string
	CacheOnly     bool
	// CheckForCachedPayloadPartsOnly asks the server which parts are cached
	// without transferring them.
	CheckForCachedPayloadPartsOnly bool
	IgnoreRetrievalErrors          bool
	// ExternalPayload allows the server to hand out large payloads as files.
	ExternalPayload   bool
	AncestorRetrieval AncestorRetrieval
	// ChangedSince limits the fetch to items modified after this time when set.
	ChangedSince time.Time
}

// FetchPayloadPart adds label to the requested payload parts.
func (s *ItemFetchScope) FetchPayloadPart(label string) {
	s.PayloadParts = appendUnique(s.PayloadParts, label)
}

// FetchAttribute adds kind to the requested attributes.
func (s *ItemFetchScope) FetchAttribute(kind string) {
	s.Attributes = appendUnique(s.Attributes, kind)
}

func appendUnique(list []string, v string) []string {
	for _, e := range list {
		if e == v {
			return list
		}
	}
	return append(list, v)
}
