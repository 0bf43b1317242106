// The [akonadi] package implements the marshalling layer of the Akonadi
// client protocol in the Go way.
//
// Akonadi talks a line-oriented, IMAP-like protocol. This package converts the
// domain objects in [github.com/kdepim/akonadi.go/pkg/models] to and from that
// wire form. It sends and receives nothing itself: a transport hands it
// already-framed bytes and ships the bytes it returns.
//
// # Addressing entities
//
// Entities are addressed either by their server-assigned id (UID) or, before
// the server knows them, by the id their originating system gave them (RID).
// [EntitySetToWire] picks the form, compacting UIDs into sequence sets with
// [github.com/kdepim/akonadi.go/pkg/imapset].
//
// # Parsing
//
// Every parser takes the data and a start offset and returns the offset after
// what it consumed, so records embedding other records (a collection embedding
// a cache policy) are parsed by chaining calls over one buffer. Parsers build
// into local values and only hand them out on success.
//
// Parsing that depends on pluggable collaborators (attribute types, external
// payload files, logging) hangs off [ProtocolHelper]. The remaining codecs are
// plain functions.
//
// # Errors
//
// Malformed input yields a [*ParseError] whose kind is one of the sentinels in
// [github.com/kdepim/akonadi.go/pkg/constants]; test for it with [errors.Is].
package akonadi
