// Package contrib provides tools built on top of the akonadi.go codec.
//
// Everything in this package extends the core codec with features that are
// not part of the core library, such as offline tooling for captured
// protocol traffic.
//
// Note that this package is outside of the backward compatibility guarantees
// provided by the core package. Changes to this package may
// introduce breaking changes without following semantic versioning.
//
// [github.com/kdepim/akonadi.go/contrib/wiredump] decodes captured server
// responses into JSON lines or CBOR records for inspection.
package contrib
