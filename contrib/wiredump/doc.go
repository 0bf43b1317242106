// Package wiredump decodes captured Akonadi server responses into records.
//
// Untagged FETCH responses become items and collection listings become
// collections. The records are written as JSON lines or as a CBOR sequence,
// and a manifest with counters and a checksum is written next to file output.
//
// Example usage:
//
//	config := wiredump.NewConfig()
//	config.Input = "session.log"
//	config.Output = "session.jsonl"
//	err := wiredump.Do(ctx, config)
package wiredump
