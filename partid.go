package akonadi

import (
	"bytes"
	"strconv"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/models"
)

var partPrefixes = []struct {
	ns     models.PartNamespace
	prefix string
}{
	{models.PartPayload, constants.PrefixPayload},
	{models.PartAttribute, constants.PrefixAttribute},
}

// EncodePartIdentifier returns the wire token of a part: "PLD RFC822",
// "ATR foo[2]" or, for the global namespace, the bare label.
func EncodePartIdentifier(ns models.PartNamespace, label string, version int) []byte {
	var out []byte
	switch ns {
	case models.PartPayload:
		out = append(out, constants.PrefixPayload+" "...)
	case models.PartAttribute:
		out = append(out, constants.PrefixAttribute+" "...)
	}
	out = append(out, label...)
	if version > 0 {
		out = append(out, '[')
		out = strconv.AppendInt(out, int64(version), 10)
		out = append(out, ']')
	}
	return out
}

// DecodePartIdentifier splits a part token into namespace, label and version.
//
// Both the "PLD RFC822" and the older "PLD:RFC822" forms are understood.
// Tokens with an unknown prefix decode as global parts whose label is the whole
// token; decoding never fails.
func DecodePartIdentifier(token []byte) models.PartIdentifier {
	label, version, _ := imapparser.SplitVersionedKey(token)
	for _, p := range partPrefixes {
		if len(label) > len(p.prefix) && bytes.HasPrefix(label, []byte(p.prefix)) {
			if sep := label[len(p.prefix)]; sep == ' ' || sep == ':' {
				return models.PartIdentifier{
					Namespace: p.ns,
					Label:     string(label[len(p.prefix)+1:]),
					Version:   version,
				}
			}
		}
	}
	return models.PartIdentifier{Namespace: models.PartGlobal, Label: string(label), Version: version}
}

// isBarePartPrefix reports whether token is a namespace prefix whose label
// arrived as the following token.
func isBarePartPrefix(token []byte) bool {
	for _, p := range partPrefixes {
		if string(token) == p.prefix {
			return true
		}
	}
	return false
}
