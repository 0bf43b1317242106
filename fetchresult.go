package akonadi

import (
	"bytes"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// ParseItemFetchResult fills item from the key/value tokens of one FETCH
// response. UID is the only mandatory key. Payload parts delivered as
// "[FILE] <name>" are read through the helper's PayloadLoader.
//
// On error item is left untouched; ParseError.Pos is the token index.
func (h *ProtocolHelper) ParseItemFetchResult(tokens [][]byte, item *models.Item) error {
	it := models.NewItem(models.InvalidID)
	var hasUID, hasRevision, hasMimeType bool

	for i := 0; i < len(tokens); i += 2 {
		key := tokens[i]
		keyPos := i
		if isBarePartPrefix(key) && i+2 < len(tokens) {
			key = append(append(append([]byte(nil), key...), ' '), tokens[i+1]...)
			i++
		}
		if i+1 >= len(tokens) {
			h.logger.Debug("ignoring fetch key without value", "key", string(key))
			break
		}
		value := tokens[i+1]

		switch string(key) {
		case constants.KeyUID:
			id, err := imapparser.ToNumber(value)
			if err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
			if id < 0 {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, nil, "invalid %s %d", key, id)
			}
			it.ID = id
			hasUID = true
		case constants.KeyRevision:
			n, err := toInt(value)
			if err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
			it.Revision = n
			hasRevision = true
		case constants.KeyRemoteID:
			it.RemoteID = string(value)
		case constants.KeyRemoteRevision:
			it.RemoteRevision = string(value)
		case constants.KeyCollectionID:
			id, err := imapparser.ToNumber(value)
			if err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
			it.StorageCollectionID = id
		case constants.KeyMimeType:
			it.MimeType = string(value)
			hasMimeType = true
		case constants.KeyFlags:
			if len(value) == 0 {
				continue
			}
			flags, _, err := imapparser.ParseParenthesizedList(value, 0)
			if err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
			for _, f := range flags {
				it.Flags.Set(string(f))
			}
		case constants.KeySize:
			n, err := imapparser.ToNumber(value)
			if err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
			it.Size = n
		case constants.KeyDateTime:
			t, err := imapparser.ParseDateTime(value)
			if err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
			it.ModificationTime = t
		case constants.KeyAncestors:
			if _, err := h.ParseAncestors(value, &it.Entity, 0); err != nil {
				return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s", key)
			}
		default:
			part := DecodePartIdentifier(key)
			switch part.Namespace {
			case models.PartPayload:
				p := models.Part{Label: part.Label, Version: part.Version}
				if bytes.Equal(value, []byte(constants.ExternalPayloadMarker)) {
					if i+2 >= len(tokens) {
						return parseErrorf(constants.ErrMalformedFetchResult, keyPos, constants.ErrUnexpectedEnd, "%s: missing file name", key)
					}
					i++
					name := string(tokens[i+1])
					data, err := h.payloads.LoadPayload(name)
					if err != nil {
						return parseErrorf(constants.ErrMalformedFetchResult, keyPos, err, "%s: external payload %s", key, name)
					}
					p.Data = data
					p.External = true
				} else {
					p.Data = append([]byte(nil), value...)
				}
				it.SetPart(p)
			case models.PartAttribute:
				attr, err := h.attributes.Deserialize(part.Label, value)
				if err != nil {
					h.logger.Warn("keeping undecodable attribute raw", "uid", it.ID, "type", part.Label, "error", err)
					attr = &models.RawAttribute{Kind: part.Label, Value: append([]byte(nil), value...)}
				}
				it.AddAttribute(attr)
			default:
				h.logger.Debug("ignoring unknown fetch key", "uid", it.ID, "key", string(key))
			}
		}
	}

	if !hasUID {
		return parseErrorf(constants.ErrMalformedFetchResult, len(tokens), nil, "missing %s", constants.KeyUID)
	}
	if !hasRevision {
		h.logger.Warn("fetch result without revision", "uid", it.ID)
	}
	if !hasMimeType {
		h.logger.Warn("fetch result without mime type", "uid", it.ID)
	}

	*item = it
	return nil
}

// SplitFetchResponse splits an untagged "* <n> FETCH (...)" response into the
// sequence number and the flat token list of the parenthesized part.
func SplitFetchResponse(line []byte) (int64, [][]byte, error) {
	pos := imapparser.SkipWhitespace(line, 0)
	if pos >= len(line) || line[pos] != '*' {
		return 0, nil, parseErrorf(constants.ErrMalformedFetchResult, pos, nil, "not an untagged response")
	}

	n, pos, err := imapparser.ParseNumber(line, pos+1)
	if err != nil {
		return 0, nil, parseErrorf(constants.ErrMalformedFetchResult, pos, err, "sequence number")
	}

	cmd, next, err := imapparser.ParseString(line, pos)
	if err != nil || string(cmd) != constants.KeyFetch {
		return 0, nil, parseErrorf(constants.ErrMalformedFetchResult, pos, err, "expected %s", constants.KeyFetch)
	}

	tokens, _, err := imapparser.ParseParenthesizedList(line, next)
	if err != nil {
		return 0, nil, parseErrorf(constants.ErrMalformedFetchResult, next, err, "response list")
	}
	return n, tokens, nil
}
