package akonadi

import (
	"bytes"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// ParseCollection parses a collection record "<id> <parent-id> (KEY value ...)"
// starting at start and returns the offset after it.
//
// Keys the codec does not know are stored as attributes, so records from newer
// servers still parse.
func (h *ProtocolHelper) ParseCollection(data []byte, start int) (models.Collection, int, error) {
	id, pos, err := imapparser.ParseNumber(data, start)
	if err != nil {
		return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, start, err, "collection id")
	}
	if id <= 0 {
		return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, start, nil, "invalid collection id %d", id)
	}

	parentID, next, err := imapparser.ParseNumber(data, pos)
	if err != nil {
		return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, err, "parent id")
	}
	if parentID < 0 {
		return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, nil, "invalid parent id %d", parentID)
	}
	pos = next

	params, next, err := imapparser.ParseParenthesizedList(data, pos)
	if err != nil {
		return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, err, "attribute list")
	}

	col := models.NewCollection(id)
	col.Parent = parentCollection(parentID)

	for i := 0; i < len(params); i += 2 {
		key := params[i]
		if isBarePartPrefix(key) && i+2 < len(params) {
			key = append(append(append([]byte(nil), key...), ' '), params[i+1]...)
			i++
		}
		if i+1 >= len(params) {
			h.logger.Debug("ignoring collection key without value", "id", id, "key", string(key))
			break
		}
		value := params[i+1]

		switch string(key) {
		case constants.KeyName:
			col.Name = string(value)
		case constants.KeyRemoteID:
			col.RemoteID = string(value)
		case constants.KeyRemoteRevision:
			col.RemoteRevision = string(value)
		case constants.KeyResource:
			col.Resource = string(value)
		case constants.KeyMimeType:
			types, _, err := imapparser.ParseParenthesizedList(value, 0)
			if len(value) > 0 && err != nil {
				return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, err, "%s", key)
			}
			col.ContentMimeTypes = nil
			for _, t := range types {
				col.ContentMimeTypes = append(col.ContentMimeTypes, string(t))
			}
		case constants.KeyVirtual:
			col.Virtual = isTrue(value)
		case constants.KeyMessages, constants.KeyUnseen, constants.KeySize:
			n, err := imapparser.ToNumber(value)
			if err != nil {
				return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, err, "%s", key)
			}
			switch string(key) {
			case constants.KeyMessages:
				col.Statistics.Count = n
			case constants.KeyUnseen:
				col.Statistics.Unread = n
			default:
				col.Statistics.Size = n
			}
		case constants.KeyAccessRights:
			col.Rights = models.ParseRights(string(value))
		case constants.KeyCachePolicy:
			policy, _, err := ParseCachePolicy(value, 0)
			if err != nil {
				return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, err, "%s", key)
			}
			col.CachePolicy = policy
		case constants.KeyAncestors:
			if _, err := h.ParseAncestors(value, &col.Entity, 0); err != nil {
				return models.Collection{}, start, parseErrorf(constants.ErrMalformedCollection, pos, err, "%s", key)
			}
		default:
			part := DecodePartIdentifier(key)
			attr, err := h.attributes.Deserialize(part.Label, value)
			if err != nil {
				h.logger.Warn("keeping undecodable attribute raw", "id", id, "type", part.Label, "error", err)
				attr = &models.RawAttribute{Kind: part.Label, Value: append([]byte(nil), value...)}
			}
			col.AddAttribute(attr)
		}
	}

	return col, next, nil
}

// AttributesToWire lists the attributes of entity as "<type> <value>" pairs
// ordered by type, with the type written as "ATR <type>" when includeNamespace
// is set. The result has no surrounding parentheses.
func AttributesToWire(entity models.Entity, includeNamespace bool) []byte {
	var b bytes.Buffer
	for i, kind := range entity.AttributeTypes() {
		if i > 0 {
			b.WriteByte(' ')
		}
		if includeNamespace {
			b.Write(EncodePartIdentifier(models.PartAttribute, kind, 0))
		} else {
			b.WriteString(kind)
		}
		b.WriteByte(' ')
		b.Write(imapparser.QuoteOrLiteral(entity.Attributes[kind].Serialized()))
	}
	return b.Bytes()
}

func parentCollection(id int64) *models.Collection {
	if id == models.RootID {
		root := models.RootCollection()
		return &root
	}
	parent := models.NewCollection(id)
	return &parent
}

func isTrue(value []byte) bool {
	switch string(value) {
	case "1", "true", "TRUE":
		return true
	}
	return false
}
