package akonadi

import (
	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// ParseAncestors parses an ancestor list "((id "rid") ...)", immediate parent
// first, starting at start and links the chain into entity.Parent. The chain
// stops at the root collection. Entries without a numeric id are skipped.
//
// entity is left alone when the list holds no usable entry.
func (h *ProtocolHelper) ParseAncestors(data []byte, entity *models.Entity, start int) (int, error) {
	entries, next, err := imapparser.ParseParenthesizedList(data, start)
	if err != nil {
		return start, parseErrorf(constants.ErrMalformedList, start, err, "ancestors")
	}

	var head, tail *models.Collection
	for i, entry := range entries {
		fields, _, err := imapparser.ParseParenthesizedList(entry, 0)
		if err != nil || len(fields) == 0 {
			h.logger.Debug("skipping malformed ancestor", "index", i, "entry", string(entry))
			continue
		}
		id, err := imapparser.ToNumber(fields[0])
		if err != nil || id < 0 {
			h.logger.Debug("skipping ancestor without id", "index", i, "entry", string(entry))
			continue
		}

		c := models.NewCollection(id)
		if len(fields) > 1 {
			c.RemoteID = string(fields[1])
		}
		if head == nil {
			head = &c
		} else {
			tail.Parent = &c
		}
		tail = &c

		if id == models.RootID {
			break
		}
	}

	if head != nil {
		entity.Parent = head
	}
	return next, nil
}
