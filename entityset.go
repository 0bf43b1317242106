package akonadi

import (
	"bytes"
	"slices"
	"strconv"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/imapset"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// EntitySetToWire addresses entities for command, by UID when the entity with
// the smallest id carries a server id and by RID otherwise:
//
//	" UID FETCH 3:5,7"
//	" RID FETCH ("a" "b")"
//
// command may be empty. Only the smallest id decides the form; the other ids
// are not checked. Remote ids are always quoted so that a numeric remote id is
// never read back as a server id.
func EntitySetToWire[T models.Identifiable](entities []T, command string) ([]byte, error) {
	if len(entities) == 0 {
		return nil, constants.ErrEmptySet
	}

	sorted := slices.Clone(entities)
	slices.SortStableFunc(sorted, func(a, b T) int {
		switch {
		case a.GetID() < b.GetID():
			return -1
		case a.GetID() > b.GetID():
			return 1
		}
		return 0
	})

	var b bytes.Buffer
	if sorted[0].GetID() >= 0 {
		var set imapset.ImapSet
		for _, e := range sorted {
			set.Add(e.GetID())
		}
		b.WriteString(" " + constants.CmdUID + " ")
		if command != "" {
			b.WriteString(command + " ")
		}
		b.Write(set.ToWireForm())
		return b.Bytes(), nil
	}

	seen := make(map[string]struct{}, len(sorted))
	rids := make([][]byte, 0, len(sorted))
	for _, e := range sorted {
		rid := e.GetRemoteID()
		if rid == "" {
			return nil, constants.ErrMissingRemoteID
		}
		if _, dup := seen[rid]; dup {
			continue
		}
		seen[rid] = struct{}{}
		rids = append(rids, imapparser.QuoteOrLiteral([]byte(rid)))
	}
	b.WriteString(" " + constants.CmdRID + " ")
	if command != "" {
		b.WriteString(command + " ")
	}
	b.WriteByte('(')
	b.Write(imapparser.Join(rids, " "))
	b.WriteByte(')')
	return b.Bytes(), nil
}

// HierarchicalRIDToWire addresses col by the remote ids of its whole parent
// chain, innermost first and ending with the root:
//
//	(12 "inbox") (4 "account") (0 "")
//
// Every collection below the root needs a remote id and the chain must reach
// the root; otherwise ErrMissingRemoteID is returned.
func HierarchicalRIDToWire(col models.Collection) ([]byte, error) {
	var b bytes.Buffer
	seen := make(map[*models.Collection]bool)
	for c := &col; ; c = c.Parent {
		if c == nil || seen[c] {
			return nil, constants.ErrMissingRemoteID
		}
		seen[c] = true

		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if c.IsRoot() {
			b.WriteString("(" + strconv.FormatInt(models.RootID, 10) + ` "")`)
			return b.Bytes(), nil
		}
		if c.RemoteID == "" {
			return nil, constants.ErrMissingRemoteID
		}
		b.WriteByte('(')
		b.WriteString(strconv.FormatInt(c.ID, 10))
		b.WriteByte(' ')
		b.Write(imapparser.QuoteOrLiteral([]byte(c.RemoteID)))
		b.WriteByte(')')
	}
}
