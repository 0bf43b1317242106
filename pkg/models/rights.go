package models

import "strings"

// Rights is a bitmask of what a client may do with a collection.
type Rights uint16

// ReadOnly grants nothing.
const ReadOnly Rights = 0

const (
	CanChangeItem Rights = 1 << iota
	CanCreateItem
	CanDeleteItem
	CanChangeCollection
	CanCreateCollection
	CanDeleteCollection
	CanLinkItem
	CanUnlinkItem
)

const AllRights = CanChangeItem | CanCreateItem | CanDeleteItem |
	CanChangeCollection | CanCreateCollection | CanDeleteCollection |
	CanLinkItem | CanUnlinkItem

var rightLetters = []struct {
	right  Rights
	letter byte
}{
	{CanChangeItem, 'w'},
	{CanCreateItem, 'c'},
	{CanDeleteItem, 'd'},
	{CanChangeCollection, 'W'},
	{CanCreateCollection, 'C'},
	{CanDeleteCollection, 'D'},
	{CanLinkItem, 'l'},
	{CanUnlinkItem, 'u'},
}

func (r Rights) Union(o Rights) Rights {
	return r | o
}

func (r Rights) Intersect(o Rights) Rights {
	return r & o
}

func (r Rights) Without(o Rights) Rights {
	return r &^ o
}

// Has reports whether every right in o is granted.
func (r Rights) Has(o Rights) bool {
	return r&o == o
}

// String returns the wire letters, "a" for all rights and "" for read-only.
func (r Rights) String() string {
	r = r.Intersect(AllRights)
	if r == AllRights {
		return "a"
	}
	var b strings.Builder
	for _, rl := range rightLetters {
		if r.Has(rl.right) {
			b.WriteByte(rl.letter)
		}
	}
	return b.String()
}

// ParseRights decodes wire letters. Unknown letters are ignored.
func ParseRights(s string) Rights {
	var r Rights
	for i := 0; i < len(s); i++ {
		if s[i] == 'a' {
			return AllRights
		}
		for _, rl := range rightLetters {
			if rl.letter == s[i] {
				r = r.Union(rl.right)
			}
		}
	}
	return r
}
