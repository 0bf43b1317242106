package models

import (
	"sort"
	"time"
)

// Part is one payload blob of an item.
type Part struct {
	Label   string `json:"label"`
	Version int    `json:"version,omitempty"`
	Data    []byte `json:"data"`
	// External is set when the data was delivered as a file reference.
	External bool `json:"external,omitempty"`
}

// Flags is a sorted set of message flags.
type Flags []string

// Set adds flag to the set.
func (f *Flags) Set(flag string) {
	i := sort.SearchStrings(*f, flag)
	if i < len(*f) && (*f)[i] == flag {
		return
	}
	*f = append(*f, "")
	copy((*f)[i+1:], (*f)[i:])
	(*f)[i] = flag
}

// Clear removes flag from the set.
func (f *Flags) Clear(flag string) {
	i := sort.SearchStrings(*f, flag)
	if i < len(*f) && (*f)[i] == flag {
		*f = append((*f)[:i], (*f)[i+1:]...)
	}
}

func (f Flags) Has(flag string) bool {
	i := sort.SearchStrings(f, flag)
	return i < len(f) && f[i] == flag
}

type Item struct {
	Entity
	MimeType            string          `json:"mimeType,omitempty"`
	Revision            int             `json:"revision"`
	StorageCollectionID int64           `json:"collectionId"`
	Size                int64           `json:"size,omitempty"`
	ModificationTime    time.Time       `json:"modified,omitempty"`
	Flags               Flags           `json:"flags,omitempty"`
	Parts               map[string]Part `json:"parts,omitempty"`
}

// NewItem returns an item with the given id and no known revision or collection.
func NewItem(id int64) Item {
	return Item{
		Entity:              Entity{ID: id},
		Revision:            -1,
		StorageCollectionID: InvalidID,
	}
}

// SetPart stores p under its label, replacing an earlier version.
func (i *Item) SetPart(p Part) {
	if i.Parts == nil {
		i.Parts = make(map[string]Part)
	}
	i.Parts[p.Label] = p
}

// Payload returns the data of the payload part with the given label.
func (i Item) Payload(label string) ([]byte, bool) {
	p, ok := i.Parts[label]
	return p.Data, ok
}

// PartLabels returns the payload part labels in ascending order.
func (i Item) PartLabels() []string {
	labels := make([]string, 0, len(i.Parts))
	for label := range i.Parts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
