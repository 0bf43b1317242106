package models

import "sort"

// InvalidID is the identifier of an entity the server has not assigned one to yet.
const InvalidID int64 = -1

// Identifiable is what the entity set encoder needs from an entity.
type Identifiable interface {
	GetID() int64
	GetRemoteID() string
}

// Entity is the part shared by collections and items.
//
// The zero Entity has ID 0, which is the root collection's id; use
// NewCollection or NewItem, or set ID to InvalidID, for unsaved entities.
type Entity struct {
	ID             int64                `json:"id"`
	RemoteID       string               `json:"remoteId,omitempty"`
	RemoteRevision string               `json:"remoteRevision,omitempty"`
	Parent         *Collection          `json:"parent,omitempty"`
	Attributes     map[string]Attribute `json:"attributes,omitempty"`
}

func (e Entity) GetID() int64 {
	return e.ID
}

func (e Entity) GetRemoteID() string {
	return e.RemoteID
}

// IsValid reports whether the entity carries a server-assigned id.
func (e Entity) IsValid() bool {
	return e.ID >= 0
}

// AddAttribute stores a, replacing any attribute of the same type.
func (e *Entity) AddAttribute(a Attribute) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]Attribute)
	}
	e.Attributes[a.Type()] = a
}

// Attribute returns the attribute of the given type.
func (e Entity) Attribute(kind string) (Attribute, bool) {
	a, ok := e.Attributes[kind]
	return a, ok
}

// RemoveAttribute drops the attribute of the given type.
func (e *Entity) RemoveAttribute(kind string) {
	delete(e.Attributes, kind)
}

// AttributeTypes returns the attribute types in ascending order.
func (e Entity) AttributeTypes() []string {
	types := make([]string, 0, len(e.Attributes))
	for kind := range e.Attributes {
		types = append(types, kind)
	}
	sort.Strings(types)
	return types
}

// Ancestors returns the parent chain from the root down to the immediate parent.
func (e Entity) Ancestors() []Collection {
	var chain []Collection
	seen := make(map[*Collection]bool)
	for p := e.Parent; p != nil && !seen[p]; p = p.Parent {
		seen[p] = true
		chain = append(chain, *p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
