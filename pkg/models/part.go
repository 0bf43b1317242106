package models

import "strconv"

// PartNamespace tells what kind of data a part identifier refers to.
type PartNamespace int

const (
	PartGlobal PartNamespace = iota
	PartPayload
	PartAttribute
)

func (ns PartNamespace) String() string {
	switch ns {
	case PartPayload:
		return "payload"
	case PartAttribute:
		return "attribute"
	default:
		return "global"
	}
}

// PartIdentifier names a payload part or attribute of an entity.
type PartIdentifier struct {
	Namespace PartNamespace
	Label     string
	// Version is the part format version; 0 is left off the wire.
	Version int
}

func (p PartIdentifier) String() string {
	if p.Version > 0 {
		return p.Namespace.String() + ":" + p.Label + "[" + strconv.Itoa(p.Version) + "]"
	}
	return p.Namespace.String() + ":" + p.Label
}
