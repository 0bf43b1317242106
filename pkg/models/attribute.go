package models

import (
	"fmt"
	"sync"

	"github.com/kdepim/akonadi.go/pkg/imapparser"
)

// Attribute is a typed blob attached to an entity. The codec never looks
// inside the serialized form.
type Attribute interface {
	Type() string
	Serialized() []byte
	Deserialize(data []byte) error
}

// RawAttribute keeps the serialized form of an attribute nobody registered a type for.
type RawAttribute struct {
	Kind  string `json:"type"`
	Value []byte `json:"value"`
}

func (a *RawAttribute) Type() string {
	return a.Kind
}

func (a *RawAttribute) Serialized() []byte {
	return a.Value
}

func (a *RawAttribute) Deserialize(data []byte) error {
	a.Value = append([]byte(nil), data...)
	return nil
}

// DisplayAttributeType is the type name of DisplayAttribute.
const DisplayAttributeType = "ENTITYDISPLAY"

// DisplayAttribute carries the user-visible name and icon of an entity.
type DisplayAttribute struct {
	DisplayName string `json:"displayName"`
	IconName    string `json:"iconName,omitempty"`
}

func (a *DisplayAttribute) Type() string {
	return DisplayAttributeType
}

func (a *DisplayAttribute) Serialized() []byte {
	l := [][]byte{
		imapparser.Quote([]byte(a.DisplayName)),
		imapparser.Quote([]byte(a.IconName)),
	}
	out := append([]byte{'('}, imapparser.Join(l, " ")...)
	return append(out, ')')
}

func (a *DisplayAttribute) Deserialize(data []byte) error {
	l, _, err := imapparser.ParseParenthesizedList(data, 0)
	if err != nil {
		return fmt.Errorf("display attribute: %w", err)
	}
	var d DisplayAttribute
	if len(l) > 0 {
		d.DisplayName = string(l[0])
	}
	if len(l) > 1 {
		d.IconName = string(l[1])
	}
	*a = d
	return nil
}

// AttributeFactory creates attribute instances by type name. Types without a
// registered constructor are created as RawAttribute.
type AttributeFactory struct {
	mu    sync.RWMutex
	ctors map[string]func() Attribute
}

// NewAttributeFactory returns a factory that knows DisplayAttribute.
func NewAttributeFactory() *AttributeFactory {
	f := &AttributeFactory{ctors: make(map[string]func() Attribute)}
	f.Register(DisplayAttributeType, func() Attribute { return &DisplayAttribute{} })
	return f
}

// Register makes Create return ctor() for kind.
func (f *AttributeFactory) Register(kind string, ctor func() Attribute) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[kind] = ctor
}

// Create returns a fresh attribute for kind.
func (f *AttributeFactory) Create(kind string) Attribute {
	f.mu.RLock()
	ctor, ok := f.ctors[kind]
	f.mu.RUnlock()
	if ok {
		return ctor()
	}
	return &RawAttribute{Kind: kind}
}

// Deserialize creates an attribute for kind and loads data into it.
func (f *AttributeFactory) Deserialize(kind string, data []byte) (Attribute, error) {
	a := f.Create(kind)
	if err := a.Deserialize(data); err != nil {
		return nil, fmt.Errorf("attribute %s: %w", kind, err)
	}
	return a, nil
}
