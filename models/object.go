package models

import (
	"fmt"

	"github.com/aukilabs/ringsmapeditor/geometry"
)

// ObjectType is the serialized tag of an object kind.
type ObjectType uint8

const (
	ObjectTypeNone ObjectType = iota
	ObjectTypeMesh
	ObjectTypeTriggerVolume
	ObjectTypeCheckpoint
	ObjectTypeRing
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeNone:
		return "None"
	case ObjectTypeMesh:
		return "Mesh"
	case ObjectTypeTriggerVolume:
		return "Trigger Volume"
	case ObjectTypeCheckpoint:
		return "Checkpoint"
	case ObjectTypeRing:
		return "Ring"
	default:
		return fmt.Sprintf("ObjectType(%d)", uint8(t))
	}
}

// Object is a level object. It is implemented by *Mesh, *TriggerVolume,
// *Checkpoint and *Ring only.
type Object interface {
	Kind() ObjectType

	// Common returns the attributes shared by every object kind.
	Common() *Base

	SetLocation(geometry.Vector)
	SetRotation(geometry.Rotator)

	// Clone returns a deep copy. Owned sub-objects are copied and live game
	// actors are not shared.
	Clone() Object

	MarshalJSON() ([]byte, error)

	sealed()
}

// Base holds the attributes shared by every object kind.
type Base struct {
	ID       ObjectID
	Name     string
	Location geometry.Vector
	Rotation geometry.Rotator
	Scale    float32
}

func newBase(name string) Base {
	return Base{Name: name, Scale: 1}
}

func (b *Base) Common() *Base {
	return b
}

func (b *Base) SetLocation(v geometry.Vector) {
	b.Location = v
}

func (b *Base) SetRotation(r geometry.Rotator) {
	b.Rotation = r
}

func (b *Base) sealed() {}
