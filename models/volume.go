package models

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/triggers"
)

// TriggerVolumeType is the serialized tag of a trigger volume shape.
type TriggerVolumeType uint8

const (
	TriggerVolumeTypeUnknown TriggerVolumeType = iota
	TriggerVolumeTypeBox
	TriggerVolumeTypeCylinder
)

func (t TriggerVolumeType) String() string {
	switch t {
	case TriggerVolumeTypeUnknown:
		return "Unknown"
	case TriggerVolumeTypeBox:
		return "Box"
	case TriggerVolumeTypeCylinder:
		return "Cylinder"
	default:
		return fmt.Sprintf("TriggerVolumeType(%d)", uint8(t))
	}
}

const (
	DefaultBoxSize        = 200
	DefaultCylinderRadius = 50
	DefaultCylinderHeight = 100
)

// Geometry is the shape of a trigger volume. It is implemented by
// *BoxGeometry and *CylinderGeometry only.
type Geometry interface {
	VolumeType() TriggerVolumeType
	clone() Geometry
}

// BoxGeometry is a box shape. Size is the full extent along each axis.
type BoxGeometry struct {
	Size geometry.Vector
}

func (g *BoxGeometry) VolumeType() TriggerVolumeType {
	return TriggerVolumeTypeBox
}

func (g *BoxGeometry) clone() Geometry {
	c := *g
	return &c
}

// CylinderGeometry is a cylinder shape standing along its local Z axis.
type CylinderGeometry struct {
	Radius float32
	Height float32
}

func (g *CylinderGeometry) VolumeType() TriggerVolumeType {
	return TriggerVolumeTypeCylinder
}

func (g *CylinderGeometry) clone() Geometry {
	c := *g
	return &c
}

// TriggerVolume is an invisible region that runs a function on the actors
// inside it.
type TriggerVolume struct {
	Base

	Geometry Geometry
	OnTouch  triggers.Function
}

func NewBoxVolume() *TriggerVolume {
	return &TriggerVolume{
		Base: newBase("Trigger Volume Box"),
		Geometry: &BoxGeometry{
			Size: geometry.NewVector(DefaultBoxSize, DefaultBoxSize, DefaultBoxSize),
		},
	}
}

func NewCylinderVolume() *TriggerVolume {
	return &TriggerVolume{
		Base: newBase("Trigger Volume Cylinder"),
		Geometry: &CylinderGeometry{
			Radius: DefaultCylinderRadius,
			Height: DefaultCylinderHeight,
		},
	}
}

// NewTriggerVolume returns a volume of the given shape with default
// dimensions.
func NewTriggerVolume(t TriggerVolumeType) (*TriggerVolume, error) {
	switch t {
	case TriggerVolumeTypeBox:
		return NewBoxVolume(), nil
	case TriggerVolumeTypeCylinder:
		return NewCylinderVolume(), nil
	default:
		return nil, errors.New("unknown trigger volume type").
			WithType(ErrTypeUnknownTriggerVolumeType).
			WithTag("trigger_volume_type", uint8(t))
	}
}

// ConvertTriggerVolume returns a volume of the given shape carrying the id,
// name, location, rotation and a copy of the callback of v. The new shape has
// default dimensions.
func ConvertTriggerVolume(v *TriggerVolume, t TriggerVolumeType) (*TriggerVolume, error) {
	nv, err := NewTriggerVolume(t)
	if err != nil {
		return nil, err
	}

	nv.ID = v.ID
	nv.Name = v.Name
	nv.Location = v.Location
	nv.Rotation = v.Rotation
	nv.Scale = v.Scale
	if v.OnTouch != nil {
		nv.OnTouch = v.OnTouch.Clone()
	}
	return nv, nil
}

func (v *TriggerVolume) Kind() ObjectType {
	return ObjectTypeTriggerVolume
}

func (v *TriggerVolume) VolumeType() TriggerVolumeType {
	if v.Geometry == nil {
		return TriggerVolumeTypeUnknown
	}
	return v.Geometry.VolumeType()
}

// IsPointInside reports whether p lies inside the volume.
func (v *TriggerVolume) IsPointInside(p geometry.Vector) bool {
	switch g := v.Geometry.(type) {
	case *BoxGeometry:
		return geometry.NewBox(v.Location, v.Rotation, g.Size).IsInBox(p)
	case *CylinderGeometry:
		return geometry.NewCylinder(v.Location, v.Rotation, g.Radius, g.Height).IsInCylinder(p)
	default:
		return false
	}
}

// RayIntersects returns the distance at which the given ray hits the volume.
func (v *TriggerVolume) RayIntersects(origin, dir geometry.Vector, maxDist float32) (float32, bool) {
	switch g := v.Geometry.(type) {
	case *BoxGeometry:
		return geometry.NewBox(v.Location, v.Rotation, g.Size).RayIntersects(origin, dir, maxDist)
	case *CylinderGeometry:
		return geometry.NewCylinder(v.Location, v.Rotation, g.Radius, g.Height).RayIntersects(origin, dir, maxDist)
	default:
		return 0, false
	}
}

// Touch runs the callback on the given actor. It reports whether a callback
// ran.
func (v *TriggerVolume) Touch(ctx triggers.Context, actor host.Actor) bool {
	if v.OnTouch == nil {
		return false
	}
	v.OnTouch.Execute(ctx, actor)
	return true
}

func (v *TriggerVolume) Clone() Object {
	return v.clone()
}

func (v *TriggerVolume) clone() *TriggerVolume {
	c := *v
	if v.Geometry != nil {
		c.Geometry = v.Geometry.clone()
	}
	if v.OnTouch != nil {
		c.OnTouch = v.OnTouch.Clone()
	}
	return &c
}
