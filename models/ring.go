package models

import (
	"github.com/aukilabs/ringsmapeditor/geometry"
)

const (
	SmallRingMeshName = "Ring Small"
	SmallRingMeshPath = "ringsmapeditor.prop_ring"
)

// Ring is a gate cars must fly through. The inner cylinder marks a valid
// pass and the outer box surrounds it; touching the outer box without having
// passed the inner one is a failure.
type Ring struct {
	Base

	RingID int
	Mesh   *Mesh

	In               *TriggerVolume
	InOffsetLocation geometry.Vector
	InOffsetRotation geometry.Rotator

	Out               *TriggerVolume
	OutOffsetLocation geometry.Vector
	OutOffsetRotation geometry.Rotator
}

func NewRing(id int) *Ring {
	mesh := NewMesh(MeshInfos{})
	mesh.Name = "Ring Mesh"
	mesh.EnableCollisions = true

	r := &Ring{
		Base:   newBase("Ring"),
		RingID: id,
		Mesh:   mesh,
		In:     NewCylinderVolume(),
		Out:    NewBoxVolume(),
	}
	r.UpdateSensors()
	return r
}

// NewSmallRing returns the small ring preset.
func NewSmallRing(id int) *Ring {
	r := NewRing(id)
	r.Mesh.MeshInfos = MeshInfos{Name: SmallRingMeshName, MeshPath: SmallRingMeshPath}

	r.InOffsetLocation = geometry.NewVector(0, -35, 0)
	r.InOffsetRotation = geometry.NewRotator(0, 0, 16400)
	r.In.Geometry = &CylinderGeometry{Radius: 195, Height: 15}

	r.OutOffsetLocation = geometry.NewVector(0, -90, 0)
	r.Out.Geometry = &BoxGeometry{Size: geometry.NewVector(640, 60, 640)}

	r.UpdateSensors()
	return r
}

func (r *Ring) Kind() ObjectType {
	return ObjectTypeRing
}

func (r *Ring) SetLocation(v geometry.Vector) {
	r.Location = v
	r.Mesh.SetLocation(v)
	r.UpdateSensors()
}

func (r *Ring) SetRotation(rot geometry.Rotator) {
	r.Rotation = rot
	r.Mesh.SetRotation(rot)
	r.UpdateSensors()
}

// UpdateSensors places both sensors at their offsets in the ring frame.
func (r *Ring) UpdateSensors() {
	q := r.Rotation.Quat()

	r.In.SetLocation(r.Location.Add(geometry.RotateVector(r.InOffsetLocation, q)))
	r.In.SetRotation(r.InOffsetRotation.Add(r.Rotation))

	r.Out.SetLocation(r.Location.Add(geometry.RotateVector(r.OutOffsetLocation, q)))
	r.Out.SetRotation(r.OutOffsetRotation.Add(r.Rotation))
}

func (r *Ring) Clone() Object {
	return r.clone()
}

func (r *Ring) clone() *Ring {
	c := *r
	c.Mesh = r.Mesh.clone()
	c.In = r.In.clone()
	c.Out = r.Out.clone()
	c.UpdateSensors()
	return &c
}
