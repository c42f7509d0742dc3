package models

import (
	"fmt"

	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/triggers"
)

type CheckpointType uint8

const (
	CheckpointTypeStart CheckpointType = iota
	CheckpointTypeMid
	CheckpointTypeEnd
)

func (t CheckpointType) String() string {
	switch t {
	case CheckpointTypeStart:
		return "Start"
	case CheckpointTypeMid:
		return "Mid"
	case CheckpointTypeEnd:
		return "End"
	default:
		return fmt.Sprintf("CheckpointType(%d)", uint8(t))
	}
}

// Checkpoint is a race checkpoint. Its box volume follows the checkpoint
// transform and cars respawn at its spawn point.
type Checkpoint struct {
	Base

	CheckpointID        int
	Type                CheckpointType
	Volume              *TriggerVolume
	SpawnLocationOffset geometry.Vector
	SpawnRotation       geometry.Rotator
}

func NewCheckpoint(id int) *Checkpoint {
	return &Checkpoint{
		Base:         newBase("Checkpoint"),
		CheckpointID: id,
		Type:         CheckpointTypeMid,
		Volume:       NewBoxVolume(),
	}
}

func (c *Checkpoint) Kind() ObjectType {
	return ObjectTypeCheckpoint
}

func (c *Checkpoint) SetLocation(v geometry.Vector) {
	c.Location = v
	c.Volume.SetLocation(v)
}

func (c *Checkpoint) SetRotation(r geometry.Rotator) {
	c.Rotation = r
	c.Volume.SetRotation(r)
}

// SpawnWorldLocation returns where a car respawns on this checkpoint.
func (c *Checkpoint) SpawnWorldLocation() geometry.Vector {
	return c.Location.Add(c.SpawnLocationOffset)
}

func (c *Checkpoint) SpawnPoint() triggers.SpawnPoint {
	return triggers.SpawnPoint{
		Location: c.SpawnWorldLocation(),
		Rotation: c.SpawnRotation,
	}
}

func (c *Checkpoint) IsStart() bool {
	return c.Type == CheckpointTypeStart
}

func (c *Checkpoint) IsEnd() bool {
	return c.Type == CheckpointTypeEnd
}

func (c *Checkpoint) IsPointInside(p geometry.Vector) bool {
	return c.Volume.IsPointInside(p)
}

func (c *Checkpoint) Clone() Object {
	return c.clone()
}

func (c *Checkpoint) clone() *Checkpoint {
	cc := *c
	cc.Volume = c.Volume.clone()
	return &cc
}
