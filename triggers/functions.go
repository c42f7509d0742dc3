package triggers

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/segmentio/encoding/json"
)

// SetLocation moves the actor to a fixed location.
type SetLocation struct {
	Location geometry.Vector
}

func (f *SetLocation) Name() string        { return "Set Location" }
func (f *SetLocation) Description() string { return "Sets the actor's location" }

func (f *SetLocation) Execute(ctx Context, actor host.Actor) {
	actor.SetLocation(f.Location)
}

func (f *SetLocation) Clone() Function {
	c := *f
	return &c
}

func (f *SetLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string          `json:"name"`
		Location geometry.Vector `json:"location"`
	}{
		Name:     f.Name(),
		Location: f.Location,
	})
}

func (f *SetLocation) UnmarshalJSON(data []byte) error {
	var v struct {
		Location geometry.Vector `json:"location"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Location = v.Location
	return nil
}

// SetRotation turns the actor to a fixed rotation.
type SetRotation struct {
	Rotation geometry.Rotator
}

func (f *SetRotation) Name() string        { return "Set Rotation" }
func (f *SetRotation) Description() string { return "Sets the actor's rotation" }

func (f *SetRotation) Execute(ctx Context, actor host.Actor) {
	actor.SetRotation(f.Rotation)
}

func (f *SetRotation) Clone() Function {
	c := *f
	return &c
}

func (f *SetRotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string           `json:"name"`
		Rotation geometry.Rotator `json:"rotation"`
	}{
		Name:     f.Name(),
		Rotation: f.Rotation,
	})
}

func (f *SetRotation) UnmarshalJSON(data []byte) error {
	var v struct {
		Rotation geometry.Rotator `json:"rotation"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Rotation = v.Rotation
	return nil
}

// Destroy destroys the actor.
type Destroy struct{}

func (f *Destroy) Name() string        { return "Destroy" }
func (f *Destroy) Description() string { return "Destroys the actor" }

func (f *Destroy) Execute(ctx Context, actor host.Actor) {
	actor.Destroy()
}

func (f *Destroy) Clone() Function {
	return &Destroy{}
}

func (f *Destroy) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{
		Name: f.Name(),
	})
}

func (f *Destroy) UnmarshalJSON(data []byte) error {
	return nil
}

// TeleportToCheckpoint moves the actor to the spawn point of either the
// checkpoint it crossed last or the checkpoint at a fixed list index.
type TeleportToCheckpoint struct {
	UseCurrentCheckpoint bool
	CheckpointIndex      int
}

func (f *TeleportToCheckpoint) Name() string { return "Teleport To Checkpoint" }
func (f *TeleportToCheckpoint) Description() string {
	return "Teleports the actor to a checkpoint"
}

func (f *TeleportToCheckpoint) Execute(ctx Context, actor host.Actor) {
	if ctx.Checkpoints == nil {
		logs.Warn(errors.New("teleport to checkpoint without race context"))
		return
	}

	if f.UseCurrentCheckpoint {
		if spawn, ok := ctx.Checkpoints.CurrentCheckpoint(); ok {
			placeAt(actor, spawn)
			return
		}
	}

	spawn, ok := ctx.Checkpoints.CheckpointAt(f.CheckpointIndex)
	if !ok {
		logs.Warn(errors.New("invalid checkpoint index").
			WithTag("checkpoint_index", f.CheckpointIndex))
		return
	}
	placeAt(actor, spawn)
}

// placeAt puts the actor on the spawn point with no velocity.
func placeAt(actor host.Actor, spawn SpawnPoint) {
	actor.SetLocation(spawn.Location)
	actor.SetRotation(spawn.Rotation)
	actor.SetVelocity(geometry.Vector{})
}

func (f *TeleportToCheckpoint) Clone() Function {
	c := *f
	return &c
}

func (f *TeleportToCheckpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name                 string `json:"name"`
		UseCurrentCheckpoint bool   `json:"useCurrentCheckpoint"`
		CheckpointID         int    `json:"checkpointId"`
	}{
		Name:                 f.Name(),
		UseCurrentCheckpoint: f.UseCurrentCheckpoint,
		CheckpointID:         f.CheckpointIndex,
	})
}

func (f *TeleportToCheckpoint) UnmarshalJSON(data []byte) error {
	var v struct {
		UseCurrentCheckpoint bool `json:"useCurrentCheckpoint"`
		CheckpointID         int  `json:"checkpointId"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.UseCurrentCheckpoint = v.UseCurrentCheckpoint
	f.CheckpointIndex = v.CheckpointID
	return nil
}
