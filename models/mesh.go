package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
)

// MeshInfos identifies a static mesh asset.
type MeshInfos struct {
	Name     string `json:"name"     yaml:"name"`
	MeshPath string `json:"meshPath" yaml:"meshPath"`
}

// Mesh is a static mesh placed in the level. Its attributes are mirrored on
// the live game actor once spawned.
type Mesh struct {
	Base

	MeshInfos         MeshInfos
	EnableCollisions  bool
	EnablePhysics     bool
	EnableStickyWalls bool

	// Instance is the live game actor. It is never persisted nor cloned.
	Instance host.MeshActor
}

func NewMesh(infos MeshInfos) *Mesh {
	name := "Mesh"
	if infos.Name != "" {
		name = "Mesh " + infos.Name
	}

	return &Mesh{
		Base:      newBase(name),
		MeshInfos: infos,
	}
}

func (m *Mesh) Kind() ObjectType {
	return ObjectTypeMesh
}

func (m *Mesh) IsSpawned() bool {
	return m.Instance != nil
}

// SpawnInstance spawns the game actor of the mesh and applies the mesh
// attributes to it.
func (m *Mesh) SpawnInstance(h host.Host) error {
	if !h.IsInGame() {
		return errors.New("must be in a game to spawn objects").
			WithTag("object_name", m.Name)
	}

	if m.MeshInfos.MeshPath == "" {
		return errors.New("mesh path is empty").
			WithTag("object_name", m.Name)
	}

	instance, err := h.SpawnMesh(m.MeshInfos.MeshPath)
	if err != nil {
		return errors.New("spawning mesh failed").
			WithTag("object_name", m.Name).
			WithTag("mesh_path", m.MeshInfos.MeshPath).
			Wrap(err)
	}

	m.Instance = instance
	m.SetLocation(m.Location)
	m.SetRotation(m.Rotation)
	m.SetScale(m.Scale)
	m.SetCollisions(m.EnableCollisions)
	m.SetPhysics(m.EnablePhysics)
	if m.EnableStickyWalls {
		m.SetStickyWalls(true)
	}

	logs.WithTag("object_name", m.Name).
		WithTag("mesh_path", m.MeshInfos.MeshPath).
		Debug("mesh spawned")
	return nil
}

// DestroyInstance destroys the game actor, if any.
func (m *Mesh) DestroyInstance() {
	if m.Instance == nil {
		return
	}
	m.Instance.Destroy()
	m.Instance = nil
}

func (m *Mesh) SetLocation(v geometry.Vector) {
	m.Location = v
	if m.Instance != nil {
		m.Instance.SetLocation(v)
	}
}

func (m *Mesh) SetRotation(r geometry.Rotator) {
	m.Rotation = r
	if m.Instance != nil {
		m.Instance.SetRotation(r)
	}
}

// SetScale sets a uniform scale.
func (m *Mesh) SetScale(s float32) {
	m.Scale = s
	if m.Instance != nil {
		m.Instance.SetScale3D(geometry.NewVector(s, s, s))
	}
}

// SetMeshInfos changes the mesh asset and reloads it on the live actor.
func (m *Mesh) SetMeshInfos(infos MeshInfos) {
	m.MeshInfos = infos
	if m.Instance == nil {
		return
	}

	if err := m.Instance.SetStaticMesh(infos.MeshPath); err != nil {
		logs.Warn(errors.New("setting static mesh failed").
			WithTag("object_name", m.Name).
			WithTag("mesh_path", infos.MeshPath).
			Wrap(err))
	}
}

func (m *Mesh) SetCollisions(enabled bool) {
	m.EnableCollisions = enabled
	if m.Instance == nil {
		return
	}

	if err := m.Instance.SetCollisions(enabled); err != nil {
		logs.Warn(errors.New("setting collisions failed").
			WithTag("object_name", m.Name).
			Wrap(err))
	}
}

func (m *Mesh) SetPhysics(enabled bool) {
	m.EnablePhysics = enabled
	if m.Instance != nil {
		m.Instance.SetPhysics(enabled)
	}
}

func (m *Mesh) SetStickyWalls(enabled bool) {
	m.EnableStickyWalls = enabled
	if m.Instance == nil {
		return
	}

	if err := m.Instance.SetStickyWalls(enabled); err != nil {
		logs.Warn(errors.New("setting sticky walls failed").
			WithTag("object_name", m.Name).
			Wrap(err))
	}
}

func (m *Mesh) Clone() Object {
	return m.clone()
}

func (m *Mesh) clone() *Mesh {
	c := *m
	c.Instance = nil
	return &c
}
