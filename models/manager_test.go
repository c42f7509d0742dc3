package models

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/simhost"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/stretchr/testify/require"
)

func requireConsistent(t *testing.T, m *ObjectManager) {
	counts := make(map[ObjectType]int)
	for _, o := range m.Objects() {
		counts[o.Kind()]++

		got, ok := m.Object(o.Common().ID)
		require.True(t, ok)
		require.Same(t, o, got)
	}

	require.Len(t, m.Meshes(), counts[ObjectTypeMesh])
	require.Len(t, m.TriggerVolumes(), counts[ObjectTypeTriggerVolume])
	require.Len(t, m.Checkpoints(), counts[ObjectTypeCheckpoint])
	require.Len(t, m.Rings(), counts[ObjectTypeRing])
}

func TestObjectManagerAddObjectOfType(t *testing.T) {
	m := NewObjectManager(nil)

	for _, kind := range []ObjectType{
		ObjectTypeMesh,
		ObjectTypeTriggerVolume,
		ObjectTypeCheckpoint,
		ObjectTypeCheckpoint,
		ObjectTypeRing,
	} {
		o, err := m.AddObjectOfType(kind)
		require.NoError(t, err)
		require.Equal(t, kind, o.Kind())
		require.NotZero(t, o.Common().ID)
	}

	require.Equal(t, 5, m.Len())
	require.Equal(t, 1, m.Checkpoints()[0].CheckpointID)
	require.Equal(t, 2, m.Checkpoints()[1].CheckpointID)
	require.Equal(t, 1, m.Rings()[0].RingID)
	require.Equal(t, 3, m.NextCheckpointID())
	require.Equal(t, 2, m.NextRingID())
	requireConsistent(t, m)

	_, err := m.AddObjectOfType(ObjectTypeNone)
	require.True(t, errors.IsType(err, ErrTypeUnknownObjectType))
}

func TestObjectManagerAddObjectTwice(t *testing.T) {
	m := NewObjectManager(nil)
	v := NewBoxVolume()

	m.AddObject(v)
	id := v.ID
	m.AddObject(v)

	require.Equal(t, id, v.ID)
	require.Equal(t, 1, m.Len())
	requireConsistent(t, m)
}

func TestObjectManagerCopyObject(t *testing.T) {
	m := NewObjectManager(nil)
	o, err := m.AddObjectOfType(ObjectTypeCheckpoint)
	require.NoError(t, err)

	c, err := m.CopyObject(o.Common().ID)
	require.NoError(t, err)
	require.Equal(t, "Checkpoint (Copy)", c.Common().Name)
	require.NotEqual(t, o.Common().ID, c.Common().ID)
	require.Len(t, m.Checkpoints(), 2)
	require.Equal(t, 2, c.(*Checkpoint).CheckpointID)
	requireConsistent(t, m)

	ring := m.AddObject(NewSmallRing(m.NextRingID())).(*Ring)
	c, err = m.CopyObject(ring.ID)
	require.NoError(t, err)
	require.Equal(t, 1, ring.RingID)
	require.Equal(t, 2, c.(*Ring).RingID)

	_, err = m.CopyObject(999)
	require.True(t, errors.IsType(err, ErrTypeObjectNotFound))
}

func TestObjectManagerNextIDsAfterRemoval(t *testing.T) {
	m := NewObjectManager(nil)
	for i := 0; i < 3; i++ {
		_, err := m.AddObjectOfType(ObjectTypeRing)
		require.NoError(t, err)
		_, err = m.AddObjectOfType(ObjectTypeCheckpoint)
		require.NoError(t, err)
	}

	require.NoError(t, m.RemoveObject(m.Rings()[0].ID))
	require.NoError(t, m.RemoveObject(m.Checkpoints()[0].ID))
	require.Equal(t, 4, m.NextRingID())
	require.Equal(t, 4, m.NextCheckpointID())

	r, err := m.AddObjectOfType(ObjectTypeRing)
	require.NoError(t, err)
	require.Equal(t, 4, r.(*Ring).RingID)
}

func TestObjectManagerRemoveObject(t *testing.T) {
	h := simhost.New()
	m := NewObjectManager(nil)

	mesh := NewMesh(MeshInfos{Name: "Cube", MeshPath: "props.cube"})
	require.NoError(t, mesh.SpawnInstance(h))
	m.AddObject(mesh)

	ring := NewSmallRing(1)
	require.NoError(t, ring.Mesh.SpawnInstance(h))
	m.AddObject(ring)

	v := m.AddObject(NewBoxVolume())

	require.NoError(t, m.RemoveObject(mesh.ID))
	require.True(t, h.Spawned[0].Destroyed)
	require.Empty(t, m.Meshes())
	requireConsistent(t, m)

	require.NoError(t, m.RemoveObjectAt(0))
	require.True(t, h.Spawned[1].Destroyed)
	require.Empty(t, m.Rings())
	require.Equal(t, []Object{v}, m.Objects())
	requireConsistent(t, m)

	require.True(t, errors.IsType(m.RemoveObject(mesh.ID), ErrTypeObjectNotFound))
	require.True(t, errors.IsType(m.RemoveObjectAt(3), ErrTypeObjectNotFound))

	_, ok := m.Object(mesh.ID)
	require.False(t, ok)
}

func TestObjectManagerClearAndReplace(t *testing.T) {
	h := simhost.New()
	m := NewObjectManager(nil)

	mesh := NewMesh(MeshInfos{Name: "Cube", MeshPath: "props.cube"})
	require.NoError(t, mesh.SpawnInstance(h))
	m.AddObject(mesh)
	m.AddObject(NewCheckpoint(1))

	uuid := m.LevelUUID
	m.Replace([]Object{NewBoxVolume(), NewCylinderVolume()})

	require.True(t, h.Spawned[0].Destroyed)
	require.NotEqual(t, uuid, m.LevelUUID)
	require.Len(t, m.TriggerVolumes(), 2)
	require.Empty(t, m.Meshes())
	require.Empty(t, m.Checkpoints())
	requireConsistent(t, m)

	m.ClearObjects()
	require.Zero(t, m.Len())
	requireConsistent(t, m)
}

func TestObjectManagerConvertTriggerVolume(t *testing.T) {
	m := NewObjectManager(nil)
	m.AddObject(NewCheckpoint(1))

	v := NewBoxVolume()
	v.Name = "Kill zone"
	v.SetLocation(geometry.NewVector(1, 2, 3))
	v.OnTouch = &triggers.Destroy{}
	m.AddObject(v)
	m.AddObject(NewBoxVolume())

	c, err := m.ConvertTriggerVolume(v.ID, TriggerVolumeTypeCylinder)
	require.NoError(t, err)
	require.Equal(t, v.ID, c.ID)
	require.Equal(t, 1, m.IndexOf(c.ID))
	require.Same(t, c, m.TriggerVolumes()[0])
	require.Equal(t, "Kill zone", c.Name)
	require.Equal(t, TriggerVolumeTypeCylinder, c.VolumeType())
	require.NotNil(t, c.OnTouch)
	requireConsistent(t, m)

	_, err = m.ConvertTriggerVolume(m.Checkpoints()[0].ID, TriggerVolumeTypeBox)
	require.True(t, errors.IsType(err, ErrTypeWrongObjectKind))

	_, err = m.ConvertTriggerVolume(v.ID, TriggerVolumeTypeUnknown)
	require.True(t, errors.IsType(err, ErrTypeUnknownTriggerVolumeType))
}
