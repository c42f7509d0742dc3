package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/google/uuid"
)

const (
	ErrTypeObjectNotFound  = "object_not_found"
	ErrTypeWrongObjectKind = "wrong_object_kind"
)

// ObjectManager owns the objects of a level. Objects live in a single arena
// keyed by id; the ordered list and the per-kind indexes only hold ids and
// are updated together with the arena.
type ObjectManager struct {
	// LevelUUID identifies the level content. It changes when a level is
	// loaded.
	LevelUUID string

	// Functions resolves the trigger functions of decoded objects.
	Functions *triggers.Registry

	ids     SequentialIDGenerator
	objects map[ObjectID]Object
	order   []ObjectID
	indexes map[ObjectType][]ObjectID
}

func NewObjectManager(functions *triggers.Registry) *ObjectManager {
	if functions == nil {
		functions = triggers.NewRegistry()
	}

	return &ObjectManager{
		LevelUUID: uuid.NewString(),
		Functions: functions,
		objects:   make(map[ObjectID]Object),
		indexes:   make(map[ObjectType][]ObjectID),
	}
}

// NextCheckpointID returns the checkpoint id given to the next new
// checkpoint. It is above every checkpoint id of the level.
func (m *ObjectManager) NextCheckpointID() int {
	next := 1
	for _, cp := range m.Checkpoints() {
		next = max(next, cp.CheckpointID+1)
	}
	return next
}

// NextRingID returns the ring id given to the next new ring. It is above
// every ring id of the level.
func (m *ObjectManager) NextRingID() int {
	next := 1
	for _, r := range m.Rings() {
		next = max(next, r.RingID+1)
	}
	return next
}

// NewObject returns a default object of the given kind without adding it.
func (m *ObjectManager) NewObject(t ObjectType) (Object, error) {
	switch t {
	case ObjectTypeMesh:
		return NewMesh(MeshInfos{}), nil
	case ObjectTypeTriggerVolume:
		return NewBoxVolume(), nil
	case ObjectTypeCheckpoint:
		return NewCheckpoint(m.NextCheckpointID()), nil
	case ObjectTypeRing:
		return NewSmallRing(m.NextRingID()), nil
	default:
		return nil, errors.New("unsupported object type").
			WithType(ErrTypeUnknownObjectType).
			WithTag("object_type", uint8(t))
	}
}

// AddObjectOfType creates a default object of the given kind and adds it.
func (m *ObjectManager) AddObjectOfType(t ObjectType) (Object, error) {
	o, err := m.NewObject(t)
	if err != nil {
		return nil, err
	}
	return m.AddObject(o), nil
}

// AddObject adds o with a new id. Adding an object already owned by the
// manager does nothing.
func (m *ObjectManager) AddObject(o Object) Object {
	b := o.Common()
	if existing, ok := m.objects[b.ID]; ok && existing == o {
		return o
	}

	b.ID = m.ids.New()
	m.objects[b.ID] = o
	m.order = append(m.order, b.ID)
	m.indexes[o.Kind()] = append(m.indexes[o.Kind()], b.ID)

	instrumentObjectAdded(o.Kind())
	logs.WithTag("object_id", b.ID).
		WithTag("object_name", b.Name).
		WithTag("object_type", o.Kind()).
		Debug("object added")
	return o
}

// CopyObject adds a deep copy of the object with the given id. The copy name
// gets a " (Copy)" suffix. Copied checkpoints and rings get a new checkpoint
// or ring id.
func (m *ObjectManager) CopyObject(id ObjectID) (Object, error) {
	o, ok := m.objects[id]
	if !ok {
		return nil, notFound(id)
	}

	c := o.Clone()
	c.Common().Name += " (Copy)"
	switch c := c.(type) {
	case *Checkpoint:
		c.CheckpointID = m.NextCheckpointID()
	case *Ring:
		c.RingID = m.NextRingID()
	}
	return m.AddObject(c), nil
}

// RemoveObject removes the object with the given id and destroys its game
// actors.
func (m *ObjectManager) RemoveObject(id ObjectID) error {
	o, ok := m.objects[id]
	if !ok {
		return notFound(id)
	}

	delete(m.objects, id)
	m.order = removeID(m.order, id)
	m.indexes[o.Kind()] = removeID(m.indexes[o.Kind()], id)
	destroyInstances(o)

	instrumentObjectRemoved(o.Kind())
	logs.WithTag("object_id", id).
		WithTag("object_name", o.Common().Name).
		WithTag("object_type", o.Kind()).
		Info("object removed")
	return nil
}

// RemoveObjectAt removes the object at the given position of Objects.
func (m *ObjectManager) RemoveObjectAt(index int) error {
	if index < 0 || index >= len(m.order) {
		return errors.New("object index out of range").
			WithType(ErrTypeObjectNotFound).
			WithTag("index", index)
	}
	return m.RemoveObject(m.order[index])
}

// ClearObjects removes every object.
func (m *ObjectManager) ClearObjects() {
	for _, id := range m.order {
		o := m.objects[id]
		destroyInstances(o)
		instrumentObjectRemoved(o.Kind())
	}

	m.objects = make(map[ObjectID]Object)
	m.order = nil
	m.indexes = make(map[ObjectType][]ObjectID)
}

// Replace swaps the whole content for the given objects and renews the
// level uuid.
func (m *ObjectManager) Replace(objects []Object) {
	m.ClearObjects()
	for _, o := range objects {
		m.AddObject(o)
	}
	m.LevelUUID = uuid.NewString()
}

// ConvertTriggerVolume replaces the trigger volume with the given id by a
// volume of another shape. The new volume keeps the id and its position in
// every list.
func (m *ObjectManager) ConvertTriggerVolume(id ObjectID, t TriggerVolumeType) (*TriggerVolume, error) {
	o, ok := m.objects[id]
	if !ok {
		return nil, notFound(id)
	}

	v, ok := o.(*TriggerVolume)
	if !ok {
		return nil, errors.New("object is not a trigger volume").
			WithType(ErrTypeWrongObjectKind).
			WithTag("object_id", id).
			WithTag("object_type", o.Kind())
	}

	nv, err := ConvertTriggerVolume(v, t)
	if err != nil {
		return nil, err
	}

	m.objects[id] = nv
	return nv, nil
}

func (m *ObjectManager) Object(id ObjectID) (Object, bool) {
	o, ok := m.objects[id]
	return o, ok
}

// IndexOf returns the position of the object in Objects, or -1.
func (m *ObjectManager) IndexOf(id ObjectID) int {
	for i, oid := range m.order {
		if oid == id {
			return i
		}
	}
	return -1
}

func (m *ObjectManager) Len() int {
	return len(m.order)
}

// Objects returns every object in creation order.
func (m *ObjectManager) Objects() []Object {
	objects := make([]Object, len(m.order))
	for i, id := range m.order {
		objects[i] = m.objects[id]
	}
	return objects
}

func (m *ObjectManager) Meshes() []*Mesh {
	return ofKind[*Mesh](m, ObjectTypeMesh)
}

func (m *ObjectManager) TriggerVolumes() []*TriggerVolume {
	return ofKind[*TriggerVolume](m, ObjectTypeTriggerVolume)
}

func (m *ObjectManager) Checkpoints() []*Checkpoint {
	return ofKind[*Checkpoint](m, ObjectTypeCheckpoint)
}

func (m *ObjectManager) Rings() []*Ring {
	return ofKind[*Ring](m, ObjectTypeRing)
}

func ofKind[T Object](m *ObjectManager, kind ObjectType) []T {
	ids := m.indexes[kind]
	objects := make([]T, 0, len(ids))
	for _, id := range ids {
		if o, ok := m.objects[id].(T); ok {
			objects = append(objects, o)
		}
	}
	return objects
}

func destroyInstances(o Object) {
	switch o := o.(type) {
	case *Mesh:
		o.DestroyInstance()
	case *Ring:
		o.Mesh.DestroyInstance()
	}
}

func removeID(ids []ObjectID, id ObjectID) []ObjectID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func notFound(id ObjectID) error {
	return errors.New("object not found").
		WithType(ErrTypeObjectNotFound).
		WithTag("object_id", id)
}
