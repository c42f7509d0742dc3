package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeUnknownObjectType        = "unknown_object_type"
	ErrTypeUnknownTriggerVolumeType = "unknown_trigger_volume_type"
	ErrTypeMalformedObject          = "malformed_object"
)

type objectJSON struct {
	ObjectType ObjectType       `json:"objectType"`
	Name       string           `json:"name"`
	Location   geometry.Vector  `json:"location"`
	Rotation   geometry.Rotator `json:"rotation"`
	Scale      *float32         `json:"scale"`
}

func newObjectJSON(kind ObjectType, b *Base) objectJSON {
	scale := b.Scale
	return objectJSON{
		ObjectType: kind,
		Name:       b.Name,
		Location:   b.Location,
		Rotation:   b.Rotation,
		Scale:      &scale,
	}
}

func (o objectJSON) base() Base {
	b := Base{
		Name:     o.Name,
		Location: o.Location,
		Rotation: o.Rotation,
		Scale:    1,
	}
	if o.Scale != nil {
		b.Scale = *o.Scale
	}
	return b
}

type meshJSON struct {
	objectJSON
	MeshInfos         MeshInfos `json:"meshInfos"`
	EnableCollisions  bool      `json:"enableCollisions"`
	EnablePhysics     bool      `json:"enablePhysics"`
	EnableStickyWalls bool      `json:"enableStickyWalls"`
}

type triggerVolumeJSON struct {
	objectJSON
	TriggerVolumeType *TriggerVolumeType `json:"triggerVolumeType"`
	Size              *geometry.Vector   `json:"size,omitempty"`
	Radius            *float32           `json:"radius,omitempty"`
	Height            *float32           `json:"height,omitempty"`
	OnTouchCallback   json.RawMessage    `json:"onTouchCallback"`
}

type checkpointJSON struct {
	objectJSON
	CheckpointID        int              `json:"checkpointId"`
	CheckpointType      CheckpointType   `json:"checkpointType"`
	TriggerVolume       json.RawMessage  `json:"triggerVolume"`
	SpawnLocationOffset geometry.Vector  `json:"spawnLocation_offset"`
	SpawnRotation       geometry.Rotator `json:"spawnRotation"`
}

type ringJSON struct {
	objectJSON
	RingID                         int              `json:"ringId"`
	Mesh                           json.RawMessage  `json:"mesh"`
	TriggerVolumeIn                json.RawMessage  `json:"triggerVolumeIn"`
	TriggerVolumeInOffsetLocation  geometry.Vector  `json:"triggerVolumeIn_offset_location"`
	TriggerVolumeInOffsetRotation  geometry.Rotator `json:"triggerVolumeIn_offset_rotation"`
	TriggerVolumeOut               json.RawMessage  `json:"triggerVolumeOut"`
	TriggerVolumeOutOffsetLocation geometry.Vector  `json:"triggerVolumeOut_offset_location"`
	TriggerVolumeOutOffsetRotation geometry.Rotator `json:"triggerVolumeOut_offset_rotation"`
}

func (m *Mesh) MarshalJSON() ([]byte, error) {
	return json.Marshal(meshJSON{
		objectJSON:        newObjectJSON(ObjectTypeMesh, &m.Base),
		MeshInfos:         m.MeshInfos,
		EnableCollisions:  m.EnableCollisions,
		EnablePhysics:     m.EnablePhysics,
		EnableStickyWalls: m.EnableStickyWalls,
	})
}

func (v *TriggerVolume) MarshalJSON() ([]byte, error) {
	volumeType := v.VolumeType()
	j := triggerVolumeJSON{
		objectJSON:        newObjectJSON(ObjectTypeTriggerVolume, &v.Base),
		TriggerVolumeType: &volumeType,
		OnTouchCallback:   json.RawMessage("null"),
	}

	switch g := v.Geometry.(type) {
	case *BoxGeometry:
		size := g.Size
		j.Size = &size
	case *CylinderGeometry:
		radius, height := g.Radius, g.Height
		j.Radius = &radius
		j.Height = &height
	}

	if v.OnTouch != nil {
		callback, err := json.Marshal(v.OnTouch)
		if err != nil {
			return nil, errors.New("encoding trigger function failed").
				WithTag("object_name", v.Name).
				Wrap(err)
		}
		j.OnTouchCallback = callback
	}

	return json.Marshal(j)
}

func (c *Checkpoint) MarshalJSON() ([]byte, error) {
	volume, err := c.Volume.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return json.Marshal(checkpointJSON{
		objectJSON:          newObjectJSON(ObjectTypeCheckpoint, &c.Base),
		CheckpointID:        c.CheckpointID,
		CheckpointType:      c.Type,
		TriggerVolume:       volume,
		SpawnLocationOffset: c.SpawnLocationOffset,
		SpawnRotation:       c.SpawnRotation,
	})
}

func (r *Ring) MarshalJSON() ([]byte, error) {
	mesh, err := r.Mesh.MarshalJSON()
	if err != nil {
		return nil, err
	}

	in, err := r.In.MarshalJSON()
	if err != nil {
		return nil, err
	}

	out, err := r.Out.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return json.Marshal(ringJSON{
		objectJSON:                     newObjectJSON(ObjectTypeRing, &r.Base),
		RingID:                         r.RingID,
		Mesh:                           mesh,
		TriggerVolumeIn:                in,
		TriggerVolumeInOffsetLocation:  r.InOffsetLocation,
		TriggerVolumeInOffsetRotation:  r.InOffsetRotation,
		TriggerVolumeOut:               out,
		TriggerVolumeOutOffsetLocation: r.OutOffsetLocation,
		TriggerVolumeOutOffsetRotation: r.OutOffsetRotation,
	})
}

// DecodeObject decodes an object from its JSON form. The objectType tag is
// read first and selects the kind. Trigger functions are resolved with the
// given registry.
func DecodeObject(data []byte, functions *triggers.Registry) (Object, error) {
	var header struct {
		ObjectType *ObjectType `json:"objectType"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, malformed(err)
	}
	if header.ObjectType == nil {
		return nil, errors.New("object type is missing").
			WithType(ErrTypeMalformedObject)
	}

	switch *header.ObjectType {
	case ObjectTypeMesh:
		return decodeMesh(data)
	case ObjectTypeTriggerVolume:
		return decodeTriggerVolume(data, functions)
	case ObjectTypeCheckpoint:
		return decodeCheckpoint(data, functions)
	case ObjectTypeRing:
		return decodeRing(data, functions)
	default:
		return nil, errors.New("unknown object type").
			WithType(ErrTypeUnknownObjectType).
			WithTag("object_type", uint8(*header.ObjectType))
	}
}

func decodeMesh(data []byte) (*Mesh, error) {
	var j meshJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, malformed(err)
	}

	return &Mesh{
		Base:              j.base(),
		MeshInfos:         j.MeshInfos,
		EnableCollisions:  j.EnableCollisions,
		EnablePhysics:     j.EnablePhysics,
		EnableStickyWalls: j.EnableStickyWalls,
	}, nil
}

func decodeTriggerVolume(data []byte, functions *triggers.Registry) (*TriggerVolume, error) {
	var j triggerVolumeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, malformed(err)
	}
	if j.TriggerVolumeType == nil {
		return nil, errors.New("trigger volume type is missing").
			WithType(ErrTypeMalformedObject).
			WithTag("object_name", j.Name)
	}

	v := &TriggerVolume{Base: j.base()}

	switch *j.TriggerVolumeType {
	case TriggerVolumeTypeBox:
		if j.Size == nil {
			return nil, missingField(j.Name, "size")
		}
		v.Geometry = &BoxGeometry{Size: *j.Size}

	case TriggerVolumeTypeCylinder:
		if j.Radius == nil {
			return nil, missingField(j.Name, "radius")
		}
		if j.Height == nil {
			return nil, missingField(j.Name, "height")
		}
		v.Geometry = &CylinderGeometry{Radius: *j.Radius, Height: *j.Height}

	default:
		return nil, errors.New("unknown trigger volume type").
			WithType(ErrTypeUnknownTriggerVolumeType).
			WithTag("object_name", j.Name).
			WithTag("trigger_volume_type", uint8(*j.TriggerVolumeType))
	}

	if functions == nil {
		functions = triggers.NewRegistry()
	}
	callback, err := functions.Decode(j.OnTouchCallback)
	if err != nil {
		return nil, err
	}
	v.OnTouch = callback

	return v, nil
}

func decodeCheckpoint(data []byte, functions *triggers.Registry) (*Checkpoint, error) {
	var j checkpointJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, malformed(err)
	}
	if len(j.TriggerVolume) == 0 {
		return nil, missingField(j.Name, "triggerVolume")
	}

	volume, err := decodeTriggerVolume(j.TriggerVolume, functions)
	if err != nil {
		return nil, err
	}
	if volume.VolumeType() != TriggerVolumeTypeBox {
		return nil, errors.New("checkpoint volume must be a box").
			WithType(ErrTypeMalformedObject).
			WithTag("object_name", j.Name)
	}

	c := &Checkpoint{
		Base:                j.base(),
		CheckpointID:        j.CheckpointID,
		Type:                j.CheckpointType,
		Volume:              volume,
		SpawnLocationOffset: j.SpawnLocationOffset,
		SpawnRotation:       j.SpawnRotation,
	}
	c.Volume.SetLocation(c.Location)
	c.Volume.SetRotation(c.Rotation)
	return c, nil
}

func decodeRing(data []byte, functions *triggers.Registry) (*Ring, error) {
	var j ringJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, malformed(err)
	}

	if len(j.Mesh) == 0 {
		return nil, missingField(j.Name, "mesh")
	}
	mesh, err := decodeMesh(j.Mesh)
	if err != nil {
		return nil, err
	}

	if len(j.TriggerVolumeIn) == 0 {
		return nil, missingField(j.Name, "triggerVolumeIn")
	}
	in, err := decodeTriggerVolume(j.TriggerVolumeIn, functions)
	if err != nil {
		return nil, err
	}

	if len(j.TriggerVolumeOut) == 0 {
		return nil, missingField(j.Name, "triggerVolumeOut")
	}
	out, err := decodeTriggerVolume(j.TriggerVolumeOut, functions)
	if err != nil {
		return nil, err
	}

	r := &Ring{
		Base:              j.base(),
		RingID:            j.RingID,
		Mesh:              mesh,
		In:                in,
		InOffsetLocation:  j.TriggerVolumeInOffsetLocation,
		InOffsetRotation:  j.TriggerVolumeInOffsetRotation,
		Out:               out,
		OutOffsetLocation: j.TriggerVolumeOutOffsetLocation,
		OutOffsetRotation: j.TriggerVolumeOutOffsetRotation,
	}
	r.UpdateSensors()
	return r, nil
}

func malformed(err error) error {
	return errors.New("decoding object failed").
		WithType(ErrTypeMalformedObject).
		Wrap(err)
}

func missingField(objectName, field string) error {
	return errors.New("object field is missing").
		WithType(ErrTypeMalformedObject).
		WithTag("object_name", objectName).
		WithTag("field", field)
}
