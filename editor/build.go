package editor

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/render"
)

// PreviewDistance is the distance between the camera and the Build Mode
// preview.
const PreviewDistance = 1400

const buildModeName = "build"

// BuildMode shows a preview object in front of the camera and adds a copy of
// it to the level on each placement.
type BuildMode struct {
	subMode

	objectType models.ObjectType
	volumeType models.TriggerVolumeType
	meshes     []models.MeshInfos
	meshIndex  int
}

func NewBuildMode(h host.Host, objects *models.ObjectManager, meshes []models.MeshInfos, rates Rates) *BuildMode {
	b := &BuildMode{
		subMode: subMode{
			name:     buildModeName,
			host:     h,
			objects:  objects,
			rates:    rates,
			distance: PreviewDistance,
		},
		objectType: models.ObjectTypeMesh,
		volumeType: models.TriggerVolumeTypeBox,
		meshes:     meshes,
	}

	b.commands = []command{
		{name: "ringsmapeditor_buildmode_place_object", description: "Place the preview object", fn: b.PlaceObject},
		{name: "ringsmapeditor_buildmode_previous_object_type", description: "Preview the previous object type", fn: b.PreviousObjectType},
		{name: "ringsmapeditor_buildmode_next_object_type", description: "Preview the next object type", fn: b.NextObjectType},
		{name: "ringsmapeditor_buildmode_previous_mesh", description: "Preview the previous mesh", fn: b.PreviousMesh},
		{name: "ringsmapeditor_buildmode_next_mesh", description: "Preview the next mesh", fn: b.NextMesh},
		{name: "ringsmapeditor_buildmode_previous_triggervolume", description: "Preview the previous trigger volume type", fn: b.PreviousTriggerVolumeType},
		{name: "ringsmapeditor_buildmode_next_triggervolume", description: "Preview the next trigger volume type", fn: b.NextTriggerVolumeType},
		{name: "ringsmapeditor_buildmode_editing_property_cycle", description: "Edit the next property", fn: b.cycleEditingProperty},
		{name: "ringsmapeditor_buildmode_editing_property_reset", description: "Reset the edited property", fn: b.resetEditingProperty},
	}
	return b
}

func (b *BuildMode) Enable() bool {
	if b.enabled {
		return true
	}
	if !b.enable() {
		return false
	}
	b.replacePreview(b.newPreview())
	return true
}

func (b *BuildMode) Disable() {
	b.replacePreview(nil)
	b.disable()
}

// Preview returns the object that the next placement adds.
func (b *BuildMode) Preview() models.Object {
	return b.preview
}

func (b *BuildMode) ObjectType() models.ObjectType {
	return b.objectType
}

func (b *BuildMode) TriggerVolumeType() models.TriggerVolumeType {
	return b.volumeType
}

// CurrentMesh returns the catalog entry previewed for meshes.
func (b *BuildMode) CurrentMesh() (models.MeshInfos, bool) {
	if b.meshIndex < 0 || b.meshIndex >= len(b.meshes) {
		return models.MeshInfos{}, false
	}
	return b.meshes[b.meshIndex], true
}

// SetMeshes replaces the mesh catalog.
func (b *BuildMode) SetMeshes(meshes []models.MeshInfos) {
	b.meshes = meshes
	b.meshIndex = 0
	if b.enabled && b.objectType == models.ObjectTypeMesh {
		b.replacePreview(b.newPreview())
	}
}

func (b *BuildMode) OnTick(dt float32) {
	if !b.isEditing() || b.preview == nil {
		return
	}

	b.applyEditing(dt)
	b.updateTransform()
}

// PlaceObject adds the preview to the level and continues with a copy.
func (b *BuildMode) PlaceObject() {
	if b.preview == nil {
		logs.Warn(errors.New("no preview to place").WithTag("mode", b.name))
		return
	}

	placed := b.objects.AddObject(b.preview)
	instrumentPlacement(placed.Kind())
	logs.WithTag("object_id", placed.Common().ID).
		WithTag("object_name", placed.Common().Name).
		WithTag("object_type", placed.Kind()).
		Info("object placed")

	next := placed.Clone()
	next.Common().ID = 0

	switch o := next.(type) {
	case *models.Mesh:
		b.spawn(o)
	case *models.Checkpoint:
		o.CheckpointID = b.objects.NextCheckpointID()
	case *models.Ring:
		o.RingID = b.objects.NextRingID()
		b.spawn(o.Mesh)
	}

	b.preview = next
}

func (b *BuildMode) PreviousObjectType() {
	b.setObjectType(b.objectType - 1)
}

func (b *BuildMode) NextObjectType() {
	b.setObjectType(b.objectType + 1)
}

func (b *BuildMode) setObjectType(t models.ObjectType) {
	if t < models.ObjectTypeMesh || t > models.ObjectTypeRing {
		logs.WithTag("mode", b.name).Info("no more object types")
		return
	}

	b.objectType = t
	b.replacePreview(b.newPreview())
	logs.WithTag("object_type", t).Debug("preview object type changed")
}

func (b *BuildMode) PreviousMesh() {
	b.setMeshIndex(b.meshIndex - 1)
}

func (b *BuildMode) NextMesh() {
	b.setMeshIndex(b.meshIndex + 1)
}

func (b *BuildMode) setMeshIndex(i int) {
	if b.objectType != models.ObjectTypeMesh {
		logs.Warn(errors.New("preview is not a mesh").WithTag("object_type", b.objectType))
		return
	}
	if i < 0 || i >= len(b.meshes) {
		logs.WithTag("mode", b.name).Info("no more meshes")
		return
	}

	b.meshIndex = i
	infos := b.meshes[i]

	m, ok := b.preview.(*models.Mesh)
	if !ok {
		b.replacePreview(b.newPreview())
		return
	}

	m.SetMeshInfos(infos)
	m.Name = models.NewMesh(infos).Name
	if !m.IsSpawned() {
		b.spawn(m)
	}
	logs.WithTag("mesh_name", infos.Name).Debug("preview mesh changed")
}

func (b *BuildMode) PreviousTriggerVolumeType() {
	b.setTriggerVolumeType(b.volumeType - 1)
}

func (b *BuildMode) NextTriggerVolumeType() {
	b.setTriggerVolumeType(b.volumeType + 1)
}

func (b *BuildMode) setTriggerVolumeType(t models.TriggerVolumeType) {
	if b.objectType != models.ObjectTypeTriggerVolume {
		logs.Warn(errors.New("preview is not a trigger volume").WithTag("object_type", b.objectType))
		return
	}
	if t < models.TriggerVolumeTypeBox || t > models.TriggerVolumeTypeCylinder {
		logs.WithTag("mode", b.name).Info("no more trigger volume types")
		return
	}

	b.volumeType = t

	v, ok := b.preview.(*models.TriggerVolume)
	if !ok {
		b.replacePreview(b.newPreview())
		return
	}

	converted, err := models.ConvertTriggerVolume(v, t)
	if err != nil {
		logs.Warn(err)
		return
	}
	b.setPreview(converted)
	instrumentConversion(t)
}

// newPreview returns a fresh object of the current type. It returns nil when
// the mesh catalog is empty.
func (b *BuildMode) newPreview() models.Object {
	switch b.objectType {
	case models.ObjectTypeMesh:
		infos, ok := b.CurrentMesh()
		if !ok {
			logs.Warn(errors.New("mesh catalog is empty").WithTag("mode", b.name))
			return nil
		}
		m := models.NewMesh(infos)
		b.spawn(m)
		return m

	case models.ObjectTypeTriggerVolume:
		v, err := models.NewTriggerVolume(b.volumeType)
		if err != nil {
			logs.Warn(err)
			return nil
		}
		return v

	case models.ObjectTypeCheckpoint:
		return models.NewCheckpoint(b.objects.NextCheckpointID())

	case models.ObjectTypeRing:
		r := models.NewSmallRing(b.objects.NextRingID())
		b.spawn(r.Mesh)
		return r

	default:
		return nil
	}
}

func (b *BuildMode) spawn(m *models.Mesh) {
	if err := m.SpawnInstance(b.host); err != nil {
		logs.Warn(errors.New("spawning preview mesh failed").
			WithTag("mesh_path", m.MeshInfos.MeshPath).
			Wrap(err))
	}
}

// replacePreview destroys the spawned instances of the current preview and
// previews o instead.
func (b *BuildMode) replacePreview(o models.Object) {
	switch p := b.preview.(type) {
	case *models.Mesh:
		p.DestroyInstance()
	case *models.Ring:
		p.Mesh.DestroyInstance()
	}
	b.setPreview(o)
}

func (b *BuildMode) RenderCanvas(canvas host.Canvas) {
	if !b.isEditing() {
		return
	}

	if cam, ok := b.host.Camera(); ok && b.preview != nil {
		render.New(canvas, cam).Object(b.preview, render.Yellow)
	}

	p := render.NewTextPanel(canvas)
	p.Line("Build Mode", render.White)
	p.Skip()
	p.Line("Object type : "+b.objectType.String(), render.White)

	switch b.objectType {
	case models.ObjectTypeMesh:
		if infos, ok := b.CurrentMesh(); ok {
			p.Line(fmt.Sprintf("Mesh : %d/%d %s", b.meshIndex+1, len(b.meshes), infos.Name), render.White)
		} else {
			p.Line("Mesh : none", render.Red)
		}
	case models.ObjectTypeTriggerVolume:
		p.Line("Trigger volume : "+b.volumeType.String(), render.White)
	}

	if b.preview != nil {
		p.Line("Editing property : "+b.cursor.Current().String(), render.Green)
	}
}
