package editor

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/render"
)

// RayLength is the reach of the Edit Mode crosshair.
const RayLength = 5000

const editModeName = "edit"

// EditMode picks the object under the crosshair and edits it in place. The
// hovered and selected objects are kept as ids and resolved on each use.
type EditMode struct {
	subMode

	hovered  models.ObjectID
	selected models.ObjectID
}

func NewEditMode(h host.Host, objects *models.ObjectManager, rates Rates) *EditMode {
	e := &EditMode{
		subMode: subMode{
			name:    editModeName,
			host:    h,
			objects: objects,
			rates:   rates,
		},
	}

	e.commands = []command{
		{name: "ringsmapeditor_editmode_place_object", description: "Release the selected object", fn: e.PlaceObject},
		{name: "ringsmapeditor_editmode_select_object", description: "Select the object under the crosshair", fn: e.SelectObject},
		{name: "ringsmapeditor_editmode_editing_property_cycle", description: "Edit the next property", fn: e.cycleEditingProperty},
		{name: "ringsmapeditor_editmode_editing_property_reset", description: "Reset the edited property", fn: e.resetEditingProperty},
	}
	return e
}

func (e *EditMode) Enable() bool {
	return e.enable()
}

func (e *EditMode) Disable() {
	e.deselect()
	e.hovered = 0
	e.disable()
}

// Hovered returns the id of the object under the crosshair.
func (e *EditMode) Hovered() (models.ObjectID, bool) {
	return e.hovered, e.hovered != 0
}

// Selected returns the id of the object being edited.
func (e *EditMode) Selected() (models.ObjectID, bool) {
	return e.selected, e.selected != 0
}

func (e *EditMode) OnTick(dt float32) {
	if !e.isEditing() {
		return
	}

	if e.selected == 0 {
		e.hovered = e.objectUnderCursor()
		return
	}

	o, ok := e.objects.Object(e.selected)
	if !ok {
		e.deselect()
		return
	}

	// The object may have been converted or replaced since the last tick.
	e.setPreview(o)
	e.applyEditing(dt)
	e.updateTransform()
}

// SelectObject starts editing the hovered object. The object keeps its
// distance to the camera and its rotation.
func (e *EditMode) SelectObject() {
	if e.hovered == 0 {
		logs.Warn(errors.New("no object under the crosshair").WithTag("mode", e.name))
		return
	}

	o, ok := e.objects.Object(e.hovered)
	if !ok {
		e.hovered = 0
		logs.Warn(errors.New("hovered object was removed").WithTag("mode", e.name))
		return
	}

	cam, ok := e.host.Camera()
	if !ok {
		logs.Warn(errors.New("no camera").WithTag("mode", e.name))
		return
	}

	b := o.Common()
	e.distance = cam.Location().Distance(b.Location)
	e.rotation = b.Rotation
	e.selected = b.ID
	e.setPreview(o)

	instrumentSelection(o.Kind())
	logs.WithTag("object_id", b.ID).
		WithTag("object_name", b.Name).
		Info("object selected")
}

// PlaceObject releases the selected object where it is.
func (e *EditMode) PlaceObject() {
	if e.selected == 0 {
		logs.Warn(errors.New("no object selected").WithTag("mode", e.name))
		return
	}

	logs.WithTag("object_id", e.selected).Info("object released")
	e.deselect()
}

// Deselect drops the selection when the object is removed from the level.
func (e *EditMode) Deselect(id models.ObjectID) {
	if e.selected == id {
		e.deselect()
	}
	if e.hovered == id {
		e.hovered = 0
	}
}

func (e *EditMode) deselect() {
	e.selected = 0
	e.preview = nil
}

// objectUnderCursor returns the closest object hit by the camera ray. Actors
// found by the engine trace compete with the trigger volumes and checkpoints
// tested here.
func (e *EditMode) objectUnderCursor() models.ObjectID {
	cam, ok := e.host.Camera()
	if !ok {
		return 0
	}

	start := cam.Location()
	dir := cam.Rotation().Forward()
	end := start.Add(dir.Mul(RayLength))

	var found models.ObjectID
	closest := float32(RayLength)

	if hit, ok := cam.Trace(start, end); ok {
		if id, ok := e.objectOfActor(hit.Actor); ok {
			found = id
			closest = start.Distance(hit.Location)
		}
	}

	for _, v := range e.objects.TriggerVolumes() {
		if t, ok := v.RayIntersects(start, dir, RayLength); ok && t < closest {
			found = v.ID
			closest = t
		}
	}

	for _, c := range e.objects.Checkpoints() {
		if t, ok := c.Volume.RayIntersects(start, dir, RayLength); ok && t < closest {
			found = c.ID
			closest = t
		}
	}

	return found
}

func (e *EditMode) objectOfActor(actor any) (models.ObjectID, bool) {
	if actor == nil {
		return 0, false
	}

	for _, m := range e.objects.Meshes() {
		if m.Instance != nil && any(m.Instance) == actor {
			return m.ID, true
		}
	}
	for _, r := range e.objects.Rings() {
		if r.Mesh != nil && r.Mesh.Instance != nil && any(r.Mesh.Instance) == actor {
			return r.ID, true
		}
	}
	return 0, false
}

func (e *EditMode) RenderCanvas(canvas host.Canvas) {
	if !e.isEditing() {
		return
	}

	p := render.NewTextPanel(canvas)
	p.Line("Edit Mode", render.White)
	p.Skip()

	cam, hasCam := e.host.Camera()

	switch {
	case e.selected != 0:
		o, ok := e.objects.Object(e.selected)
		if !ok {
			break
		}
		if hasCam {
			render.New(canvas, cam).Object(o, render.Green)
		}
		p.Line("Selected : "+o.Common().Name, render.Green)
		p.Line("Editing property : "+e.cursor.Current().String(), render.Green)

	case e.hovered != 0:
		o, ok := e.objects.Object(e.hovered)
		if !ok {
			break
		}
		if hasCam {
			render.New(canvas, cam).Object(o, render.Yellow)
		}
		p.Line("Hovered : "+o.Common().Name, render.Yellow)

	default:
		p.Line("No object under the crosshair", render.White)
	}

	render.Crosshair(canvas)
}
