// Package editor implements the Build Mode and Edit Mode used to author
// levels with a controller from the spectator fly camera.
package editor

import (
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
)

// Mode is the sub-mode occupying the editor slot.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeBuild
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeBuild:
		return buildModeName
	case ModeEdit:
		return editModeName
	default:
		return "none"
	}
}

// Editor runs at most one sub-mode at a time. Enabling a sub-mode disables
// the active one first.
type Editor struct {
	Build *BuildMode
	Edit  *EditMode

	mode Mode
}

func New(h host.Host, objects *models.ObjectManager, meshes []models.MeshInfos, rates Rates) *Editor {
	return &Editor{
		Build: NewBuildMode(h, objects, meshes, rates),
		Edit:  NewEditMode(h, objects, rates),
	}
}

// Mode returns the active sub-mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

func (e *Editor) ToggleBuildMode() {
	e.toggle(ModeBuild)
}

func (e *Editor) ToggleEditMode() {
	e.toggle(ModeEdit)
}

func (e *Editor) toggle(m Mode) {
	if e.mode == m {
		e.Disable()
		return
	}

	e.Disable()
	if e.slot(m).Enable() {
		e.mode = m
	}
}

// Disable disables the active sub-mode.
func (e *Editor) Disable() {
	if active := e.active(); active != nil {
		active.Disable()
	}
	e.mode = ModeNone
}

func (e *Editor) OnTick(dt float32) {
	if active := e.active(); active != nil {
		active.OnTick(dt)
	}
}

func (e *Editor) RenderCanvas(canvas host.Canvas) {
	if active := e.active(); active != nil {
		active.RenderCanvas(canvas)
	}
}

// ObjectRemoved drops any reference the sub-modes hold on the given object.
func (e *Editor) ObjectRemoved(id models.ObjectID) {
	e.Edit.Deselect(id)
}

func (e *Editor) active() SubMode {
	return e.slot(e.mode)
}

func (e *Editor) slot(m Mode) SubMode {
	switch m {
	case ModeBuild:
		return e.Build
	case ModeEdit:
		return e.Edit
	default:
		return nil
	}
}
