package editor

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
)

const (
	flyCameraMode = "Fly"
	pinnedFOV     = 90
)

// SubMode is an editing mode driven by the plugin tick and render events.
type SubMode interface {
	// Name returns the name used in logs and metrics.
	Name() string

	// Enable switches the camera to the spectator fly camera and registers
	// the mode commands. It returns false when the mode could not start.
	Enable() bool

	// Disable drops the mode state and removes its commands and hooks.
	Disable()

	IsEnabled() bool
	OnTick(dt float32)
	RenderCanvas(canvas host.Canvas)
}

type command struct {
	name        string
	description string
	fn          func()
}

// subMode holds what Build Mode and Edit Mode share: the edited object, its
// anchor rotation, the distance from the camera and the property cursor.
type subMode struct {
	name    string
	host    host.Host
	objects *models.ObjectManager
	rates   Rates

	enabled  bool
	commands []command

	preview  models.Object
	rotation geometry.Rotator
	distance float32
	cursor   PropertyCursor
}

func (m *subMode) Name() string {
	return m.name
}

func (m *subMode) IsEnabled() bool {
	return m.enabled
}

func (m *subMode) enable() bool {
	if m.enabled {
		return true
	}

	if !m.host.IsInGame() {
		logs.Warn(errors.New("editor mode requires a game").
			WithTag("mode", m.name))
		return false
	}

	if err := m.host.Spectate(); err != nil {
		logs.Warn(errors.New("spectating failed").
			WithTag("mode", m.name).
			Wrap(err))
		return false
	}

	if err := m.host.SwitchToFlyCam(); err != nil {
		logs.Warn(errors.New("switching to fly camera failed").
			WithTag("mode", m.name).
			Wrap(err))
		return false
	}

	for _, c := range m.commands {
		fn := c.fn
		m.host.Commands().RegisterNotifier(c.name, func([]string) {
			if !m.enabled {
				return
			}
			fn()
		}, c.description)
	}

	m.host.Hooks().HookEvent(host.EventSetCameraMode, func(params any) {
		if p, ok := params.(*host.CameraModeParams); ok {
			p.Mode = flyCameraMode
		}
	})
	m.host.Hooks().HookEvent(host.EventSetFOV, func(params any) {
		if p, ok := params.(*host.FOVParams); ok {
			p.FOV = pinnedFOV
		}
	})

	m.enabled = true
	instrumentModeToggle(m.name, true)
	logs.WithTag("mode", m.name).Info("editor mode enabled")
	return true
}

// disable must run after the caller dropped its preview.
func (m *subMode) disable() {
	if !m.enabled {
		return
	}
	m.enabled = false

	for _, c := range m.commands {
		m.host.Commands().RemoveNotifier(c.name)
	}
	m.host.Hooks().UnhookEvent(host.EventSetCameraMode)
	m.host.Hooks().UnhookEvent(host.EventSetFOV)

	instrumentModeToggle(m.name, false)
	logs.WithTag("mode", m.name).Info("editor mode disabled")
}

// isEditing reports whether the tick may touch the preview.
func (m *subMode) isEditing() bool {
	return m.enabled && m.host.IsInGame() && m.host.IsSpectator()
}

func (m *subMode) setPreview(o models.Object) {
	m.preview = o
	if o != nil {
		m.cursor.SetCatalog(CatalogFor(o))
	}
}

// PropertyCursor returns the cursor over the editable properties of the
// preview.
func (m *subMode) PropertyCursor() *PropertyCursor {
	return &m.cursor
}

func (m *subMode) target() target {
	return target{object: m.preview, rotation: &m.rotation}
}

// applyEditing changes the current property while a shoulder button is held.
func (m *subMode) applyEditing(dt float32) {
	if m.host.IsKeyPressed(host.KeyRightShoulder) {
		m.target().apply(m.cursor.Current(), m.rates, 1, dt)
	}
	if m.host.IsKeyPressed(host.KeyLeftShoulder) {
		m.target().apply(m.cursor.Current(), m.rates, -1, dt)
	}
}

// updateTransform places the preview in front of the camera with the anchor
// rotation.
func (m *subMode) updateTransform() {
	cam, ok := m.host.Camera()
	if !ok {
		return
	}

	offset := cam.Rotation().Rotate(geometry.NewVector(m.distance, 0, 0))
	m.preview.SetLocation(cam.Location().Add(offset))
	m.preview.SetRotation(m.rotation)
}

func (m *subMode) cycleEditingProperty() {
	if m.preview == nil {
		logs.Warn(errors.New("no object to edit").WithTag("mode", m.name))
		return
	}

	p := m.cursor.Cycle()
	logs.WithTag("mode", m.name).
		WithTag("property", p).
		Debug("editing property changed")
}

func (m *subMode) resetEditingProperty() {
	if m.preview == nil {
		logs.Warn(errors.New("no object to edit").WithTag("mode", m.name))
		return
	}

	p := m.cursor.Current()
	m.target().reset(p)
	m.preview.SetRotation(m.rotation)
	logs.WithTag("mode", m.name).
		WithTag("property", p).
		Debug("editing property reset")
}
