// Package plugin wires the editor, the race evaluator and the level files to
// the game: it registers the console commands, hooks the game events and
// dispatches the ticks and the canvas rendering to the active mode.
package plugin

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/editor"
	"github.com/aukilabs/ringsmapeditor/featureflag"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/race"
	"github.com/aukilabs/ringsmapeditor/render"
	"github.com/aukilabs/ringsmapeditor/triggers"
)

// Name is the plugin name used in logs.
const Name = "ringsmapeditor"

// Mode is the top-level mode of the plugin.
type Mode uint8

const (
	ModeEditor Mode = iota
	ModeRace
)

func (m Mode) String() string {
	switch m {
	case ModeEditor:
		return "editor"
	case ModeRace:
		return "race"
	default:
		return "unknown"
	}
}

// Options configures a plugin.
type Options struct {
	// DataDir is the directory where level files are saved and loaded.
	DataDir string

	// Meshes is the catalog of meshes placeable in Build Mode.
	Meshes []models.MeshInfos

	Flags featureflag.FeatureFlag

	// Rates are the editing speeds. Zero rates use editor.DefaultRates.
	Rates editor.Rates

	// Functions resolves the trigger functions of loaded levels. Nil uses
	// the built-in functions.
	Functions *triggers.Registry

	// Now is the clock of the race timer. Nil uses time.Now.
	Now func() time.Time
}

// Plugin is the rings map editor running in a game.
type Plugin struct {
	Objects *models.ObjectManager
	Editor  *editor.Editor
	Race    *race.Evaluator

	host     host.Host
	opts     Options
	mode     Mode
	loaded   bool
	selected int
}

func New(h host.Host, opts Options) *Plugin {
	if opts.Rates == (editor.Rates{}) {
		opts.Rates = editor.DefaultRates()
	}

	objects := models.NewObjectManager(opts.Functions)
	return &Plugin{
		Objects:  objects,
		Editor:   editor.New(h, objects, opts.Meshes, opts.Rates),
		Race:     race.New(h, objects, opts.Flags, opts.Now),
		host:     h,
		opts:     opts,
		selected: -1,
	}
}

// Load registers the plugin commands and hooks the game events.
func (p *Plugin) Load() {
	if p.loaded {
		return
	}

	cmds := p.host.Commands()
	for _, c := range p.commands() {
		cmds.RegisterNotifier(c.name, func(args []string) {
			c.fn(commandArgs(args))
		}, c.description)
	}

	hooks := p.host.Hooks()
	hooks.HookEvent(host.EventTick, func(params any) {
		if t, ok := params.(host.TickParams); ok {
			p.OnTick(t.DeltaTime)
		}
	})
	hooks.HookEvent(host.EventCarSpawn, func(params any) {
		if c, ok := params.(host.CarSpawnParams); ok {
			p.OnCarSpawn(c.Car)
		}
	})
	hooks.HookEvent(host.EventGameCreated, func(any) { p.OnGameCreated() })
	hooks.HookEvent(host.EventGameDestroyed, func(any) { p.OnGameDestroyed() })
	hooks.HookEvent(host.EventRender, func(params any) {
		if c, ok := params.(host.CanvasParams); ok && c.Canvas != nil {
			p.RenderCanvas(c.Canvas)
		}
	})

	p.loaded = true
	logs.WithTag("plugin", Name).
		WithTag("meshes", len(p.opts.Meshes)).
		WithTag("data_dir", p.opts.DataDir).
		WithTag("feature_flags", p.opts.Flags.List()).
		Info("plugin loaded")
}

// Unload disables the editor, stops the race and removes every command and
// hook registered by Load.
func (p *Plugin) Unload() {
	if !p.loaded {
		return
	}

	p.Editor.Disable()
	if p.mode == ModeRace {
		p.Race.Stop()
	}
	p.DestroyAllMeshes()

	cmds := p.host.Commands()
	for _, c := range p.commands() {
		cmds.RemoveNotifier(c.name)
	}

	hooks := p.host.Hooks()
	for _, e := range []string{
		host.EventTick,
		host.EventCarSpawn,
		host.EventGameCreated,
		host.EventGameFirstTick,
		host.EventGameDestroyed,
		host.EventRender,
	} {
		hooks.UnhookEvent(e)
	}

	p.loaded = false
	logs.WithTag("plugin", Name).Info("plugin unloaded")
}

func (p *Plugin) Mode() Mode {
	return p.mode
}

func (p *Plugin) IsInEditorMode() bool {
	return p.mode == ModeEditor
}

func (p *Plugin) IsInRaceMode() bool {
	return p.mode == ModeRace
}

// StartEditorMode leaves the race and goes back to editing.
func (p *Plugin) StartEditorMode() {
	if p.mode == ModeRace {
		p.Race.Stop()
	}

	p.mode = ModeEditor
	instrumentModeSwitch(p.mode)
	logs.WithTag("mode", p.mode.String()).Info("mode started")
}

// StartRaceMode disables the editor and starts a new race run. The next
// spawned car is put on the first checkpoint.
func (p *Plugin) StartRaceMode() {
	p.Editor.Disable()
	p.mode = ModeRace
	p.Race.Start()

	instrumentModeSwitch(p.mode)
	logs.WithTag("mode", p.mode.String()).
		WithTag("run_id", p.Race.RunUUID).
		Info("mode started")
}

// OnTick dispatches a game tick to the active mode.
func (p *Plugin) OnTick(dt float32) {
	if !p.host.IsInGame() {
		return
	}

	switch p.mode {
	case ModeEditor:
		p.Editor.OnTick(dt)
	case ModeRace:
		p.Race.OnTick()
	}
}

func (p *Plugin) OnCarSpawn(car host.Actor) {
	if p.mode != ModeRace {
		return
	}
	p.Race.OnCarSpawn(car)
}

// OnGameCreated waits for the first tick of the new game to spawn the level
// meshes.
func (p *Plugin) OnGameCreated() {
	p.host.Hooks().HookEvent(host.EventGameFirstTick, func(any) {
		p.OnGameFirstTick()
	})
}

func (p *Plugin) OnGameFirstTick() {
	p.host.Hooks().UnhookEvent(host.EventGameFirstTick)
	p.SpawnAllMeshes()
}

func (p *Plugin) OnGameDestroyed() {
	p.DestroyAllMeshes()
}

// SpawnAllMeshes spawns the game actors of the level meshes and ring meshes
// that are not spawned yet.
func (p *Plugin) SpawnAllMeshes() {
	if p.opts.Flags.IsSet(featureflag.FlagDisableMeshSpawn) {
		logs.WithTag("feature_flag", featureflag.FlagDisableMeshSpawn).Debug("mesh spawning skipped")
		return
	}

	var spawned int
	spawn := func(m *models.Mesh) {
		if m.IsSpawned() {
			return
		}
		if err := m.SpawnInstance(p.host); err != nil {
			logs.Warn(errors.New("spawning level mesh failed").
				WithTag("object_id", m.ID).
				Wrap(err))
			return
		}
		spawned++
	}

	for _, o := range p.Objects.Objects() {
		switch o := o.(type) {
		case *models.Mesh:
			spawn(o)
		case *models.Ring:
			spawn(o.Mesh)
		}
	}

	logs.WithTag("spawned", spawned).
		WithTag("level_id", p.Objects.LevelUUID).
		Info("level meshes spawned")
}

// DestroyAllMeshes destroys the game actors of the level meshes and ring
// meshes. The objects stay in the level.
func (p *Plugin) DestroyAllMeshes() {
	for _, o := range p.Objects.Objects() {
		switch o := o.(type) {
		case *models.Mesh:
			o.DestroyInstance()
		case *models.Ring:
			o.Mesh.DestroyInstance()
		}
	}
}

// RenderCanvas draws the level overlay and the editor HUD in editor mode, or
// the race timer in race mode.
func (p *Plugin) RenderCanvas(canvas host.Canvas) {
	switch p.mode {
	case ModeEditor:
		if cam, ok := p.host.Camera(); ok {
			render.New(canvas, cam).Objects(p.Objects.Objects())
		}
		p.Editor.RenderCanvas(canvas)

	case ModeRace:
		p.Race.RenderCanvas(canvas)
	}
}
