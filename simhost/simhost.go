// Package simhost is an in-memory host. It backs the tests and the headless
// replay binary.
package simhost

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/chewxy/math32"
)

// DefaultTraceRadius is the radius of the sphere used to trace mesh actors
// that do not set their own.
const DefaultTraceRadius = 100

// Host is a deterministic host.Host.
type Host struct {
	InGame    bool
	Spectator bool
	FlyCam    bool

	// Cam is the active camera. A nil camera reports no camera.
	Cam *Camera

	// Local is the local player car. It is also part of Cars.
	Local *Car
	Other []*Car

	Keys     map[host.Key]bool
	SpawnErr error
	Spawned  []*MeshActor

	commands map[string]func(args []string)
	hooks    map[string]func(params any)
}

// New returns a host in a game with a camera and a local car at the origin.
func New() *Host {
	h := &Host{
		InGame: true,
		Local:  &Car{},
		Keys:   make(map[host.Key]bool),
	}
	h.Cam = &Camera{host: h}
	return h
}

func (h *Host) IsInGame() bool {
	return h.InGame
}

func (h *Host) IsSpectator() bool {
	return h.Spectator
}

func (h *Host) Spectate() error {
	if !h.InGame {
		return errors.New("not in game")
	}
	h.Spectator = true
	return nil
}

func (h *Host) SwitchToFlyCam() error {
	if !h.Spectator {
		return errors.New("not spectating")
	}
	h.FlyCam = true
	return nil
}

func (h *Host) Camera() (host.Camera, bool) {
	if h.Cam == nil {
		return nil, false
	}
	h.Cam.host = h
	return h.Cam, true
}

func (h *Host) LocalCar() (host.Actor, bool) {
	if h.Local == nil || h.Local.Destroyed {
		return nil, false
	}
	return h.Local, true
}

func (h *Host) Cars() []host.Actor {
	var cars []host.Actor
	if car, ok := h.LocalCar(); ok {
		cars = append(cars, car)
	}
	for _, c := range h.Other {
		if !c.Destroyed {
			cars = append(cars, c)
		}
	}
	return cars
}

func (h *Host) SpawnMesh(path string) (host.MeshActor, error) {
	if !h.InGame {
		return nil, errors.New("must be in a game to spawn meshes")
	}
	if h.SpawnErr != nil {
		return nil, h.SpawnErr
	}
	if path == "" {
		return nil, errors.New("mesh path is empty")
	}

	m := &MeshActor{Path: path, Scale: geometry.NewVector(1, 1, 1)}
	h.Spawned = append(h.Spawned, m)
	return m, nil
}

// Alive returns the spawned mesh actors that are not destroyed.
func (h *Host) Alive() []*MeshActor {
	var alive []*MeshActor
	for _, m := range h.Spawned {
		if !m.Destroyed {
			alive = append(alive, m)
		}
	}
	return alive
}

func (h *Host) IsKeyPressed(k host.Key) bool {
	return h.Keys[k]
}

func (h *Host) Commands() host.CommandRegistry {
	return h
}

func (h *Host) Hooks() host.EventHooks {
	return h
}

func (h *Host) RegisterNotifier(name string, fn func(args []string), description string) {
	if h.commands == nil {
		h.commands = make(map[string]func(args []string))
	}
	h.commands[name] = fn
}

func (h *Host) RemoveNotifier(name string) {
	delete(h.commands, name)
}

// HasCommand reports whether a command with the given name is registered.
func (h *Host) HasCommand(name string) bool {
	_, ok := h.commands[name]
	return ok
}

// Execute runs the command with the given name. It returns false when no such
// command is registered.
func (h *Host) Execute(name string, args ...string) bool {
	fn, ok := h.commands[name]
	if !ok {
		return false
	}
	fn(append([]string{name}, args...))
	return true
}

func (h *Host) HookEvent(name string, fn func(params any)) {
	if h.hooks == nil {
		h.hooks = make(map[string]func(params any))
	}
	h.hooks[name] = fn
}

func (h *Host) UnhookEvent(name string) {
	delete(h.hooks, name)
}

// IsHooked reports whether an event has a callback.
func (h *Host) IsHooked(name string) bool {
	_, ok := h.hooks[name]
	return ok
}

// Fire runs the callback hooked to the given event. It returns false when
// the event is not hooked.
func (h *Host) Fire(name string, params any) bool {
	fn, ok := h.hooks[name]
	if !ok {
		return false
	}
	fn(params)
	return true
}

// Car is a simulated car.
type Car struct {
	Loc       geometry.Vector
	Rot       geometry.Rotator
	Velocity  geometry.Vector
	Destroyed bool
}

func (c *Car) Location() geometry.Vector      { return c.Loc }
func (c *Car) SetLocation(v geometry.Vector)  { c.Loc = v }
func (c *Car) Rotation() geometry.Rotator     { return c.Rot }
func (c *Car) SetRotation(r geometry.Rotator) { c.Rot = r }
func (c *Car) SetVelocity(v geometry.Vector)  { c.Velocity = v }
func (c *Car) Destroy()                       { c.Destroyed = true }

// MeshActor is a simulated static mesh. Traces hit it as a sphere of
// TraceRadius when collisions are enabled.
type MeshActor struct {
	Path        string
	Loc         geometry.Vector
	Rot         geometry.Rotator
	Scale       geometry.Vector
	Collisions  bool
	Physics     bool
	StickyWalls bool
	Destroyed   bool
	TraceRadius float32
}

func (m *MeshActor) SetLocation(v geometry.Vector)  { m.Loc = v }
func (m *MeshActor) SetRotation(r geometry.Rotator) { m.Rot = r }
func (m *MeshActor) SetScale3D(v geometry.Vector)   { m.Scale = v }
func (m *MeshActor) SetPhysics(enabled bool)        { m.Physics = enabled }
func (m *MeshActor) Destroy()                       { m.Destroyed = true }

func (m *MeshActor) SetStaticMesh(path string) error {
	if path == "" {
		return errors.New("mesh path is empty")
	}
	m.Path = path
	return nil
}

func (m *MeshActor) SetCollisions(enabled bool) error {
	m.Collisions = enabled
	return nil
}

func (m *MeshActor) SetStickyWalls(enabled bool) error {
	m.StickyWalls = enabled
	return nil
}

// Camera is a simulated fly camera.
type Camera struct {
	Loc geometry.Vector
	Rot geometry.Rotator

	host *Host
}

func (c *Camera) Location() geometry.Vector  { return c.Loc }
func (c *Camera) Rotation() geometry.Rotator { return c.Rot }

func (c *Camera) Trace(start, end geometry.Vector) (host.TraceHit, bool) {
	if c.host == nil {
		return host.TraceHit{}, false
	}

	segment := end.Sub(start)
	maxDist := segment.Length()
	if maxDist == 0 {
		return host.TraceHit{}, false
	}
	dir := segment.Mul(1 / maxDist)

	var best host.TraceHit
	bestT := maxDist
	didHit := false

	for _, m := range c.host.Alive() {
		if !m.Collisions {
			continue
		}

		radius := m.TraceRadius
		if radius == 0 {
			radius = DefaultTraceRadius
		}

		t, ok := raySphere(start, dir, m.Loc, radius)
		if !ok || t > bestT {
			continue
		}

		bestT = t
		best = host.TraceHit{Actor: m, Location: start.Add(dir.Mul(t))}
		didHit = true
	}
	return best, didHit
}

func raySphere(origin, dir, center geometry.Vector, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math32.Sqrt(disc)
	if t := -b - sqrtDisc; t >= 0 {
		return t, true
	}
	if t := -b + sqrtDisc; t >= 0 {
		return 0, true
	}
	return 0, false
}
