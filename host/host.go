// Package host describes the game services the editor and the race evaluator
// consume. The game binding provides the implementation; simhost provides an
// in-memory one.
package host

import "github.com/aukilabs/ringsmapeditor/geometry"

// Host is the game the plugin runs in.
type Host interface {
	// IsInGame reports whether a match, freeplay or online game is running.
	IsInGame() bool

	IsSpectator() bool
	Spectate() error
	SwitchToFlyCam() error

	// Camera returns the active camera, if any.
	Camera() (Camera, bool)

	// LocalCar returns the car of the local player, if any.
	LocalCar() (Actor, bool)

	// Cars returns every car in the game.
	Cars() []Actor

	// SpawnMesh spawns a static mesh actor loaded from the given path.
	SpawnMesh(path string) (MeshActor, error)

	IsKeyPressed(k Key) bool

	Commands() CommandRegistry
	Hooks() EventHooks
}

// Actor is a movable game actor, typically a car.
type Actor interface {
	Location() geometry.Vector
	SetLocation(geometry.Vector)
	Rotation() geometry.Rotator
	SetRotation(geometry.Rotator)
	SetVelocity(geometry.Vector)
	Destroy()
}

// MeshActor is a spawned static mesh.
type MeshActor interface {
	SetLocation(geometry.Vector)
	SetRotation(geometry.Rotator)
	SetScale3D(geometry.Vector)
	SetStaticMesh(path string) error
	SetCollisions(enabled bool) error
	SetPhysics(enabled bool)
	SetStickyWalls(enabled bool) error
	Destroy()
}

// Camera is the player camera.
type Camera interface {
	Location() geometry.Vector
	Rotation() geometry.Rotator

	// Trace casts a ray against the world collision and returns the first
	// actor hit.
	Trace(start, end geometry.Vector) (TraceHit, bool)
}

// TraceHit is the result of a camera trace. Actor is the MeshActor or Actor
// that was hit and can be compared by identity.
type TraceHit struct {
	Actor    any
	Location geometry.Vector
}

// Canvas draws on the screen overlay.
type Canvas interface {
	Size() geometry.Vector2
	SetColor(r, g, b, a uint8)
	SetPosition(p geometry.Vector2)
	DrawString(text string, scaleX, scaleY float32)
	DrawBox(size geometry.Vector2)
	DrawLine(from, to geometry.Vector2)

	// Project converts a world location into canvas coordinates.
	Project(p geometry.Vector) geometry.Vector2
}

// CommandRegistry registers console commands.
type CommandRegistry interface {
	RegisterNotifier(name string, fn func(args []string), description string)
	RemoveNotifier(name string)
}

// EventHooks hooks engine function calls. The params are event specific and
// may be modified by the callback.
type EventHooks interface {
	HookEvent(name string, fn func(params any))
	UnhookEvent(name string)
}

// CameraModeParams are the params of the EventSetCameraMode event.
type CameraModeParams struct {
	Mode string
}

// FOVParams are the params of the EventSetFOV event.
type FOVParams struct {
	FOV float32
}

// TickParams are the params of the EventTick event.
type TickParams struct {
	DeltaTime float32
}

// CarSpawnParams are the params of the EventCarSpawn event.
type CarSpawnParams struct {
	Car Actor
}

// CanvasParams are the params of the EventRender event.
type CanvasParams struct {
	Canvas Canvas
}

const (
	EventSetCameraMode = "Function TAGame.GFxData_ReplayViewer_TA.SetCameraMode"
	EventSetFOV        = "Function TAGame.GFxData_ReplayViewer_TA.SetFOV"
	EventTick          = "Function Engine.GameViewportClient.Tick"
	EventCarSpawn      = "Function TAGame.Car_TA.OnVehicleSetup"
	EventGameCreated   = "Function TAGame.GameEvent_TA.PostBeginPlay"
	EventGameFirstTick = "Function TAGame.GameEvent_TA.GetPlayerHUDPosition"
	EventGameDestroyed = "Function TAGame.GameEvent_Soccar_TA.Destroyed"
	EventRender        = "Canvas.Render"
)

// Key is a controller or keyboard key.
type Key string

const (
	KeyRightShoulder Key = "XboxTypeS_RightShoulder"
	KeyLeftShoulder  Key = "XboxTypeS_LeftShoulder"
)
