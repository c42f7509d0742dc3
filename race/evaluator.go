// Package race runs the time trial: it tests the cars against the level
// trigger volumes, checkpoints and rings on each tick.
package race

import (
	"fmt"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/featureflag"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/render"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/google/uuid"
)

// NoRing is the current ring id when no ring was passed since the last
// teleport.
const NoRing = -1

// Evaluator holds the race state. Checkpoints are referenced by object id
// so a checkpoint removed from the level is never used.
type Evaluator struct {
	// RunUUID identifies the current race run in logs.
	RunUUID string

	Timer *Timer

	host    host.Host
	objects *models.ObjectManager
	flags   featureflag.FeatureFlag

	currentCheckpoint models.ObjectID
	currentRingID     int
	starting          bool
	teleports         int
}

// New returns an evaluator of the objects managed by objects. now is the
// clock of the race timer; nil uses time.Now.
func New(h host.Host, objects *models.ObjectManager, flags featureflag.FeatureFlag, now func() time.Time) *Evaluator {
	return &Evaluator{
		Timer:         NewTimer(now),
		host:          h,
		objects:       objects,
		flags:         flags,
		currentRingID: NoRing,
	}
}

// Start begins a new run. The timer is reset and the next spawned car is put
// on the first checkpoint.
func (e *Evaluator) Start() {
	e.RunUUID = uuid.NewString()
	e.Timer.Reset()
	e.currentCheckpoint = 0
	e.currentRingID = NoRing
	e.teleports = 0
	e.starting = true

	logs.WithTag("run_id", e.RunUUID).Info("race started")
}

// Stop ends the run without recording a race time.
func (e *Evaluator) Stop() {
	e.Timer.Stop()
	e.starting = false
	logs.WithTag("run_id", e.RunUUID).Info("race stopped")
}

// OnCarSpawn puts the first car spawned after Start on the spawn point of
// the first checkpoint.
func (e *Evaluator) OnCarSpawn(car host.Actor) {
	if !e.starting || car == nil {
		return
	}

	cps := e.objects.Checkpoints()
	if len(cps) == 0 {
		logs.Warn(errors.New("no checkpoints set").WithTag("run_id", e.RunUUID))
		return
	}

	car.SetLocation(cps[0].SpawnWorldLocation())
	e.starting = false
	logs.WithTag("run_id", e.RunUUID).
		WithTag("checkpoint_id", cps[0].CheckpointID).
		Debug("car placed on the first checkpoint")
}

// OnTick evaluates the trigger volumes, then the checkpoints, then the rings
// for each raced car.
func (e *Evaluator) OnTick() {
	if !e.host.IsInGame() {
		return
	}
	instrumentTick()

	for _, car := range e.cars() {
		e.CheckTriggerVolumes(car)
		e.CheckCheckpoints(car)
		e.CheckRings(car)
	}
}

func (e *Evaluator) cars() []host.Actor {
	if e.flags.IsSet(featureflag.FlagRaceAllCars) {
		return e.host.Cars()
	}

	car, ok := e.host.LocalCar()
	if !ok {
		return nil
	}
	return []host.Actor{car}
}

// CheckTriggerVolumes runs the callback of every volume containing the car.
// Callbacks run on every tick the car stays inside.
func (e *Evaluator) CheckTriggerVolumes(car host.Actor) {
	if e.flags.IsSet(featureflag.FlagDisableTriggerCallbacks) {
		return
	}

	ctx := triggers.Context{Checkpoints: e}
	for _, v := range e.objects.TriggerVolumes() {
		if !v.IsPointInside(car.Location()) {
			continue
		}
		if v.Touch(ctx, car) {
			instrumentTriggerFire(v.OnTouch.Name())
		}
	}
}

// CheckCheckpoints makes the checkpoints containing the car current. Entering
// a start checkpoint starts the timer and entering an end checkpoint stops
// it.
func (e *Evaluator) CheckCheckpoints(car host.Actor) {
	for _, cp := range e.objects.Checkpoints() {
		if !cp.IsPointInside(car.Location()) {
			continue
		}
		if !e.SetCurrentCheckpoint(cp) {
			continue
		}

		instrumentCheckpointCrossing(cp.Type.String())

		switch {
		case cp.IsStart():
			e.Timer.Start()
			logs.WithTag("run_id", e.RunUUID).Info("race timer started")

		case cp.IsEnd():
			e.Timer.Stop()
			instrumentRaceTime(e.Timer.Elapsed())
			logs.WithTag("run_id", e.RunUUID).
				WithTag("race_time", e.Timer.Elapsed().String()).
				Info("race timer stopped")
		}
	}
}

// CheckRings records the ring the car is passing through and sends the car
// back to the current checkpoint when it is behind a ring it did not pass.
// Each ring updates the current ring before its outer sensor is tested.
func (e *Evaluator) CheckRings(car host.Actor) {
	for _, r := range e.objects.Rings() {
		if r.In.IsPointInside(car.Location()) {
			if e.currentRingID != r.RingID {
				e.currentRingID = r.RingID
				instrumentRingPass()
				logs.WithTag("ring_id", r.RingID).Debug("current ring changed")
			}
		}

		if r.Out.IsPointInside(car.Location()) && e.currentRingID != r.RingID {
			instrumentRingFailure()
			logs.WithTag("ring_id", r.RingID).
				WithTag("run_id", e.RunUUID).
				Info("ring missed")

			if e.flags.IsSet(featureflag.FlagDisableRingEnforcement) {
				continue
			}
			e.TeleportToCurrentCheckpoint(car)
		}
	}
}

// SetCurrentCheckpoint makes cp current. It returns false when cp already
// was.
func (e *Evaluator) SetCurrentCheckpoint(cp *models.Checkpoint) bool {
	if e.currentCheckpoint == cp.ID {
		return false
	}

	e.currentCheckpoint = cp.ID
	logs.WithTag("checkpoint_id", cp.CheckpointID).
		WithTag("checkpoint_name", cp.Name).
		Debug("current checkpoint changed")
	return true
}

// Checkpoint returns the current checkpoint.
func (e *Evaluator) Checkpoint() (*models.Checkpoint, bool) {
	if e.currentCheckpoint == 0 {
		return nil, false
	}

	o, ok := e.objects.Object(e.currentCheckpoint)
	if !ok {
		return nil, false
	}
	cp, ok := o.(*models.Checkpoint)
	return cp, ok
}

func (e *Evaluator) CurrentRingID() int {
	return e.currentRingID
}

// Teleports returns the number of times the car was sent back to the
// current checkpoint since the run started.
func (e *Evaluator) Teleports() int {
	return e.teleports
}

// Finished reports whether the car reached an end checkpoint.
func (e *Evaluator) Finished() bool {
	cp, ok := e.Checkpoint()
	return ok && cp.IsEnd()
}

// TeleportToCurrentCheckpoint puts the car on the spawn point of the current
// checkpoint with no velocity. The current ring is cleared even when there
// is no current checkpoint.
func (e *Evaluator) TeleportToCurrentCheckpoint(car host.Actor) {
	e.currentRingID = NoRing

	cp, ok := e.Checkpoint()
	if !ok {
		logs.Warn(errors.New("no current checkpoint to teleport to").
			WithTag("run_id", e.RunUUID))
		return
	}

	car.SetLocation(cp.SpawnWorldLocation())
	car.SetRotation(cp.SpawnRotation)
	car.SetVelocity(geometry.Vector{})

	e.teleports++
	instrumentTeleport()
	logs.WithTag("checkpoint_id", cp.CheckpointID).
		WithTag("run_id", e.RunUUID).
		Info("car teleported to the current checkpoint")
}

// CurrentCheckpoint implements triggers.CheckpointTable.
func (e *Evaluator) CurrentCheckpoint() (triggers.SpawnPoint, bool) {
	cp, ok := e.Checkpoint()
	if !ok {
		return triggers.SpawnPoint{}, false
	}
	return cp.SpawnPoint(), true
}

// CheckpointAt implements triggers.CheckpointTable.
func (e *Evaluator) CheckpointAt(index int) (triggers.SpawnPoint, bool) {
	cps := e.objects.Checkpoints()
	if index < 0 || index >= len(cps) {
		return triggers.SpawnPoint{}, false
	}
	return cps[index].SpawnPoint(), true
}

// RenderCanvas draws the race time. It turns red once the race is finished.
func (e *Evaluator) RenderCanvas(canvas host.Canvas) {
	c := render.Green
	if e.Finished() {
		c = render.Red
	}

	canvas.SetColor(c[0], c[1], c[2], c[3])
	canvas.SetPosition(geometry.Vector2{X: 20, Y: 50})
	canvas.DrawString(fmt.Sprintf("Time: %.3f seconds", e.Timer.Elapsed().Seconds()), 2, 2)
}
