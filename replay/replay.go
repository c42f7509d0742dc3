// Package replay drives a race on a simulated host from a recorded car
// track.
package replay

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/plugin"
	"github.com/aukilabs/ringsmapeditor/simhost"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeMalformedTrack  = "malformed_track"
	ErrTypeTrackFileAccess = "track_file_access"
)

// Sample is a car position of a track. A track file holds one JSON sample per
// line; empty lines and lines starting with # are ignored.
type Sample struct {
	Location geometry.Vector   `json:"location"`
	Rotation *geometry.Rotator `json:"rotation,omitempty"`
}

// ReadTrack reads the samples of a track.
func ReadTrack(r io.Reader) ([]Sample, error) {
	var samples []Sample

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var s Sample
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return nil, errors.New("decoding track sample failed").
				WithType(ErrTypeMalformedTrack).
				WithTag("line", line).
				Wrap(err)
		}
		samples = append(samples, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.New("reading track failed").
			WithType(ErrTypeTrackFileAccess).
			Wrap(err)
	}
	return samples, nil
}

func ReadTrackFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening track file failed").
			WithType(ErrTypeTrackFileAccess).
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	return ReadTrack(f)
}

// Result is the outcome of a replay.
type Result struct {
	RunID    string        `json:"runId"`
	Ticks    int           `json:"ticks"`
	Finished bool          `json:"finished"`
	RaceTime time.Duration `json:"raceTime"`

	// Teleports counts the times the race sent the car back to the current
	// checkpoint. Moves done by trigger volumes are not counted.
	Teleports  int `json:"teleports"`
	Checkpoint int `json:"checkpointId"`
}

// Clock is a race clock advanced by the replay.
type Clock struct {
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Options configures a replay.
type Options struct {
	// TickDuration is the game time between two samples.
	TickDuration time.Duration

	// Clock is advanced by TickDuration on each sample. It should be the
	// clock of the plugin race timer.
	Clock *Clock

	// Lock is held while a sample is played.
	Lock sync.Locker
}

// Run starts a race on p and plays the samples through the local car of h.
// p must be loaded on h.
// The car is spawned before the first sample so that it starts on the first
// checkpoint.
func Run(ctx context.Context, p *plugin.Plugin, h *simhost.Host, samples []Sample, opts Options) (Result, error) {
	if h.Local == nil {
		return Result{}, errors.New("host has no local car")
	}
	if opts.TickDuration <= 0 {
		opts.TickDuration = time.Second / 60
	}
	lock := opts.Lock
	if lock == nil {
		lock = noLock{}
	}

	lock.Lock()
	p.StartRaceMode()
	h.Fire(host.EventCarSpawn, host.CarSpawnParams{Car: h.Local})
	res := Result{RunID: p.Race.RunUUID}
	lock.Unlock()

	dt := float32(opts.TickDuration.Seconds())
	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		lock.Lock()
		h.Local.Loc = s.Location
		if s.Rotation != nil {
			h.Local.Rot = *s.Rotation
		}
		if opts.Clock != nil {
			opts.Clock.Advance(opts.TickDuration)
		}
		h.Fire(host.EventTick, host.TickParams{DeltaTime: dt})
		res.Ticks++
		lock.Unlock()
	}

	lock.Lock()
	defer lock.Unlock()

	res.Finished = p.Race.Finished()
	res.Teleports = p.Race.Teleports()
	res.RaceTime = p.Race.Timer.Elapsed()
	if cp, ok := p.Race.Checkpoint(); ok {
		res.Checkpoint = cp.CheckpointID
	}

	logs.WithTag("run_id", res.RunID).
		WithTag("ticks", res.Ticks).
		WithTag("finished", res.Finished).
		WithTag("race_time", res.RaceTime.String()).
		WithTag("teleports", res.Teleports).
		Info("replay done")
	return res, nil
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
