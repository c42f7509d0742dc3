package replay

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/plugin"
	"github.com/aukilabs/ringsmapeditor/simhost"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/stretchr/testify/require"
)

func TestReadTrack(t *testing.T) {
	track := `
# start
{"location": {"X": 0, "Y": 0, "Z": 0}}

{"location": {"X": 500, "Y": 0, "Z": 0}, "rotation": {"Pitch": 0, "Yaw": 16384, "Roll": 0}}
`
	samples, err := ReadTrack(strings.NewReader(track))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	require.Nil(t, samples[0].Rotation)
	require.Equal(t, geometry.NewVector(500, 0, 0), samples[1].Location)
	require.Equal(t, geometry.NewRotator(0, 16384, 0), *samples[1].Rotation)

	_, err = ReadTrack(strings.NewReader("{\"location\": {}}\n{\"location\": "))
	require.True(t, errors.IsType(err, ErrTypeMalformedTrack))

	_, err = ReadTrackFile("missing.jsonl")
	require.True(t, errors.IsType(err, ErrTypeTrackFileAccess))
}

func TestRun(t *testing.T) {
	h := simhost.New()
	clock := NewClock(time.Unix(1700000000, 0))
	p := plugin.New(h, plugin.Options{DataDir: t.TempDir(), Now: clock.Now})
	p.Load()

	start := models.NewCheckpoint(1)
	start.Type = models.CheckpointTypeStart
	p.Objects.AddObject(start)

	end := models.NewCheckpoint(2)
	end.Type = models.CheckpointTypeEnd
	end.SetLocation(geometry.NewVector(3000, 0, 0))
	p.Objects.AddObject(end)

	var samples []Sample
	for x := float32(0); x <= 3000; x += 500 {
		samples = append(samples, Sample{Location: geometry.NewVector(x, 0, 0)})
	}

	res, err := Run(context.Background(), p, h, samples, Options{
		TickDuration: 100 * time.Millisecond,
		Clock:        clock,
		Lock:         &sync.Mutex{},
	})
	require.NoError(t, err)
	require.Equal(t, 7, res.Ticks)
	require.True(t, res.Finished)
	require.Equal(t, 600*time.Millisecond, res.RaceTime)
	require.Equal(t, 2, res.Checkpoint)
	require.Zero(t, res.Teleports)
	require.Equal(t, p.Race.RunUUID, res.RunID)
	require.Equal(t, plugin.ModeRace, p.Mode())
}

func TestRunTeleports(t *testing.T) {
	h := simhost.New()
	p := plugin.New(h, plugin.Options{DataDir: t.TempDir()})
	p.Load()

	start := models.NewCheckpoint(1)
	start.Type = models.CheckpointTypeStart
	start.SetLocation(geometry.NewVector(0, 1000, 0))
	p.Objects.AddObject(start)

	p.Objects.AddObject(models.NewSmallRing(1))

	v := models.NewBoxVolume()
	v.SetLocation(geometry.NewVector(0, 3000, 0))
	v.OnTouch = &triggers.SetLocation{Location: geometry.NewVector(0, 4000, 0)}
	p.Objects.AddObject(v)

	res, err := Run(context.Background(), p, h, []Sample{
		{Location: geometry.NewVector(0, 1000, 0)},
		{Location: geometry.NewVector(0, 3000, 0)},
		{Location: geometry.NewVector(250, -90, 0)},
	}, Options{})
	require.NoError(t, err)
	require.Equal(t, 3, res.Ticks)
	require.Equal(t, 1, res.Teleports)
	require.Equal(t, start.SpawnWorldLocation(), h.Local.Loc)
}

func TestRunCanceled(t *testing.T) {
	h := simhost.New()
	p := plugin.New(h, plugin.Options{DataDir: t.TempDir()})
	p.Load()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, p, h, []Sample{{}, {}}, Options{})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, res.Ticks)
}
