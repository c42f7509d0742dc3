package plugin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/editor"
	"github.com/aukilabs/ringsmapeditor/featureflag"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/aukilabs/ringsmapeditor/level"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/simhost"
	"github.com/stretchr/testify/require"
)

func newTestPlugin(t *testing.T, flags ...string) (*Plugin, *simhost.Host) {
	h := simhost.New()
	now := time.Unix(1700000000, 0)

	p := New(h, Options{
		DataDir: t.TempDir(),
		Meshes: []models.MeshInfos{
			{Name: "Cube", MeshPath: "props.cube"},
		},
		Flags: featureflag.New(flags),
		Now:   func() time.Time { return now },
	})
	p.Load()
	return p, h
}

func TestLoadAndUnload(t *testing.T) {
	p, h := newTestPlugin(t)
	require.Equal(t, ModeEditor, p.Mode())
	require.Equal(t, editor.DefaultRates(), p.opts.Rates)

	for _, c := range p.commands() {
		require.True(t, h.HasCommand(c.name), c.name)
	}
	for _, e := range []string{
		host.EventTick,
		host.EventCarSpawn,
		host.EventGameCreated,
		host.EventGameDestroyed,
		host.EventRender,
	} {
		require.True(t, h.IsHooked(e), e)
	}

	require.True(t, h.Execute("ringsmapeditor_buildmode_toggle"))
	require.Equal(t, editor.ModeBuild, p.Editor.Mode())

	p.Unload()
	require.Equal(t, editor.ModeNone, p.Editor.Mode())
	require.False(t, h.HasCommand("ringsmapeditor_save"))
	require.False(t, h.HasCommand("ringsmapeditor_buildmode_place_object"))
	require.False(t, h.IsHooked(host.EventTick))
	require.False(t, h.IsHooked(host.EventSetCameraMode))
}

func TestEditingCommandsRequireEditorMode(t *testing.T) {
	p, h := newTestPlugin(t)

	h.Execute("ringsmapeditor_mode_race")
	require.Equal(t, ModeRace, p.Mode())

	h.Execute("ringsmapeditor_editmode_toggle")
	require.Equal(t, editor.ModeNone, p.Editor.Mode())

	h.Execute("ringsmapeditor_mode_editor")
	h.Execute("ringsmapeditor_editmode_toggle")
	require.Equal(t, editor.ModeEdit, p.Editor.Mode())

	h.Execute("ringsmapeditor_mode_race")
	require.Equal(t, editor.ModeNone, p.Editor.Mode())
	require.False(t, h.HasCommand("ringsmapeditor_editmode_select_object"))
}

func TestRaceMode(t *testing.T) {
	p, h := newTestPlugin(t)

	start := models.NewCheckpoint(1)
	start.Type = models.CheckpointTypeStart
	start.SetLocation(geometry.NewVector(0, 0, 0))
	start.SpawnLocationOffset = geometry.NewVector(0, 0, 50)
	p.Objects.AddObject(start)

	end := models.NewCheckpoint(2)
	end.Type = models.CheckpointTypeEnd
	end.SetLocation(geometry.NewVector(5000, 0, 0))
	p.Objects.AddObject(end)

	h.Local.Loc = geometry.NewVector(-3000, 0, 0)
	h.Fire(host.EventCarSpawn, host.CarSpawnParams{Car: h.Local})
	require.Equal(t, geometry.NewVector(-3000, 0, 0), h.Local.Loc)

	p.StartRaceMode()
	require.NotEmpty(t, p.Race.RunUUID)

	h.Fire(host.EventCarSpawn, host.CarSpawnParams{Car: h.Local})
	require.Equal(t, geometry.NewVector(0, 0, 50), h.Local.Loc)

	h.Fire(host.EventTick, host.TickParams{DeltaTime: 0.016})
	cp, ok := p.Race.Checkpoint()
	require.True(t, ok)
	require.Equal(t, start.ID, cp.ID)
	require.True(t, p.Race.Timer.Running())

	h.Local.Loc = end.Location
	h.Fire(host.EventTick, host.TickParams{DeltaTime: 0.016})
	require.True(t, p.Race.Finished())
	require.False(t, p.Race.Timer.Running())

	p.StartEditorMode()
	require.Equal(t, ModeEditor, p.Mode())
}

func TestTickOutsideGame(t *testing.T) {
	p, h := newTestPlugin(t)
	p.StartRaceMode()

	cp := models.NewCheckpoint(1)
	cp.Type = models.CheckpointTypeStart
	p.Objects.AddObject(cp)

	h.InGame = false
	p.OnTick(0.016)
	_, ok := p.Race.Checkpoint()
	require.False(t, ok)
}

func TestObjectListOperations(t *testing.T) {
	p, h := newTestPlugin(t)
	require.Equal(t, -1, p.SelectedIndex())

	h.Execute("ringsmapeditor_add_object", "checkpoint")
	h.Execute("ringsmapeditor_add_object", "Trigger Volume")
	h.Execute("ringsmapeditor_add_object", "ring")
	h.Execute("ringsmapeditor_add_object", "explosion")
	require.Equal(t, 3, p.Objects.Len())
	require.Equal(t, 2, p.SelectedIndex())
	require.Len(t, h.Alive(), 1)

	h.Execute("ringsmapeditor_copy_object", "0")
	require.Equal(t, 4, p.Objects.Len())
	require.Equal(t, 3, p.SelectedIndex())
	o, ok := p.Selected()
	require.True(t, ok)
	require.Equal(t, "Checkpoint (Copy)", o.Common().Name)

	h.Execute("ringsmapeditor_copy_object", "nope")
	h.Execute("ringsmapeditor_copy_object", "9")
	require.Equal(t, 4, p.Objects.Len())

	require.NoError(t, p.Select(1))
	h.Execute("ringsmapeditor_remove_object", "0")
	require.Equal(t, 3, p.Objects.Len())
	require.Equal(t, 0, p.SelectedIndex())
	o, _ = p.Selected()
	require.Equal(t, models.ObjectTypeTriggerVolume, o.Kind())

	require.NoError(t, p.RemoveObject(0))
	require.Equal(t, 0, p.SelectedIndex())
	o, _ = p.Selected()
	require.Equal(t, models.ObjectTypeRing, o.Kind())

	ring := o.(*models.Ring)
	require.True(t, ring.Mesh.IsSpawned())
	require.NoError(t, p.RemoveObject(0))
	require.Empty(t, h.Alive())
	require.NoError(t, p.RemoveObject(0))
	require.Equal(t, -1, p.SelectedIndex())

	err := p.RemoveObject(0)
	require.True(t, errors.IsType(err, models.ErrTypeObjectNotFound))
	require.Error(t, p.Select(0))
}

func TestRemoveObjectDeselectsEditedObject(t *testing.T) {
	p, h := newTestPlugin(t)

	v := models.NewBoxVolume()
	v.SetLocation(geometry.NewVector(1000, 0, 0))
	p.Objects.AddObject(v)

	h.Execute("ringsmapeditor_editmode_toggle")
	h.Fire(host.EventTick, host.TickParams{DeltaTime: 0.016})
	id, ok := p.Editor.Edit.Hovered()
	require.True(t, ok)
	require.Equal(t, v.ID, id)

	h.Execute("ringsmapeditor_editmode_select_object")
	_, ok = p.Editor.Edit.Selected()
	require.True(t, ok)

	require.NoError(t, p.RemoveObject(0))
	_, ok = p.Editor.Edit.Selected()
	require.False(t, ok)
	_, ok = p.Editor.Edit.Hovered()
	require.False(t, ok)
}

func TestConvertTriggerVolume(t *testing.T) {
	p, h := newTestPlugin(t)

	cp := models.NewCheckpoint(1)
	cp.SetLocation(geometry.NewVector(-3000, 0, 0))
	p.Objects.AddObject(cp)
	v := models.NewBoxVolume()
	v.SetLocation(geometry.NewVector(1000, 0, 0))
	p.Objects.AddObject(v)

	h.Execute("ringsmapeditor_editmode_toggle")
	h.Fire(host.EventTick, host.TickParams{DeltaTime: 0.016})
	h.Execute("ringsmapeditor_editmode_select_object")
	require.Equal(t, editor.CatalogBox, p.Editor.Edit.PropertyCursor().Catalog())

	require.True(t, h.Execute("ringsmapeditor_convert_triggervolume", "1", "cylinder"))
	o := p.Objects.Objects()[1]
	converted, ok := o.(*models.TriggerVolume)
	require.True(t, ok)
	require.Equal(t, v.ID, converted.ID)
	require.Equal(t, models.TriggerVolumeTypeCylinder, converted.VolumeType())

	h.Fire(host.EventTick, host.TickParams{DeltaTime: 0.016})
	id, ok := p.Editor.Edit.Selected()
	require.True(t, ok)
	require.Equal(t, v.ID, id)
	require.Equal(t, editor.CatalogCylinder, p.Editor.Edit.PropertyCursor().Catalog())

	h.Execute("ringsmapeditor_convert_triggervolume", "1", "sphere")
	h.Execute("ringsmapeditor_convert_triggervolume", "1")
	require.Equal(t, models.TriggerVolumeTypeCylinder, p.Objects.TriggerVolumes()[0].VolumeType())

	_, err := p.ConvertTriggerVolume(0, models.TriggerVolumeTypeBox)
	require.True(t, errors.IsType(err, models.ErrTypeWrongObjectKind))
	_, err = p.ConvertTriggerVolume(5, models.TriggerVolumeTypeBox)
	require.True(t, errors.IsType(err, models.ErrTypeObjectNotFound))
}

func TestParseTriggerVolumeType(t *testing.T) {
	typ, err := ParseTriggerVolumeType("Box")
	require.NoError(t, err)
	require.Equal(t, models.TriggerVolumeTypeBox, typ)

	typ, err = ParseTriggerVolumeType(" CYLINDER ")
	require.NoError(t, err)
	require.Equal(t, models.TriggerVolumeTypeCylinder, typ)

	_, err = ParseTriggerVolumeType("unknown")
	require.True(t, errors.IsType(err, ErrTypeInvalidArgument))
}

func TestSaveAndLoadLevel(t *testing.T) {
	p, h := newTestPlugin(t)

	p.Objects.AddObject(models.NewMesh(models.MeshInfos{Name: "Cube", MeshPath: "props.cube"}))
	p.Objects.AddObject(models.NewCheckpoint(1))
	p.Objects.AddObject(models.NewSmallRing(1))

	h.Execute("ringsmapeditor_save", "track")
	require.FileExists(t, filepath.Join(p.opts.DataDir, "track.json"))

	h.Execute("ringsmapeditor_save")
	h.Execute("ringsmapeditor_save", "../escape")
	require.NoFileExists(t, filepath.Join(filepath.Dir(p.opts.DataDir), "escape.json"))

	require.NoError(t, p.RemoveObject(0))
	levelID := p.Objects.LevelUUID

	h.Execute("ringsmapeditor_load", "track")
	require.Equal(t, 3, p.Objects.Len())
	require.NotEqual(t, levelID, p.Objects.LevelUUID)
	require.Equal(t, -1, p.SelectedIndex())
	require.Len(t, h.Alive(), 2)

	require.NoError(t, os.WriteFile(filepath.Join(p.opts.DataDir, "broken.json"), []byte(`[{"objectType": 7}]`), 0o644))
	err := p.LoadLevel("broken")
	require.True(t, errors.IsType(err, models.ErrTypeUnknownObjectType))
	require.Equal(t, 3, p.Objects.Len())

	err = p.LoadLevel("missing")
	require.True(t, errors.IsType(err, level.ErrTypeLevelFileAccess))
	require.Equal(t, 3, p.Objects.Len())
}

func TestGameLifecycle(t *testing.T) {
	p, h := newTestPlugin(t)

	mesh := models.NewMesh(models.MeshInfos{Name: "Cube", MeshPath: "props.cube"})
	mesh.EnableCollisions = true
	p.Objects.AddObject(mesh)
	ring := models.NewSmallRing(1)
	p.Objects.AddObject(ring)
	p.Objects.AddObject(models.NewBoxVolume())

	h.Fire(host.EventGameCreated, nil)
	require.True(t, h.IsHooked(host.EventGameFirstTick))
	require.Empty(t, h.Alive())

	h.Fire(host.EventGameFirstTick, nil)
	require.False(t, h.IsHooked(host.EventGameFirstTick))
	require.Len(t, h.Alive(), 2)
	require.True(t, mesh.IsSpawned())
	require.True(t, ring.Mesh.IsSpawned())
	require.True(t, h.Alive()[0].Collisions)

	p.SpawnAllMeshes()
	require.Len(t, h.Spawned, 2)

	h.Fire(host.EventGameDestroyed, nil)
	require.Empty(t, h.Alive())
	require.False(t, mesh.IsSpawned())
	require.Equal(t, 3, p.Objects.Len())
}

func TestMeshSpawnDisabled(t *testing.T) {
	p, h := newTestPlugin(t, string(featureflag.FlagDisableMeshSpawn))

	p.Objects.AddObject(models.NewSmallRing(1))
	h.Fire(host.EventGameCreated, nil)
	h.Fire(host.EventGameFirstTick, nil)

	_, err := p.AddObject(models.ObjectTypeRing)
	require.NoError(t, err)
	require.Empty(t, h.Spawned)
}

func TestRenderCanvas(t *testing.T) {
	p, h := newTestPlugin(t)
	canvas := simhost.NewCanvas(h)

	v := models.NewBoxVolume()
	v.SetLocation(geometry.NewVector(1000, 0, 0))
	p.Objects.AddObject(v)

	h.Fire(host.EventRender, host.CanvasParams{Canvas: canvas})
	require.Len(t, canvas.Lines, 12)
	require.Empty(t, canvas.Strings)

	canvas.Reset()
	h.Execute("ringsmapeditor_buildmode_toggle")
	h.Fire(host.EventRender, host.CanvasParams{Canvas: canvas})
	require.Contains(t, canvas.Strings, "Build Mode")

	canvas.Reset()
	p.StartRaceMode()
	h.Fire(host.EventRender, host.CanvasParams{Canvas: canvas})
	require.Equal(t, []string{"Time: 0.000 seconds"}, canvas.Strings)
	require.Empty(t, canvas.Lines)
}

func TestParseObjectType(t *testing.T) {
	tests := []struct {
		name     string
		expected models.ObjectType
	}{
		{name: "mesh", expected: models.ObjectTypeMesh},
		{name: "Trigger Volume", expected: models.ObjectTypeTriggerVolume},
		{name: "trigger_volume", expected: models.ObjectTypeTriggerVolume},
		{name: "CHECKPOINT", expected: models.ObjectTypeCheckpoint},
		{name: "ring", expected: models.ObjectTypeRing},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			typ, err := ParseObjectType(test.name)
			require.NoError(t, err)
			require.Equal(t, test.expected, typ)
		})
	}

	_, err := ParseObjectType("none")
	require.True(t, errors.IsType(err, ErrTypeInvalidArgument))
}
