package level

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/stretchr/testify/require"
)

func testLevel() []models.Object {
	mesh := models.NewMesh(models.MeshInfos{Name: "Cube", MeshPath: "props.cube"})
	mesh.SetLocation(geometry.NewVector(1, 2, 3))
	mesh.EnableCollisions = true

	v := models.NewCylinderVolume()
	v.OnTouch = &triggers.TeleportToCheckpoint{UseCurrentCheckpoint: true}

	cp := models.NewCheckpoint(1)
	cp.Type = models.CheckpointTypeStart
	cp.SetLocation(geometry.NewVector(0, 1000, 0))

	ring := models.NewSmallRing(1)
	ring.SetRotation(geometry.NewRotator(0, 16384, 0))

	return []models.Object{mesh, v, cp, ring}
}

func TestSaveAndLoad(t *testing.T) {
	objects := testLevel()

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, objects))
	require.Contains(t, buf.String(), "\n    {")

	loaded, err := Load(&buf, nil)
	require.NoError(t, err)
	require.Len(t, loaded, len(objects))

	for i, o := range loaded {
		require.Equal(t, objects[i].Kind(), o.Kind())
		require.Equal(t, objects[i].Common().Name, o.Common().Name)
		require.Equal(t, objects[i].Common().Location, o.Common().Location)
		require.Equal(t, objects[i].Common().Rotation, o.Common().Rotation)
	}

	v := loaded[1].(*models.TriggerVolume)
	require.Equal(t, &triggers.TeleportToCheckpoint{UseCurrentCheckpoint: true}, v.OnTouch)

	ring := loaded[3].(*models.Ring)
	require.True(t, ring.In.Location.EqualWithEpsilon(objects[3].(*models.Ring).In.Location, 1e-3))
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	objects, err := Decode(data, nil)
	require.NoError(t, err)
	require.Empty(t, objects)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		errType string
	}{
		{
			name:    "not an array",
			data:    `{"objectType": 1}`,
			errType: ErrTypeMalformedLevel,
		},
		{
			name:    "unknown object type",
			data:    `[{"objectType": 2, "name": "a", "triggerVolumeType": 1, "size": {"X": 1, "Y": 1, "Z": 1}}, {"objectType": 9}]`,
			errType: models.ErrTypeUnknownObjectType,
		},
		{
			name:    "unknown trigger function",
			data:    `[{"objectType": 2, "name": "a", "triggerVolumeType": 1, "size": {"X": 1, "Y": 1, "Z": 1}, "onTouchCallback": {"name": "Explode"}}]`,
			errType: triggers.ErrTypeUnknownTriggerFunction,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			objects, err := Decode([]byte(test.data), nil)
			require.Error(t, err)
			require.Nil(t, objects)
			require.True(t, errors.IsType(err, test.errType), "got %s", errors.Type(err))
		})
	}
}

func TestSaveFileAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Path(filepath.Join(dir, "levels"), "track")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "levels", "track.json"), path)

	require.NoError(t, SaveFile(path, testLevel()))

	m := models.NewObjectManager(nil)
	m.AddObject(models.NewBoxVolume())
	levelID := m.LevelUUID

	require.NoError(t, LoadFile(path, m))
	require.Equal(t, 4, m.Len())
	require.NotEqual(t, levelID, m.LevelUUID)
	require.Len(t, m.Rings(), 1)
	require.Len(t, m.Checkpoints(), 1)
}

func TestLoadFileKeepsObjectsOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"objectType": 3, "name": "cp"}, {"objectType": 42}]`), 0o644))

	m := models.NewObjectManager(nil)
	v := m.AddObject(models.NewBoxVolume())
	levelID := m.LevelUUID

	err := LoadFile(path, m)
	require.Error(t, err)
	require.Equal(t, []models.Object{v}, m.Objects())
	require.Equal(t, levelID, m.LevelUUID)

	err = LoadFile(filepath.Join(dir, "missing.json"), m)
	require.True(t, errors.IsType(err, ErrTypeLevelFileAccess))
	require.Equal(t, 1, m.Len())
}

func TestPath(t *testing.T) {
	p, err := Path("levels", "track.json")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("levels", "track.json"), p)

	for _, name := range []string{"", " ", "..", "a/b", `a\b`} {
		_, err := Path("levels", name)
		require.True(t, errors.IsType(err, ErrTypeInvalidName), name)
	}
}

func TestLoadMeshCatalog(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b_ramp.json":   `{"name": "Ramp", "meshPath": "props.ramp"}`,
		"a_cube.yaml":   "name: Cube\nmeshPath: props.cube\n",
		"c_walls.yml":   "- name: Wall\n  meshPath: props.wall\n- name: Pillar\n  meshPath: props.pillar\n",
		"d_arches.json": `[{"name": "Arch", "meshPath": "props.arch"}]`,
		"e_broken.json": `{"name": `,
		"f_empty.yaml":  "name: NoPath\n",
		"readme.txt":    "not a mesh",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	meshes, err := LoadMeshCatalog(dir)
	require.NoError(t, err)
	require.Equal(t, []models.MeshInfos{
		{Name: "Cube", MeshPath: "props.cube"},
		{Name: "Ramp", MeshPath: "props.ramp"},
		{Name: "Wall", MeshPath: "props.wall"},
		{Name: "Pillar", MeshPath: "props.pillar"},
		{Name: "Arch", MeshPath: "props.arch"},
	}, meshes)

	_, err = LoadMeshCatalog(filepath.Join(dir, "missing"))
	require.True(t, errors.IsType(err, ErrTypeLevelFileAccess))
}

func TestValidate(t *testing.T) {
	issueTypes := func(objects []models.Object) []string {
		var types []string
		for _, err := range Validate(objects) {
			types = append(types, errors.Type(err))
		}
		return types
	}

	start := models.NewCheckpoint(1)
	start.Type = models.CheckpointTypeStart
	end := models.NewCheckpoint(2)
	end.Type = models.CheckpointTypeEnd

	require.Empty(t, issueTypes([]models.Object{start, models.NewSmallRing(1), end}))

	require.Equal(t, []string{ErrTypeNoCheckpoint}, issueTypes(nil))

	require.Equal(t, []string{
		ErrTypeMissingMeshPath,
		ErrTypeDuplicateCheckpoint,
		ErrTypeDuplicateRing,
		ErrTypeFirstNotStart,
		ErrTypeNoStartCheckpoint,
	}, issueTypes([]models.Object{
		models.NewMesh(models.MeshInfos{Name: "Empty"}),
		end,
		models.NewSmallRing(1),
		end.Clone(),
		models.NewSmallRing(1),
	}))
}
