package level

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

const ErrTypeMalformedMeshInfos = "malformed_mesh_infos"

// LoadMeshCatalog reads the meshes described in dir. Files are read in name
// order. A .json file holds one entry or an array of entries and a .yaml or
// .yml file holds one entry or a sequence of entries. Malformed files are
// logged and skipped.
func LoadMeshCatalog(dir string) ([]models.MeshInfos, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.New("reading mesh catalog failed").
			WithType(ErrTypeLevelFileAccess).
			WithTag("dir", dir).
			Wrap(err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var meshes []models.MeshInfos
	for _, name := range names {
		path := filepath.Join(dir, name)

		var decode func([]byte) ([]models.MeshInfos, error)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			decode = decodeMeshInfosJSON
		case ".yaml", ".yml":
			decode = decodeMeshInfosYAML
		default:
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logs.Warn(errors.New("reading mesh infos failed").
				WithTag("path", path).
				Wrap(err))
			continue
		}

		infos, err := decode(data)
		if err == nil {
			err = validateMeshInfos(infos)
		}
		if err != nil {
			logs.Warn(errors.New("skipping mesh infos").
				WithTag("path", path).
				Wrap(err))
			continue
		}
		meshes = append(meshes, infos...)
	}

	logs.WithTag("dir", dir).
		WithTag("mesh_count", len(meshes)).
		Debug("mesh catalog loaded")
	return meshes, nil
}

func decodeMeshInfosJSON(data []byte) ([]models.MeshInfos, error) {
	if isJSONArray(data) {
		var infos []models.MeshInfos
		if err := json.Unmarshal(data, &infos); err != nil {
			return nil, malformedMeshInfos(err)
		}
		return infos, nil
	}

	var info models.MeshInfos
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, malformedMeshInfos(err)
	}
	return []models.MeshInfos{info}, nil
}

func decodeMeshInfosYAML(data []byte) ([]models.MeshInfos, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, malformedMeshInfos(err)
	}
	if len(node.Content) == 0 {
		return nil, malformedMeshInfos(errors.New("empty document"))
	}

	doc := node.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var infos []models.MeshInfos
		if err := doc.Decode(&infos); err != nil {
			return nil, malformedMeshInfos(err)
		}
		return infos, nil
	}

	var info models.MeshInfos
	if err := doc.Decode(&info); err != nil {
		return nil, malformedMeshInfos(err)
	}
	return []models.MeshInfos{info}, nil
}

func validateMeshInfos(infos []models.MeshInfos) error {
	for i, info := range infos {
		if info.Name == "" || info.MeshPath == "" {
			return errors.New("mesh infos need a name and a mesh path").
				WithType(ErrTypeMalformedMeshInfos).
				WithTag("index", i)
		}
	}
	return nil
}

func malformedMeshInfos(err error) error {
	return errors.New("malformed mesh infos").
		WithType(ErrTypeMalformedMeshInfos).
		Wrap(err)
}
