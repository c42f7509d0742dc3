// Package level reads and writes level files and the mesh catalog.
package level

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/triggers"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeMalformedLevel  = "malformed_level"
	ErrTypeInvalidName     = "invalid_level_name"
	ErrTypeLevelFileAccess = "level_file_access"

	// Extension is the extension of level files.
	Extension = ".json"
)

// Encode returns the level file content of the given objects.
func Encode(objects []models.Object) ([]byte, error) {
	if objects == nil {
		objects = []models.Object{}
	}
	return json.MarshalIndent(objects, "", "    ")
}

func Save(w io.Writer, objects []models.Object) error {
	data, err := Encode(objects)
	if err != nil {
		return errors.New("encoding level failed").Wrap(err)
	}
	if _, err := w.Write(data); err != nil {
		return errors.New("writing level failed").Wrap(err)
	}
	return nil
}

// SaveFile writes the objects to path, creating its directory if needed.
func SaveFile(path string, objects []models.Object) error {
	data, err := Encode(objects)
	if err != nil {
		return errors.New("encoding level failed").Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New("creating level directory failed").
			WithType(ErrTypeLevelFileAccess).
			WithTag("path", path).
			Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("writing level file failed").
			WithType(ErrTypeLevelFileAccess).
			WithTag("path", path).
			Wrap(err)
	}

	logs.WithTag("path", path).
		WithTag("object_count", len(objects)).
		Info("level saved")
	return nil
}

// Decode decodes every object of a level file. Nothing is returned when an
// object fails to decode; the error carries the index of that object.
func Decode(data []byte, functions *triggers.Registry) ([]models.Object, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.New("level is not a json array").
			WithType(ErrTypeMalformedLevel).
			Wrap(err)
	}

	objects := make([]models.Object, 0, len(items))
	for i, item := range items {
		o, err := models.DecodeObject(item, functions)
		if err != nil {
			return nil, errors.New("decoding level object failed").
				WithType(errors.Type(err)).
				WithTag("index", i).
				Wrap(err)
		}
		objects = append(objects, o)
	}
	return objects, nil
}

func Load(r io.Reader, functions *triggers.Registry) ([]models.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("reading level failed").Wrap(err)
	}
	return Decode(data, functions)
}

// LoadFile replaces the objects of the manager with the ones of the level
// file at path. The manager is left untouched when the file cannot be read
// or decoded.
func LoadFile(path string, objects *models.ObjectManager) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("reading level file failed").
			WithType(ErrTypeLevelFileAccess).
			WithTag("path", path).
			Wrap(err)
	}

	decoded, err := Decode(data, objects.Functions)
	if err != nil {
		return errors.New("loading level file failed").
			WithType(errors.Type(err)).
			WithTag("path", path).
			Wrap(err)
	}

	objects.Replace(decoded)
	logs.WithTag("path", path).
		WithTag("level_id", objects.LevelUUID).
		WithTag("object_count", len(decoded)).
		Info("level loaded")
	return nil
}

// Path returns the path of the level with the given name in dir. Names are
// plain file names; the extension is optional.
func Path(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.New("invalid level name").
			WithType(ErrTypeInvalidName).
			WithTag("name", name)
	}

	if filepath.Ext(name) != Extension {
		name += Extension
	}
	return filepath.Join(dir, name), nil
}

// isJSONArray reports whether data starts like a JSON array.
func isJSONArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}
