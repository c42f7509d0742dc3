package plugin

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/featureflag"
	"github.com/aukilabs/ringsmapeditor/level"
	"github.com/aukilabs/ringsmapeditor/models"
)

// SelectedIndex returns the position in the object list of the selected
// object, or -1.
func (p *Plugin) SelectedIndex() int {
	return p.selected
}

// Select selects the object at the given position of the object list.
func (p *Plugin) Select(index int) error {
	if index < 0 || index >= p.Objects.Len() {
		return errors.New("object index out of range").
			WithType(models.ErrTypeObjectNotFound).
			WithTag("index", index)
	}
	p.selected = index
	return nil
}

// Selected returns the selected object.
func (p *Plugin) Selected() (models.Object, bool) {
	objects := p.Objects.Objects()
	if p.selected < 0 || p.selected >= len(objects) {
		return nil, false
	}
	return objects[p.selected], true
}

// AddObject adds a default object of the given kind and selects it. Meshes
// and rings are spawned when a game is running.
func (p *Plugin) AddObject(t models.ObjectType) (models.Object, error) {
	o, err := p.Objects.AddObjectOfType(t)
	if err != nil {
		return nil, err
	}

	p.spawn(o)
	p.selectLast()
	return o, nil
}

// CopyObject adds a copy of the object at the given position of the object
// list and selects it.
func (p *Plugin) CopyObject(index int) (models.Object, error) {
	objects := p.Objects.Objects()
	if index < 0 || index >= len(objects) {
		return nil, errors.New("object index out of range").
			WithType(models.ErrTypeObjectNotFound).
			WithTag("index", index)
	}

	c, err := p.Objects.CopyObject(objects[index].Common().ID)
	if err != nil {
		return nil, err
	}

	p.spawn(c)
	p.selectLast()
	return c, nil
}

// RemoveObject removes the object at the given position of the object list.
// Removing the selected object selects the previous one, or the first one
// when there is none.
func (p *Plugin) RemoveObject(index int) error {
	objects := p.Objects.Objects()
	if index < 0 || index >= len(objects) {
		return errors.New("object index out of range").
			WithType(models.ErrTypeObjectNotFound).
			WithTag("index", index)
	}

	id := objects[index].Common().ID
	if err := p.Objects.RemoveObject(id); err != nil {
		return err
	}
	p.Editor.ObjectRemoved(id)

	if p.selected >= index {
		p.selected--
	}
	if p.selected < 0 && p.Objects.Len() != 0 {
		p.selected = 0
	}
	return nil
}

// ConvertTriggerVolume changes the shape of the trigger volume at the given
// position of the object list. The volume keeps its position in the list.
func (p *Plugin) ConvertTriggerVolume(index int, t models.TriggerVolumeType) (*models.TriggerVolume, error) {
	objects := p.Objects.Objects()
	if index < 0 || index >= len(objects) {
		return nil, errors.New("object index out of range").
			WithType(models.ErrTypeObjectNotFound).
			WithTag("index", index)
	}

	v, err := p.Objects.ConvertTriggerVolume(objects[index].Common().ID, t)
	if err != nil {
		return nil, err
	}

	logs.WithTag("object_id", v.ID).
		WithTag("volume_type", t.String()).
		Info("trigger volume converted")
	return v, nil
}

func (p *Plugin) selectLast() {
	p.selected = p.Objects.Len() - 1
}

func (p *Plugin) spawn(o models.Object) {
	if !p.host.IsInGame() || p.opts.Flags.IsSet(featureflag.FlagDisableMeshSpawn) {
		return
	}

	var m *models.Mesh
	switch o := o.(type) {
	case *models.Mesh:
		m = o
	case *models.Ring:
		m = o.Mesh
	default:
		return
	}

	if err := m.SpawnInstance(p.host); err != nil {
		logs.Warn(errors.New("spawning object mesh failed").
			WithTag("object_id", o.Common().ID).
			Wrap(err))
	}
}

// SaveLevel writes the level to the data directory under the given name.
func (p *Plugin) SaveLevel(name string) error {
	path, err := level.Path(p.opts.DataDir, name)
	if err != nil {
		instrumentLevelIO(levelSave, err)
		return err
	}

	err = level.SaveFile(path, p.Objects.Objects())
	instrumentLevelIO(levelSave, err)
	return err
}

// LoadLevel replaces the level by the one saved in the data directory under
// the given name. The current level is kept when the file cannot be loaded.
func (p *Plugin) LoadLevel(name string) error {
	path, err := level.Path(p.opts.DataDir, name)
	if err != nil {
		instrumentLevelIO(levelLoad, err)
		return err
	}

	if err := level.LoadFile(path, p.Objects); err != nil {
		instrumentLevelIO(levelLoad, err)
		return err
	}
	instrumentLevelIO(levelLoad, nil)

	p.selected = -1
	if p.host.IsInGame() {
		p.SpawnAllMeshes()
	}
	return nil
}
