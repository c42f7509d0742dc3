package plugin

import (
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/models"
)

const (
	ErrTypeMissingArgument = "missing_argument"
	ErrTypeInvalidArgument = "invalid_argument"
)

type command struct {
	name        string
	description string
	fn          func(args []string)
}

func (p *Plugin) commands() []command {
	return []command{
		{
			name:        "ringsmapeditor_buildmode_toggle",
			description: "Toggle Build Mode",
			fn:          p.whenEditing(p.Editor.ToggleBuildMode),
		},
		{
			name:        "ringsmapeditor_editmode_toggle",
			description: "Toggle Edit Mode",
			fn:          p.whenEditing(p.Editor.ToggleEditMode),
		},
		{
			name:        "ringsmapeditor_mode_editor",
			description: "Start the editor mode",
			fn:          func([]string) { p.StartEditorMode() },
		},
		{
			name:        "ringsmapeditor_mode_race",
			description: "Start a race on the current level",
			fn:          func([]string) { p.StartRaceMode() },
		},
		{
			name:        "ringsmapeditor_save",
			description: "Save the level: ringsmapeditor_save <name>",
			fn:          p.handleSave,
		},
		{
			name:        "ringsmapeditor_load",
			description: "Load a level: ringsmapeditor_load <name>",
			fn:          p.handleLoad,
		},
		{
			name:        "ringsmapeditor_add_object",
			description: "Add an object: ringsmapeditor_add_object <mesh|triggervolume|checkpoint|ring>",
			fn:          p.handleAddObject,
		},
		{
			name:        "ringsmapeditor_copy_object",
			description: "Copy an object: ringsmapeditor_copy_object <index>",
			fn:          p.handleCopyObject,
		},
		{
			name:        "ringsmapeditor_remove_object",
			description: "Remove an object: ringsmapeditor_remove_object <index>",
			fn:          p.handleRemoveObject,
		},
		{
			name:        "ringsmapeditor_convert_triggervolume",
			description: "Change a trigger volume shape: ringsmapeditor_convert_triggervolume <index> <box|cylinder>",
			fn:          p.handleConvertTriggerVolume,
		},
		{
			name:        "ringsmapeditor_list_objects",
			description: "Log the objects of the level",
			fn:          func([]string) { p.logObjects() },
		},
	}
}

// commandArgs drops the command name the host passes as first argument.
func commandArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return args[1:]
}

func (p *Plugin) whenEditing(fn func()) func([]string) {
	return func([]string) {
		if p.mode != ModeEditor {
			logs.Warn(errors.New("editing is only available in editor mode").
				WithTag("mode", p.mode.String()))
			return
		}
		fn()
	}
}

func (p *Plugin) handleSave(args []string) {
	name, err := firstArg(args, "name")
	if err == nil {
		err = p.SaveLevel(name)
	}
	if err != nil {
		logs.Warn(errors.New("saving level failed").
			WithType(errors.Type(err)).
			Wrap(err))
	}
}

func (p *Plugin) handleLoad(args []string) {
	name, err := firstArg(args, "name")
	if err == nil {
		err = p.LoadLevel(name)
	}
	if err != nil {
		logs.Warn(errors.New("loading level failed").
			WithType(errors.Type(err)).
			Wrap(err))
	}
}

func (p *Plugin) handleAddObject(args []string) {
	arg, err := firstArg(args, "object_type")
	if err != nil {
		logs.Warn(err)
		return
	}

	t, err := ParseObjectType(arg)
	if err != nil {
		logs.Warn(err)
		return
	}

	if _, err := p.AddObject(t); err != nil {
		logs.Warn(errors.New("adding object failed").Wrap(err))
	}
}

func (p *Plugin) handleCopyObject(args []string) {
	index, err := indexArg(args)
	if err == nil {
		_, err = p.CopyObject(index)
	}
	if err != nil {
		logs.Warn(errors.New("copying object failed").Wrap(err))
	}
}

func (p *Plugin) handleRemoveObject(args []string) {
	index, err := indexArg(args)
	if err == nil {
		err = p.RemoveObject(index)
	}
	if err != nil {
		logs.Warn(errors.New("removing object failed").Wrap(err))
	}
}

func (p *Plugin) handleConvertTriggerVolume(args []string) {
	index, err := indexArg(args)
	if err != nil {
		logs.Warn(err)
		return
	}

	arg, err := firstArg(args[1:], "volume_type")
	if err != nil {
		logs.Warn(err)
		return
	}

	t, err := ParseTriggerVolumeType(arg)
	if err != nil {
		logs.Warn(err)
		return
	}

	if _, err := p.ConvertTriggerVolume(index, t); err != nil {
		logs.Warn(errors.New("converting trigger volume failed").Wrap(err))
	}
}

func (p *Plugin) logObjects() {
	for i, o := range p.Objects.Objects() {
		b := o.Common()
		logs.WithTag("index", i).
			WithTag("object_id", b.ID).
			WithTag("object_name", b.Name).
			WithTag("object_type", o.Kind().String()).
			WithTag("selected", i == p.selected).
			Info("level object")
	}
}

// ParseObjectType returns the object kind with the given name. Names are
// case insensitive and may omit spaces.
func ParseObjectType(s string) (models.ObjectType, error) {
	name := strings.ToLower(strings.NewReplacer(" ", "", "_", "").Replace(s))
	for _, t := range []models.ObjectType{
		models.ObjectTypeMesh,
		models.ObjectTypeTriggerVolume,
		models.ObjectTypeCheckpoint,
		models.ObjectTypeRing,
	} {
		if name == strings.ToLower(strings.ReplaceAll(t.String(), " ", "")) {
			return t, nil
		}
	}

	return models.ObjectTypeNone, errors.New("unknown object type").
		WithType(ErrTypeInvalidArgument).
		WithTag("object_type", s)
}

// ParseTriggerVolumeType returns the volume shape with the given case
// insensitive name.
func ParseTriggerVolumeType(s string) (models.TriggerVolumeType, error) {
	name := strings.TrimSpace(s)
	for _, t := range []models.TriggerVolumeType{
		models.TriggerVolumeTypeBox,
		models.TriggerVolumeTypeCylinder,
	} {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}

	return models.TriggerVolumeTypeUnknown, errors.New("unknown trigger volume type").
		WithType(ErrTypeInvalidArgument).
		WithTag("volume_type", s)
}

func firstArg(args []string, name string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New("missing command argument").
			WithType(ErrTypeMissingArgument).
			WithTag("argument", name)
	}
	return args[0], nil
}

func indexArg(args []string) (int, error) {
	arg, err := firstArg(args, "index")
	if err != nil {
		return 0, err
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New("index is not a number").
			WithType(ErrTypeInvalidArgument).
			WithTag("index", arg).
			Wrap(err)
	}
	return index, nil
}
