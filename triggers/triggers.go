// Package triggers implements the functions a trigger volume runs on the
// actors touching it.
package triggers

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/geometry"
	"github.com/aukilabs/ringsmapeditor/host"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeUnknownTriggerFunction   = "unknown_trigger_function"
	ErrTypeMalformedTriggerFunction = "malformed_trigger_function"
)

// Function is an action run on an actor touching a trigger volume. A
// Function serializes to a JSON object carrying its registry name and its
// parameters.
type Function interface {
	Name() string
	Description() string
	Execute(ctx Context, actor host.Actor)
	Clone() Function

	json.Marshaler
	json.Unmarshaler
}

// SpawnPoint is where a car is put back on a checkpoint.
type SpawnPoint struct {
	Location geometry.Vector
	Rotation geometry.Rotator
}

// CheckpointTable gives trigger functions read access to the race
// checkpoints.
type CheckpointTable interface {
	// CurrentCheckpoint returns the spawn point of the checkpoint the car
	// crossed last.
	CurrentCheckpoint() (SpawnPoint, bool)

	// CheckpointAt returns the spawn point of the checkpoint at the given
	// list index.
	CheckpointAt(index int) (SpawnPoint, bool)
}

// Context is the race state a function executes against.
type Context struct {
	Checkpoints CheckpointTable
}

// Registry holds the prototypes of the available trigger functions.
type Registry struct {
	names      []string
	prototypes map[string]Function
}

// NewRegistry returns a registry with the built-in functions.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(&SetLocation{})
	r.Register(&SetRotation{})
	r.Register(&Destroy{})
	r.Register(&TeleportToCheckpoint{})
	return r
}

// Register adds a prototype. A prototype with the same name is replaced.
func (r *Registry) Register(f Function) {
	if r.prototypes == nil {
		r.prototypes = make(map[string]Function)
	}

	if _, ok := r.prototypes[f.Name()]; !ok {
		r.names = append(r.names, f.Name())
	}
	r.prototypes[f.Name()] = f
}

// Names returns the registered function names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// New returns a fresh function cloned from the prototype with the given name.
func (r *Registry) New(name string) (Function, error) {
	p, ok := r.prototypes[name]
	if !ok {
		return nil, errors.New("unknown trigger function").
			WithType(ErrTypeUnknownTriggerFunction).
			WithTag("name", name)
	}
	return p.Clone(), nil
}

// Decode builds a function from its JSON form. A null or empty input returns
// a nil function.
func (r *Registry) Decode(data []byte) (Function, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var header struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, errors.New("decoding trigger function failed").
			WithType(ErrTypeMalformedTriggerFunction).
			Wrap(err)
	}

	f, err := r.New(header.Name)
	if err != nil {
		return nil, err
	}

	if err := f.UnmarshalJSON(data); err != nil {
		return nil, errors.New("decoding trigger function parameters failed").
			WithType(ErrTypeMalformedTriggerFunction).
			WithTag("name", header.Name).
			Wrap(err)
	}
	return f, nil
}
