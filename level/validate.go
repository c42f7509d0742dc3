package level

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ringsmapeditor/models"
)

const (
	ErrTypeNoCheckpoint        = "no_checkpoint"
	ErrTypeNoStartCheckpoint   = "no_start_checkpoint"
	ErrTypeNoEndCheckpoint     = "no_end_checkpoint"
	ErrTypeFirstNotStart       = "first_checkpoint_not_start"
	ErrTypeDuplicateCheckpoint = "duplicate_checkpoint_id"
	ErrTypeDuplicateRing       = "duplicate_ring_id"
	ErrTypeMissingMeshPath     = "missing_mesh_path"
)

// Validate returns the problems preventing the level from being raced. The
// level stays usable in the editor whatever the result.
func Validate(objects []models.Object) []error {
	var (
		issues      []error
		checkpoints []*models.Checkpoint
		hasStart    bool
		hasEnd      bool
		cpIDs       = make(map[int]struct{})
		ringIDs     = make(map[int]struct{})
	)

	for i, o := range objects {
		switch o := o.(type) {
		case *models.Mesh:
			if o.MeshInfos.MeshPath == "" {
				issues = append(issues, errors.New("mesh has no mesh path").
					WithType(ErrTypeMissingMeshPath).
					WithTag("index", i).
					WithTag("object_name", o.Name))
			}

		case *models.Checkpoint:
			checkpoints = append(checkpoints, o)
			hasStart = hasStart || o.IsStart()
			hasEnd = hasEnd || o.IsEnd()

			if _, ok := cpIDs[o.CheckpointID]; ok {
				issues = append(issues, errors.New("checkpoint id is used twice").
					WithType(ErrTypeDuplicateCheckpoint).
					WithTag("index", i).
					WithTag("checkpoint_id", o.CheckpointID))
			}
			cpIDs[o.CheckpointID] = struct{}{}

		case *models.Ring:
			if _, ok := ringIDs[o.RingID]; ok {
				issues = append(issues, errors.New("ring id is used twice").
					WithType(ErrTypeDuplicateRing).
					WithTag("index", i).
					WithTag("ring_id", o.RingID))
			}
			ringIDs[o.RingID] = struct{}{}
		}
	}

	if len(checkpoints) == 0 {
		return append(issues, errors.New("level has no checkpoint").
			WithType(ErrTypeNoCheckpoint))
	}

	if !checkpoints[0].IsStart() {
		issues = append(issues, errors.New("first checkpoint is not a start checkpoint").
			WithType(ErrTypeFirstNotStart).
			WithTag("checkpoint_id", checkpoints[0].CheckpointID))
	}
	if !hasStart {
		issues = append(issues, errors.New("level has no start checkpoint").
			WithType(ErrTypeNoStartCheckpoint))
	}
	if !hasEnd {
		issues = append(issues, errors.New("level has no end checkpoint").
			WithType(ErrTypeNoEndCheckpoint))
	}
	return issues
}
