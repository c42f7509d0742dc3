package http

import (
	"net/http"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ringsmapeditor/level"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/plugin"
	"github.com/segmentio/encoding/json"
)

func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(version))
	}
}

// HandleWithCORS allows GET requests from any origin.
func HandleWithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// LevelStatus is the body of the level endpoint.
type LevelStatus struct {
	LevelID     string          `json:"levelId"`
	ObjectCount int             `json:"objectCount"`
	Issues      []string        `json:"issues"`
	Objects     []models.Object `json:"objects"`
}

// HandleLevel writes the objects of the level and the problems preventing
// it from being raced. lock is held while the level is read.
func HandleLevel(lock sync.Locker, objects *models.ObjectManager) http.HandlerFunc {
	return handleJSON(lock, func() any {
		all := objects.Objects()
		issues := []string{}
		for _, err := range level.Validate(all) {
			issues = append(issues, errors.Type(err))
		}

		return LevelStatus{
			LevelID:     objects.LevelUUID,
			ObjectCount: len(all),
			Issues:      issues,
			Objects:     all,
		}
	})
}

// RaceStatus is the body of the race endpoint.
type RaceStatus struct {
	Mode           string  `json:"mode"`
	RunID          string  `json:"runId,omitempty"`
	Running        bool    `json:"running"`
	Finished       bool    `json:"finished"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	CheckpointID   int     `json:"checkpointId"`

	// RingID is the last ring passed, or -1.
	RingID int `json:"ringId"`
}

// HandleRace writes the state of the current race. lock is held while the
// race is read.
func HandleRace(lock sync.Locker, p *plugin.Plugin) http.HandlerFunc {
	return handleJSON(lock, func() any {
		s := RaceStatus{
			Mode:           p.Mode().String(),
			RunID:          p.Race.RunUUID,
			Running:        p.Race.Timer.Running(),
			Finished:       p.Race.Finished(),
			ElapsedSeconds: p.Race.Timer.Elapsed().Seconds(),
			RingID:         p.Race.CurrentRingID(),
		}
		if cp, ok := p.Race.Checkpoint(); ok {
			s.CheckpointID = cp.CheckpointID
		}
		return s
	})
}

func handleJSON(lock sync.Locker, snapshot func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		lock.Lock()
		data, err := json.Marshal(snapshot())
		lock.Unlock()

		if err != nil {
			logs.Warn(errors.New("encoding admin response failed").
				WithTag("path", r.URL.Path).
				Wrap(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
