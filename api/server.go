package api

import (
	"encoding/json"
	"net/http"

	"github.com/matt-g-everett/animtx/anim"
	"github.com/rs/zerolog/log"
)

type status struct {
	Subjects []anim.FrameSubject    `json:"subjects"`
	Active   map[string][]anim.Kind `json:"active"`
}

// An Api serves a JSON view of the stage and the running animations.
type Api struct {
	addr     string
	driver   *anim.Driver
	registry *anim.Registry
	stage    *anim.Stage
}

// NewApi creates an instance of an Api.
func NewApi(addr string, driver *anim.Driver, registry *anim.Registry, stage *anim.Stage) *Api {
	a := new(Api)
	a.addr = addr
	a.driver = driver
	a.registry = registry
	a.stage = stage
	return a
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	// Snapshot on the frame goroutine; the registry and stage are not safe
	// to read from here.
	reply := make(chan status, 1)
	a.driver.Call(func() {
		reply <- status{
			Subjects: a.stage.Snapshot().Subjects,
			Active:   a.registry.Active(),
		}
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(<-reply); err != nil {
		log.Error().Err(err).Msg("status encode failed")
	}
}

// Serve listens for status requests.
func (a *Api) Serve() {
	http.HandleFunc("/status", a.handleStatus)

	log.Info().Str("addr", a.addr).Msg("api listening")
	if err := http.ListenAndServe(a.addr, nil); err != nil {
		log.Error().Err(err).Msg("api server stopped")
	}
}
