package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/log"
	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/visualizer"
	"github.com/achilleasa/bvhviz/volume"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

var (
	ErrUnknownAction = errors.New("server: unknown playback action")
	ErrBadRequest    = errors.New("server: malformed request")
)

const shutdownTimeout = 5 * time.Second

// Server exposes a visualizer session over a JSON API. The frame loop and the
// request handlers share the session through a mutex so that every session
// call still happens from one goroutine at a time.
type Server struct {
	mu      sync.Mutex
	session *visualizer.Session
	fps     int

	handler http.Handler
	logger  log.Logger
}

// Create a server for a session. The frame loop updates playback fps times a
// second while Run is active.
func New(session *visualizer.Session, fps int) *Server {
	s := &Server{
		session: session,
		fps:     max(fps, 1),
		logger:  log.New("server"),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/trees", s.getTrees).Methods("GET")
	api.HandleFunc("/steps/{strategy}/{volume}", s.getSteps).Methods("GET")
	api.HandleFunc("/visible", s.getVisible).Methods("GET")
	api.HandleFunc("/playback", s.getPlayback).Methods("GET")
	api.HandleFunc("/playback/{action}", s.playbackAction).Methods("POST")
	api.HandleFunc("/select/{strategy}/{volume}", s.selectTree).Methods("POST")
	api.HandleFunc("/objects", s.addObject).Methods("POST")
	api.HandleFunc("/objects/{id}", s.updateObject).Methods("PUT")
	api.HandleFunc("/objects/{id}", s.deleteObject).Methods("DELETE")
	api.HandleFunc("/rebuild", s.rebuild).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(r)

	return s
}

// Get the HTTP handler for the API routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve the API on addr and run the frame loop until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.handler}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.frameLoop(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Noticef("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
	case err = <-errCh:
	}

	wg.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

func (s *Server) frameLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Tick(dt)
		}
	}
}

// Run a single frame update.
func (s *Server) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if moved := s.session.Update(dt); moved > 0 {
		s.logger.Debugf("playback advanced %d step(s) to %d", moved, s.session.Playback().CurrentStep)
	}
}

func (s *Server) getTrees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trees, err := s.session.Trees()
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, encodeTrees(trees))
}

func (s *Server) getSteps(w http.ResponseWriter, r *http.Request) {
	strategy, kind, err := parseSelection(mux.Vars(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trees, err := s.session.Trees()
	if err != nil {
		s.writeError(w, err)
		return
	}
	tree := trees.Get(strategy, kind)
	writeJSON(w, http.StatusOK, encodeSteps(tree.Steps, tree.DeepestDepth))
}

func (s *Server) getVisible(w http.ResponseWriter, r *http.Request) {
	maxDepth := int16(-1)
	if v := r.URL.Query().Get("maxDepth"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 16)
		if err != nil {
			s.writeError(w, ErrBadRequest)
			return
		}
		maxDepth = int16(parsed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	visible, err := s.session.VisibleEntries(maxDepth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	h, err := s.session.ActiveHierarchy()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeSteps(visible, h.DeepestDepth))
}

func (s *Server) getPlayback(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, encodePlayback(s.session.Playback()))
}

func (s *Server) playbackAction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.session.Playback()
	switch mux.Vars(r)["action"] {
	case "play":
		state.Play()
	case "pause":
		state.Pause()
	case "forward":
		state.Step(1)
	case "back":
		state.Step(-1)
	case "invert":
		state.InvertDirection()
	case "faster":
		state.IncreaseSpeed()
	case "slower":
		state.DecreaseSpeed()
	case "reset":
		state.Reset(state.TotalSteps)
	default:
		s.writeError(w, ErrUnknownAction)
		return
	}
	writeJSON(w, http.StatusOK, encodePlayback(state))
}

func (s *Server) selectTree(w http.ResponseWriter, r *http.Request) {
	strategy, kind, err := parseSelection(mux.Vars(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Select(strategy, kind)
	writeJSON(w, http.StatusOK, encodePlayback(s.session.Playback()))
}

func (s *Server) addObject(w http.ResponseWriter, r *http.Request) {
	var req objectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, ErrBadRequest)
		return
	}
	kind, err := scene.ParseObjectKind(req.Kind)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.session.AddObject(kind, req.transform())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, objectResponse{ID: id, Stale: s.session.Stale()})
}

func (s *Server) updateObject(w http.ResponseWriter, r *http.Request) {
	id, err := parseObjectID(mux.Vars(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req objectRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, ErrBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.session.UpdateObjectTransform(id, req.transform()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, objectResponse{ID: id, Stale: s.session.Stale()})
}

func (s *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	id, err := parseObjectID(mux.Vars(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.session.DeleteObject(id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, objectResponse{ID: id, Stale: s.session.Stale()})
}

func (s *Server) rebuild(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trees, err := s.session.RebuildAllTrees()
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, encodeTrees(trees))
}

func parseSelection(vars map[string]string) (bvh.Strategy, volume.Kind, error) {
	strategy, err := bvh.ParseStrategy(vars["strategy"])
	if err != nil {
		return 0, 0, err
	}
	kind, err := volume.ParseKind(vars["volume"])
	if err != nil {
		return 0, 0, err
	}
	return strategy, kind, nil
}

func parseObjectID(vars map[string]string) (scene.ObjectID, error) {
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		return 0, ErrBadRequest
	}
	return scene.ObjectID(id), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scene.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, visualizer.ErrNotBuilt), errors.Is(err, visualizer.ErrStaleTrees):
		return http.StatusConflict
	case errors.Is(err, bvh.ErrTooManyObjects):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrUnknownAction),
		errors.Is(err, bvh.ErrUnknownStrategy),
		errors.Is(err, volume.ErrUnknownKind),
		errors.Is(err, scene.ErrUnknownObjectKind):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Errorf("request failed: %s", err.Error())
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
