package visualizer

import (
	"time"

	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/log"
	"github.com/achilleasa/bvhviz/playback"
	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/types"
	"github.com/achilleasa/bvhviz/volume"
)

// Session owns a scene, the four hierarchies built from it and the playback
// state of the active hierarchy. A session is not safe for concurrent use;
// all calls are expected to come from the frame loop.
type Session struct {
	opts   Options
	logger log.Logger

	scene *scene.Scene

	trees         Trees
	built         bool
	builtRevision uint64

	active   Selection
	playback *playback.State
}

// Create a new session. The trees are not built until RebuildAllTrees is called.
func NewSession(opts Options) (*Session, error) {
	s := &Session{
		opts:     opts,
		logger:   log.New("visualizer"),
		scene:    scene.New(),
		active:   Selection{Strategy: opts.Strategy, Kind: opts.Kind},
		playback: playback.New(0),
	}

	if opts.LoadDefaultScene {
		if err := scene.LoadDefault(s.scene); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get the session scene. Edits made directly on the scene mark the trees
// stale just like the session edit methods do.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Rebuild all hierarchies from the current scene. The previous trees are torn
// down before the new trees and step lists are installed, and playback is
// reset for the active step list.
func (s *Session) RebuildAllTrees() (Trees, error) {
	start := time.Now()

	s.scene.RecomputeWorldVolumes()
	objects := s.scene.Snapshot()

	trees, err := RebuildAllTrees(objects)
	if err != nil {
		s.logger.Errorf("could not rebuild trees: %s", err.Error())
		return Trees{}, err
	}

	s.trees.teardown()
	s.trees = trees
	s.built = true
	s.builtRevision = s.scene.Revision()
	s.resetPlayback()

	s.logger.Infof("rebuilt %d hierarchies over %d objects in %d ms", len(trees.Hierarchies()), len(objects), time.Since(start).Milliseconds())
	return trees, nil
}

// Check whether the scene changed since the trees were last built.
func (s *Session) Stale() bool {
	return !s.built || s.builtRevision != s.scene.Revision()
}

// Get the currently built trees.
func (s *Session) Trees() (Trees, error) {
	if err := s.checkFresh(); err != nil {
		return Trees{}, err
	}
	return s.trees, nil
}

// Select the active hierarchy and reset playback.
func (s *Session) Select(strategy bvh.Strategy, kind volume.Kind) {
	s.active = Selection{Strategy: strategy, Kind: kind}
	s.resetPlayback()
}

// Get the active selection.
func (s *Session) Active() Selection {
	return s.active
}

// Get the active hierarchy.
func (s *Session) ActiveHierarchy() (*bvh.Hierarchy, error) {
	if err := s.checkFresh(); err != nil {
		return nil, err
	}
	return s.trees.Get(s.active.Strategy, s.active.Kind).Hierarchy, nil
}

// Get the step list of any of the four hierarchies.
func (s *Session) StepList(strategy bvh.Strategy, kind volume.Kind) ([]bvh.RenderStepEntry, error) {
	if err := s.checkFresh(); err != nil {
		return nil, err
	}
	return s.trees.Get(strategy, kind).Steps, nil
}

// Get the step list of the active hierarchy.
func (s *Session) GetActiveStepList() ([]bvh.RenderStepEntry, error) {
	return s.StepList(s.active.Strategy, s.active.Kind)
}

// Get the playback state machine of the active hierarchy.
func (s *Session) Playback() *playback.State {
	return s.playback
}

// Run the per-frame update pass. Returns the number of steps playback moved.
func (s *Session) Update(dt float64) int {
	return s.playback.Tick(dt)
}

// Get the active entries revealed by playback down to maxDepth. A negative
// maxDepth uses the session default.
func (s *Session) VisibleEntries(maxDepth int16) ([]bvh.RenderStepEntry, error) {
	steps, err := s.GetActiveStepList()
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		maxDepth = s.opts.MaxDepth
	}
	return GetVisibleEntries(steps, s.playback, maxDepth), nil
}

// Add an object to the scene. The trees become stale.
func (s *Session) AddObject(kind scene.ObjectKind, transform types.Transform) (scene.ObjectID, error) {
	return s.scene.AddObject(kind, transform)
}

// Remove an object from the scene. The trees become stale.
func (s *Session) DeleteObject(id scene.ObjectID) error {
	return s.scene.DeleteObject(id)
}

// Move an object. The trees become stale.
func (s *Session) UpdateObjectTransform(id scene.ObjectID, transform types.Transform) error {
	return s.scene.UpdateObjectTransform(id, transform)
}

// Compute the 2D graph layout of the active hierarchy. Zero viewport dims
// fall back to the dims from the session options.
func (s *Session) Layout(viewportW, viewportH float32) (GraphLayout, error) {
	h, err := s.ActiveHierarchy()
	if err != nil {
		return GraphLayout{}, err
	}
	if viewportW <= 0 || viewportH <= 0 {
		viewportW, viewportH = s.opts.ViewportW, s.opts.ViewportH
	}
	return ComputeGraphLayout(h.DeepestDepth, viewportW, viewportH), nil
}

// Render a stats table for all hierarchies.
func (s *Session) StatsTable() (string, error) {
	if err := s.checkFresh(); err != nil {
		return "", err
	}
	return bvh.StatsTable(s.trees.Hierarchies()...), nil
}

func (s *Session) resetPlayback() {
	s.playback.Reset(len(s.trees.Get(s.active.Strategy, s.active.Kind).Steps))
}

func (s *Session) checkFresh() error {
	if !s.built {
		return ErrNotBuilt
	}
	if s.builtRevision != s.scene.Revision() {
		return ErrStaleTrees
	}
	return nil
}

// GetVisibleEntries returns the entries revealed by the playback state whose
// depth does not exceed maxDepth. A negative maxDepth disables the depth filter.
func GetVisibleEntries(steps []bvh.RenderStepEntry, state *playback.State, maxDepth int16) []bvh.RenderStepEntry {
	visible := make([]bvh.RenderStepEntry, 0, len(steps))
	for _, entry := range steps {
		if int(entry.Order) >= state.CurrentStep {
			continue
		}
		if maxDepth >= 0 && entry.Depth > maxDepth {
			continue
		}
		visible = append(visible, entry)
	}
	return visible
}
