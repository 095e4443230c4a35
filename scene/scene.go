package scene

import (
	"github.com/achilleasa/bvhviz/log"
	"github.com/achilleasa/bvhviz/types"
	"github.com/barkimedes/go-deepcopy"
)

// Scene owns the placed objects. Every edit bumps the scene revision so that
// callers can tell when hierarchies built from an older snapshot are stale;
// the scene itself never rebuilds them.
type Scene struct {
	objects  []Object
	nextID   ObjectID
	revision uint64

	logger log.Logger
}

func New() *Scene {
	return &Scene{
		objects: make([]Object, 0),
		logger:  log.New("scene"),
	}
}

// Add an object to the scene and recompute the world volumes of all objects.
func (s *Scene) AddObject(kind ObjectKind, transform types.Transform) (ObjectID, error) {
	obj, err := NewObject(s.nextID, kind, transform)
	if err != nil {
		return 0, err
	}

	s.nextID++
	s.objects = append(s.objects, obj)
	s.RecomputeWorldVolumes()
	s.revision++

	s.logger.Debugf("added %s #%d at %v", kind, obj.ID, transform.Position)
	return obj.ID, nil
}

// Remove an object by its handle.
func (s *Scene) DeleteObject(id ObjectID) error {
	index := s.indexOf(id)
	if index == -1 {
		return ErrObjectNotFound
	}

	s.objects = append(s.objects[:index], s.objects[index+1:]...)
	s.revision++

	s.logger.Debugf("deleted object #%d (%d objects left)", id, len(s.objects))
	return nil
}

// Replace the transform of an object and refresh its world volumes.
func (s *Scene) UpdateObjectTransform(id ObjectID, transform types.Transform) error {
	index := s.indexOf(id)
	if index == -1 {
		return ErrObjectNotFound
	}

	s.objects[index].Transform = transform
	s.objects[index].RecomputeWorldVolumes()
	s.revision++
	return nil
}

// Reapply each object transform to its local volumes.
func (s *Scene) RecomputeWorldVolumes() {
	for index := range s.objects {
		s.objects[index].RecomputeWorldVolumes()
	}
}

// Remove all objects. Object handles are not reused afterwards.
func (s *Scene) Clear() {
	s.objects = s.objects[:0]
	s.revision++
}

// Lookup an object by its handle.
func (s *Scene) Object(id ObjectID) (Object, bool) {
	index := s.indexOf(id)
	if index == -1 {
		return Object{}, false
	}
	return s.objects[index], true
}

// Get a copy of the object list in insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Get a deep copy of the object list that tree builders can consume without
// aliasing live scene state.
func (s *Scene) Snapshot() []Object {
	if len(s.objects) == 0 {
		return []Object{}
	}
	return deepcopy.MustAnything(s.objects).([]Object)
}

// Get the number of objects in the scene.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Get the scene revision. It changes after every edit.
func (s *Scene) Revision() uint64 {
	return s.revision
}

func (s *Scene) indexOf(id ObjectID) int {
	for index, obj := range s.objects {
		if obj.ID == id {
			return index
		}
	}
	return -1
}
