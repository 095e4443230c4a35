package scene

import (
	"github.com/achilleasa/bvhviz/types"
	"github.com/achilleasa/bvhviz/volume"
)

type ObjectKind uint32

const (
	CubeObject ObjectKind = iota
	SphereObject
	PlaneObject
)

var objectKindNames = map[ObjectKind]string{
	CubeObject:   "cube",
	SphereObject: "sphere",
	PlaneObject:  "plane",
}

func (k ObjectKind) String() string {
	if name, ok := objectKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Parse an object kind from its string representation.
func ParseObjectKind(s string) (ObjectKind, error) {
	for kind, name := range objectKindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, ErrUnknownObjectKind
}

// A stable handle to a scene object. Handles are never reused within a scene.
type ObjectID uint32

// Object is a placed scene object together with its bounding volumes. The
// world volumes are derived from the local ones and the transform; they are
// only valid after RecomputeWorldVolumes has run for the current transform.
type Object struct {
	ID        ObjectID
	Kind      ObjectKind
	Transform types.Transform

	LocalBox    volume.BoundingBox
	WorldBox    volume.BoundingBox
	LocalSphere volume.BoundingSphere
	WorldSphere volume.BoundingSphere
}

// Create a new object and calculate its local and world volumes from the mesh
// data for its kind.
func NewObject(id ObjectID, kind ObjectKind, transform types.Transform) (Object, error) {
	vertices, err := MeshVertices(kind)
	if err != nil {
		return Object{}, err
	}

	count := len(vertices) / volume.DefaultStride
	obj := Object{
		ID:          id,
		Kind:        kind,
		Transform:   transform,
		LocalBox:    volume.MakeBoxFromVertices(vertices, volume.DefaultStride, count),
		LocalSphere: volume.MakeSphereFromVertices(vertices, volume.DefaultStride, count),
	}
	obj.RecomputeWorldVolumes()
	return obj, nil
}

// Apply the object transform to the local volumes.
func (o *Object) RecomputeWorldVolumes() {
	o.WorldBox = volume.TransformBox(o.LocalBox, o.Transform)
	o.WorldSphere = volume.TransformSphere(o.LocalSphere, o.Transform)
}

// Get the world space volume of the requested kind.
func (o *Object) WorldVolume(kind volume.Kind) volume.Volume {
	if kind == volume.Sphere {
		return o.WorldSphere
	}
	return o.WorldBox
}
