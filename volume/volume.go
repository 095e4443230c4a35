package volume

import "github.com/achilleasa/bvhviz/types"

// The kind of bounding volume used by a hierarchy.
type Kind uint8

const (
	Box Kind = iota
	Sphere
)

// Kinds lists all supported volume kinds.
var Kinds = [...]Kind{Box, Sphere}

func (k Kind) String() string {
	switch k {
	case Box:
		return "box"
	case Sphere:
		return "sphere"
	}
	return "unknown"
}

// Parse a volume kind from its string representation.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, ErrUnknownKind
}

// The Volume interface is implemented by BoundingBox and BoundingSphere so
// that tree builders do not need to care about the volume kind.
type Volume interface {
	Kind() Kind

	// The point used for partitioning.
	Centroid() types.Vec3

	// The size metric minimized when merging volumes.
	Cost() float32

	// Get the smallest volume of the receiver's kind that encloses both volumes.
	Union(other Volume) Volume

	// Check whether other is fully enclosed by this volume.
	Contains(other Volume) bool

	// Check whether the two volumes overlap. Touching volumes overlap.
	Overlaps(other Volume) bool
}

// Volumes may pick up float rounding errors when unioned repeatedly.
func tolerance(size float32) float32 {
	return 1e-4 * (1 + size)
}

// Count the usable records in a vertex buffer.
func recordCount(vertices []float32, stride, count int) int {
	if stride < 3 || count <= 0 {
		return 0
	}
	return min(count, len(vertices)/stride)
}
