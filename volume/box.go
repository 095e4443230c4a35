package volume

import "github.com/achilleasa/bvhviz/types"

// Default vertex record layout: position (3), normal (3), uv (2).
const DefaultStride = 8

// BoundingBox is an axis-aligned box covering [Center-HalfExtents, Center+HalfExtents].
type BoundingBox struct {
	Center      types.Vec3
	HalfExtents types.Vec3
}

// Create a box from its min and max corners.
func BoxFromMinMax(min, max types.Vec3) BoundingBox {
	return BoundingBox{
		Center:      min.Add(max).Mul(0.5),
		HalfExtents: max.Sub(min).Mul(0.5).Abs(),
	}
}

// Build a box that tightly fits the vertex positions around the origin. Only
// the first 3 floats of each stride-sized record are read. The box is
// symmetric: each half extent is max(|min|, |max|) along its axis. If no
// vertices are available the zero box is returned.
func MakeBoxFromVertices(vertices []float32, stride, count int) BoundingBox {
	n := recordCount(vertices, stride, count)
	if n == 0 {
		return BoundingBox{}
	}

	min := types.Vec3{vertices[0], vertices[1], vertices[2]}
	max := min
	for i := 1; i < n; i++ {
		offset := i * stride
		pos := types.Vec3{vertices[offset], vertices[offset+1], vertices[offset+2]}
		min = types.MinVec3(min, pos)
		max = types.MaxVec3(max, pos)
	}

	return BoundingBox{
		HalfExtents: types.MaxVec3(min.Abs(), max.Abs()),
	}
}

// OverlapBoxBox runs a separating axis test on the three world axes.
func OverlapBoxBox(a, b BoundingBox) bool {
	for axis := 0; axis < 3; axis++ {
		dist := a.Center[axis] - b.Center[axis]
		if dist < 0 {
			dist = -dist
		}
		if dist > a.HalfExtents[axis]+b.HalfExtents[axis] {
			return false
		}
	}
	return true
}

// Get the smallest box enclosing both boxes.
func UnionBox(a, b BoundingBox) BoundingBox {
	return BoxFromMinMax(
		types.MinVec3(a.Min(), b.Min()),
		types.MaxVec3(a.Max(), b.Max()),
	)
}

// Get the enclosing box of a transformed box.
func TransformBox(b BoundingBox, transform types.Transform) BoundingBox {
	min, max := b.Min(), b.Max()
	var out [2]types.Vec3
	for corner := 0; corner < 8; corner++ {
		p := types.Vec3{min[0], min[1], min[2]}
		if corner&1 != 0 {
			p[0] = max[0]
		}
		if corner&2 != 0 {
			p[1] = max[1]
		}
		if corner&4 != 0 {
			p[2] = max[2]
		}

		p = transform.Apply(p)
		if corner == 0 {
			out[0], out[1] = p, p
			continue
		}
		out[0] = types.MinVec3(out[0], p)
		out[1] = types.MaxVec3(out[1], p)
	}
	return BoxFromMinMax(out[0], out[1])
}

// Get the min corner.
func (b BoundingBox) Min() types.Vec3 {
	return b.Center.Sub(b.HalfExtents)
}

// Get the max corner.
func (b BoundingBox) Max() types.Vec3 {
	return b.Center.Add(b.HalfExtents)
}

func (b BoundingBox) Kind() Kind {
	return Box
}

func (b BoundingBox) Centroid() types.Vec3 {
	return b.Center
}

// Box merge cost is the sum of the half extents.
func BoxCost(b BoundingBox) float32 {
	return b.HalfExtents.Sum()
}

// Check if the outer box encloses the inner box.
func ContainsBox(outer, inner BoundingBox) bool {
	tol := tolerance(outer.HalfExtents.MaxComponent())
	min, max := outer.Min(), outer.Max()
	iMin, iMax := inner.Min(), inner.Max()
	for axis := 0; axis < 3; axis++ {
		if iMin[axis] < min[axis]-tol || iMax[axis] > max[axis]+tol {
			return false
		}
	}
	return true
}

func (b BoundingBox) Cost() float32 {
	return BoxCost(b)
}

// Get the box that encloses both volumes.
func (b BoundingBox) Union(other Volume) Volume {
	return UnionBox(b, AsBox(other))
}

func (b BoundingBox) Contains(other Volume) bool {
	return ContainsBox(b, AsBox(other))
}

func (b BoundingBox) Overlaps(other Volume) bool {
	switch o := other.(type) {
	case BoundingSphere:
		return OverlapBoxSphere(b, o)
	default:
		return OverlapBoxBox(b, AsBox(other))
	}
}

// Convert any volume to its enclosing box.
func AsBox(v Volume) BoundingBox {
	switch o := v.(type) {
	case BoundingBox:
		return o
	case BoundingSphere:
		return BoundingBox{Center: o.Center, HalfExtents: types.Vec3{o.Radius, o.Radius, o.Radius}}
	}
	return BoundingBox{}
}
