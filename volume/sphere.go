package volume

import "github.com/achilleasa/bvhviz/types"

// BoundingSphere is defined by a center and a radius.
type BoundingSphere struct {
	Center types.Vec3
	Radius float32
}

// Build a sphere centered at the origin whose radius reaches the farthest
// vertex position. Only the first 3 floats of each stride-sized record are
// read. If no vertices are available the zero sphere is returned.
func MakeSphereFromVertices(vertices []float32, stride, count int) BoundingSphere {
	n := recordCount(vertices, stride, count)

	var radius float32
	for i := 0; i < n; i++ {
		offset := i * stride
		pos := types.Vec3{vertices[offset], vertices[offset+1], vertices[offset+2]}
		radius = max(radius, pos.Len())
	}
	return BoundingSphere{Radius: radius}
}

func OverlapSphereSphere(a, b BoundingSphere) bool {
	return a.Center.Sub(b.Center).Len() <= a.Radius+b.Radius
}

// Test a box against a sphere using the closest point on the box.
func OverlapBoxSphere(b BoundingBox, s BoundingSphere) bool {
	closest := types.MaxVec3(b.Min(), types.MinVec3(s.Center, b.Max()))
	return closest.Sub(s.Center).Len() <= s.Radius
}

// Get the smallest sphere enclosing both spheres.
func UnionSphere(a, b BoundingSphere) BoundingSphere {
	delta := b.Center.Sub(a.Center)
	dist := delta.Len()

	if dist+b.Radius <= a.Radius {
		return a
	}
	if dist+a.Radius <= b.Radius {
		return b
	}

	radius := (dist + a.Radius + b.Radius) * 0.5
	return BoundingSphere{
		Center: a.Center.Add(delta.Mul((radius - a.Radius) / dist)),
		Radius: radius,
	}
}

// Get the sphere enclosing a transformed sphere. Non-uniform scales grow the
// radius by the largest scale component.
func TransformSphere(s BoundingSphere, transform types.Transform) BoundingSphere {
	return BoundingSphere{
		Center: transform.Apply(s.Center),
		Radius: s.Radius * transform.Scale.Abs().MaxComponent(),
	}
}

func (s BoundingSphere) Kind() Kind {
	return Sphere
}

func (s BoundingSphere) Centroid() types.Vec3 {
	return s.Center
}

// Sphere merge cost is its radius.
func SphereCost(s BoundingSphere) float32 {
	return s.Radius
}

// Check if the outer sphere encloses the inner sphere.
func ContainsSphere(outer, inner BoundingSphere) bool {
	return outer.Center.Sub(inner.Center).Len()+inner.Radius <= outer.Radius+tolerance(outer.Radius)
}

func (s BoundingSphere) Cost() float32 {
	return SphereCost(s)
}

// Get the sphere that encloses both volumes.
func (s BoundingSphere) Union(other Volume) Volume {
	return UnionSphere(s, AsSphere(other))
}

func (s BoundingSphere) Contains(other Volume) bool {
	return ContainsSphere(s, AsSphere(other))
}

func (s BoundingSphere) Overlaps(other Volume) bool {
	switch o := other.(type) {
	case BoundingBox:
		return OverlapBoxSphere(o, s)
	default:
		return OverlapSphereSphere(s, AsSphere(other))
	}
}

// Convert any volume to its enclosing sphere.
func AsSphere(v Volume) BoundingSphere {
	switch o := v.(type) {
	case BoundingSphere:
		return o
	case BoundingBox:
		return BoundingSphere{Center: o.Center, Radius: o.HalfExtents.Len()}
	}
	return BoundingSphere{}
}
