package scene

import (
	"math"

	"github.com/achilleasa/bvhviz/volume"
)

const (
	sphereStacks = 16
	sphereSlices = 24
)

// Interleaved vertex data (position, normal, uv) for each object kind. All
// meshes are centered at their local pivot (the origin) and fit in a unit cube.
var meshVertices = map[ObjectKind][]float32{
	CubeObject:   genCube(),
	SphereObject: genSphere(sphereStacks, sphereSlices),
	PlaneObject:  genPlane(),
}

// Get the interleaved vertex data for an object kind. The returned slice
// uses volume.DefaultStride floats per vertex and must not be modified.
func MeshVertices(kind ObjectKind) ([]float32, error) {
	vertices, ok := meshVertices[kind]
	if !ok {
		return nil, ErrUnknownObjectKind
	}
	return vertices, nil
}

func appendVertex(out []float32, pos, normal [3]float32, u, v float32) []float32 {
	return append(out, pos[0], pos[1], pos[2], normal[0], normal[1], normal[2], u, v)
}

func genCube() []float32 {
	out := make([]float32, 0, 36*volume.DefaultStride)

	// Each face is described by its normal and two tangent axes.
	faces := [6][3][3]float32{
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	quad := [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 1}}

	for _, face := range faces {
		n, tu, tv := face[0], face[1], face[2]
		for _, uv := range quad {
			su, sv := uv[0]-0.5, uv[1]-0.5
			var pos [3]float32
			for i := 0; i < 3; i++ {
				pos[i] = 0.5*n[i] + su*tu[i] + sv*tv[i]
			}
			out = appendVertex(out, pos, n, uv[0], uv[1])
		}
	}
	return out
}

func genSphere(stacks, slices int) []float32 {
	const radius = 0.5
	out := make([]float32, 0, (stacks+1)*(slices+1)*volume.DefaultStride)

	for stack := 0; stack <= stacks; stack++ {
		v := float64(stack) / float64(stacks)
		phi := v * math.Pi
		for slice := 0; slice <= slices; slice++ {
			u := float64(slice) / float64(slices)
			theta := u * 2 * math.Pi

			n := [3]float32{
				float32(math.Cos(theta) * math.Sin(phi)),
				float32(math.Cos(phi)),
				float32(math.Sin(theta) * math.Sin(phi)),
			}
			pos := [3]float32{n[0] * radius, n[1] * radius, n[2] * radius}
			out = appendVertex(out, pos, n, float32(u), float32(v))
		}
	}
	return out
}

func genPlane() []float32 {
	up := [3]float32{0, 1, 0}
	out := make([]float32, 0, 6*volume.DefaultStride)
	out = appendVertex(out, [3]float32{-0.5, 0, -0.5}, up, 0, 0)
	out = appendVertex(out, [3]float32{0.5, 0, -0.5}, up, 1, 0)
	out = appendVertex(out, [3]float32{0.5, 0, 0.5}, up, 1, 1)
	out = appendVertex(out, [3]float32{-0.5, 0, -0.5}, up, 0, 0)
	out = appendVertex(out, [3]float32{0.5, 0, 0.5}, up, 1, 1)
	out = appendVertex(out, [3]float32{-0.5, 0, 0.5}, up, 0, 1)
	return out
}
