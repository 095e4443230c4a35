package visualizer

import (
	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/types"
)

const (
	// Fraction of the smallest cell dimension covered by a node.
	nodeFill = 0.6

	// Nodes never shrink below this size even for very deep trees.
	minNodeSize = 2
)

var (
	shallowColor = types.XYZ(0.1, 0.9, 0.2)
	deepColor    = types.XYZ(0.9, 0.1, 0.2)
)

// GraphLayout contains the metrics used for drawing a hierarchy as a 2D graph.
// Levels are laid out top to bottom; the deepest level is split into
// 2^deepest horizontal slots.
type GraphLayout struct {
	ViewportW float32
	ViewportH float32

	Levels       int
	NodeSize     float32
	LevelSpacing float32
	SlotWidth    float32
}

// Compute the graph layout metrics for a tree with the given deepest depth.
func ComputeGraphLayout(deepestDepth int16, viewportW, viewportH float32) GraphLayout {
	layout := GraphLayout{
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
	if deepestDepth < 0 || viewportW <= 0 || viewportH <= 0 {
		return layout
	}

	layout.Levels = int(deepestDepth) + 1
	layout.LevelSpacing = viewportH / float32(layout.Levels)

	layout.SlotWidth = viewportW
	for d := int16(0); d < deepestDepth && layout.SlotWidth > 0; d++ {
		layout.SlotWidth *= 0.5
	}

	layout.NodeSize = max(min(layout.SlotWidth, layout.LevelSpacing)*nodeFill, minNodeSize)
	return layout
}

// Get the center of each hierarchy node in graph space. Each node is centered
// over the horizontal span of its subtree slot and vertically in its level.
func LayoutNodes(h *bvh.Hierarchy, layout GraphLayout) map[*bvh.Node]types.Vec2 {
	positions := make(map[*bvh.Node]types.Vec2)
	if h.Empty() || layout.Levels == 0 {
		return positions
	}

	placeNode(h.Root, 0, 0, layout.ViewportW, layout, positions)
	return positions
}

func placeNode(node *bvh.Node, depth int, x0, x1 float32, layout GraphLayout, positions map[*bvh.Node]types.Vec2) {
	if node == nil {
		return
	}

	mid := (x0 + x1) * 0.5
	positions[node] = types.XY(mid, (float32(depth)+0.5)*layout.LevelSpacing)

	placeNode(node.Left, depth+1, x0, mid, layout, positions)
	placeNode(node.Right, depth+1, mid, x1, layout, positions)
}

// Get the render color for a node at the given depth. Colors are linearly
// interpolated from the root color to the deepest level color.
func DepthColor(depth, deepestDepth int16) types.Vec3 {
	if deepestDepth <= 0 || depth <= 0 {
		return shallowColor
	}
	if depth >= deepestDepth {
		return deepColor
	}
	return types.LerpVec3(shallowColor, deepColor, float32(depth)/float32(deepestDepth))
}
