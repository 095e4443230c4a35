package server

import (
	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/playback"
	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/types"
	"github.com/achilleasa/bvhviz/visualizer"
	"github.com/achilleasa/bvhviz/volume"
)

type volumeJSON struct {
	Kind        string      `json:"kind"`
	Center      [3]float32  `json:"center"`
	HalfExtents *[3]float32 `json:"halfExtents,omitempty"`
	Radius      *float32    `json:"radius,omitempty"`
}

type stepJSON struct {
	Order  int16      `json:"order"`
	Depth  int16      `json:"depth"`
	Leaf   bool       `json:"leaf"`
	Object *uint32    `json:"object,omitempty"`
	Color  [3]float32 `json:"color"`
	Volume volumeJSON `json:"volume"`
}

type treeJSON struct {
	Strategy     string `json:"strategy"`
	Volume       string `json:"volume"`
	Nodes        int    `json:"nodes"`
	Leafs        int    `json:"leafs"`
	Internal     int    `json:"internal"`
	DeepestDepth int16  `json:"deepestDepth"`
	Steps        int    `json:"steps"`
}

type playbackJSON struct {
	CurrentStep int     `json:"currentStep"`
	TotalSteps  int     `json:"totalSteps"`
	Direction   int     `json:"direction"`
	Mode        string  `json:"mode"`
	Speed       float64 `json:"speed"`
	AtEnd       bool    `json:"atEnd"`
}

type rotationJSON struct {
	Axis  [3]float32 `json:"axis"`
	Angle float32    `json:"angle"`
}

type objectRequest struct {
	Kind     string        `json:"kind"`
	Position [3]float32    `json:"position"`
	Scale    *[3]float32   `json:"scale,omitempty"`
	Rotation *rotationJSON `json:"rotation,omitempty"`
}

type objectResponse struct {
	ID    scene.ObjectID `json:"id"`
	Stale bool           `json:"stale"`
}

func encodeVolume(v volume.Volume) volumeJSON {
	switch bv := v.(type) {
	case volume.BoundingBox:
		extents := [3]float32(bv.HalfExtents)
		return volumeJSON{Kind: bv.Kind().String(), Center: bv.Center, HalfExtents: &extents}
	case volume.BoundingSphere:
		radius := bv.Radius
		return volumeJSON{Kind: bv.Kind().String(), Center: bv.Center, Radius: &radius}
	}
	return volumeJSON{Kind: "unknown"}
}

func encodeSteps(steps []bvh.RenderStepEntry, deepestDepth int16) []stepJSON {
	out := make([]stepJSON, 0, len(steps))
	for _, entry := range steps {
		step := stepJSON{
			Order:  entry.Order,
			Depth:  entry.Depth,
			Leaf:   entry.Node.IsLeaf(),
			Color:  visualizer.DepthColor(entry.Depth, deepestDepth),
			Volume: encodeVolume(entry.Node.Volume),
		}
		if step.Leaf {
			id := uint32(entry.Node.Object)
			step.Object = &id
		}
		out = append(out, step)
	}
	return out
}

func encodeTree(tree visualizer.BuiltTree) treeJSON {
	stats := tree.Hierarchy.Stats()
	return treeJSON{
		Strategy:     tree.Hierarchy.Strategy.String(),
		Volume:       tree.Hierarchy.Kind.String(),
		Nodes:        stats.Nodes,
		Leafs:        stats.Leafs,
		Internal:     stats.Internal,
		DeepestDepth: tree.DeepestDepth,
		Steps:        len(tree.Steps),
	}
}

func encodeTrees(trees visualizer.Trees) []treeJSON {
	out := make([]treeJSON, 0, len(bvh.Strategies)*len(volume.Kinds))
	for _, strategy := range bvh.Strategies {
		for _, kind := range volume.Kinds {
			out = append(out, encodeTree(trees.Get(strategy, kind)))
		}
	}
	return out
}

func encodePlayback(state *playback.State) playbackJSON {
	return playbackJSON{
		CurrentStep: state.CurrentStep,
		TotalSteps:  state.TotalSteps,
		Direction:   state.DirectionSign,
		Mode:        state.Mode.String(),
		Speed:       state.Speed(),
		AtEnd:       state.AtEnd(),
	}
}

func (req objectRequest) transform() types.Transform {
	t := types.TranslateScale(types.Vec3(req.Position), 1)
	if req.Scale != nil {
		t.Scale = types.Vec3(*req.Scale)
	}
	if req.Rotation != nil {
		t.Rotation = types.Rotation{Axis: types.Vec3(req.Rotation.Axis), Angle: req.Rotation.Angle}
	}
	return t
}
