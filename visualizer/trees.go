package visualizer

import (
	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/volume"
)

// Selection picks one of the four hierarchies.
type Selection struct {
	Strategy bvh.Strategy
	Kind     volume.Kind
}

// A hierarchy together with the construction steps extracted from it.
type BuiltTree struct {
	Hierarchy    *bvh.Hierarchy
	Steps        []bvh.RenderStepEntry
	DeepestDepth int16
}

// Trees holds one BuiltTree per strategy and volume kind.
type Trees struct {
	entries [len(bvh.Strategies)][len(volume.Kinds)]BuiltTree
}

// Get the tree for a strategy and volume kind.
func (t *Trees) Get(strategy bvh.Strategy, kind volume.Kind) BuiltTree {
	if int(strategy) >= len(t.entries) || int(kind) >= len(t.entries[strategy]) {
		return BuiltTree{}
	}
	return t.entries[strategy][kind]
}

func (t *Trees) TopDownBox() BuiltTree { return t.Get(bvh.TopDown, volume.Box) }
func (t *Trees) BottomUpBox() BuiltTree { return t.Get(bvh.BottomUp, volume.Box) }
func (t *Trees) TopDownSphere() BuiltTree { return t.Get(bvh.TopDown, volume.Sphere) }
func (t *Trees) BottomUpSphere() BuiltTree { return t.Get(bvh.BottomUp, volume.Sphere) }

// Get all hierarchies ordered by strategy and then by volume kind.
func (t *Trees) Hierarchies() []*bvh.Hierarchy {
	out := make([]*bvh.Hierarchy, 0, len(bvh.Strategies)*len(volume.Kinds))
	for _, strategy := range bvh.Strategies {
		for _, kind := range volume.Kinds {
			out = append(out, t.entries[strategy][kind].Hierarchy)
		}
	}
	return out
}

// Tear down all hierarchies and drop their step lists.
func (t *Trees) teardown() {
	for strategy := range t.entries {
		for kind := range t.entries[strategy] {
			bvh.DeleteTree(t.entries[strategy][kind].Hierarchy)
			t.entries[strategy][kind] = BuiltTree{}
		}
	}
}

// Build all four hierarchies over the given objects and extract their steps.
// The world volumes of the objects must be up to date.
func RebuildAllTrees(objects []scene.Object) (Trees, error) {
	var trees Trees
	for _, strategy := range bvh.Strategies {
		for _, kind := range volume.Kinds {
			h, err := bvh.Build(strategy, kind, objects)
			if err != nil {
				trees.teardown()
				return Trees{}, err
			}

			steps, deepest := bvh.ExtractSteps(h)
			trees.entries[strategy][kind] = BuiltTree{
				Hierarchy:    h,
				Steps:        steps,
				DeepestDepth: deepest,
			}
		}
	}
	return trees, nil
}
