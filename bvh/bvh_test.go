package bvh

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/types"
	"github.com/achilleasa/bvhviz/volume"
)

type buildFn func([]scene.Object) (*Hierarchy, error)

var builders = map[string]buildFn{
	"top-down/box":     BuildTopDownBox,
	"top-down/sphere":  BuildTopDownSphere,
	"bottom-up/box":    BuildBottomUpBox,
	"bottom-up/sphere": BuildBottomUpSphere,
}

func makeObjects(t *testing.T, positions ...types.Vec3) []scene.Object {
	objects := make([]scene.Object, len(positions))
	for index, pos := range positions {
		kind := scene.CubeObject
		if index%2 == 1 {
			kind = scene.SphereObject
		}
		obj, err := scene.NewObject(scene.ObjectID(index), kind, types.TranslateScale(pos, 1))
		if err != nil {
			t.Fatal(err)
		}
		objects[index] = obj
	}
	return objects
}

func makeCubes(t *testing.T, xs ...float32) []scene.Object {
	objects := make([]scene.Object, len(xs))
	for index, x := range xs {
		obj, err := scene.NewObject(scene.ObjectID(index), scene.CubeObject, types.TranslateScale(types.Vec3{x, 0, 0}, 1))
		if err != nil {
			t.Fatal(err)
		}
		objects[index] = obj
	}
	return objects
}

func randomObjects(t *testing.T, rng *rand.Rand, count int) []scene.Object {
	positions := make([]types.Vec3, count)
	for index := range positions {
		positions[index] = types.Vec3{
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
		}
	}
	return makeObjects(t, positions...)
}

func mustBuild(t *testing.T, fn buildFn, objects []scene.Object) *Hierarchy {
	h, err := fn(objects)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func maxLeafDepth(node *Node, depth int) int {
	if node.IsLeaf() {
		return depth
	}
	l := maxLeafDepth(node.Left, depth+1)
	r := maxLeafDepth(node.Right, depth+1)
	if l > r {
		return l
	}
	return r
}

// Encode the tree structure as a nested list of object handles.
func shape(node *Node) string {
	if node.IsLeaf() {
		return fmt.Sprint(node.Object)
	}
	return "(" + shape(node.Left) + " " + shape(node.Right) + ")"
}

func TestBuildEmptyScene(t *testing.T) {
	for name, fn := range builders {
		h := mustBuild(t, fn, nil)
		if !h.Empty() {
			t.Fatalf("[%s] expected empty hierarchy", name)
		}
		if h.DeepestDepth != -1 {
			t.Fatalf("[%s] expected deepest depth -1; got %d", name, h.DeepestDepth)
		}

		steps, deepest := ExtractSteps(h)
		if len(steps) != 0 || deepest != -1 {
			t.Fatalf("[%s] expected no steps for an empty hierarchy; got %d (deepest %d)", name, len(steps), deepest)
		}
	}
}

func TestBuildSingleObject(t *testing.T) {
	objects := makeObjects(t, types.Vec3{1, 2, 3})
	for name, fn := range builders {
		h := mustBuild(t, fn, objects)
		if h.Empty() || !h.Root.IsLeaf() {
			t.Fatalf("[%s] expected a single leaf root", name)
		}
		if h.DeepestDepth != 0 {
			t.Fatalf("[%s] expected deepest depth 0; got %d", name, h.DeepestDepth)
		}
		if h.Root.Object != objects[0].ID {
			t.Fatalf("[%s] expected leaf to reference object %d; got %d", name, objects[0].ID, h.Root.Object)
		}

		steps, _ := ExtractSteps(h)
		if len(steps) != 1 {
			t.Fatalf("[%s] expected 1 step; got %d", name, len(steps))
		}
	}
}

func TestBuildTwoObjects(t *testing.T) {
	objects := makeCubes(t, 0, 10)
	h := mustBuild(t, BuildTopDownBox, objects)

	if h.Root.IsLeaf() || !h.Root.Left.IsLeaf() || !h.Root.Right.IsLeaf() {
		t.Fatal("expected an internal root with two leaf children")
	}
	if h.DeepestDepth != 1 {
		t.Fatalf("expected deepest depth 1; got %d", h.DeepestDepth)
	}

	root := h.Root.Volume.(volume.BoundingBox)
	if math.Abs(float64(root.Center[0]-5)) > 1e-5 {
		t.Fatalf("expected root center x to be 5; got %f", root.Center[0])
	}
	if root.HalfExtents[0] < 5+objects[0].WorldBox.HalfExtents[0] {
		t.Fatalf("expected root half extent x >= 5.5; got %f", root.HalfExtents[0])
	}
}

func TestBinaryTreeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for count := 1; count <= 24; count++ {
		objects := randomObjects(t, rng, count)
		for name, fn := range builders {
			h := mustBuild(t, fn, objects)
			s := h.Stats()

			if s.Leafs != count || s.Internal != count-1 {
				t.Fatalf("[%s, n=%d] expected %d leafs and %d internal nodes; got %d and %d", name, count, count, count-1, s.Leafs, s.Internal)
			}

			if measured := maxLeafDepth(h.Root, 0); int(h.DeepestDepth) != measured {
				t.Fatalf("[%s, n=%d] expected deepest depth %d; got %d", name, count, measured, h.DeepestDepth)
			}

			if h.Strategy == TopDown {
				expDepth := int(math.Ceil(math.Log2(float64(count))))
				if int(h.DeepestDepth) != expDepth {
					t.Fatalf("[%s, n=%d] expected balanced depth %d; got %d", name, count, expDepth, h.DeepestDepth)
				}
			}

			mergeIndices := make(map[int]bool)
			h.Walk(func(node *Node, _ int16) {
				if node.Volume.Kind() != h.Kind {
					t.Fatalf("[%s, n=%d] expected %s volumes; got %s", name, count, h.Kind, node.Volume.Kind())
				}
				if node.IsLeaf() {
					return
				}
				if node.Left == nil || node.Right == nil {
					t.Fatalf("[%s, n=%d] expected internal nodes to have two children", name, count)
				}
				if !node.Volume.Contains(node.Left.Volume) || !node.Volume.Contains(node.Right.Volume) {
					t.Fatalf("[%s, n=%d] expected node volume to enclose its children", name, count)
				}
				if h.Strategy == BottomUp {
					mergeIndices[node.MergeIndex] = true
				}
			})

			if h.Strategy == BottomUp {
				for index := 0; index < count-1; index++ {
					if !mergeIndices[index] {
						t.Fatalf("[%s, n=%d] expected merge index %d to be present", name, count, index)
					}
				}
			}
		}
	}
}

func TestLeafVolumesSnapshotObjects(t *testing.T) {
	objects := makeObjects(t, types.Vec3{0, 0, 0}, types.Vec3{4, 0, 0}, types.Vec3{0, 9, 0})
	h := mustBuild(t, BuildBottomUpSphere, objects)

	h.Walk(func(node *Node, _ int16) {
		if !node.IsLeaf() {
			return
		}
		obj := objects[node.Object]
		if node.Volume != volume.Volume(obj.WorldSphere) {
			t.Fatalf("expected leaf volume to match object #%d world sphere", obj.ID)
		}
	})
}

func TestStepExtractionBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for count := 1; count <= 16; count++ {
		objects := randomObjects(t, rng, count)
		for name, fn := range builders {
			h := mustBuild(t, fn, objects)
			steps, deepest := ExtractSteps(h)

			if deepest != h.DeepestDepth {
				t.Fatalf("[%s, n=%d] expected extraction deepest depth %d; got %d", name, count, h.DeepestDepth, deepest)
			}
			if len(steps) != 2*count-1 {
				t.Fatalf("[%s, n=%d] expected %d steps; got %d", name, count, 2*count-1, len(steps))
			}

			seen := make(map[*Node]bool)
			for index, entry := range steps {
				if int(entry.Order) != index {
					t.Fatalf("[%s, n=%d] expected step %d to have order %d; got %d", name, count, index, index, entry.Order)
				}
				if seen[entry.Node] {
					t.Fatalf("[%s, n=%d] node listed twice", name, count)
				}
				seen[entry.Node] = true
			}
			h.Walk(func(node *Node, depth int16) {
				entry, found := FindEntryForNode(steps, node)
				if !found {
					t.Fatalf("[%s, n=%d] expected every node to have a step", name, count)
				}
				if entry.Depth != depth {
					t.Fatalf("[%s, n=%d] expected step depth %d; got %d", name, count, depth, entry.Depth)
				}
			})
		}
	}
}

func TestTopDownStepsArePreOrder(t *testing.T) {
	objects := makeCubes(t, 0, 1, 2, 3, 4)
	h := mustBuild(t, BuildTopDownBox, objects)
	steps, _ := ExtractStepsTopDown(h)

	var expOrder []*Node
	h.Walk(func(node *Node, _ int16) {
		expOrder = append(expOrder, node)
	})
	for index, entry := range steps {
		if entry.Node != expOrder[index] {
			t.Fatalf("expected step %d to be the pre-order node", index)
		}
	}
	if steps[0].Node != h.Root {
		t.Fatal("expected the root to be the first top-down step")
	}
}

func TestBottomUpStepsFollowMergeOrder(t *testing.T) {
	objects := makeCubes(t, 0, 1, 20, 21)
	h := mustBuild(t, BuildBottomUpBox, objects)
	steps, _ := ExtractStepsBottomUp(h)

	// Leaves first, in input order
	for index := 0; index < len(objects); index++ {
		node := steps[index].Node
		if !node.IsLeaf() || node.Object != objects[index].ID {
			t.Fatalf("expected step %d to reveal the leaf of object %d", index, objects[index].ID)
		}
	}

	// Followed by merges in the order they happened
	for index := len(objects); index < len(steps); index++ {
		node := steps[index].Node
		expMerge := index - len(objects)
		if node.IsLeaf() || node.MergeIndex != expMerge {
			t.Fatalf("expected step %d to reveal merge %d; got %d", index, expMerge, node.MergeIndex)
		}
	}

	if steps[len(steps)-1].Node != h.Root {
		t.Fatal("expected the root to be the last bottom-up step")
	}
}

func TestBottomUpMergesClosePairsFirst(t *testing.T) {
	objects := makeCubes(t, 0, 1, 20, 21)
	for _, fn := range []buildFn{BuildBottomUpBox, BuildBottomUpSphere} {
		h := mustBuild(t, fn, objects)

		byMerge := make(map[int]*Node)
		h.Walk(func(node *Node, _ int16) {
			if !node.IsLeaf() {
				byMerge[node.MergeIndex] = node
			}
		})

		if got := shape(byMerge[0]); got != "(0 1)" {
			t.Fatalf("[%s] expected first merge to join objects 0 and 1; got %s", h.Kind, got)
		}
		if got := shape(byMerge[1]); got != "(2 3)" {
			t.Fatalf("[%s] expected second merge to join objects 2 and 3; got %s", h.Kind, got)
		}
		if byMerge[2] != h.Root {
			t.Fatalf("[%s] expected the last merge to produce the root", h.Kind)
		}
	}
}

func TestStrategiesDiverge(t *testing.T) {
	objects := makeCubes(t, 0, 1, 2, 10)

	topDown := mustBuild(t, BuildTopDownBox, objects)
	if got := shape(topDown.Root); got != "((0 1) (2 3))" {
		t.Fatalf("unexpected top-down grouping %s", got)
	}

	bottomUp := mustBuild(t, BuildBottomUpBox, objects)
	if got := shape(bottomUp.Root); got != "(((0 1) 2) 3)" {
		t.Fatalf("unexpected bottom-up grouping %s", got)
	}
}

func TestBottomUpTieBreak(t *testing.T) {
	// (0,1) and (1,2) have the same merge cost; the first scanned pair wins.
	objects := makeCubes(t, 0, 2, 4)
	h := mustBuild(t, BuildBottomUpBox, objects)
	if got := shape(h.Root); got != "((0 1) 2)" {
		t.Fatalf("expected tie to resolve to the first pair; got %s", got)
	}
}

func TestSplitAxis(t *testing.T) {
	mk := func(centers ...types.Vec3) []item {
		out := make([]item, len(centers))
		for index, c := range centers {
			out[index] = item{volume: volume.BoundingBox{Center: c}}
		}
		return out
	}

	type spec struct {
		items   []item
		expAxis Axis
	}
	specs := []spec{
		{mk(types.Vec3{0, 0, 0}, types.Vec3{5, 1, 1}, types.Vec3{1, 0, 2}), XAxis},
		{mk(types.Vec3{0, 0, 0}, types.Vec3{1, 5, 1}, types.Vec3{1, 0, 2}), YAxis},
		{mk(types.Vec3{0, 0, -8}, types.Vec3{1, 5, 1}, types.Vec3{1, 0, 2}), ZAxis},
		// Ties go to the lowest axis
		{mk(types.Vec3{0, 0, 0}, types.Vec3{3, 3, 3}, types.Vec3{1, 1, 1}), XAxis},
		{mk(types.Vec3{0, 0, 0}, types.Vec3{1, 3, 3}), YAxis},
		{mk(types.Vec3{2, 2, 2}, types.Vec3{2, 2, 2}, types.Vec3{2, 2, 2}), XAxis},
	}

	for index, s := range specs {
		if got := splitAxis(s.items); got != s.expAxis {
			t.Fatalf("[spec %d] expected split axis %d; got %d", index, s.expAxis, got)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	objects := randomObjects(t, rng, 12)

	for name, fn := range builders {
		first := mustBuild(t, fn, objects)
		second := mustBuild(t, fn, objects)
		if shape(first.Root) != shape(second.Root) {
			t.Fatalf("[%s] expected identical trees for identical input", name)
		}

		firstSteps, _ := ExtractSteps(first)
		secondSteps, _ := ExtractSteps(second)
		for index := range firstSteps {
			if shape(firstSteps[index].Node) != shape(secondSteps[index].Node) {
				t.Fatalf("[%s] expected identical step order", name)
			}
		}
	}
}

func TestBuildDoesNotReorderInput(t *testing.T) {
	objects := makeCubes(t, 9, 3, 7, 1, 5)
	if _, err := BuildTopDownBox(objects); err != nil {
		t.Fatal(err)
	}
	for index, obj := range objects {
		if obj.ID != scene.ObjectID(index) {
			t.Fatal("expected builder to leave the input slice untouched")
		}
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(Strategy(9), volume.Box, nil); err != ErrUnknownStrategy {
		t.Fatalf("expected ErrUnknownStrategy; got %v", err)
	}
	if _, err := Build(TopDown, volume.Box, make([]scene.Object, MaxObjects+1)); err != ErrTooManyObjects {
		t.Fatalf("expected ErrTooManyObjects; got %v", err)
	}
}

func TestDeleteTree(t *testing.T) {
	h := mustBuild(t, BuildTopDownSphere, makeCubes(t, 0, 1, 2, 3))
	root := h.Root

	DeleteTree(h)
	if !h.Empty() || h.DeepestDepth != -1 {
		t.Fatal("expected hierarchy to be empty after teardown")
	}
	if root.Left != nil || root.Right != nil {
		t.Fatal("expected teardown to unlink the root children")
	}

	// Idempotent
	DeleteTree(h)
	DeleteTree(nil)
}

func TestFindEntryForNode(t *testing.T) {
	h := mustBuild(t, BuildTopDownBox, makeCubes(t, 0, 1, 2))
	steps, _ := ExtractSteps(h)

	if _, found := FindEntryForNode(steps, &Node{}); found {
		t.Fatal("expected foreign node not to be found")
	}
	if _, found := FindEntryForNode(steps, nil); found {
		t.Fatal("expected nil node not to be found")
	}
	entry, found := FindEntryForNode(steps, h.Root)
	if !found || entry.Order != 0 || entry.Depth != 0 {
		t.Fatalf("unexpected root entry %+v", entry)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		parsed, err := ParseStrategy(s.String())
		if err != nil || parsed != s {
			t.Fatalf("expected %q to parse back to %d; got %d (%v)", s.String(), s, parsed, err)
		}
	}
	if _, err := ParseStrategy("sideways"); err != ErrUnknownStrategy {
		t.Fatalf("expected ErrUnknownStrategy; got %v", err)
	}
}

func TestTables(t *testing.T) {
	h := mustBuild(t, BuildBottomUpBox, makeCubes(t, 0, 1, 2))
	empty := mustBuild(t, BuildTopDownSphere, nil)

	out := StatsTable(h, empty, nil)
	for _, exp := range []string{"bottom-up", "top-down", "sphere", "Deepest depth"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected stats table to contain %q:\n%s", exp, out)
		}
	}

	steps, _ := ExtractSteps(h)
	out = StepTable(steps)
	for _, exp := range []string{"leaf", "internal", "#2", "half"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected step table to contain %q:\n%s", exp, out)
		}
	}
}
