package bvh

import (
	"math"
	"time"

	"github.com/achilleasa/bvhviz/log"
	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/volume"
)

// Step lists index nodes with int16 values; a tree over N objects has 2N-1
// nodes.
const MaxObjects = (math.MaxInt16 + 1) / 2

type item struct {
	object scene.ObjectID
	volume volume.Volume
}

type stats struct {
	nodes int
	leafs int
}

type builder struct {
	logger log.Logger

	// The sequence number assigned to the next created node.
	sequence int

	stats stats
}

// Construct a hierarchy over the world volumes of the given objects. Objects
// are consumed in the order received; both strategies are deterministic so
// the same input always yields the same tree.
func Build(strategy Strategy, kind volume.Kind, objects []scene.Object) (*Hierarchy, error) {
	if strategy != TopDown && strategy != BottomUp {
		return nil, ErrUnknownStrategy
	}
	if len(objects) > MaxObjects {
		return nil, ErrTooManyObjects
	}

	h := newHierarchy(strategy, kind)
	if len(objects) == 0 {
		return h, nil
	}

	workList := make([]item, len(objects))
	for index := range objects {
		workList[index] = item{
			object: objects[index].ID,
			volume: objects[index].WorldVolume(kind),
		}
	}

	b := &builder{
		logger: log.New("bvh builder"),
	}

	start := time.Now()
	switch strategy {
	case TopDown:
		h.Root = b.partition(workList)
	case BottomUp:
		h.Root = b.merge(workList)
	}
	h.DeepestDepth = measureDepth(h)

	b.logger.Debugf(
		"%s/%s BVH build time: %d us, deepest depth: %d, nodes: %d, leafs: %d",
		strategy, kind, time.Since(start).Microseconds(),
		h.DeepestDepth, b.stats.nodes, b.stats.leafs,
	)
	return h, nil
}

// Build a top-down hierarchy of bounding boxes.
func BuildTopDownBox(objects []scene.Object) (*Hierarchy, error) {
	return Build(TopDown, volume.Box, objects)
}

// Build a top-down hierarchy of bounding spheres.
func BuildTopDownSphere(objects []scene.Object) (*Hierarchy, error) {
	return Build(TopDown, volume.Sphere, objects)
}

// Build a bottom-up hierarchy of bounding boxes.
func BuildBottomUpBox(objects []scene.Object) (*Hierarchy, error) {
	return Build(BottomUp, volume.Box, objects)
}

// Build a bottom-up hierarchy of bounding spheres.
func BuildBottomUpSphere(objects []scene.Object) (*Hierarchy, error) {
	return Build(BottomUp, volume.Sphere, objects)
}

func (b *builder) newNode() *Node {
	node := &Node{
		Sequence:   b.sequence,
		MergeIndex: -1,
	}
	b.sequence++
	b.stats.nodes++
	return node
}

func (b *builder) newLeaf(it item) *Node {
	leaf := b.newNode()
	leaf.Volume = it.volume
	leaf.Object = it.object
	b.stats.leafs++
	return leaf
}
