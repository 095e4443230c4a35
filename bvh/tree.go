package bvh

import (
	"github.com/achilleasa/bvhviz/scene"
	"github.com/achilleasa/bvhviz/volume"
)

// The construction strategy used for building a hierarchy.
type Strategy uint8

const (
	// Recursive median split along the axis of greatest center spread.
	TopDown Strategy = iota

	// Greedy merging of the cheapest pair of subtrees.
	BottomUp
)

// Strategies lists all supported construction strategies.
var Strategies = [...]Strategy{TopDown, BottomUp}

func (s Strategy) String() string {
	switch s {
	case TopDown:
		return "top-down"
	case BottomUp:
		return "bottom-up"
	}
	return "unknown"
}

// Parse a strategy from its string representation.
func ParseStrategy(s string) (Strategy, error) {
	for _, strategy := range Strategies {
		if strategy.String() == s {
			return strategy, nil
		}
	}
	return 0, ErrUnknownStrategy
}

// A BVH tree node. Internal nodes own both children; leaves reference a scene
// object by its handle. A leaf volume is a snapshot of the object's world
// volume at build time.
type Node struct {
	Volume volume.Volume

	Left  *Node
	Right *Node

	// The referenced scene object. Only meaningful for leaves.
	Object scene.ObjectID

	// The order in which the builder created this node.
	Sequence int

	// The merge step that created this node for bottom-up hierarchies; -1
	// for leaves and top-down nodes.
	MergeIndex int
}

// Check if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Hierarchy owns the root of a BVH tree. An empty hierarchy has a nil root
// and a deepest depth of -1.
type Hierarchy struct {
	Root         *Node
	DeepestDepth int16

	Strategy Strategy
	Kind     volume.Kind
}

func newHierarchy(strategy Strategy, kind volume.Kind) *Hierarchy {
	return &Hierarchy{
		DeepestDepth: -1,
		Strategy:     strategy,
		Kind:         kind,
	}
}

// Check if the hierarchy contains no nodes.
func (h *Hierarchy) Empty() bool {
	return h == nil || h.Root == nil
}

// Visit all nodes in pre-order. Children are visited left first.
func (h *Hierarchy) Walk(fn func(node *Node, depth int16)) {
	if h.Empty() {
		return
	}
	walk(h.Root, 0, fn)
}

func walk(node *Node, depth int16, fn func(node *Node, depth int16)) {
	fn(node, depth)
	if node.Left != nil {
		walk(node.Left, depth+1, fn)
	}
	if node.Right != nil {
		walk(node.Right, depth+1, fn)
	}
}

// Tear down the tree in post-order, unlinking every node. The hierarchy is
// left empty. Calling DeleteTree on an empty or nil hierarchy is a no-op.
func DeleteTree(h *Hierarchy) {
	if h.Empty() {
		return
	}
	deleteNode(h.Root)
	h.Root = nil
	h.DeepestDepth = -1
}

func deleteNode(node *Node) {
	if node.Left != nil {
		deleteNode(node.Left)
	}
	if node.Right != nil {
		deleteNode(node.Right)
	}
	node.Left = nil
	node.Right = nil
	node.Volume = nil
}

// Measure the deepest leaf depth by traversal.
func measureDepth(h *Hierarchy) int16 {
	var deepest int16 = -1
	h.Walk(func(node *Node, depth int16) {
		if depth > deepest {
			deepest = depth
		}
	})
	return deepest
}
