package bvh

import (
	"sort"

	"github.com/achilleasa/bvhviz/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Recursively partition the work list at its median. A parent is created
// before its children so node sequence numbers follow the split order.
func (b *builder) partition(workList []item) *Node {
	if len(workList) == 1 {
		return b.newLeaf(workList[0])
	}

	node := b.newNode()
	if len(workList) == 2 {
		node.Left = b.newLeaf(workList[0])
		node.Right = b.newLeaf(workList[1])
	} else {
		axis := splitAxis(workList)
		sort.SliceStable(workList, func(i, j int) bool {
			return workList[i].volume.Centroid()[axis] < workList[j].volume.Centroid()[axis]
		})

		mid := len(workList) / 2
		node.Left = b.partition(workList[:mid])
		node.Right = b.partition(workList[mid:])
	}

	node.Volume = node.Left.Volume.Union(node.Right.Volume)
	return node
}

// Select the axis along which the item centers are spread the most. Ties
// resolve to the lowest axis.
func splitAxis(workList []item) Axis {
	min := workList[0].volume.Centroid()
	max := min
	for _, it := range workList[1:] {
		center := it.volume.Centroid()
		min = types.MinVec3(min, center)
		max = types.MaxVec3(max, center)
	}

	spread := max.Sub(min)
	axis := XAxis
	for candidate := YAxis; candidate <= ZAxis; candidate++ {
		if spread[candidate] > spread[axis] {
			axis = candidate
		}
	}
	return axis
}
