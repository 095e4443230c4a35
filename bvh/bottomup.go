package bvh

import (
	"math"

	"github.com/achilleasa/bvhviz/volume"
)

// Greedily merge the pair of subtrees whose union has the lowest cost until a
// single tree remains. Pairs are scanned as (i, j) with i < j and only a
// strictly cheaper pair replaces the current best, so ties resolve to the
// first pair in scan order. The merged node takes the slot of the lower
// index entry.
func (b *builder) merge(workList []item) *Node {
	forest := make([]*Node, len(workList))
	for index, it := range workList {
		forest[index] = b.newLeaf(it)
	}

	for mergeIndex := 0; len(forest) > 1; mergeIndex++ {
		bestI, bestJ := -1, -1
		bestCost := float32(math.MaxFloat32)
		var bestVolume volume.Volume

		for i := 0; i < len(forest); i++ {
			for j := i + 1; j < len(forest); j++ {
				union := forest[i].Volume.Union(forest[j].Volume)
				if cost := union.Cost(); bestI == -1 || cost < bestCost {
					bestI, bestJ = i, j
					bestCost = cost
					bestVolume = union
				}
			}
		}

		node := b.newNode()
		node.Left = forest[bestI]
		node.Right = forest[bestJ]
		node.Volume = bestVolume
		node.MergeIndex = mergeIndex

		forest[bestI] = node
		forest = append(forest[:bestJ], forest[bestJ+1:]...)
	}

	return forest[0]
}
