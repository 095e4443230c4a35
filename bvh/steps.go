package bvh

import "sort"

// A RenderStepEntry reveals one node of a hierarchy during playback. Entries
// reference nodes of the hierarchy they were extracted from and must be
// discarded whenever that hierarchy is rebuilt.
type RenderStepEntry struct {
	Node  *Node
	Depth int16
	Order int16
}

// Extract the construction steps of a hierarchy using the extraction order
// that matches its strategy. Returns the steps sorted by Order and the
// deepest depth encountered.
func ExtractSteps(h *Hierarchy) ([]RenderStepEntry, int16) {
	if h != nil && h.Strategy == BottomUp {
		return ExtractStepsBottomUp(h)
	}
	return ExtractStepsTopDown(h)
}

// Extract steps in pre-order so that each split is revealed before the splits
// of its children.
func ExtractStepsTopDown(h *Hierarchy) ([]RenderStepEntry, int16) {
	var (
		steps    []RenderStepEntry
		deepest  int16 = -1
		sequence int16
	)

	h.Walk(func(node *Node, depth int16) {
		steps = append(steps, RenderStepEntry{Node: node, Depth: depth, Order: sequence})
		sequence++
		if depth > deepest {
			deepest = depth
		}
	})
	return steps, deepest
}

// Extract steps in the order the bottom-up builder created the nodes: all
// leaves in input order followed by the merged nodes in merge order.
func ExtractStepsBottomUp(h *Hierarchy) ([]RenderStepEntry, int16) {
	var (
		steps   []RenderStepEntry
		deepest int16 = -1
	)

	h.Walk(func(node *Node, depth int16) {
		steps = append(steps, RenderStepEntry{Node: node, Depth: depth})
		if depth > deepest {
			deepest = depth
		}
	})

	sort.Slice(steps, func(i, j int) bool {
		return steps[i].Node.Sequence < steps[j].Node.Sequence
	})
	for index := range steps {
		steps[index].Order = int16(index)
	}
	return steps, deepest
}

// Lookup the step entry for a node by identity.
func FindEntryForNode(steps []RenderStepEntry, node *Node) (RenderStepEntry, bool) {
	if node == nil {
		return RenderStepEntry{}, false
	}
	for _, entry := range steps {
		if entry.Node == node {
			return entry, true
		}
	}
	return RenderStepEntry{}, false
}
