package bvh

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/bvhviz/volume"
	"github.com/olekukonko/tablewriter"
)

// Node counts for a hierarchy.
type Stats struct {
	Nodes        int
	Leafs        int
	Internal     int
	DeepestDepth int16
}

// Count the nodes of the hierarchy.
func (h *Hierarchy) Stats() Stats {
	s := Stats{DeepestDepth: -1}
	h.Walk(func(node *Node, depth int16) {
		s.Nodes++
		if node.IsLeaf() {
			s.Leafs++
		} else {
			s.Internal++
		}
		if depth > s.DeepestDepth {
			s.DeepestDepth = depth
		}
	})
	return s
}

// Render a table with the stats of a set of hierarchies.
func StatsTable(hierarchies ...*Hierarchy) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Strategy", "Volume", "Nodes", "Leafs", "Internal", "Deepest depth", "Root cost"})

	for _, h := range hierarchies {
		if h == nil {
			continue
		}
		s := h.Stats()
		rootCost := "---"
		if !h.Empty() {
			rootCost = fmt.Sprintf("%.3f", h.Root.Volume.Cost())
		}
		table.Append([]string{
			h.Strategy.String(),
			h.Kind.String(),
			fmt.Sprint(s.Nodes),
			fmt.Sprint(s.Leafs),
			fmt.Sprint(s.Internal),
			fmt.Sprint(s.DeepestDepth),
			rootCost,
		})
	}

	table.Render()
	return buf.String()
}

// Render a table listing the construction steps in order.
func StepTable(steps []RenderStepEntry) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Order", "Depth", "Node", "Object", "Center", "Extent"})

	for _, entry := range steps {
		node := entry.Node
		nodeType, object := "internal", "---"
		if node.IsLeaf() {
			nodeType, object = "leaf", fmt.Sprintf("#%d", node.Object)
		}
		table.Append([]string{
			fmt.Sprint(entry.Order),
			fmt.Sprint(entry.Depth),
			nodeType,
			object,
			fmtVec(node.Volume.Centroid()),
			fmtExtent(node.Volume),
		})
	}
	table.SetFooter([]string{"Total", fmt.Sprint(len(steps)), " ", " ", " ", " "})

	table.Render()
	return buf.String()
}

func fmtVec(v [3]float32) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}

func fmtExtent(v volume.Volume) string {
	switch vol := v.(type) {
	case volume.BoundingBox:
		return "half " + fmtVec(vol.HalfExtents)
	case volume.BoundingSphere:
		return fmt.Sprintf("radius %.2f", vol.Radius)
	}
	return "---"
}
