package visualizer

import (
	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/volume"
)

type Options struct {
	// The tree that is active after the session starts.
	Strategy bvh.Strategy
	Kind     volume.Kind

	// Deepest tree level shown by VisibleEntries. Negative values show all levels.
	MaxDepth int16

	// Viewport dims for the 2D graph layout.
	ViewportW float32
	ViewportH float32

	// Populate the scene with the default objects.
	LoadDefaultScene bool
}

// Get the default session options.
func DefaultOptions() Options {
	return Options{
		Strategy:         bvh.TopDown,
		Kind:             volume.Box,
		MaxDepth:         -1,
		ViewportW:        1024,
		ViewportH:        512,
		LoadDefaultScene: true,
	}
}
