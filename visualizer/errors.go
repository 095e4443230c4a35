package visualizer

import "errors"

var (
	ErrNotBuilt   = errors.New("visualizer: trees have not been built")
	ErrStaleTrees = errors.New("visualizer: scene changed since the last rebuild")
)
