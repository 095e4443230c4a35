package scene

import "errors"

var (
	ErrObjectNotFound    = errors.New("scene: object not found")
	ErrUnknownObjectKind = errors.New("scene: unknown object kind")
)
