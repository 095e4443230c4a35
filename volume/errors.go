package volume

import "errors"

var (
	ErrUnknownKind = errors.New("volume: unknown volume kind")
)
