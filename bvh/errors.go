package bvh

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStrategy = errors.New("bvh: unknown construction strategy")
	ErrTooManyObjects  = fmt.Errorf("bvh: hierarchies are limited to %d objects", MaxObjects)
)
