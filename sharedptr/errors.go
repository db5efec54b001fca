package sharedptr

import "errors"

var (
	ErrReleased      = errors.New("shared pointer already released")
	ErrPoolNotInited = errors.New("shared pointer pool not inited")
)
