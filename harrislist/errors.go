package harrislist

import "errors"

var (
	ErrCorruptSnapshot = errors.New("corrupt harrislist snapshot")
)
