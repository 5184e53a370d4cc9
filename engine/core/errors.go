package core

import (
	"errors"
)

var (
	ErrCapacityExceeded  = errors.New("batch capacity exceeded")
	ErrInvalidIndex      = errors.New("index does not refer to a staged vertex")
	ErrInvalidSize       = errors.New("point size and line width must be positive")
	ErrFrameNotBegun     = errors.New("shape drawn outside of Begin/End")
	ErrShaderCompile     = errors.New("shader compilation failed")
	ErrShaderLink        = errors.New("shader program linking failed")
	ErrWindowCreate      = errors.New("failed to create window")
	ErrRendererDestroyed = errors.New("renderer already destroyed")
	ErrEngineState       = errors.New("engine is in the wrong stage")
)
