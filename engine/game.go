package engine

import (
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

// Context gives game callbacks access to engine services.
type Context struct {
	Input *core.InputState
}

type Initialize func(ctx *Context) error
type Update func(ctx *Context, deltaTime float64) error
type Render func(r *renderer.Renderer2D, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
