package testbed

import (
	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

// pixels per second
const moveSpeed = 240

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	ballX, ballY float32
	elapsed      float64
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(ctx *engine.Context) error {
	core.LogInfo("initializing testbed...")
	s := g.state()
	s.ballX = float32(g.ApplicationConfig.StartWidth) / 2
	s.ballY = float32(g.ApplicationConfig.StartHeight) / 2
	return nil
}

func (g *TestGame) Update(ctx *engine.Context, deltaTime float64) error {
	s := g.state()
	s.elapsed += deltaTime

	step := float32(moveSpeed * deltaTime)
	if ctx.Input.IsKeyDown(core.KEY_LEFT) || ctx.Input.IsKeyDown(core.KEY_A) {
		s.ballX -= step
	}
	if ctx.Input.IsKeyDown(core.KEY_RIGHT) || ctx.Input.IsKeyDown(core.KEY_D) {
		s.ballX += step
	}
	if ctx.Input.IsKeyDown(core.KEY_UP) || ctx.Input.IsKeyDown(core.KEY_W) {
		s.ballY -= step
	}
	if ctx.Input.IsKeyDown(core.KEY_DOWN) || ctx.Input.IsKeyDown(core.KEY_S) {
		s.ballY += step
	}
	return nil
}

// Render draws one of each primitive. A shape that fails to stage is logged
// and skipped; the frame goes on.
func (g *TestGame) Render(r *renderer.Renderer2D, deltaTime float64) error {
	s := g.state()
	w, h := float32(s.width), float32(s.height)

	draw := func(what string, err error) {
		if err != nil {
			core.LogWarn("testbed: %s: %s", what, err)
		}
	}

	r.SetColor(1, 0, 0, 1)
	draw("triangle", r.DrawTriangle(40, 40, 160, 40, 40, 160))

	r.SetColorRGBA(renderer.Green)
	draw("rectangle", r.DrawRectangle(w-200, 40, w-40, 40, w-40, 160, w-200, 160))

	r.SetColor(0.2, 0.4, 1, 0.6)
	draw("rect", r.DrawRect(40, h-160, 160, 120))

	r.SetColorRGBA(renderer.White)
	draw("line", r.DrawLine(0, h/2, w, h/2, 1))
	for i := 0; i < 10; i++ {
		draw("point", r.DrawPoint(w/2-90+float32(i)*20, h/2+30, 4))
	}

	r.SetColor(1, 0.8, 0, 1)
	draw("circle", r.DrawCircle(s.ballX, s.ballY, 40))
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	s := g.state()
	s.width = width
	s.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("testbed done after %.1fs", g.state().elapsed)
	return nil
}
