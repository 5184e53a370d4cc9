package engine

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every resource
	EngineStageShutdown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	assetManager *assets.AssetManager
	events       *core.EventSystem
	input        *core.InputState
	device       renderer.Device
	renderer     *renderer.Renderer2D
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	events := core.NewEventSystem()
	input := core.NewInputState(events)

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		events:       events,
		input:        input,
		platform:     platform.New(input, events),
		assetManager: am,
		isRunning:    true,
		isSuspended:  false,
		width:        uint32(g.ApplicationConfig.StartWidth),
		height:       uint32(g.ApplicationConfig.StartHeight),
		lastTime:     0,
	}, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: Initialize in stage %d", core.ErrEngineState, e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(platform.WindowConfig{
		Title:      cfg.Name,
		X:          cfg.StartPosX,
		Y:          cfg.StartPosY,
		Width:      cfg.StartWidth,
		Height:     cfg.StartHeight,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	}); err != nil {
		return err
	}

	device, err := opengl.New()
	if err != nil {
		return err
	}
	e.device = device

	if err := e.assetManager.Initialize(cfg.AssetsDir); err != nil {
		return err
	}

	r, err := renderer.NewRenderer2D(e.device, e.platform, e.shaderSource(renderer.DefaultShaderName), renderer.WithMaxSprites(cfg.MaxSprites))
	if err != nil {
		return err
	}
	e.renderer = r

	width, height := e.platform.FramebufferSize()
	e.device.Viewport(width, height)
	e.width = uint32(width)
	e.height = uint32(height)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.context()); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized")
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: Run in stage %d", core.ErrEngineState, e.currentStage)
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}
		e.events.Flush()
		e.reloadChangedShaders()

		if !e.isRunning {
			break
		}
		if e.isSuspended {
			e.platform.WaitMessages(0.1)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		if err := e.frame(delta); err != nil {
			core.LogError("frame failed, shutting down: %s", err)
			e.isRunning = false
			_ = e.Shutdown()
			return err
		}

		frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
		if e.metrics.Update(frameElapsedTime) {
			fps, ms := e.metrics.Frame()
			core.LogDebug("fps: %.0f, frame: %.3fms", fps, ms)
		}

		e.input.Update(delta)
		e.lastTime = currentTime
	}

	return e.Shutdown()
}

func (e *Engine) frame(delta float64) error {
	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(e.context(), delta); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}

	e.device.Clear(e.gameInstance.ApplicationConfig.clearColor())
	if err := e.renderer.Begin(); err != nil {
		return err
	}
	var renderErr error
	if e.gameInstance.FnRender != nil {
		renderErr = e.gameInstance.FnRender(e.renderer, delta)
	}
	e.renderer.End()
	if renderErr != nil {
		return fmt.Errorf("game render: %w", renderErr)
	}

	e.platform.SwapBuffers()
	return nil
}

// RequestShutdown asks the main loop to stop after the current frame. It may
// be called from any goroutine.
func (e *Engine) RequestShutdown() {
	e.events.Post(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown || e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown: %s", err)
		}
	}
	if e.renderer != nil {
		e.renderer.Destroy()
	}
	if err := e.assetManager.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.events.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}

	e.currentStage = EngineStageShutdown
	core.LogInfo("engine shut down")
	return nil
}

func (e *Engine) context() *Context {
	return &Context{Input: e.input}
}

// shaderSource prefers an asset override and falls back to the embedded shader.
func (e *Engine) shaderSource(name string) renderer.ShaderSource {
	src, err := e.assetManager.LoadShader(name)
	if err != nil {
		core.LogDebug("using built-in %s shader: %s", name, err)
		return renderer.DefaultShaderSource()
	}
	return src
}

func (e *Engine) reloadChangedShaders() {
	for {
		select {
		case name := <-e.assetManager.ShaderChanges():
			if name != renderer.DefaultShaderName {
				continue
			}
			src, err := e.assetManager.LoadShader(name)
			if err != nil {
				core.LogWarn("shader %s changed but could not be loaded: %s", name, err)
				continue
			}
			// a failed reload keeps the previous program
			_ = e.renderer.ReloadShaders(src)
		default:
			return
		}
	}
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		e.platform.RequestClose()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if core.KeyCode(data.Data.U16[0]) == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	width := data.Data.U32[0]
	height := data.Data.U32[1]

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application.")
		e.isSuspended = false
	}
	if e.device != nil {
		e.device.Viewport(int(width), int(height))
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("game resize: %s", err)
		}
	}
	return false
}
