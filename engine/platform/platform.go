package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/anima2d/engine/core"
)

var startTime float64 = 0

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// WindowConfig describes the window the platform opens.
type WindowConfig struct {
	Title      string
	X, Y       int
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

type Platform struct {
	Window *glfw.Window

	input  *core.InputState
	events *core.EventSystem
}

func New(input *core.InputState, events *core.EventSystem) *Platform {
	return &Platform{
		Window: nil,
		input:  input,
		events: events,
	}
}

// Startup initializes GLFW, opens the window with an OpenGL 3.3 core context
// and makes the context current on the calling thread.
func (p *Platform) Startup(cfg WindowConfig) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		core.LogError("failed to create window: %s", err)
		return fmt.Errorf("%w: %s", core.ErrWindowCreate, err)
	}
	window.MakeContextCurrent()
	p.Window = window

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	if !cfg.Fullscreen {
		p.Window.SetPos(cfg.X, cfg.Y)
	}
	p.Window.Show()

	startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// WaitMessages blocks until an event arrives or timeout seconds pass.
func (p *Platform) WaitMessages(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

// RequestClose flags the window to close at the next PumpMessages.
func (p *Platform) RequestClose() {
	if p.Window != nil {
		p.Window.SetShouldClose(true)
	}
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

// FramebufferSize returns the drawable size in pixels.
func (p *Platform) FramebufferSize() (int, int) {
	if p.Window == nil {
		return 0, 0
	}
	return p.Window.GetFramebufferSize()
}

// GetAbsoluteTime returns seconds since the platform started.
func GetAbsoluteTime() float64 {
	return glfw.GetTime() - startTime
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code := TranslateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	p.input.ProcessKey(code, action == glfw.Press)
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	p.input.ProcessButton(b, action == glfw.Press)
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if xpos < 0 || ypos < 0 {
		return
	}
	p.input.ProcessMouseMove(uint16(xpos), uint16(ypos))
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	var ctx core.EventContext
	ctx.Data.U32[0] = uint32(width)
	ctx.Data.U32[1] = uint32(height)
	p.events.Fire(core.EVENT_CODE_RESIZED, p, ctx)
}
