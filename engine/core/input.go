package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_PAUSE     KeyCode = 0x13
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_D         KeyCode = 0x44
	KEY_S         KeyCode = 0x53
	KEY_W         KeyCode = 0x57
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0x100
)

// Mouse state structure
type MouseState struct {
	X       uint16
	Y       uint16
	Buttons [BUTTON_MAX_BUTTONS]bool // button states (pressed/released)
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// InputState holds current and previous states for keyboard and mouse and
// fires an event through the attached EventSystem on every change.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState

	events *EventSystem
}

func NewInputState(events *EventSystem) *InputState {
	LogInfo("Input subsystem initialized.")
	return &InputState{events: events}
}

// Update copies current states to previous states. Call once per frame.
func (in *InputState) Update(deltaTime float64) {
	in.KeyboardPrevious = in.KeyboardCurrent
	in.MousePrevious = in.MouseCurrent
}

// keyboard input
func (in *InputState) IsKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && in.KeyboardCurrent.Keys[key]
}

func (in *InputState) IsKeyUp(key KeyCode) bool {
	return !in.IsKeyDown(key)
}

func (in *InputState) WasKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && in.KeyboardPrevious.Keys[key]
}

func (in *InputState) WasKeyUp(key KeyCode) bool {
	return !in.WasKeyDown(key)
}

func (in *InputState) ProcessKey(key KeyCode, pressed bool) {
	if key >= KEYS_MAX_KEYS {
		return
	}
	// Only handle this if the state actually changed.
	if in.KeyboardCurrent.Keys[key] == pressed {
		return
	}
	in.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	var ctx EventContext
	ctx.Data.U16[0] = uint16(key)
	in.fire(code, ctx)
}

// mouse input
func (in *InputState) IsButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.MouseCurrent.Buttons[button]
}

func (in *InputState) IsButtonUp(button Button) bool {
	return !in.IsButtonDown(button)
}

func (in *InputState) WasButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.MousePrevious.Buttons[button]
}

func (in *InputState) GetMousePosition() (int32, int32) {
	return int32(in.MouseCurrent.X), int32(in.MouseCurrent.Y)
}

func (in *InputState) GetPreviousMousePosition() (int32, int32) {
	return int32(in.MousePrevious.X), int32(in.MousePrevious.Y)
}

func (in *InputState) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	// If the state changed, fire an event.
	if in.MouseCurrent.Buttons[button] == pressed {
		return
	}
	in.MouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	var ctx EventContext
	ctx.Data.U16[0] = uint16(button)
	in.fire(code, ctx)
}

func (in *InputState) ProcessMouseMove(x uint16, y uint16) {
	// Only process if actually different
	if in.MouseCurrent.X == x && in.MouseCurrent.Y == y {
		return
	}
	in.MouseCurrent.X = x
	in.MouseCurrent.Y = y

	var ctx EventContext
	ctx.Data.U16[0] = x
	ctx.Data.U16[1] = y
	in.fire(EVENT_CODE_MOUSE_MOVED, ctx)
}

func (in *InputState) fire(code SystemEventCode, ctx EventContext) {
	if in.events != nil {
		in.events.Fire(code, in, ctx)
	}
}
