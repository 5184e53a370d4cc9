package core

import (
	"sync"

	"github.com/spaghettifunk/anima2d/engine/containers"
)

type EventContext struct {
	Data struct {
		I32 [4]int32
		U32 [4]uint32
		F32 [4]float32

		U16 [8]uint16
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * u16 key_code = data.Data.U16[0];
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * u16 key_code = data.Data.U16[0];
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * u16 button = data.Data.U16[0];
	 */
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04

	// Mouse button released.
	/* Context usage:
	 * u16 button = data.Data.U16[0];
	 */
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05

	// Mouse moved.
	/* Context usage:
	 * u16 x = data.Data.U16[0];
	 * u16 y = data.Data.U16[1];
	 */
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * u32 width = data.Data.U32[0];
	 * u32 height = data.Data.U32[1];
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

// Size of the queue used by Post. Posting to a full queue drops the event.
const EVENT_QUEUE_SIZE = 256

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type queuedEvent struct {
	code    SystemEventCode
	sender  interface{}
	context EventContext
}

// EventSystem dispatches engine events. Register, Unregister and Fire must be
// called from the main thread; Post may be called from any goroutine.
type EventSystem struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES][]*registeredEvent

	mu    sync.Mutex
	queue *containers.RingQueue[queuedEvent]
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		queue: containers.NewRingQueue[queuedEvent](EVENT_QUEUE_SIZE),
	}
}

func (es *EventSystem) Shutdown() error {
	// Free the events arrays. And objects pointed to should be destroyed on their own.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		es.registered[i] = nil
	}
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback function to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || int(code) >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	// If at this point, no duplicate was found. Proceed with registration.
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 * @param code The event code to stop listening for.
 * @param listener The listener instance used at registration.
 * @returns TRUE if the event is successfully unregistered; otherwise false.
 */
func (es *EventSystem) Unregister(code SystemEventCode, listener interface{}) bool {
	if code < 0 || int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			// Found one, remove it
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param code The event code to fire.
 * @param sender The sender. Can be nil.
 * @param context The event data.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (es *EventSystem) Fire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if code < 0 || int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	for _, e := range es.registered[code] {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Post queues an event for the next Flush. It returns false if the queue is full.
func (es *EventSystem) Post(code SystemEventCode, sender interface{}, context EventContext) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	if err := es.queue.Enqueue(queuedEvent{code: code, sender: sender, context: context}); err != nil {
		LogWarn("dropping event %d: %s", code, err)
		return false
	}
	return true
}

// Flush fires every queued event in posting order and returns how many were fired.
func (es *EventSystem) Flush() int {
	es.mu.Lock()
	pending := make([]queuedEvent, 0, es.queue.Len())
	for !es.queue.IsEmpty() {
		e, _ := es.queue.Dequeue()
		pending = append(pending, e)
	}
	es.mu.Unlock()

	// fire without holding the lock so handlers may Post
	for _, e := range pending {
		es.Fire(e.code, e.sender, e.context)
	}
	return len(pending)
}
