package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventCallbackStart  EventType = "callback_start"
	EventCallbackFinish EventType = "callback_finish"
	EventWindowOpen     EventType = "window_open"
	EventWindowClose    EventType = "window_close"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Track     Track     `json:"track"`
	Op        string    `json:"op"`
}

// CallbackEvent represents one callback or predicate invocation.
type CallbackEvent struct {
	EventBase
	Position int           `json:"position"` // 1-based
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// WindowEvent represents a continuation window being opened or consumed.
type WindowEvent struct {
	EventBase
	LastIndex int  `json:"last_index"`
	Inclusive bool `json:"inclusive"`
}

// LifecycleHooks defines callbacks for chain observability. Any field may be nil.
type LifecycleHooks struct {
	OnCallbackStart  func(*CallbackEvent)
	OnCallbackFinish func(*CallbackEvent)
	OnWindowOpen     func(*WindowEvent)
	OnWindowClose    func(*WindowEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCallbackStart:  chainCallback(h.OnCallbackStart, other.OnCallbackStart),
		OnCallbackFinish: chainCallback(h.OnCallbackFinish, other.OnCallbackFinish),
		OnWindowOpen:     chainWindow(h.OnWindowOpen, other.OnWindowOpen),
		OnWindowClose:    chainWindow(h.OnWindowClose, other.OnWindowClose),
	}
}

func chainCallback(a, b func(*CallbackEvent)) func(*CallbackEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *CallbackEvent) {
		a(e)
		b(e)
	}
}

func chainWindow(a, b func(*WindowEvent)) func(*WindowEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *WindowEvent) {
		a(e)
		b(e)
	}
}
