package engine

// Event is a multi-cast callback list. The camera controller exposes its
// start/change/end lifecycle signals as three Event fields; consumers
// register plain functions, no inheritance involved.
type Event struct {
	listeners []func()
}

// AddListener adds a callback to be invoked when the event fires
func (e *Event) AddListener(callback func()) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

// RemoveAllListeners clears all listeners
func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners
func (e *Event) Invoke() {
	for _, listener := range e.listeners {
		if listener != nil {
			listener()
		}
	}
}

// ListenerCount returns the number of registered listeners (for debugging)
func (e *Event) ListenerCount() int {
	return len(e.listeners)
}
