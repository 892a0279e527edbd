package events

import "sync"

// Emitter receives client lifecycle events.
type Emitter interface {
	OnRequestSent(RequestSent)
	OnResponseReceived(ResponseReceived)
	OnError(Error)
}

// NopEmitter discards every event. It is the default emitter.
type NopEmitter struct{}

// OnRequestSent implements Emitter.
func (NopEmitter) OnRequestSent(RequestSent) {}

// OnResponseReceived implements Emitter.
func (NopEmitter) OnResponseReceived(ResponseReceived) {}

// OnError implements Emitter.
func (NopEmitter) OnError(Error) {}

// Funcs adapts plain functions to the Emitter interface. Nil fields are
// skipped.
type Funcs struct {
	RequestSent      func(RequestSent)
	ResponseReceived func(ResponseReceived)
	Error            func(Error)
}

// OnRequestSent implements Emitter.
func (f Funcs) OnRequestSent(e RequestSent) {
	if f.RequestSent != nil {
		f.RequestSent(e)
	}
}

// OnResponseReceived implements Emitter.
func (f Funcs) OnResponseReceived(e ResponseReceived) {
	if f.ResponseReceived != nil {
		f.ResponseReceived(e)
	}
}

// OnError implements Emitter.
func (f Funcs) OnError(e Error) {
	if f.Error != nil {
		f.Error(e)
	}
}

// Multi returns an emitter that forwards each event to every emitter in
// order. Nil emitters are dropped.
func Multi(emitters ...Emitter) Emitter {
	m := make(multi, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			m = append(m, e)
		}
	}
	return m
}

type multi []Emitter

func (m multi) OnRequestSent(e RequestSent) {
	for _, em := range m {
		em.OnRequestSent(e)
	}
}

func (m multi) OnResponseReceived(e ResponseReceived) {
	for _, em := range m {
		em.OnResponseReceived(e)
	}
}

func (m multi) OnError(e Error) {
	for _, em := range m {
		em.OnError(e)
	}
}

// Recorder is an Emitter that keeps every event in memory, in arrival order.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// OnRequestSent implements Emitter.
func (r *Recorder) OnRequestSent(e RequestSent) { r.record(e) }

// OnResponseReceived implements Emitter.
func (r *Recorder) OnResponseReceived(e ResponseReceived) { r.record(e) }

// OnError implements Emitter.
func (r *Recorder) OnError(e Error) { r.record(e) }

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// RequestsSent returns the recorded RequestSent events.
func (r *Recorder) RequestsSent() []RequestSent {
	return filter[RequestSent](r.Events())
}

// ResponsesReceived returns the recorded ResponseReceived events.
func (r *Recorder) ResponsesReceived() []ResponseReceived {
	return filter[ResponseReceived](r.Events())
}

// Errors returns the recorded Error events.
func (r *Recorder) Errors() []Error {
	return filter[Error](r.Events())
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func filter[T Event](all []Event) []T {
	var out []T
	for _, e := range all {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
