package coap

import (
	"sync"
	"time"
)

// fakeEndpoint is an in-memory DatagramEndpoint, modeled on the
// teacher's TestConnector/PacketBuffer pair (coap/connector_test.go):
// it records every outgoing datagram and lets the test inject incoming
// ones, without any real socket.
type fakeEndpoint struct {
	mu   sync.Mutex
	sent [][]byte

	in       chan Datagram
	errs     chan error
	sentNote chan struct{}
	closed   bool
}

func newFakeEndpoint() *fakeEndpoint {
	return &fakeEndpoint{
		in:       make(chan Datagram, 16),
		errs:     make(chan error, 1),
		sentNote: make(chan struct{}, 64),
	}
}

func (f *fakeEndpoint) Send(data []byte) error {
	f.mu.Lock()
	cp := make([]byte, len(data))
	copy(cp, data)
	f.sent = append(f.sent, cp)
	f.mu.Unlock()
	select {
	case f.sentNote <- struct{}{}:
	default:
	}
	return nil
}

// waitSent blocks until at least n datagrams have been sent, or the
// timeout elapses (in which case it returns false).
func (f *fakeEndpoint) waitSent(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if f.sentCount() >= n {
			return true
		}
		select {
		case <-f.sentNote:
		case <-deadline:
			return f.sentCount() >= n
		}
	}
}

func (f *fakeEndpoint) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeEndpoint) lastSent() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeEndpoint) deliver(data []byte) {
	f.in <- Datagram{Data: data, At: time.Now()}
}

func (f *fakeEndpoint) Datagrams() <-chan Datagram { return f.in }
func (f *fakeEndpoint) Errors() <-chan error       { return f.errs }
func (f *fakeEndpoint) RemoteAddr() string         { return "[fake::1]:5683" }

func (f *fakeEndpoint) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.in)
	}
	return nil
}

// fakeTimer is a CountdownTimer whose firing is entirely test-driven:
// Reset only records the requested duration, it never fires on its own.
// Tests call fire() to simulate expiry.
type fakeTimer struct {
	mu      sync.Mutex
	resets  []time.Duration
	ch      chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{ch: make(chan time.Time, 1)}
}

func (f *fakeTimer) Reset(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, d)
}

func (f *fakeTimer) Stop() {}

func (f *fakeTimer) C() <-chan time.Time { return f.ch }

func (f *fakeTimer) fire() {
	f.ch <- time.Now()
}

func (f *fakeTimer) resetDurations() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.resets))
	copy(out, f.resets)
	return out
}
