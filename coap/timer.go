package coap

import (
	"math/rand"
	"time"
)

// Protocol constants from RFC 7252 section 4.8.1, unchanged from the
// values hard-coded in FreeCoAP's coap_client.c.
const (
	AckTimeout      = 2 * time.Second
	AckRandomFactor = 1.5
	MaxRetransmit   = 4
	RespTimeout     = 30 * time.Second
)

// CountdownTimer is a one-shot monotonic timer: Reset(d) arms it to fire
// once after d, C() exposes the fire channel, and Stop cancels a pending
// fire. It abstracts over time.Timer so the exchange state machine can
// be driven by a fake in tests. FreeCoAP arms this with a Linux timerfd
// multiplexed alongside the socket in a single select(2) call; here the
// equivalent multiplexing is a select between two channels.
type CountdownTimer interface {
	Reset(d time.Duration)
	Stop()
	C() <-chan time.Time
}

// timeTimer adapts time.Timer to CountdownTimer.
type timeTimer struct {
	t *time.Timer
}

// NewTimer returns the default CountdownTimer, backed by time.Timer.
func NewTimer() CountdownTimer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &timeTimer{t: t}
}

func (w *timeTimer) Reset(d time.Duration) {
	w.Stop()
	w.t.Reset(d)
}

func (w *timeTimer) Stop() {
	if !w.t.Stop() {
		select {
		case <-w.t.C:
		default:
		}
	}
}

func (w *timeTimer) C() <-chan time.Time {
	return w.t.C
}

// timerDiscipline tracks the mutable timing state of a single exchange:
// the current timeout duration and retransmit counter. It is re-created
// per Exchange call; the Client only owns the long-lived CountdownTimer
// and IdentifierGenerator. ackTimeout and maxRetransmit are copied from
// the owning Client so a ClientConfig loaded from the environment can
// override the RFC defaults per instance.
type timerDiscipline struct {
	timeout       time.Duration
	numRetrans    int
	rand          *rand.Rand
	ackTimeout    time.Duration
	maxRetransmit int
}

func newTimerDiscipline(rnd *rand.Rand, ackTimeout time.Duration, maxRetransmit int) *timerDiscipline {
	return &timerDiscipline{rand: rnd, ackTimeout: ackTimeout, maxRetransmit: maxRetransmit}
}

// startAck initialises the ACK timeout to ACK_TIMEOUT plus jitter drawn
// uniformly from [0, 1000) ms, and resets the retransmit counter. This
// mirrors coap_client_init_ack_timeout/coap_client_start_ack_timer.
func (d *timerDiscipline) startAck() time.Duration {
	d.numRetrans = 0
	jitter := time.Duration(d.rand.Intn(1000)) * time.Millisecond
	d.timeout = d.ackTimeout + jitter
	return d.timeout
}

// retransmit doubles the current timeout (at millisecond granularity, to
// avoid floating point drift the way coap_client_double_timeout does in
// integer milliseconds) and increments the retransmit counter. It
// reports false once the counter would exceed maxRetransmit, at which
// point the caller must give up.
func (d *timerDiscipline) retransmit() (time.Duration, bool) {
	if d.numRetrans >= d.maxRetransmit {
		return 0, false
	}
	ms := 2 * d.timeout.Milliseconds()
	d.timeout = time.Duration(ms) * time.Millisecond
	d.numRetrans++
	return d.timeout, true
}
