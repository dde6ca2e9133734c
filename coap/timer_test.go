package coap

import (
	"math/rand"
	"testing"
	"time"
)

func TestTimerDiscipline_StartAckJitterBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	d := newTimerDiscipline(rnd, 2*time.Second, 4)

	got := d.startAck()
	if got < 2*time.Second || got >= 3*time.Second {
		t.Fatalf("startAck() = %v, want within [2s, 3s)", got)
	}
}

func TestTimerDiscipline_RetransmitDoublesAndCapsAtMaxRetransmit(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	d := newTimerDiscipline(rnd, 2*time.Second, 4)

	first := d.startAck()

	want := first
	for i := 0; i < 4; i++ {
		want *= 2
		got, ok := d.retransmit()
		if !ok {
			t.Fatalf("retransmit() #%d reported exhausted too early", i+1)
		}
		if got != want {
			t.Fatalf("retransmit() #%d = %v, want %v", i+1, got, want)
		}
	}

	if _, ok := d.retransmit(); ok {
		t.Fatalf("retransmit() after maxRetransmit exhausted should report false")
	}
}

func TestTimerDiscipline_StartAckResetsCounter(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	d := newTimerDiscipline(rnd, 2*time.Second, 1)

	d.startAck()
	if _, ok := d.retransmit(); !ok {
		t.Fatalf("first retransmit should succeed with maxRetransmit=1")
	}
	if _, ok := d.retransmit(); ok {
		t.Fatalf("second retransmit should fail with maxRetransmit=1")
	}

	// Starting a new exchange must reset the retransmit counter.
	d.startAck()
	if _, ok := d.retransmit(); !ok {
		t.Fatalf("retransmit after startAck should succeed again")
	}
}
