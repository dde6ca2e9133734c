package coap

import (
	"context"

	"github.com/pkg/errors"
)

// wait blocks until exactly one of: a datagram arrives, the endpoint
// reports a fatal read error, the armed CountdownTimer fires, or ctx is
// canceled. It is the Go expression of FreeCoAP's single select(2) over
// the socket fd and the timerfd (spec section 4.6): there is no deadline
// here other than the timer, matching the C implementation's reliance on
// the timerfd as the sole source of wakeup-on-deadline.
//
// timedOut is true only when the timer fired; datagram is non-nil only
// when one was received.
func (c *Client) wait(ctx context.Context) (datagram *Datagram, timedOut bool, err error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case d, ok := <-c.endpoint.Datagrams():
		if !ok {
			return nil, false, errors.Wrap(ErrClientClosed, "datagram endpoint closed")
		}
		dCopy := d
		return &dCopy, false, nil
	case err, ok := <-c.endpoint.Errors():
		if !ok {
			return nil, false, errors.Wrap(ErrClientClosed, "datagram endpoint closed")
		}
		return nil, false, errors.Wrap(err, "transport read failed")
	case <-c.timer.C():
		return nil, true, nil
	}
}
