package coap

import (
	"context"

	"github.com/lobaro/coap-client/coapmsg"
	"github.com/pkg/errors"
)

// exchangeNon implements NonConfirmablePath (spec section 4.3): send
// once, then wait up to RespTimeout for a matching response. There is
// no retransmission on this path.
func (c *Client) exchangeNon(ctx context.Context, _ []byte, req *coapmsg.Message) (*coapmsg.Message, error) {
	c.timer.Reset(c.respTimeout)
	c.log.WithField("messageId", req.MessageID).Info("awaiting response")

	for {
		d, timedOut, err := c.wait(ctx)
		if err != nil {
			return nil, err
		}
		if timedOut {
			return nil, ErrTimeout
		}

		r, ok, err := c.parseDatagram(*d)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse received datagram")
		}
		if !ok {
			continue
		}

		switch classifyNon(req.MessageID, req.Token, r) {
		case ActionConnReset:
			c.log.WithField("messageId", req.MessageID).Info("received reset")
			return nil, ErrConnectionReset
		case ActionDeliver:
			c.log.WithField("token", req.Token).Info("received non-confirmable response")
			return &r, nil
		case ActionDeliverAndAck:
			c.log.WithField("token", req.Token).Info("received confirmable response")
			if err := c.sendAck(r.MessageID); err != nil {
				return nil, errors.Wrap(err, "failed to acknowledge response")
			}
			return &r, nil
		case ActionReset:
			if err := c.rejectMessage(r); err != nil {
				return nil, errors.Wrap(err, "failed to reject message")
			}
		case ActionDrop:
			// nothing to do, keep waiting
		}
	}
}
