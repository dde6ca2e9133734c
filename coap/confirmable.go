package coap

import (
	"context"

	"github.com/lobaro/coap-client/coapmsg"
	"github.com/pkg/errors"
)

// exchangeCon implements ConfirmablePath (spec section 4.2): retransmit
// the request until an ACK arrives (Phase A), then if the ACK was bare,
// wait for a separate response (Phase B). reqBytes is the already
// serialized request, resent verbatim on every retransmit.
func (c *Client) exchangeCon(ctx context.Context, reqBytes []byte, req *coapmsg.Message) (*coapmsg.Message, error) {
	ia := newInteraction(req)
	disc := newTimerDiscipline(c.rand, c.ackTimeout, c.maxRetransmit)

	c.timer.Reset(disc.startAck())
	c.log.WithField("messageId", req.MessageID).Info("awaiting acknowledgement")

	for !ia.ack() {
		d, timedOut, err := c.wait(ctx)
		if err != nil {
			return nil, err
		}
		if timedOut {
			timeout, ok := disc.retransmit()
			if !ok {
				c.log.WithField("messageId", req.MessageID).Info("no acknowledgement received, giving up")
				return nil, ErrTimeout
			}
			c.timer.Reset(timeout)
			c.log.WithFields(loggerFields{"messageId": req.MessageID, "timeout": timeout}).Debug("retransmitting request")
			if err := c.endpoint.Send(reqBytes); err != nil {
				return nil, errors.Wrap(err, "failed to retransmit request")
			}
			continue
		}

		r, ok, err := c.parseDatagram(*d)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse received datagram")
		}
		if !ok {
			continue
		}

		switch classifyAck(req.MessageID, req.Token, r) {
		case ActionAwaitSeparate:
			ia.setAck()
			c.log.WithField("messageId", req.MessageID).Info("received acknowledgement, awaiting separate response")
		case ActionDeliver:
			c.log.WithField("messageId", req.MessageID).Info("received piggy-backed response")
			return &r, nil
		case ActionConnReset:
			c.log.WithField("messageId", req.MessageID).Info("received reset")
			return nil, ErrConnectionReset
		case ActionDeliverAndAck:
			c.log.WithField("messageId", r.MessageID).Info("received confirmable response before acknowledgement")
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

	return c.awaitSeparateResponse(ctx, req)
}

// awaitSeparateResponse implements Phase B of ConfirmablePath: the bare
// ACK has already arrived, now wait (with no further retransmission)
// for the separate response, matched by Token alone since the server
// chose a fresh Message-ID for it.
func (c *Client) awaitSeparateResponse(ctx context.Context, req *coapmsg.Message) (*coapmsg.Message, error) {
	c.timer.Reset(c.respTimeout)
	c.log.WithField("token", req.Token).Info("awaiting separate response")

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

		switch classifySeparate(req.Token, r) {
		case ActionDeliver:
			c.log.WithField("token", req.Token).Info("received non-confirmable separate response")
			return &r, nil
		case ActionDeliverAndAck:
			c.log.WithField("token", req.Token).Info("received confirmable separate response")
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
