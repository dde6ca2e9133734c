package coap

import (
	"context"

	"github.com/lobaro/coap-client/coapmsg"
	"github.com/pkg/errors"
)

// Exchange validates req, stamps it with a fresh Message-ID and Token
// (overwriting anything the caller set), sends it, and drives the
// appropriate path state machine to completion. It implements
// ExchangeEngine from spec section 4.1.
//
// Exchange blocks the calling goroutine until a terminal outcome. Only
// one Exchange may be in flight on a Client at a time.
func (c *Client) Exchange(ctx context.Context, req *coapmsg.Message) (*coapmsg.Message, error) {
	if err := c.beginExchange(); err != nil {
		return nil, err
	}
	defer c.endExchange()

	if req.Type == coapmsg.Acknowledgement || req.Type == coapmsg.Reset || req.CodeClass() != coapmsg.ClassRequest {
		return nil, errors.Wrap(ErrInvalidArgument, "request must be Confirmable or Non-confirmable with a request code")
	}

	req.MessageID = c.ids.NextMessageID()
	req.Token = c.ids.NextToken()

	buf, err := c.codec.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	log := c.log.WithFields(loggerFields{
		"messageId": req.MessageID,
		"type":      req.Type,
	})

	if err := c.endpoint.Send(buf); err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}

	switch req.Type {
	case coapmsg.NonConfirmable:
		log.Info("sent non-confirmable request")
		return c.exchangeNon(ctx, buf, req)
	case coapmsg.Confirmable:
		log.Info("sent confirmable request")
		return c.exchangeCon(ctx, buf, req)
	default:
		return nil, errors.Wrap(ErrInvalidArgument, "unsupported request type")
	}
}

func (c *Client) beginExchange() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	if c.inFlight {
		return ErrExchangeInProgress
	}
	c.inFlight = true
	return nil
}

func (c *Client) endExchange() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}
