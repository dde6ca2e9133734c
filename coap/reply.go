package coap

import (
	"errors"

	"github.com/lobaro/coap-client/coapmsg"
)

// parseDatagram unmarshals one received datagram. A malformed datagram
// is not a fatal error: it triggers a best-effort Reset (spec section
// 4.4, "format-error reset") and the caller should keep waiting, so ok
// is false and err is nil in that case. Any other codec failure is
// fatal and surfaced as err.
func (c *Client) parseDatagram(d Datagram) (msg coapmsg.Message, ok bool, err error) {
	msg, err = c.codec.Unmarshal(d.Data)
	if err == nil {
		return msg, true, nil
	}
	if errors.Is(err, coapmsg.ErrBadMessage) {
		c.handleFormatError(d.Data)
		return coapmsg.Message{}, false, nil
	}
	return coapmsg.Message{}, false, err
}

// handleFormatError implements the format-error-reset helper from spec
// section 4.4: recover just the type and Message-ID from the otherwise
// unparsable datagram, and if it claims to be Confirmable, answer with
// an RST. Any failure here (unrecoverable header, send error) is
// silently dropped, same as coap_client_handle_format_error.
func (c *Client) handleFormatError(data []byte) {
	typ, messageID, err := c.codec.ParseTypeAndMessageID(data)
	if err != nil || typ != coapmsg.Confirmable {
		return
	}
	c.log.WithField("messageId", messageID).Debug("replying to malformed confirmable message with reset")
	_ = c.sendReset(messageID)
}

// rejectMessage implements the Reject helper from spec section 4.4: a
// Confirmable message that matched neither our Message-ID nor our Token
// is answered with a Reset; a Non-confirmable one is logged and
// dropped without any reply, as FreeCoAP's coap_client_reject_non does.
func (c *Client) rejectMessage(r coapmsg.Message) error {
	if r.Type == coapmsg.Confirmable {
		c.log.WithField("messageId", r.MessageID).Info("rejecting unmatched confirmable message")
		return c.sendReset(r.MessageID)
	}
	c.log.WithField("messageId", r.MessageID).Info("rejecting unmatched non-confirmable message")
	return nil
}

func (c *Client) sendReset(messageID uint16) error {
	rst := coapmsg.NewRst(messageID)
	buf, err := c.codec.Marshal(&rst)
	if err != nil {
		return err
	}
	return c.endpoint.Send(buf)
}

// sendAck implements the "Send ACK" helper from spec section 4.4: an
// empty ACK (code 0.00, no token/options/payload) carrying the peer's
// Message-ID.
func (c *Client) sendAck(messageID uint16) error {
	ack := coapmsg.NewAck(messageID)
	buf, err := c.codec.Marshal(&ack)
	if err != nil {
		return err
	}
	c.log.WithField("messageId", messageID).Info("acknowledging confirmable message")
	return c.endpoint.Send(buf)
}
