package coapmsg

import (
	"encoding/binary"
	"errors"
)

// MaxMessageLen bounds the receive buffer used by a datagram endpoint.
// A datagram that does not fit is truncated by the transport and will
// therefore fail to parse, which the exchange core treats as a malformed
// message.
const MaxMessageLen = 1152

// ErrBadMessage is returned by UnmarshalBinary (and ParseMessage) when the
// buffer is not long enough to recover a complete header, or otherwise
// violates the framing rules of RFC 7252 section 3. It is distinguished
// from other errors because a format error on a Confirmable message still
// deserves a best-effort Reset reply (section 4.2).
var ErrBadMessage = errors.New("coapmsg: malformed message")

// CodeClass is the first 3 bits of a message code: 0 for requests, 2/4/5
// for responses, and 0 with Code == Empty for the empty messages (ACK/RST
// and piggy-backed empty acks).
type CodeClass uint8

const (
	ClassRequest      CodeClass = 0
	ClassSuccess      CodeClass = 2
	ClassClientError  CodeClass = 4
	ClassServerError  CodeClass = 5
)

// CodeClass classifies m.Code the way the exchange core needs to validate
// an outgoing request (must be ClassRequest) without caring about the
// specific method or response detail.
func (m *Message) CodeClass() CodeClass {
	return CodeClass(m.Code.Class())
}

// IsEmpty reports whether m is an empty message: code 0.00, no token, no
// options and no payload. A bare ACK for a Confirmable request and a
// Reset both satisfy this, but only an ACK with IsEmpty()==true signals
// "wait for the separate response" in the exchange core.
func (m *Message) IsEmpty() bool {
	return m.Code == Empty && len(m.Token) == 0 && len(m.Payload) == 0 && len(m.Options()) == 0
}

// MatchesToken reports whether m carries the same token as other,
// comparing length and bytes.
func (m *Message) MatchesToken(other []byte) bool {
	if len(m.Token) != len(other) {
		return false
	}
	for i := range m.Token {
		if m.Token[i] != other[i] {
			return false
		}
	}
	return true
}

// ParseTypeAndMessageID recovers just the type and message ID from a
// datagram that otherwise failed to parse as a well-formed message. It
// requires only the fixed 4-byte header to be intact, and is used to
// build a best-effort Reset reply for malformed Confirmable traffic
// (RFC 7252 section 4.3).
func ParseTypeAndMessageID(data []byte) (t COAPType, messageID uint16, err error) {
	if len(data) < 4 {
		return 0, 0, ErrBadMessage
	}
	if data[0]>>6 != 1 {
		return 0, 0, ErrBadMessage
	}
	t = COAPType((data[0] >> 4) & 0x3)
	messageID = binary.BigEndian.Uint16(data[2:4])
	return t, messageID, nil
}
