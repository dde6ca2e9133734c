package coap

import (
	"github.com/lobaro/coap-client/coapmsg"
	sckt "github.com/lobaro/coap-client/socket"
)

// MessageCodec decouples the exchange state machine from the wire
// format. The default implementation is backed by package coapmsg and
// follows RFC 7252; see coapmsg.Message for the accessible attributes
// this core relies on (type, code class, message ID, token, IsEmpty).
type MessageCodec interface {
	Marshal(msg *coapmsg.Message) ([]byte, error)
	Unmarshal(data []byte) (coapmsg.Message, error)
	// ParseTypeAndMessageID recovers just enough of a malformed
	// datagram to build a best-effort Reset reply.
	ParseTypeAndMessageID(data []byte) (typ coapmsg.COAPType, messageID uint16, err error)
}

// defaultCodec is the coapmsg-backed MessageCodec.
type defaultCodec struct{}

func (defaultCodec) Marshal(msg *coapmsg.Message) ([]byte, error) {
	return msg.MarshalBinary()
}

func (defaultCodec) Unmarshal(data []byte) (coapmsg.Message, error) {
	return coapmsg.ParseMessage(data)
}

func (defaultCodec) ParseTypeAndMessageID(data []byte) (coapmsg.COAPType, uint16, error) {
	return coapmsg.ParseTypeAndMessageID(data)
}

// Datagram is one packet read off the wire, paired with the time it was
// received so call sites can log latency without a second clock read.
// It is an alias of sckt.Datagram so concrete endpoints in package sckt
// satisfy DatagramEndpoint without this package and sckt importing each
// other.
type Datagram = sckt.Datagram

// DatagramEndpoint is a connected (peer-bound) datagram socket: Send
// writes one datagram to the already-connected peer, and Recv delivers
// received datagrams (or a fatal read error) over a channel so the
// exchange state machine can select on it alongside a CountdownTimer.
// The default implementation is sckt.UDP6Endpoint, an IPv6 UDP socket
// built on golang.org/x/net/ipv6.
type DatagramEndpoint interface {
	Send(data []byte) error
	// Datagrams returns the channel fed by the endpoint's background
	// read pump. It is closed once the endpoint stops reading; a read
	// error that stopped it is delivered on Errors, not on this channel.
	Datagrams() <-chan Datagram
	// Errors carries fatal read-side failures from the background
	// read pump; a send on this channel means the endpoint can no
	// longer be used.
	Errors() <-chan error
	RemoteAddr() string
	Close() error
}
