package coap

import "github.com/lobaro/coap-client/coapmsg"

// interaction tracks the identifiers and phase of one in-flight exchange
// between this client and the server, from the first transmission of
// the request to a terminal outcome. It plays the same role as the
// teacher's Interaction type (request plus an "acknowledged" flag); the
// only phase it records is whether the request has been acknowledged.
type interaction struct {
	req          *coapmsg.Message
	acknowledged bool
}

func newInteraction(req *coapmsg.Message) *interaction {
	return &interaction{req: req}
}

func (i *interaction) ack() bool {
	return i.acknowledged
}

func (i *interaction) setAck() {
	i.acknowledged = true
}
