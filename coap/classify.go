package coap

import "github.com/lobaro/coap-client/coapmsg"

// Action is the verdict of classifying one received message against the
// identifiers of the exchange currently in flight. It is deliberately a
// pure function of (request identifiers, received message) so the rules
// in spec section 4.2-4.4 can be unit tested without a socket.
type Action int

const (
	// ActionDrop discards the message and keeps waiting, with no
	// reply. Used for ACK/RST noise and for non-matching NON traffic.
	ActionDrop Action = iota
	// ActionReset rejects a non-matching Confirmable message: reply
	// with an RST carrying its Message-ID, then keep waiting.
	ActionReset
	// ActionConnReset terminates the exchange with ErrConnectionReset:
	// the peer answered our request with a matching RST.
	ActionConnReset
	// ActionAwaitSeparate means an empty ACK for our request arrived;
	// stop the ACK timer/retransmit loop and start waiting for a
	// separate response instead.
	ActionAwaitSeparate
	// ActionDeliver means the message is the response: terminate the
	// exchange successfully, no ACK owed to the peer.
	ActionDeliver
	// ActionDeliverAndAck means the message is the response, delivered
	// as a separate Confirmable that itself must be acknowledged
	// before terminating the exchange successfully.
	ActionDeliverAndAck
)

// classifyAck implements Phase A of ConfirmablePath (spec section 4.2):
// the wait for either a piggy-backed response, a bare ACK, or a reset,
// while the request is still being retransmitted.
func classifyAck(reqID uint16, reqToken []byte, r coapmsg.Message) Action {
	if r.MessageID == reqID {
		switch r.Type {
		case coapmsg.Acknowledgement:
			if r.IsEmpty() {
				return ActionAwaitSeparate
			}
			if r.MatchesToken(reqToken) {
				return ActionDeliver
			}
		case coapmsg.Reset:
			return ActionConnReset
		}
	}
	// Only reached when the Message-ID did not match req's: a response
	// carrying our own Message-ID is handled exclusively by the block
	// above, matching coap_client_exchange_con's "else if" structure
	// (original_source/src/coap_client.c) where the token-match branch is
	// attached to the msg-id-mismatch case, not evaluated unconditionally.
	if r.MessageID != reqID && r.MatchesToken(reqToken) {
		switch r.Type {
		case coapmsg.Confirmable:
			return ActionDeliverAndAck
		case coapmsg.NonConfirmable:
			return ActionDeliver
		}
	}
	return reject(r)
}

// classifySeparate implements Phase B of ConfirmablePath: waiting for a
// separate response after the bare ACK has already arrived. The server
// chose a fresh Message-ID for the separate response, so only the token
// is checked here.
func classifySeparate(reqToken []byte, r coapmsg.Message) Action {
	if r.MatchesToken(reqToken) {
		switch r.Type {
		case coapmsg.Confirmable:
			return ActionDeliverAndAck
		case coapmsg.NonConfirmable:
			return ActionDeliver
		}
	}
	return reject(r)
}

// classifyNon implements NonConfirmablePath (spec section 4.3).
func classifyNon(reqID uint16, reqToken []byte, r coapmsg.Message) Action {
	if r.MessageID == reqID && r.Type == coapmsg.Reset {
		return ActionConnReset
	}
	if r.MatchesToken(reqToken) {
		switch r.Type {
		case coapmsg.NonConfirmable:
			return ActionDeliver
		case coapmsg.Confirmable:
			return ActionDeliverAndAck
		}
	}
	return reject(r)
}

// reject implements the Reject helper from spec section 4.4: Confirmable
// messages that matched nothing get an RST, everything else (including
// NON, which is a silent no-op by design) is simply dropped. ACK and RST
// messages that fall through to here (foreign Message-ID, or an ACK with
// our Message-ID but a foreign token) are spurious and are just dropped,
// never rejected with an RST of their own.
func reject(r coapmsg.Message) Action {
	if r.Type == coapmsg.Confirmable {
		return ActionReset
	}
	return ActionDrop
}
