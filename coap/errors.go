package coap

import "errors"

// Semantic error taxonomy returned by Exchange. Callers should use
// errors.Is against these sentinels rather than matching strings.
var (
	// ErrInvalidArgument is returned when the request passed to Exchange
	// violates its contract (wrong type, or a code class other than a
	// request). The exchange is never started.
	ErrInvalidArgument = errors.New("coap: invalid request")

	// ErrTimeout is returned when the ACK was never received after
	// MaxRetransmit retransmissions, or a separate response never
	// arrived before the response deadline.
	ErrTimeout = errors.New("coap: exchange timed out")

	// ErrConnectionReset is returned when the server answered with a
	// Reset message matching our Message-ID.
	ErrConnectionReset = errors.New("coap: connection reset by peer")

	// ErrClientClosed is returned by Exchange when the Client has
	// already been closed, and by operations attempted after Close.
	ErrClientClosed = errors.New("coap: client closed")

	// ErrExchangeInProgress guards against the undefined behavior of
	// running two exchanges concurrently on the same Client.
	ErrExchangeInProgress = errors.New("coap: exchange already in progress")
)
