package coap

import (
	"math/rand"
	"net"
	"sync"
	"time"

	sckt "github.com/lobaro/coap-client/socket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client is a long-lived endpoint bound to one remote CoAP server.
// Successive calls to Exchange run synchronously to completion; a
// Client is not safe for concurrent use (spec section 5).
type Client struct {
	remoteAddr string // printable host:port, for diagnostics
	endpoint   DatagramEndpoint
	codec      MessageCodec
	timer      CountdownTimer
	ids        IdentifierGenerator
	rand       *rand.Rand
	log        *logrus.Entry

	ackTimeout    time.Duration
	maxRetransmit int
	respTimeout   time.Duration

	mu       sync.Mutex
	inFlight bool
	closed   bool
}

// Option configures a Client at construction time. The defaults match
// the constants in spec section 6.4 and are adequate for talking to a
// real server; tests override Codec/Timer/Endpoint to run the state
// machine without a socket or real time.
type Option func(*Client)

// WithCodec overrides the MessageCodec. Defaults to the coapmsg-backed
// RFC 7252 codec.
func WithCodec(codec MessageCodec) Option {
	return func(c *Client) { c.codec = codec }
}

// WithTimer overrides the CountdownTimer. Defaults to a time.Timer.
func WithTimer(timer CountdownTimer) Option {
	return func(c *Client) { c.timer = timer }
}

// WithIdentifierGenerator overrides the Message-ID/Token source.
func WithIdentifierGenerator(gen IdentifierGenerator) Option {
	return func(c *Client) { c.ids = gen }
}

// WithLogger overrides the logger used for this Client's diagnostics.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l.WithField("component", "coap.Client") }
}

// WithEndpoint overrides the DatagramEndpoint entirely, bypassing host
// resolution and socket creation. Intended for tests.
func WithEndpoint(ep DatagramEndpoint, remoteAddr string) Option {
	return func(c *Client) {
		c.endpoint = ep
		c.remoteAddr = remoteAddr
	}
}

// WithTiming overrides the RFC 7252 retransmission timing constants,
// typically sourced from a ClientConfig loaded via LoadClientConfig.
func WithTiming(ackTimeout time.Duration, maxRetransmit int, respTimeout time.Duration) Option {
	return func(c *Client) {
		c.ackTimeout = ackTimeout
		c.maxRetransmit = maxRetransmit
		c.respTimeout = respTimeout
	}
}

// NewClient resolves host:port over a connected IPv6 UDP socket and
// returns a Client ready to run exchanges against it. host must be an
// IPv6 textual address; no name resolution is performed, matching
// coap_client_create's use of inet_pton rather than getaddrinfo.
func NewClient(host string, port int, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "host must not be empty")
	}
	if port < 1 || port > 65535 {
		return nil, errors.Wrap(ErrInvalidArgument, "port out of range")
	}
	if net.ParseIP(host) == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "host must be a literal IP address")
	}

	c := &Client{
		codec:         defaultCodec{},
		timer:         NewTimer(),
		ids:           NewIdentifierGenerator(),
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		log:           defaultLogger.WithField("component", "coap.Client"),
		ackTimeout:    AckTimeout,
		maxRetransmit: MaxRetransmit,
		respTimeout:   RespTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.endpoint == nil {
		ep, err := sckt.DialUDP6(host, port)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create datagram endpoint")
		}
		c.endpoint = ep
		c.remoteAddr = ep.RemoteAddr()
	}

	c.log = c.log.WithField("remote", c.remoteAddr)
	c.log.Info("connected")
	return c, nil
}

// Close releases the Client's socket and timer. An Exchange in flight
// when Close is called will fail on its next I/O attempt, since the
// underlying endpoint's read pump stops delivering datagrams.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.timer.Stop()
	return c.endpoint.Close()
}
