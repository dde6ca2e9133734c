package sckt

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/net/ipv6"
)

const maxDatagramLen = 1152 // matches coapmsg.MaxMessageLen, kept local to avoid importing coapmsg here

// UDP6Endpoint is a connected IPv6 UDP datagram endpoint: every Send
// targets the single remote peer resolved at DialUDP6 time, and every
// datagram received from any other address is silently discarded, the
// same filtering a kernel connect(2) would apply. Where the teacher's
// udp6socket joined a multicast group on an unspecified local address,
// this endpoint binds a fixed unicast peer, matching spec section 4.6's
// "connect(2)-ed to the peer so send/recv need no address".
type UDP6Endpoint struct {
	pktCon     *ipv6.PacketConn
	remote     *net.UDPAddr
	remoteStr  string

	datagrams chan Datagram
	errs      chan error
	done      chan struct{}
}

// DialUDP6 resolves host:port (host must be a literal IPv6 address) and
// returns a UDP6Endpoint connected to it, with its background read pump
// already running.
func DialUDP6(host string, port int) (*UDP6Endpoint, error) {
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() != nil {
		return nil, fmt.Errorf("sckt: %q is not a literal IPv6 address", host)
	}
	remote := &net.UDPAddr{IP: ip, Port: port}

	conn, err := net.ListenPacket("udp6", "[::]:0")
	if err != nil {
		return nil, err
	}

	ep := &UDP6Endpoint{
		pktCon:    ipv6.NewPacketConn(conn),
		remote:    remote,
		remoteStr: remote.String(),
		datagrams: make(chan Datagram, 8),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}
	go ep.pump()
	return ep, nil
}

func (e *UDP6Endpoint) pump() {
	buf := make([]byte, maxDatagramLen)
	for {
		n, _, from, err := e.pktCon.ReadFrom(buf)
		if err != nil {
			select {
			case e.errs <- err:
			case <-e.done:
			}
			close(e.datagrams)
			return
		}
		udpFrom, ok := from.(*net.UDPAddr)
		if !ok || !udpFrom.IP.Equal(e.remote.IP) || udpFrom.Port != e.remote.Port {
			continue // not our connected peer, drop like a kernel connect(2) would
		}
		cp := make([]byte, n)
		copy(cp, buf[:n])
		select {
		case e.datagrams <- Datagram{Data: cp, At: time.Now()}:
		case <-e.done:
			return
		}
	}
}

func (e *UDP6Endpoint) Send(data []byte) error {
	_, err := e.pktCon.WriteTo(data, nil, e.remote)
	return err
}

func (e *UDP6Endpoint) Datagrams() <-chan Datagram {
	return e.datagrams
}

func (e *UDP6Endpoint) Errors() <-chan error {
	return e.errs
}

func (e *UDP6Endpoint) RemoteAddr() string {
	return e.remoteStr
}

func (e *UDP6Endpoint) Close() error {
	close(e.done)
	return e.pktCon.Close()
}
