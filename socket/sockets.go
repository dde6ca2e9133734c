// Package sckt provides the datagram transport glue the coap package
// consumes through its DatagramEndpoint interface: a connected IPv6 UDP
// socket, non-blocking from the caller's perspective because all
// reading happens on a background pump goroutine that feeds a channel.
package sckt

import "time"

// Datagram is one packet read off the wire. It mirrors coap.Datagram so
// this package doesn't need to import coap just for the shape.
type Datagram struct {
	Data []byte
	At   time.Time
}
