// Command coap-client sends a single CoAP request to a server and
// prints the response. It exists to exercise the exchange engine
// against a real IPv6 UDP socket, the way main.go exercised the
// teacher's UDP listener.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/lobaro/coap-client/coap"
	"github.com/lobaro/coap-client/coapmsg"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("exchange failed")
	}
}

func run() error {
	cfg, err := coap.LoadClientConfig()
	if err != nil {
		return err
	}

	method := flag.String("method", "GET", "request method: GET, POST, PUT or DELETE")
	path := flag.String("path", "/", "request URI path")
	confirmable := flag.Bool("con", true, "send a Confirmable request instead of Non-confirmable")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	client, err := coap.NewClient(cfg.Host, cfg.Port, coap.WithTiming(cfg.AckTimeout, cfg.MaxRetransmit, cfg.RespTimeout))
	if err != nil {
		return err
	}
	defer client.Close()

	req := coapmsg.NewMessage()
	req.Code = methodCode(*method)
	req.Type = coapmsg.Confirmable
	if !*confirmable {
		req.Type = coapmsg.NonConfirmable
	}
	req.SetPathString(*path)

	resp, err := client.Exchange(context.Background(), &req)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", resp.Code, resp.Payload)
	return nil
}

func methodCode(method string) coapmsg.COAPCode {
	switch strings.ToUpper(method) {
	case "POST":
		return coapmsg.POST
	case "PUT":
		return coapmsg.PUT
	case "DELETE":
		return coapmsg.DELETE
	default:
		return coapmsg.GET
	}
}
