package coap

import (
	"time"

	"github.com/caarlos0/env/v7"
)

// ClientConfig holds the pieces of a Client's setup that are reasonable
// to override from the environment: the peer to dial and the RFC 7252
// timing constants (spec section 6.4). Loaded with
// github.com/caarlos0/env/v7, the way absmach-magistrala's services load
// their service configs from the environment.
type ClientConfig struct {
	Host          string        `env:"COAP_HOST,required"`
	Port          int           `env:"COAP_PORT" envDefault:"5683"`
	AckTimeout    time.Duration `env:"COAP_ACK_TIMEOUT" envDefault:"2s"`
	MaxRetransmit int           `env:"COAP_MAX_RETRANSMIT" envDefault:"4"`
	RespTimeout   time.Duration `env:"COAP_RESP_TIMEOUT" envDefault:"30s"`
}

// LoadClientConfig reads a ClientConfig from the process environment.
// COAP_HOST is required and has no default; the other fields fall back
// to the defaults in their struct tags when unset.
func LoadClientConfig() (ClientConfig, error) {
	cfg := ClientConfig{}
	if err := env.Parse(&cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}
