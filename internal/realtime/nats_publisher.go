package realtime

import (
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/nats-io/nats.go"
)

// NatsPublisherInterface mirrors realtime events to a NATS subject so other
// backend services can consume payment activity without a websocket client.
type NatsPublisherInterface interface {
	Publish(event string, payload interface{}) error
	Close()
}

type NatsPublisher struct {
	nc      *nats.Conn
	subject string
	logger  providers.Logger
}

func NewNatsPublisher(conf *structures.Config, logger providers.Logger) (NatsPublisherInterface, error) {
	if !conf.Realtime.Nats.Enabled {
		logger.Infof(providers.TypeApp, "NATS publishing disabled")
		return &noopPublisher{}, nil
	}

	nc, err := nats.Connect(conf.Realtime.Nats.URL)
	if err != nil {
		return nil, err
	}

	logger.Infof(providers.TypeApp, "Publishing realtime events to NATS subject %q", conf.Realtime.Nats.Subject)
	return &NatsPublisher{
		nc:      nc,
		subject: conf.Realtime.Nats.Subject,
		logger:  logger,
	}, nil
}

func (p *NatsPublisher) Publish(event string, payload interface{}) error {
	data, err := encodeMessage(event, payload)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

func (p *NatsPublisher) Close() {
	p.nc.Close()
}

type noopPublisher struct{}

func (n *noopPublisher) Publish(_ string, _ interface{}) error { return nil }
func (n *noopPublisher) Close()                                {}
