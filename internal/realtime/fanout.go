package realtime

import (
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/services"
)

// Fanout delivers each broadcast to the websocket hub and mirrors it to NATS.
// Publish failures are logged once and swallowed; realtime delivery is
// best-effort by contract.
type Fanout struct {
	hub       *Hub
	publisher NatsPublisherInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
}

func NewFanout(
	hub *Hub,
	publisher NatsPublisherInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) services.NotifierInterface {
	return &Fanout{
		hub:       hub,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

func (f *Fanout) BroadcastAll(event string, payload interface{}) {
	f.hub.BroadcastAll(event, payload)
	f.mirror(event, payload)
}

func (f *Fanout) BroadcastRoom(room, event string, payload interface{}) {
	f.hub.BroadcastRoom(room, event, payload)
	f.mirror(event, payload)
}

func (f *Fanout) mirror(event string, payload interface{}) {
	f.metrics.IncBroadcasts(event)
	if err := f.publisher.Publish(event, payload); err != nil {
		f.logger.Errorf(providers.TypeWs, "NATS publish of %s failed: %s", event, err)
	}
}
