package services

import (
	"context"
	"sync"

	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/roylee0704/gron"
)

type RefresherInterface interface {
	Init()
	Stop()
}

// Refresher periodically recomputes the stats snapshot and re-broadcasts it
// to the dashboard room, so dashboards converge even when a statsUpdate was
// dropped or no payments are being created.
type Refresher struct {
	conf     *structures.Config
	logger   providers.Logger
	payments PaymentServiceInterface
	notifier NotifierInterface
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func NewRefresher(
	conf *structures.Config,
	logger providers.Logger,
	payments PaymentServiceInterface,
	notifier NotifierInterface,
) RefresherInterface {
	return &Refresher{
		conf:     conf,
		logger:   logger,
		payments: payments,
		notifier: notifier,
	}
}

func (r *Refresher) Init() {
	interval := r.conf.Realtime.StatsRefreshInterval
	if interval <= 0 {
		r.logger.Infof(providers.TypeApp, "Stats refresher disabled")
		return
	}

	r.cron = gron.New()
	r.cron.AddFunc(gron.Every(interval), func() {
		r.opsMu.Lock()
		defer r.opsMu.Unlock()

		snapshot, err := r.payments.GetStats(context.Background())
		if err != nil {
			r.logger.Errorf(providers.TypeApp, "Stats refresh failed: %s", err)
			return
		}
		r.notifier.BroadcastRoom(DashboardRoom, EventStatsUpdate, snapshot)
	})
	r.cron.Start()
	r.logger.Infof(providers.TypeApp, "Stats refresher started, interval %s", interval)
}

func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}
