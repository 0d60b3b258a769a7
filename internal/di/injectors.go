//go:build wireinject
// +build wireinject

package di

import (
	"github.com/PandeyAnukrati/payment-app/internal"
	"github.com/PandeyAnukrati/payment-app/internal/controllers"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/realtime"
	"github.com/PandeyAnukrati/payment-app/internal/services"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewAuthProvider,

		storage.NewClient,
		storage.NewPaymentStore,
		storage.NewUserStore,

		realtime.NewHub,
		wire.Bind(new(providers.RealtimeStats), new(*realtime.Hub)),
		realtime.NewNatsPublisher,
		realtime.NewFanout,

		services.NewPaymentService,
		services.NewUserService,
		services.NewSeeder,
		services.NewRefresher,

		controllers.NewPaymentController,
		controllers.NewAuthController,
		controllers.NewWsController,
		controllers.NewHealthController,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
