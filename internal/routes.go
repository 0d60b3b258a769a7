package internal

import (
	"net/http"

	"github.com/PandeyAnukrati/payment-app/internal/controllers"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
)

func InitRoutes(
	payments *controllers.PaymentController,
	auth *controllers.AuthController,
	authProvider providers.AuthProviderInterface,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/api/auth/login", http.HandlerFunc(auth.Login))

	routers.Post("/api/payments", authProvider.Middleware(http.HandlerFunc(payments.Create)))
	routers.Get("/api/payments", authProvider.Middleware(http.HandlerFunc(payments.List)))
	routers.Get("/api/payments/stats", authProvider.Middleware(http.HandlerFunc(payments.GetStats)))
	routers.Get("/api/payments/", authProvider.Middleware(http.HandlerFunc(payments.GetByID)))

	return routers
}
