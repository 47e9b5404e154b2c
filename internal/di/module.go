package di

import (
	"go.uber.org/fx"

	"github.com/veilmart/veilmart/internal/adapter/otp"
	"github.com/veilmart/veilmart/internal/app"
	"github.com/veilmart/veilmart/internal/config"
	"github.com/veilmart/veilmart/internal/logger"
	"github.com/veilmart/veilmart/internal/pkg/auth"
	"github.com/veilmart/veilmart/internal/server/http/handlers"
	"github.com/veilmart/veilmart/internal/server/http/router"
	"github.com/veilmart/veilmart/internal/storage/postgres"
	"github.com/veilmart/veilmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		otp.Module,
		usecase.Module,
		fx.Provide(func(client otp.Client) usecase.OTPVerifier { return client }),
		fx.Provide(func(facade *app.MarketFacade) handlers.MarketFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
