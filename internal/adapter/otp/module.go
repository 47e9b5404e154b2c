package otp

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/veilmart/veilmart/internal/config"
)

// Module exposes OTP client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.OTPServiceAddress, p.Logger)
}
