package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/veilmart/veilmart/internal/config"
	"github.com/veilmart/veilmart/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.TxManager { return s },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.ShopRepository { return s.Shops() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.MilestoneRepository { return s.Milestones() },
		func(s *Storage) repository.TaskRepository { return s.Tasks() },
		func(s *Storage) repository.WalletRepository { return s.Wallets() },
		func(s *Storage) repository.TransactionRepository { return s.Transactions() },
		func(s *Storage) repository.MembershipRepository { return s.Memberships() },
		func(s *Storage) repository.SubscriptionRepository { return s.Subscriptions() },
		func(s *Storage) repository.UpdateRequestRepository { return s.UpdateRequests() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
