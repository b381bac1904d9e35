package account_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/config"
	"storefront/internal/repositories"
	"storefront/internal/services"
	mem "storefront/pkg/memcache"
	"storefront/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideAccountService, provideAccountRepo, provideJWTManager, controllers.NewAccountController),
	fx.Invoke(seedAdmin),
)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	subRepo repositories.SubscriptionRepository,
	jwt *utils.JWTManager,
	resetCodes mem.ResetCodeStore,
	mailService services.IMailService,
	cfg *config.Config,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, subRepo, jwt, resetCodes, mailService, cfg, log)
}

func seedAdmin(lc fx.Lifecycle, accounts services.AccountServiceInterface) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return accounts.SeedAdmin(ctx)
		},
	})
}
