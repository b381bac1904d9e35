package subscription_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

const expireEvery = 10 * time.Minute

var Module = fx.Options(
	fx.Provide(provideSubscriptionRepo, provideSubscriptionService, controllers.NewSubscriptionController),
	fx.Invoke(runExpiry),
)

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideSubscriptionService(repo repositories.SubscriptionRepository, log *zap.Logger) services.SubscriptionService {
	return services.NewSubscriptionService(repo, log)
}

// runExpiry flips ended subscriptions to expired in the background.
func runExpiry(lc fx.Lifecycle, subs services.SubscriptionService, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				t := time.NewTicker(expireEvery)
				defer t.Stop()
				for {
					if _, err := subs.ExpireEnded(ctx); err != nil && ctx.Err() == nil {
						log.Warn("expire subscriptions", zap.Error(err))
					}
					select {
					case <-t.C:
					case <-ctx.Done():
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
