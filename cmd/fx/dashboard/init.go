package dashboard

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/config"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService, controllers.NewDashboardController,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(
	dashboardRepo repositories.DashboardRepository,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	subs services.SubscriptionService,
	cfg *config.Config,
	log *zap.Logger,
) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, orderRepo, paymentRepo, subs, cfg.Currency, cfg.Timezone, log)
}
