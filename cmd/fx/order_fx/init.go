package order_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var Module = fx.Provide(provideOrderRepo, provideOrderService, controllers.NewOrderController)

func provideOrderRepo(db *gorm.DB) repositories.OrderRepository {
	return repositories.NewOrderRepository(db)
}

func provideOrderService(
	orderRepo repositories.OrderRepository,
	planRepo repositories.IPlanRepository,
	couponRepo repositories.CouponRepository,
	mailService services.IMailService,
	log *zap.Logger,
) services.OrderServiceInterface {
	return services.NewOrderService(orderRepo, planRepo, couponRepo, mailService, log)
}
