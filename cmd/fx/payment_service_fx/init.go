package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var Module = fx.Provide(
	providePaymentRepo, providePaymentService, providePaymentController,
)

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	methodRepo repositories.PaymentMethodRepository,
	storage services.StorageService,
	mailService services.IMailService,
	log *zap.Logger,
) services.PaymentService {
	return services.NewPaymentService(orderRepo, paymentRepo, methodRepo, storage, mailService, log)
}

func providePaymentController(paymentService services.PaymentService, storage services.StorageService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService, storage)
}
