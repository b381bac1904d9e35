package payment_method_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var Module = fx.Provide(
	NewPaymentMethodService, NewPaymentMethodRepo, controllers.NewPaymentMethodController)

func NewPaymentMethodService(repo repositories.PaymentMethodRepository) services.PaymentMethodServiceInterface {
	return services.NewPaymentMethodService(repo)
}

func NewPaymentMethodRepo(db *gorm.DB) repositories.PaymentMethodRepository {
	return repositories.NewPaymentMethodRepository(db)
}
