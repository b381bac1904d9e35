package coupon_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"storefront/internal/api/controllers"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var Module = fx.Provide(
	provideCouponRepo, provideCouponService, controllers.NewCouponController)

func provideCouponRepo(db *gorm.DB) repositories.CouponRepository {
	return repositories.NewCouponRepository(db)
}

func provideCouponService(couponRepo repositories.CouponRepository, planRepo repositories.IPlanRepository) services.CouponServiceInterface {
	return services.NewCouponService(couponRepo, planRepo)
}
