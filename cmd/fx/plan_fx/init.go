package plan_fx

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
	providePlanRepo, providePlanService, controllers.NewPlanController)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository, storage services.StorageService, cfg *config.Config, log *zap.Logger) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, storage, cfg, log)
}
