package storage_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"storefront/internal/api/controllers"
	"storefront/internal/config"
	"storefront/internal/services"
)

var Module = fx.Provide(
	provideStorage, controllers.NewAssetController)

func provideStorage(cfg *config.Config, log *zap.Logger) services.StorageService {
	log.Info("object storage", zap.String("base_url", cfg.StorageBaseURL), zap.Int64("max_upload_bytes", cfg.MaxUploadBytes))
	return services.NewStorageService(cfg)
}
