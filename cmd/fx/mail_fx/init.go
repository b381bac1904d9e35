package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"storefront/internal/config"
	"storefront/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log *zap.Logger) (services.IMailService, error) {
	mailService, err := services.NewMailService(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Info("mail transport ready", zap.String("provider", cfg.Mail.Provider))
	return mailService, nil
}
