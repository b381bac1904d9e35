package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"storefront/cmd/fx/account_fx"
	"storefront/cmd/fx/coupon_fx"
	"storefront/cmd/fx/dashboard"
	"storefront/cmd/fx/db_fx"
	"storefront/cmd/fx/mail_fx"
	"storefront/cmd/fx/memcache_fx"
	"storefront/cmd/fx/middleware_fx"
	"storefront/cmd/fx/order_fx"
	"storefront/cmd/fx/payment_method_fx"
	"storefront/cmd/fx/payment_service_fx"
	"storefront/cmd/fx/plan_fx"
	"storefront/cmd/fx/storage_fx"
	"storefront/cmd/fx/subscription_fx"
	"storefront/internal/config"
	"storefront/pkg/logger"
	"storefront/pkg/utils"
)

func main() {
	app := fx.New(
		fx.Provide(config.Load, provideLogger),
		fx.Invoke(utils.RegisterValidators),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		storage_fx.Module,
		middleware_fx.Module,
		account_fx.Module,
		subscription_fx.Module,
		plan_fx.Module,
		coupon_fx.Module,
		payment_method_fx.Module,
		order_fx.Module,
		payment_service_fx.Module,
		dashboard.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
