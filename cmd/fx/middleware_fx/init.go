package middleware_fx

import (
	"context"

	"go.uber.org/fx"
	"storefront/internal/config"
	"storefront/pkg/middleware"
)

// Limiters keeps the two per-IP limiters apart in the fx graph.
type Limiters struct {
	Global *middleware.RateLimiter
	Auth   *middleware.RateLimiter
}

var Module = fx.Provide(provideLimiters)

func provideLimiters(lc fx.Lifecycle, cfg *config.Config) Limiters {
	l := Limiters{
		Global: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Auth:   middleware.StrictRateLimiter(),
	}
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go l.Global.Run(stop)
			go l.Auth.Run(stop)
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			return nil
		},
	})
	return l
}
