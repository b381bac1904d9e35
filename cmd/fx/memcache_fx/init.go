package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	mem "storefront/pkg/memcache"
)

const purgeEvery = 5 * time.Minute

var Module = fx.Provide(provideResetCodes)

func provideResetCodes(lc fx.Lifecycle) mem.ResetCodeStore {
	codes := mem.NewResetCodes()
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				t := time.NewTicker(purgeEvery)
				defer t.Stop()
				for {
					select {
					case <-t.C:
						codes.Purge()
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			return nil
		},
	})
	return codes
}
