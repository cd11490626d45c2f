package geoip

import (
	"context"

	"github.com/smallbiznis/kursus/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Provide(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (Lookup, error) {
	if cfg.GeoIPDatabase == "" {
		log.Warn("geoip database not configured, all lookups resolve to default region")
		return Noop{}, nil
	}

	mm, err := OpenMaxMind(cfg.GeoIPDatabase)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			return mm.Close()
		},
	})

	log.Info("geoip database loaded", zap.String("path", cfg.GeoIPDatabase))
	return mm, nil
}

// Module provides the IP geolocation collaborator.
var Module = fx.Module("geoip",
	fx.Provide(Provide),
)
