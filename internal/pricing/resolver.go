package pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/kursus/internal/geoip"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrAccessDenied is returned when the caller's country is blocklisted.
// It is the only resolution outcome that rejects a request; every other
// failure degrades to the Other region.
var ErrAccessDenied = errors.New("access_denied")

const lookupTimeout = 500 * time.Millisecond

type Params struct {
	fx.In

	Geo geoip.Lookup
	Log *zap.Logger
}

// Resolver determines the caller's region from an explicit value or the
// source address.
type Resolver struct {
	geo geoip.Lookup
	log *zap.Logger
}

func NewResolver(p Params) *Resolver {
	return &Resolver{
		geo: p.Geo,
		log: p.Log.Named("pricing.resolver"),
	}
}

// Resolve picks the caller's region and pricing profile.
//
// An explicit region wins verbatim; unrecognized values degrade to the Other
// profile at lookup time. Without an explicit region the source address is
// geolocated: a blocklisted country fails closed with ErrAccessDenied, any
// lookup failure or timeout fails open to Other.
func (r *Resolver) Resolve(ctx context.Context, explicitRegion, sourceAddr string) (Region, Profile, error) {
	if region := strings.TrimSpace(explicitRegion); region != "" {
		resolved := Region(region)
		return resolved, ProfileFor(resolved), nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	country, err := r.geo.Country(lookupCtx, sourceAddr)
	if err != nil {
		if !errors.Is(err, geoip.ErrNoCountry) {
			r.log.Debug("geoip lookup failed, using default region",
				zap.String("addr", sourceAddr),
				zap.Error(err),
			)
		}
		return RegionOther, ProfileFor(RegionOther), nil
	}

	if Blocked(country) {
		return "", Profile{}, ErrAccessDenied
	}

	resolved := RegionForCountry(country)
	return resolved, ProfileFor(resolved), nil
}

// Module provides the region resolver.
var Module = fx.Module("pricing",
	fx.Provide(NewResolver),
)
