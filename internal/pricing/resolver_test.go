package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/kursus/internal/geoip"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type geoStub struct {
	country string
	err     error
	calls   int
}

func (g *geoStub) Country(ctx context.Context, addr string) (string, error) {
	g.calls++
	return g.country, g.err
}

func newTestResolver(geo geoip.Lookup) *Resolver {
	return NewResolver(Params{Geo: geo, Log: zap.NewNop()})
}

func TestResolveExplicitRegionSkipsLookup(t *testing.T) {
	geo := &geoStub{country: "CN"}
	r := newTestResolver(geo)

	region, profile, err := r.Resolve(context.Background(), "India", "1.2.3.4")

	assert.NoError(t, err)
	assert.Equal(t, RegionIndia, region)
	assert.Equal(t, ProfileFor(RegionIndia), profile)
	assert.Zero(t, geo.calls)
}

func TestResolveExplicitUnknownRegionGetsDefaultProfile(t *testing.T) {
	r := newTestResolver(&geoStub{})

	region, profile, err := r.Resolve(context.Background(), "Atlantis", "1.2.3.4")

	assert.NoError(t, err)
	assert.Equal(t, Region("Atlantis"), region)
	assert.Equal(t, ProfileFor(RegionOther), profile)
}

func TestResolveMapsCountryToRegion(t *testing.T) {
	r := newTestResolver(&geoStub{country: "US"})

	region, profile, err := r.Resolve(context.Background(), "", "8.8.8.8")

	assert.NoError(t, err)
	assert.Equal(t, RegionUSA, region)
	assert.Equal(t, Profile{Multiplier: 1.5, Currency: "USD"}, profile)
}

func TestResolveUnmappedCountryFallsBackToOther(t *testing.T) {
	r := newTestResolver(&geoStub{country: "BR"})

	region, profile, err := r.Resolve(context.Background(), "", "200.1.2.3")

	assert.NoError(t, err)
	assert.Equal(t, RegionOther, region)
	assert.Equal(t, ProfileFor(RegionOther), profile)
}

func TestResolveBlockedCountryFailsClosed(t *testing.T) {
	for _, code := range []string{"CN", "KP", "IR"} {
		r := newTestResolver(&geoStub{country: code})

		region, profile, err := r.Resolve(context.Background(), "", "1.2.3.4")

		assert.ErrorIs(t, err, ErrAccessDenied, "country %s", code)
		assert.Empty(t, region)
		assert.Equal(t, Profile{}, profile)
	}
}

func TestResolveLookupErrorFailsOpen(t *testing.T) {
	r := newTestResolver(&geoStub{err: errors.New("reader corrupt")})

	region, profile, err := r.Resolve(context.Background(), "", "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, RegionOther, region)
	assert.Equal(t, ProfileFor(RegionOther), profile)
}

func TestResolveNoCountryFailsOpen(t *testing.T) {
	r := newTestResolver(&geoStub{err: geoip.ErrNoCountry})

	region, _, err := r.Resolve(context.Background(), "", "192.168.1.1")

	assert.NoError(t, err)
	assert.Equal(t, RegionOther, region)
}

func TestLocationContextRoundTrip(t *testing.T) {
	loc := Location{Region: RegionUK, Profile: ProfileFor(RegionUK)}
	ctx := WithLocation(context.Background(), loc)

	assert.Equal(t, loc, FromContext(ctx))
	assert.Equal(t, DefaultLocation(), FromContext(context.Background()))
}
