package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizeIndiaProfile(t *testing.T) {
	got := Localize(100, Profile{Multiplier: 0.3, Currency: "INR"})

	assert.Equal(t, 100.0, got.OriginalPrice)
	assert.Equal(t, 2493.6, got.LocalizedPrice) // 100 * 0.3 * 83.12
	assert.Equal(t, "INR", got.Currency)
	assert.Equal(t, "₹", got.Symbol)
	assert.Equal(t, 0.3, got.Multiplier)
}

func TestLocalizeRoundsToTwoDecimals(t *testing.T) {
	got := Localize(19.99, Profile{Multiplier: 1.1, Currency: "EUR"})

	assert.Equal(t, 18.69, got.LocalizedPrice)
	assert.Equal(t, "€", got.Symbol)
}

func TestLocalizeRoundsHalfAwayFromZero(t *testing.T) {
	// 0.5 * 0.25 = 0.125 exactly in binary; the half must round up.
	got := Localize(0.5, Profile{Multiplier: 0.25, Currency: "USD"})

	assert.Equal(t, 0.13, got.LocalizedPrice)
}

func TestLocalizeUnknownCurrencyFallsBack(t *testing.T) {
	got := Localize(42, Profile{Multiplier: 1, Currency: "XXX"})

	assert.Equal(t, 42.0, got.LocalizedPrice)
	assert.Equal(t, "XXX", got.Currency)
	assert.Equal(t, "$", got.Symbol)
}

func TestLocalizeZeroPrice(t *testing.T) {
	got := Localize(0, Profile{Multiplier: 1.5, Currency: "USD"})

	assert.Equal(t, 0.0, got.LocalizedPrice)
	assert.Equal(t, 0.0, got.OriginalPrice)
}

func TestLocalizeMatchesFormulaForAllRegions(t *testing.T) {
	prices := []float64{0, 0.99, 25, 49.5, 75, 100, 9999.99}

	for region, profile := range profiles {
		for _, price := range prices {
			got := Localize(price, profile)

			expected := math.Round(price*profile.Multiplier*CurrencyFor(profile.Currency).Rate*100) / 100
			assert.Equal(t, expected, got.LocalizedPrice, "region %s price %v", region, price)
			assert.GreaterOrEqual(t, got.LocalizedPrice, 0.0)

			// Pure function: identical inputs produce identical output.
			assert.Equal(t, got, Localize(price, profile))
		}
	}
}

func TestProfileForUnknownRegion(t *testing.T) {
	got := ProfileFor(Region("Atlantis"))

	assert.Equal(t, profiles[RegionOther], got)
}
