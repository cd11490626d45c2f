package pricing

import "math"

// CurrencyInfo carries the conversion rate from the reference currency (USD)
// and the display symbol.
type CurrencyInfo struct {
	Rate   float64
	Symbol string
}

var currencies = map[string]CurrencyInfo{
	"USD": {Rate: 1, Symbol: "$"},
	"INR": {Rate: 83.12, Symbol: "₹"},
	"EUR": {Rate: 0.85, Symbol: "€"},
	"GBP": {Rate: 0.79, Symbol: "£"},
	"CAD": {Rate: 1.36, Symbol: "C$"},
	"AUD": {Rate: 1.52, Symbol: "A$"},
}

// CurrencyFor returns conversion info for a currency code. Unknown codes fall
// back to the reference currency so pricing never blocks a request.
func CurrencyFor(code string) CurrencyInfo {
	if info, ok := currencies[code]; ok {
		return info
	}
	return CurrencyInfo{Rate: 1, Symbol: "$"}
}

// LocalizedPrice is the displayed price after multiplier and conversion.
// It is computed per response and never persisted.
type LocalizedPrice struct {
	OriginalPrice  float64 `json:"original_price"`
	LocalizedPrice float64 `json:"localized_price"`
	Currency       string  `json:"currency"`
	Symbol         string  `json:"symbol"`
	Multiplier     float64 `json:"multiplier"`
}

// Localize converts a base price (reference currency) into the profile's
// display price. The result is rounded half away from zero to 2 decimals.
func Localize(basePrice float64, profile Profile) LocalizedPrice {
	info := CurrencyFor(profile.Currency)
	local := basePrice * profile.Multiplier * info.Rate

	return LocalizedPrice{
		OriginalPrice:  basePrice,
		LocalizedPrice: math.Round(local*100) / 100,
		Currency:       profile.Currency,
		Symbol:         info.Symbol,
		Multiplier:     profile.Multiplier,
	}
}
