package pricing

// Region is a coarse geographic bucket used to select a pricing profile.
type Region string

const (
	RegionIndia     Region = "India"
	RegionUSA       Region = "USA"
	RegionUK        Region = "UK"
	RegionCanada    Region = "Canada"
	RegionAustralia Region = "Australia"
	RegionGermany   Region = "Germany"
	RegionFrance    Region = "France"
	RegionOther     Region = "Other"
)

// Profile is the multiplier and currency applied to base prices for a region.
type Profile struct {
	Multiplier float64 `json:"multiplier"`
	Currency   string  `json:"currency"`
}

var profiles = map[Region]Profile{
	RegionIndia:     {Multiplier: 0.3, Currency: "INR"},
	RegionUSA:       {Multiplier: 1.5, Currency: "USD"},
	RegionUK:        {Multiplier: 1.2, Currency: "GBP"},
	RegionCanada:    {Multiplier: 1.1, Currency: "CAD"},
	RegionAustralia: {Multiplier: 1.15, Currency: "AUD"},
	RegionGermany:   {Multiplier: 1.1, Currency: "EUR"},
	RegionFrance:    {Multiplier: 1.1, Currency: "EUR"},
	RegionOther:     {Multiplier: 1, Currency: "USD"},
}

var countryRegions = map[string]Region{
	"IN": RegionIndia,
	"US": RegionUSA,
	"GB": RegionUK,
	"CA": RegionCanada,
	"AU": RegionAustralia,
	"DE": RegionGermany,
	"FR": RegionFrance,
}

var blockedCountries = map[string]struct{}{
	"CN": {},
	"KP": {},
	"IR": {},
}

// ProfileFor returns the pricing profile for a region. Unknown regions fall
// back to the Other profile.
func ProfileFor(region Region) Profile {
	if profile, ok := profiles[region]; ok {
		return profile
	}
	return profiles[RegionOther]
}

// RegionForCountry maps an ISO country code to a region, defaulting to Other.
func RegionForCountry(code string) Region {
	if region, ok := countryRegions[code]; ok {
		return region
	}
	return RegionOther
}

// Blocked reports whether requests from the country are rejected outright.
func Blocked(code string) bool {
	_, ok := blockedCountries[code]
	return ok
}
