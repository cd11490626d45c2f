package domain

import (
	"github.com/bwmarrin/snowflake"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	"gorm.io/datatypes"
)

// Tier is a fixed price bracket used for automatic bundling. Boundaries are
// in reference-currency units and ties belong to the lower tier: prices at
// exactly 25 are Basic, at exactly 75 Premium.
type Tier int

const (
	TierBasic Tier = iota
	TierPremium
	TierExclusive

	NumTiers = 3
)

const (
	basicMaxPrice   = 25
	premiumMaxPrice = 75
)

func (t Tier) Title() string {
	switch t {
	case TierBasic:
		return "Basic Pack"
	case TierPremium:
		return "Premium Pack"
	default:
		return "Exclusive Pack"
	}
}

// Discount is the fixed percentage applied to the tier's price sum.
func (t Tier) Discount() float64 {
	switch t {
	case TierBasic:
		return 10
	case TierPremium:
		return 15
	default:
		return 20
	}
}

// TierForPrice assigns a price to its tier.
func TierForPrice(price float64) Tier {
	switch {
	case price <= basicMaxPrice:
		return TierBasic
	case price <= premiumMaxPrice:
		return TierPremium
	default:
		return TierExclusive
	}
}

// Partition splits a catalog into the three tiers. Every course lands in
// exactly one tier; the union of the tiers is the input.
func Partition(courses []coursedomain.Course) [NumTiers][]coursedomain.Course {
	var tiers [NumTiers][]coursedomain.Course
	for _, course := range courses {
		tier := TierForPrice(course.Price)
		tiers[tier] = append(tiers[tier], course)
	}
	return tiers
}

// Synthesize builds one discounted bundle per tier holding at least two of
// the creator's courses, in tier order. It is a pure computation: bundles
// carry no ID or timestamps and nothing is persisted here. The total is the
// tier's price sum after discount, unrounded; display rounding happens at
// price localization.
func Synthesize(creatorID snowflake.ID, courses []coursedomain.Course) []Bundle {
	tiers := Partition(courses)

	bundles := make([]Bundle, 0, NumTiers)
	for i, members := range tiers {
		if len(members) < 2 {
			continue
		}

		tier := Tier(i)
		sum := 0.0
		ids := make(datatypes.JSONSlice[string], 0, len(members))
		for _, member := range members {
			sum += member.Price
			ids = append(ids, member.ID.String())
		}

		bundles = append(bundles, Bundle{
			Title:      tier.Title(),
			CourseIDs:  ids,
			CreatorID:  creatorID,
			TotalPrice: sum * (1 - tier.Discount()/100),
			Discount:   tier.Discount(),
		})
	}

	return bundles
}
