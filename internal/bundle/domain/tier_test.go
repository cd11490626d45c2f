package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(t *testing.T, prices ...float64) []coursedomain.Course {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	courses := make([]coursedomain.Course, 0, len(prices))
	for _, price := range prices {
		courses = append(courses, coursedomain.Course{
			ID:    node.Generate(),
			Price: price,
		})
	}
	return courses
}

func TestTierForPriceBoundaries(t *testing.T) {
	cases := []struct {
		price float64
		want  Tier
	}{
		{0, TierBasic},
		{10, TierBasic},
		{25, TierBasic}, // boundary tie stays in the lower tier
		{25.01, TierPremium},
		{50, TierPremium},
		{75, TierPremium}, // boundary tie stays in the lower tier
		{75.01, TierExclusive},
		{9999.99, TierExclusive},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TierForPrice(tc.price), "price %v", tc.price)
	}
}

func TestPartitionIsExact(t *testing.T) {
	courses := catalog(t, 5, 25, 25.5, 60, 75, 75.5, 120, 10000)

	tiers := Partition(courses)

	total := 0
	seen := make(map[snowflake.ID]struct{})
	for i, members := range tiers {
		for _, member := range members {
			_, dup := seen[member.ID]
			assert.False(t, dup, "course assigned to more than one tier")
			seen[member.ID] = struct{}{}
			assert.Equal(t, Tier(i), TierForPrice(member.Price))
		}
		total += len(members)
	}
	assert.Equal(t, len(courses), total)
}

func TestSynthesizeAllThreeTiers(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	creatorID := node.Generate()

	courses := catalog(t, 10, 20, 30, 50, 80, 90)

	bundles := Synthesize(creatorID, courses)
	require.Len(t, bundles, 3)

	assert.Equal(t, "Basic Pack", bundles[0].Title)
	assert.Equal(t, 10.0, bundles[0].Discount)
	assert.InDelta(t, 27.0, bundles[0].TotalPrice, 1e-9) // (10+20) * 0.9
	assert.Len(t, bundles[0].CourseIDs, 2)

	assert.Equal(t, "Premium Pack", bundles[1].Title)
	assert.Equal(t, 15.0, bundles[1].Discount)
	assert.InDelta(t, 68.0, bundles[1].TotalPrice, 1e-9) // (30+50) * 0.85

	assert.Equal(t, "Exclusive Pack", bundles[2].Title)
	assert.Equal(t, 20.0, bundles[2].Discount)
	assert.InDelta(t, 136.0, bundles[2].TotalPrice, 1e-9) // (80+90) * 0.8

	for _, bundle := range bundles {
		assert.Equal(t, creatorID, bundle.CreatorID)
		assert.Zero(t, bundle.ID, "synthesis must not assign IDs")
	}
}

func TestSynthesizeSkipsThinTiers(t *testing.T) {
	// One basic and one exclusive course: no tier reaches two members.
	bundles := Synthesize(1, catalog(t, 10, 100))
	assert.Empty(t, bundles)

	// Exactly two premium members still produce a bundle.
	bundles = Synthesize(1, catalog(t, 30, 40, 100))
	if assert.Len(t, bundles, 1) {
		assert.Equal(t, "Premium Pack", bundles[0].Title)
		assert.InDelta(t, 59.5, bundles[0].TotalPrice, 1e-9) // (30+40) * 0.85
	}
}

func TestSynthesizeEmptyCatalog(t *testing.T) {
	assert.Empty(t, Synthesize(1, nil))
}

func TestValidTitle(t *testing.T) {
	assert.True(t, ValidTitle("Basic Pack"))
	assert.True(t, ValidTitle("Premium Pack"))
	assert.True(t, ValidTitle("Exclusive Pack"))
	assert.False(t, ValidTitle("Mega Pack"))
	assert.False(t, ValidTitle(""))
}
