package pricing

import (
	"testing"

	"tourbooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testTour() *domain.Tour {
	return &domain.Tour{
		BasePrice: 100,
		Activities: []domain.OfferedActivity{
			{ActivityTypeID: "paragliding", NameSnapshot: "Paragliding", PriceIncrement: 120},
			{ActivityTypeID: "horse-riding", NameSnapshot: "Horse riding", PriceIncrement: 40},
		},
	}
}

func TestPayingPeople_InfantsFree(t *testing.T) {
	assert.Equal(t, 2, PayingPeople(domain.TravelerCounts{Adults: 2}))
	assert.Equal(t, 5, PayingPeople(domain.TravelerCounts{Adults: 3, Children: 2, Infants: 4}))
}

func TestActivityCost_UnknownIDsIgnored(t *testing.T) {
	acts := testTour().Activities

	assert.Equal(t, 0.0, ActivityCost(acts, nil))
	assert.Equal(t, 120.0, ActivityCost(acts, []string{"paragliding"}))
	assert.Equal(t, 160.0, ActivityCost(acts, []string{"paragliding", "horse-riding"}))
	assert.Equal(t, 40.0, ActivityCost(acts, []string{"horse-riding", "scuba-diving"}))
}

func TestCarCost_Thresholds(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		paying int
		want   float64
	}{
		{0, 0},
		{3, 0},
		{6, 0},  // exactly one full vehicle
		{7, 50}, // spills into a second vehicle
		{12, 50},
		{13, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CarCost(tc.paying, cfg), "paying=%d", tc.paying)
	}
}

func TestCompute_Breakdown(t *testing.T) {
	tour := testTour()
	cfg := DefaultConfig()

	// 3 paying people, no activities, no surcharge
	q := Compute(tour, domain.TravelerCounts{Adults: 2, Children: 1}, nil, cfg)
	assert.Equal(t, 3, q.PayingPeople)
	assert.Equal(t, 0.0, q.ActivityCost)
	assert.Equal(t, 0.0, q.CarCost)
	assert.Equal(t, 300.0, q.TotalPrice)

	// infants do not change the total
	withInfants := Compute(tour, domain.TravelerCounts{Adults: 2, Children: 1, Infants: 3}, nil, cfg)
	assert.Equal(t, q.TotalPrice, withInfants.TotalPrice)

	// 7 paying people, both activities, one extra vehicle
	q = Compute(tour, domain.TravelerCounts{Adults: 5, Children: 2}, []string{"paragliding", "horse-riding"}, cfg)
	assert.Equal(t, 160.0, q.ActivityCost)
	assert.Equal(t, 50.0, q.CarCost)
	assert.Equal(t, 700.0+160.0+50.0, q.TotalPrice)
}

func TestCompute_MonotonicInPayingPeople(t *testing.T) {
	tour := testTour()
	cfg := DefaultConfig()

	prev := -1.0
	for adults := 2; adults <= 15; adults++ {
		total := TotalPrice(tour, domain.TravelerCounts{Adults: adults}, nil, cfg)
		assert.Greater(t, total, prev, "adults=%d", adults)
		prev = total
	}
}
