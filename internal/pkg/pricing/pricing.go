package pricing

import (
	"math"

	"tourbooking/internal/domain"
)

// Config pins the hidden transport surcharge parameters. One vehicle
// carries VehicleCapacity paying people; every extra vehicle adds
// CarUnitCost to the total. The surcharge is never itemized to clients.
type Config struct {
	VehicleCapacity int
	CarUnitCost     float64
}

func DefaultConfig() Config {
	return Config{VehicleCapacity: 6, CarUnitCost: 50}
}

// Quote is the full price breakdown for one tour selection.
type Quote struct {
	PayingPeople int
	ActivityCost float64
	CarCost      float64
	TotalPrice   float64
}

// PayingPeople counts adults and children. Infants are excluded from
// both pricing and vehicle capacity.
func PayingPeople(t domain.TravelerCounts) int {
	return t.Adults + t.Children
}

// ActivityCost sums price increments over the offered activities whose
// id is selected. Unknown ids contribute 0 and never fail.
func ActivityCost(activities []domain.OfferedActivity, selected []string) float64 {
	if len(activities) == 0 || len(selected) == 0 {
		return 0
	}
	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}
	var sum float64
	for _, a := range activities {
		if chosen[a.ActivityTypeID] {
			sum += a.PriceIncrement
		}
	}
	return sum
}

// CarCost charges one unit per vehicle beyond the first once the paying
// people exceed a single vehicle's capacity.
func CarCost(payingPeople int, cfg Config) float64 {
	if cfg.VehicleCapacity <= 0 || payingPeople <= cfg.VehicleCapacity {
		return 0
	}
	vehicles := int(math.Ceil(float64(payingPeople) / float64(cfg.VehicleCapacity)))
	return float64(vehicles-1) * cfg.CarUnitCost
}

// Compute returns the deterministic breakdown for a tour, traveler counts
// and activity selection. Safe to call repeatedly; no side effects.
func Compute(tour *domain.Tour, travelers domain.TravelerCounts, selected []string, cfg Config) Quote {
	paying := PayingPeople(travelers)
	activity := ActivityCost(tour.Activities, selected)
	car := CarCost(paying, cfg)
	return Quote{
		PayingPeople: paying,
		ActivityCost: activity,
		CarCost:      car,
		TotalPrice:   tour.BasePrice*float64(paying) + activity + car,
	}
}

// TotalPrice is a convenience wrapper over Compute.
func TotalPrice(tour *domain.Tour, travelers domain.TravelerCounts, selected []string, cfg Config) float64 {
	return Compute(tour, travelers, selected, cfg).TotalPrice
}
