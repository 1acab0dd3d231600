package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbooking/internal/domain"
	"tourbooking/internal/modules/booking"
	"tourbooking/internal/pkg/pricing"

	"gorm.io/gorm"
)

// Service reconciles the shared booking session with the persisted cart
// line items. Shared date/travelers implicitly affect every item's
// effective price, but persisted totals are only rewritten when an item
// is explicitly edited or checked out; reads reprice lazily.
type Service struct {
	carts    CartRepository
	tours    TourReader
	sessions SessionReader
	cfg      pricing.Config
	now      func() time.Time
}

func NewService(carts CartRepository, tours TourReader, sessions SessionReader, cfg pricing.Config) *Service {
	return &Service{
		carts:    carts,
		tours:    tours,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Service) loadBookableTour(ctx context.Context, tourID int64) (*domain.Tour, error) {
	tour, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	if tour.Status != domain.TourActive {
		return nil, ErrTourNotBookable
	}
	return tour, nil
}

func (s *Service) buildItem(userID int64, tour *domain.Tour, sel domain.BookingSelection) *domain.CartItem {
	quote := pricing.Compute(tour, sel.Travelers, sel.SelectedActivities, s.cfg)
	res := booking.Evaluate(sel, s.now())

	status := domain.CartItemIncomplete
	if res.IsComplete {
		status = domain.CartItemReady
	}

	activities := sel.SelectedActivities
	if activities == nil {
		activities = []string{}
	}

	return &domain.CartItem{
		UserID:                 userID,
		TourID:                 tour.ID,
		TourTitle:              []string(tour.Title),
		TourBasePrice:          tour.BasePrice,
		TourImages:             []string(tour.Images),
		SelectedDate:           sel.SelectedDate,
		Travelers:              sel.Travelers,
		SelectedActivities:     activities,
		TotalPrice:             quote.TotalPrice,
		ActivityPriceIncrement: quote.ActivityCost,
		CarCost:                quote.CarCost,
		Status:                 status,
		IsComplete:             res.IsComplete,
	}
}

// AddBooking is the strict "book now" path: the shared session must
// form a complete selection or nothing is persisted.
func (s *Service) AddBooking(ctx context.Context, userID, tourID int64, activities []string) (*domain.CartItem, error) {
	tour, err := s.loadBookableTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	sel := s.sessions.Selection(userID)
	sel.SelectedActivities = activities
	if err := booking.ValidateStrict(sel, s.now()); err != nil {
		return nil, err
	}

	item := s.buildItem(userID, tour, sel)
	if err := s.carts.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddPartialBooking always succeeds so a tour can be bookmarked with
// whatever details exist. Completeness is computed, not assumed: a
// session that already has full details yields a ready item.
func (s *Service) AddPartialBooking(ctx context.Context, userID, tourID int64, activities []string) (*domain.CartItem, error) {
	tour, err := s.loadBookableTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	sel := s.sessions.Selection(userID)
	sel.SelectedActivities = activities

	item := s.buildItem(userID, tour, sel)
	if err := s.carts.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem merges a partial patch, then recomputes the price and the
// completeness flags from scratch. The item's tour is immutable.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID int64, patch UpdateCartItemRequest) (*domain.CartItem, error) {
	if patch.TourID != nil {
		return nil, ErrTourImmutable
	}

	item, err := s.carts.GetByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.Status == domain.CartItemBooked {
		return nil, ErrItemAlreadyBooked
	}

	if patch.SelectedDate != nil {
		d := *patch.SelectedDate
		item.SelectedDate = &d
	}
	if patch.Travelers != nil {
		if patch.Travelers.Adults < 2 || patch.Travelers.Children < 0 || patch.Travelers.Infants < 0 {
			return nil, fmt.Errorf("%w: invalid traveler counts", ErrValidation)
		}
		item.Travelers = *patch.Travelers
	}
	if patch.SelectedActivities != nil {
		item.SelectedActivities = append([]string(nil), (*patch.SelectedActivities)...)
	}

	tour, err := s.tours.GetByID(ctx, item.TourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	s.reprice(item, tour)
	item.UpdatedAt = s.now()

	if err := s.carts.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// reprice recomputes totals and completeness from the item's own
// snapshot selection; persisted prices are never trusted as inputs.
func (s *Service) reprice(item *domain.CartItem, tour *domain.Tour) {
	quote := pricing.Compute(tour, item.Travelers, item.SelectedActivities, s.cfg)
	item.TotalPrice = quote.TotalPrice
	item.ActivityPriceIncrement = quote.ActivityCost
	item.CarCost = quote.CarCost

	res := booking.Evaluate(domain.BookingSelection{
		SelectedDate:       item.SelectedDate,
		Travelers:          item.Travelers,
		SelectedActivities: item.SelectedActivities,
	}, s.now())
	item.IsComplete = res.IsComplete
	if res.IsComplete {
		item.Status = domain.CartItemReady
	} else {
		item.Status = domain.CartItemIncomplete
	}
}

// Remove fails soft: cart UIs show inline errors, they don't crash.
func (s *Service) Remove(ctx context.Context, userID, itemID int64) RemoveResult {
	removed, err := s.carts.Delete(ctx, userID, itemID)
	if err != nil {
		return RemoveResult{Success: false, Message: "failed to remove item from cart"}
	}
	if !removed {
		return RemoveResult{Success: false, Message: "item not found in cart"}
	}
	return RemoveResult{Success: true, Message: "item removed from cart"}
}

// List returns the persisted items plus an effective total repriced
// against the current shared session state.
func (s *Service) List(ctx context.Context, userID int64) ([]ItemView, error) {
	items, err := s.carts.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	shared := s.sessions.Selection(userID)

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{CartItem: item, EffectiveTotalPrice: item.TotalPrice}
		if tour, err := s.tours.GetByID(ctx, item.TourID); err == nil {
			view.EffectiveTotalPrice = pricing.TotalPrice(tour, shared.Travelers, item.SelectedActivities, s.cfg)
		}
		view.FormAction = ResolveAction(true,
			FormSnapshot{Date: item.SelectedDate, Travelers: item.Travelers, Activities: item.SelectedActivities},
			FormSnapshot{Date: shared.SelectedDate, Travelers: shared.Travelers, Activities: item.SelectedActivities},
		)
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) Reorder(ctx context.Context, userID int64, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: empty order", ErrValidation)
	}
	return s.carts.UpdateSortOrder(ctx, userID, orderedIDs)
}
