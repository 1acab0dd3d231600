package booking

import (
	"fmt"
	"strings"
	"time"

	"tourbooking/internal/domain"
)

const minAdults = 2

// Result is the structured outcome of evaluating a booking selection.
// Evaluate never fails; IsComplete is true iff Errors is empty.
type Result struct {
	IsComplete bool     `json:"is_complete"`
	Errors     []string `json:"errors"`
}

// Evaluate checks whether a selection is complete enough to book.
// The date must be strictly in the future: tomorrow at the earliest,
// measured against local midnight (the date picker disables everything
// up to and including today). Activities are never required.
func Evaluate(sel domain.BookingSelection, now time.Time) Result {
	var errs []string

	if sel.SelectedDate == nil {
		errs = append(errs, "travel date is required")
	} else {
		y, m, d := now.Date()
		tomorrow := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		if sel.SelectedDate.Before(tomorrow) {
			errs = append(errs, "travel date must be tomorrow or later")
		}
	}

	if sel.Travelers.Adults < minAdults {
		errs = append(errs, fmt.Sprintf("at least %d adults are required", minAdults))
	}
	if sel.Travelers.Children < 0 || sel.Travelers.Infants < 0 {
		errs = append(errs, "traveler counts cannot be negative")
	}

	return Result{IsComplete: len(errs) == 0, Errors: errs}
}

// ValidateStrict is the book-now entry point: a distinct call site from
// Evaluate so add-to-cart leniency can never leak into checkout.
func ValidateStrict(sel domain.BookingSelection, now time.Time) error {
	res := Evaluate(sel, now)
	if res.IsComplete {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIncompleteBooking, strings.Join(res.Errors, "; "))
}
