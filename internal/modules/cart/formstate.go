package cart

import (
	"time"

	"tourbooking/internal/domain"
)

// FormAction drives the booking form's primary button when it shows a
// tour that may already be in the cart.
type FormAction string

const (
	ActionAdd    FormAction = "add"
	ActionUpdate FormAction = "update"
	ActionView   FormAction = "view"
)

// FormSnapshot captures date/travelers/activities at form-mount time so
// later edits can be detected against it.
type FormSnapshot struct {
	Date       *time.Time
	Travelers  domain.TravelerCounts
	Activities []string
}

// Dirty reports whether the current form state differs from the mount
// snapshot: dates by timestamp, traveler counts fieldwise, activity
// sets by symmetric difference (order never matters).
func Dirty(snap, cur FormSnapshot) bool {
	if !sameDate(snap.Date, cur.Date) {
		return true
	}
	if snap.Travelers != cur.Travelers {
		return true
	}
	return !sameSet(snap.Activities, cur.Activities)
}

// ResolveAction picks the form button: items not yet in the cart can
// only be added; in-cart items flip between "view" and "update" based
// on whether the user touched anything since mount.
func ResolveAction(inCart bool, snap, cur FormSnapshot) FormAction {
	if !inCart {
		return ActionAdd
	}
	if Dirty(snap, cur) {
		return ActionUpdate
	}
	return ActionView
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameSet(a, b []string) bool {
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}
