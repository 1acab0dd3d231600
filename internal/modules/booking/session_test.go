package booking

import (
	"errors"
	"testing"
	"time"

	"tourbooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_Defaults(t *testing.T) {
	store := NewSessionStore()

	sel := store.Selection(1)
	assert.Nil(t, sel.SelectedDate)
	assert.Equal(t, domain.TravelerCounts{Adults: 2}, sel.Travelers)
}

func TestSessionStore_UpdateDateAndTravelers(t *testing.T) {
	store := NewSessionStore()
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	store.UpdateDate(7, date)
	assert.NoError(t, store.UpdateTravelers(7, domain.TravelerCounts{Adults: 3, Children: 1}))

	sel := store.Selection(7)
	assert.True(t, sel.SelectedDate.Equal(date))
	assert.Equal(t, 3, sel.Travelers.Adults)

	// selections are copies; mutating one does not leak back
	*sel.SelectedDate = sel.SelectedDate.AddDate(0, 0, 5)
	again := store.Selection(7)
	assert.True(t, again.SelectedDate.Equal(date))
}

func TestSessionStore_UpdateTravelersValidates(t *testing.T) {
	store := NewSessionStore()

	err := store.UpdateTravelers(1, domain.TravelerCounts{Adults: 1})
	assert.True(t, errors.Is(err, ErrValidation))

	err = store.UpdateTravelers(1, domain.TravelerCounts{Adults: 2, Children: -1})
	assert.True(t, errors.Is(err, ErrValidation))

	// failed updates leave the defaults in place
	assert.Equal(t, domain.TravelerCounts{Adults: 2}, store.Selection(1).Travelers)
}

func TestSessionStore_TempActivitiesAtMostOnce(t *testing.T) {
	store := NewSessionStore()
	store.SetTempActivities(1, 42, []string{"paragliding"})

	acts, ok := store.ConsumeTempActivities(1, 42)
	assert.True(t, ok)
	assert.Equal(t, []string{"paragliding"}, acts)

	// second consume is a miss
	_, ok = store.ConsumeTempActivities(1, 42)
	assert.False(t, ok)
}

func TestSessionStore_TempActivitiesTourMismatch(t *testing.T) {
	store := NewSessionStore()
	store.SetTempActivities(1, 42, []string{"horse-riding"})

	// wrong tour misses and leaves the slot alone
	_, ok := store.ConsumeTempActivities(1, 99)
	assert.False(t, ok)

	acts, ok := store.ConsumeTempActivities(1, 42)
	assert.True(t, ok)
	assert.Equal(t, []string{"horse-riding"}, acts)
}

func TestSessionStore_Reset(t *testing.T) {
	store := NewSessionStore()
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	store.UpdateDate(5, date)
	_ = store.UpdateTravelers(5, domain.TravelerCounts{Adults: 4})

	store.Reset(5)

	sel := store.Selection(5)
	assert.Nil(t, sel.SelectedDate)
	assert.Equal(t, domain.TravelerCounts{Adults: 2}, sel.Travelers)
}
