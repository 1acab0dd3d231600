package cart

import (
	"testing"
	"time"

	"tourbooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func snap(date *time.Time, adults int, acts ...string) FormSnapshot {
	return FormSnapshot{
		Date:       date,
		Travelers:  domain.TravelerCounts{Adults: adults},
		Activities: acts,
	}
}

func TestDirty_DateByTimestamp(t *testing.T) {
	d1 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.Add(24 * time.Hour)

	assert.False(t, Dirty(snap(&d1, 2), snap(&d1, 2)))
	assert.True(t, Dirty(snap(&d1, 2), snap(&d2, 2)))
	assert.True(t, Dirty(snap(nil, 2), snap(&d1, 2)))
	assert.False(t, Dirty(snap(nil, 2), snap(nil, 2)))
}

func TestDirty_Travelers(t *testing.T) {
	assert.True(t, Dirty(snap(nil, 2), snap(nil, 3)))
}

func TestDirty_ActivitiesOrderInsensitive(t *testing.T) {
	assert.False(t, Dirty(snap(nil, 2, "a", "b"), snap(nil, 2, "b", "a")))
	assert.True(t, Dirty(snap(nil, 2, "a"), snap(nil, 2, "a", "b")))
	assert.True(t, Dirty(snap(nil, 2, "a", "b"), snap(nil, 2, "a")))
	assert.False(t, Dirty(snap(nil, 2), snap(nil, 2)))
}

func TestResolveAction(t *testing.T) {
	d := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	clean := snap(&d, 2, "a")
	edited := snap(&d, 3, "a")

	assert.Equal(t, ActionAdd, ResolveAction(false, clean, edited))
	assert.Equal(t, ActionView, ResolveAction(true, clean, clean))
	assert.Equal(t, ActionUpdate, ResolveAction(true, clean, edited))
}
