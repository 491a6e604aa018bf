package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDate(t *testing.T) {
	in := time.Date(2030, 6, 15, 23, 45, 10, 500, time.UTC)
	assert.Equal(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), CalendarDate(in))

	// The calendar day is taken in t's own zone.
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2030, 6, 16, 1, 0, 0, 0, ist)
	assert.Equal(t, time.Date(2030, 6, 16, 0, 0, 0, 0, time.UTC), CalendarDate(local))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2030-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "2030-02-28", d.Format(DateLayout))

	for _, bad := range []string{"", "28-02-2030", "2030-02-30", "2030-2-1"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestUser_CanLogin(t *testing.T) {
	hash := "$2a$10$hash"
	empty := ""

	assert.True(t, (&User{PasswordHash: &hash}).CanLogin())
	assert.False(t, (&User{IsGuest: true}).CanLogin())
	assert.False(t, (&User{IsGuest: true, PasswordHash: &hash}).CanLogin())
	assert.False(t, (&User{PasswordHash: &empty}).CanLogin())
}

func TestBookingStatus_Valid(t *testing.T) {
	assert.True(t, BookingPending.Valid())
	assert.True(t, BookingConfirmed.Valid())
	assert.True(t, BookingCancelled.Valid())
	assert.False(t, BookingStatus("WAITLISTED").Valid())
	assert.False(t, BookingStatus("confirmed").Valid())
}

func TestBeforeCreate_AssignsIDs(t *testing.T) {
	u := &User{}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Len(t, u.ID, 36)

	b := &Booking{ID: "keep"}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, "keep", b.ID)
}
