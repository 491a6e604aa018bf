package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookings(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:           "b1",
			EventDate:    time.Date(2099, 3, 14, 0, 0, 0, 0, time.UTC),
			EventTime:    "19:00",
			EventType:    "birthday",
			GuestCount:   40,
			ContactName:  "Meera",
			ContactEmail: "meera@example.com",
			ContactPhone: "5550101",
			Status:       models.BookingConfirmed,
			Venue:        &models.Venue{Name: "Rooftop"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, bookingHeaders, rows[0])
	assert.Equal(t, "b1", rows[1][0])
	assert.Equal(t, "Rooftop", rows[1][1])
	assert.Equal(t, "2099-03-14", rows[1][2])
	assert.Equal(t, "40", rows[1][5])
	assert.Equal(t, "CONFIRMED", rows[1][10])
}

func TestWriteBookings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
