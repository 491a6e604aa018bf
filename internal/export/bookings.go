package export

import (
	"fmt"
	"io"

	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingHeaders = []string{
	"Booking ID", "Venue", "Event Date", "Event Time", "Event Type", "Guests",
	"Contact Name", "Contact Email", "Contact Phone", "Special Requests", "Status", "Created At",
}

// WriteBookings renders bookings as an XLSX workbook with one row per booking.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, h := range bookingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	_ = f.SetCellStyle(bookingsSheet, "A1", last, headerStyle)

	for r, b := range bookings {
		venueName := ""
		if b.Venue != nil {
			venueName = b.Venue.Name
		}
		row := []any{
			b.ID,
			venueName,
			b.EventDate.Format(models.DateLayout),
			b.EventTime,
			b.EventType,
			b.GuestCount,
			b.ContactName,
			b.ContactEmail,
			b.ContactPhone,
			b.SpecialRequests,
			string(b.Status),
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(bookingsSheet, start, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 38)
	_ = f.SetColWidth(bookingsSheet, "B", "L", 18)
	_ = f.SetPanes(bookingsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
