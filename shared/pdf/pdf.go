package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

type Confirmation struct {
	BookingID   string
	RoomName    string
	BookingDate string
	TimeSlot    string
	UserEmail   string
	Message     string
}

// RenderConfirmation renders a single-page booking confirmation document.
func RenderConfirmation(conf Confirmation) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 12, "Room Booking Confirmation")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 12)

	rows := [][2]string{
		{"Booking ID", conf.BookingID},
		{"Room", conf.RoomName},
		{"Date", conf.BookingDate},
		{"Time slot", conf.TimeSlot},
		{"Booked by", conf.UserEmail},
	}

	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(40, 8, row[0])
		doc.SetFont("Helvetica", "", 12)
		doc.Cell(0, 8, row[1])
		doc.Ln(8)
	}

	if conf.Message != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "I", 11)
		doc.MultiCell(0, 6, conf.Message, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render confirmation pdf: %w", err)
	}

	return buf.Bytes(), nil
}
