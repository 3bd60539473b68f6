package model

import "time"

// Booking records a reservation of one pitch+date+slot by a customer.  The
// pitch name and price are denormalized at creation time so later pitch
// edits never retroactively alter existing bookings.  Cancellation is a
// status change, not a removal; rows are only deleted through the explicit
// admin delete endpoint.
//
// Date holds the calendar day as YYYY-MM-DD and DateLabel its localized
// display form (DD/MM/YYYY).  CustomerID is nil for guest bookings.
// ConfirmedAt and PaymentMethod stay nil until the booking is confirmed.
type Booking struct {
	ID            uint64     `json:"id"`
	Reference     string     `json:"reference"`
	PitchID       uint64     `json:"fieldId"`
	PitchName     string     `json:"fieldName"`
	Date          string     `json:"date"`
	DateLabel     string     `json:"dateLabel"`
	TimeSlot      string     `json:"timeSlot"`
	CustomerID    *uint64    `json:"customerId,omitempty"`
	CustomerName  string     `json:"name"`
	Phone         string     `json:"phone"`
	Price         int64      `json:"price"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// DateLayout is the wire and storage format for booking days.
const DateLayout = "2006-01-02"

// DateLabelLayout is the localized display format stored alongside Date.
const DateLabelLayout = "02/01/2006"
