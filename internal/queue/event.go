// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into user notifications.
package queue

// Name of the durable queue carrying confirmation events.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a booking is confirmed, either
// by an owner/admin status change or by the mock payment flow.  It carries
// enough information for downstream consumers to notify the customer
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64  `json:"booking_id"`
	Reference     string  `json:"reference"`
	PitchID       uint64  `json:"pitch_id"`
	PitchName     string  `json:"pitch_name"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"time_slot"`
	CustomerID    *uint64 `json:"customer_id,omitempty"`
	CustomerName  string  `json:"customer_name"`
	Price         int64   `json:"price"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
