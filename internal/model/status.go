// Package model defines the domain entities persisted by the repository
// layer together with the enumerated status, role and slot-catalog values
// shared across the application.
package model

// Booking lifecycle states.  A booking starts as pending and moves to
// confirmed or cancelled; once cancelled it never leaves that state.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Pitch states.  Owner-created pitches start as pending until an admin
// activates them; locked pitches are hidden from customers.
const (
	PitchActive  = "active"
	PitchPending = "pending"
	PitchLocked  = "locked"
)

// Pitch field formats.
const (
	PitchType5v5   = "5v5"
	PitchType7v7   = "7v7"
	PitchType11v11 = "11v11"
)

// User roles stored in the `role` column and in the JWT "role" claim.
const (
	RolePlayer = "player"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

// Content states shared by promotions and reviews.
const (
	ContentActive   = "active"
	ContentInactive = "inactive"
)

// Promotion item kinds.
const (
	PromotionTypePromotion = "promotion"
	PromotionTypeNews      = "news"
)

// ValidBookingStatus reports whether s is one of the booking states.
func ValidBookingStatus(s string) bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCancelled
}

// ValidPitchStatus reports whether s is one of the pitch states.
func ValidPitchStatus(s string) bool {
	return s == PitchActive || s == PitchPending || s == PitchLocked
}

// ValidPitchType reports whether s is one of the field formats.
func ValidPitchType(s string) bool {
	return s == PitchType5v5 || s == PitchType7v7 || s == PitchType11v11
}
