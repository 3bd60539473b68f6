// Package repository defines the data access layer: one repo struct per
// table plus the sentinel error values reused across repositories.  These
// sentinels let handlers distinguish failure scenarios without inspecting
// SQL driver errors: ErrForbidden maps to 403, ErrSlotTaken and
// ErrInvalidTransition to 409, and the not-found values to 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as an owner confirming a booking on
// another owner's pitch.
var ErrForbidden = errors.New("forbidden")

// ErrSlotTaken is returned when a booking cannot be created because a
// pending or confirmed booking already occupies the same pitch, date and
// time slot.
var ErrSlotTaken = errors.New("slot already booked")

// ErrInvalidTransition is returned when a booking status change is
// requested from a terminal or incompatible state, e.g. cancelling an
// already-cancelled booking or re-confirming a confirmed one.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrPitchNotFound is returned when a referenced pitch id does not exist.
var ErrPitchNotFound = errors.New("pitch not found")

// ErrBookingNotFound is returned when a referenced booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEmailExists is returned by user creation when the email address is
// already registered.
var ErrEmailExists = errors.New("email already exists")
