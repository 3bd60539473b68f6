package model

import "time"

// Pitch represents a bookable sports field owned by a user.  The price is
// stored twice: Price keeps the display string shown to customers (for
// example "300.000đ/giờ") while PriceValue carries the numeric amount that
// is denormalized onto bookings at creation time.  Slots holds the subset
// of SlotCatalog this pitch offers and is persisted in the pitch_slots
// table, one row per label.
//
// Fields:
//  ID         – primary key identifier.
//  OwnerID    – user ID of the pitch owner.
//  Name       – display name of the pitch.
//  Location   – human-readable address.
//  Price      – price display string.
//  PriceValue – numeric price copied onto new bookings.
//  Type       – field format (5v5, 7v7, 11v11).
//  Status     – pitch state (active, pending, locked).
//  Image      – cover image URL (may be empty).
//  Slots      – configured time-slot labels.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Pitch struct {
	ID         uint64    `json:"id"`
	OwnerID    uint64    `json:"ownerId"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Price      string    `json:"price"`
	PriceValue int64     `json:"priceValue"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Image      string    `json:"image,omitempty"`
	Slots      []string  `json:"slots"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasSlot reports whether label is part of this pitch's configured catalog.
func (p *Pitch) HasSlot(label string) bool {
	for _, s := range p.Slots {
		if s == label {
			return true
		}
	}
	return false
}
