package model

import "time"

// Promotion is a content entity shown on the public site.  Type selects
// between a discount promotion and a plain news item; Discount and Badge
// are only meaningful for the former.  The optional validity window bounds
// when an active promotion is actually displayed.
type Promotion struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     *string    `json:"content,omitempty"`
	Type        string     `json:"type"`
	Image       *string    `json:"image,omitempty"`
	Discount    *string    `json:"discount,omitempty"`
	Badge       *string    `json:"badge,omitempty"`
	ValidFrom   *time.Time `json:"validFrom,omitempty"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Review is a customer rating shown on the public site.  Rating is an
// integer between 1 and 5.  PitchID is nil for site-wide reviews.
type Review struct {
	ID        uint64    `json:"id"`
	Author    string    `json:"author"`
	Avatar    *string   `json:"avatar,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	PitchID   *uint64   `json:"pitchId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Notification is a per-user message produced by the booking event
// consumer and polled by the frontend.  There is no push channel; the
// client lists unread rows and marks them read.
type Notification struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
