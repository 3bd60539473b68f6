package model

// SlotCatalog is the fixed set of bookable time windows a pitch may offer.
// Every pitch configures a subset of these labels; bookings always reference
// a label from its pitch's subset.  The labels are stored verbatim in the
// pitch_slots and bookings tables, so changing an entry here is a data
// migration, not just a code change.
var SlotCatalog = []string{
	"06:00 - 07:30",
	"08:00 - 09:30",
	"09:30 - 11:00",
	"11:00 - 12:30",
	"14:00 - 15:30",
	"15:30 - 17:00",
	"17:00 - 18:30",
	"18:30 - 20:00",
	"20:00 - 21:30",
	"21:30 - 23:00",
}

// KnownSlot reports whether label belongs to the fixed catalog.
func KnownSlot(label string) bool {
	for _, s := range SlotCatalog {
		if s == label {
			return true
		}
	}
	return false
}
