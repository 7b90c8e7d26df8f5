package booking

import (
	"sort"
	"time"

	"github.com/Evang2/restaurant-app/internal/model"
)

// slotLayouts are the accepted combined date+time forms.  Stored slots
// always carry seconds; the short layout keeps the function forgiving
// toward un-normalized input held by older clients.
var slotLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// SlotInstant combines a reservation's date and time-of-day into a
// single instant.  The composition is always done in UTC so the
// upcoming/past boundary does not move with the host timezone.
// The second return value is false when the fields do not parse.
func SlotInstant(date, timeOfDay string) (time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, date+" "+timeOfDay, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Partition splits a user's reservations into upcoming and past
// relative to now.  Upcoming holds reservations at or after now,
// soonest first; past holds the rest, most recent first.  A reservation
// landing exactly on now counts as upcoming.
//
// Entries whose date or time do not parse are left out of both groups.
// This is a display helper, and one bad row must not break the whole
// view.  Both results are non-nil so callers can render empty sections
// without a nil check.
func Partition(items []model.UserReservation, now time.Time) (upcoming, past []model.UserReservation) {
	type keyed struct {
		at   time.Time
		item model.UserReservation
	}
	var up, pa []keyed
	for _, it := range items {
		at, ok := SlotInstant(it.Date, it.Time)
		if !ok {
			continue
		}
		if at.Before(now) {
			pa = append(pa, keyed{at: at, item: it})
		} else {
			up = append(up, keyed{at: at, item: it})
		}
	}
	sort.SliceStable(up, func(i, j int) bool { return up[i].at.Before(up[j].at) })
	sort.SliceStable(pa, func(i, j int) bool { return pa[i].at.After(pa[j].at) })

	upcoming = make([]model.UserReservation, 0, len(up))
	for _, k := range up {
		upcoming = append(upcoming, k.item)
	}
	past = make([]model.UserReservation, 0, len(pa))
	for _, k := range pa {
		past = append(past, k.item)
	}
	return upcoming, past
}
