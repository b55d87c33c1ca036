package wizard

import (
	"strings"
	"time"
)

// Consultations are booked in Philippine time, which has no DST.
var bookingZone = time.FixedZone("PHT", 8*60*60)

const (
	firstSlotHour = 8
	lastSlotHour  = 23
	slotLabel     = "3:04 PM"
)

// Slot is one bookable consultation start.
type Slot struct {
	Value time.Time `json:"value"`
	Label string    `json:"label"`
}

// AvailableSlots lists the half-hour slots from 08:00 to 23:30 PHT on date
// (YYYY-MM-DD) that start after now. Labels are rendered in loc, or in PHT
// when loc is nil.
func AvailableSlots(date string, now time.Time, loc *time.Location) ([]Slot, error) {
	day, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(date), bookingZone)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if loc == nil {
		loc = bookingZone
	}

	slots := make([]Slot, 0, 2*(lastSlotHour-firstSlotHour+1))
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		for _, minute := range []int{0, 30} {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, bookingZone)
			if !start.After(now) {
				continue
			}
			slots = append(slots, Slot{
				Value: start.UTC(),
				Label: start.In(loc).Format(slotLabel),
			})
		}
	}
	return slots, nil
}

// IsSlot reports whether t is one of the bookable starts on its PHT date
// and still after now.
func IsSlot(t, now time.Time) bool {
	if !t.After(now) {
		return false
	}
	local := t.In(bookingZone)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	if local.Minute() != 0 && local.Minute() != 30 {
		return false
	}
	return local.Hour() >= firstSlotHour && local.Hour() <= lastSlotHour
}
