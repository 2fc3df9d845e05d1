package booking

import (
	"time"

	"github.com/venuegrid/room-reservation/internal/model"
)

// BilledHours converts a window's duration into billed hours.  Partial
// hours round up to the next full hour: a 90 minute booking is billed as
// 2 hours.  Floor and exact fractional billing are deliberately not used.
func BilledHours(window model.Interval) int64 {
	d := window.Duration()
	hours := int64(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}

// Price computes the total cost in cents for booking the resource over the
// window: billed hours × hourly rate.  Pure and deterministic; the result
// is snapshotted onto the reservation and never recomputed retroactively.
func Price(r *model.Resource, window model.Interval) int64 {
	return BilledHours(window) * r.HourlyRateCents
}
