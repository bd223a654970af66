// Package availability implements the pure scheduling computations:
// interval algebra over time-of-day windows, slot splitting, advance-notice
// filtering, free-window construction and drive-time trimming.
//
// All time-of-day values are minutes from midnight. All datetimes are naive
// local values on a single calendar day; timezone conversion is the caller's
// responsibility and never happens here.
package availability

import (
	"sort"
	"time"

	"slotsmith/models"
)

const minutesPerDay = 24 * 60

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// clipToDay projects an occupied datetime interval onto the given day,
// returning its minutes-from-midnight extent. Intervals crossing midnight
// are clipped to the day's own boundary. ok is false when the interval does
// not touch the day at all.
func clipToDay(start, end time.Time, day time.Time) (int, int, bool) {
	if dateOnly(start).After(dateOnly(day)) || dateOnly(end).Before(dateOnly(day)) {
		return 0, 0, false
	}
	s := 0
	if sameDate(start, day) {
		s = minuteOf(start)
	}
	e := minutesPerDay
	if sameDate(end, day) {
		e = minuteOf(end)
	}
	return s, e, true
}

// SubtractIntervals removes every occupied interval's overlap with the given
// windows on day. Occupied intervals may fall on adjacent days; only the part
// overlapping day is applied. Each occupied interval only ever shrinks the
// survivor set, so application order does not matter. Windows reduced to zero
// length are dropped.
func SubtractIntervals(windows []models.FreeWindow, occupied []models.BusyInterval, day time.Time) []models.FreeWindow {
	result := make([]models.FreeWindow, 0, len(windows))
	for _, w := range windows {
		segments := []models.FreeWindow{w}
		for _, b := range occupied {
			bStart, bEnd, ok := clipToDay(b.Start, b.End, day)
			if !ok {
				continue
			}
			var updated []models.FreeWindow
			for _, seg := range segments {
				if bEnd <= seg.Start || bStart >= seg.End {
					updated = append(updated, seg)
					continue
				}
				if bStart > seg.Start {
					updated = append(updated, models.FreeWindow{Start: seg.Start, End: bStart})
				}
				if bEnd < seg.End {
					updated = append(updated, models.FreeWindow{Start: bEnd, End: seg.End})
				}
			}
			segments = updated
		}
		result = append(result, segments...)
	}
	return result
}

// IntersectWindows returns the pairwise intersection of two window lists,
// sorted by start time. A slot survives only where both lists agree.
func IntersectWindows(a, b []models.FreeWindow) []models.FreeWindow {
	var result []models.FreeWindow
	for _, wa := range a {
		for _, wb := range b {
			start := wa.Start
			if wb.Start > start {
				start = wb.Start
			}
			end := wa.End
			if wb.End < end {
				end = wb.End
			}
			if start < end {
				result = append(result, models.FreeWindow{Start: start, End: end})
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	return result
}
