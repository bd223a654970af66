package availability

import "time"

// FilterByAdvanceNotice drops slot starts earlier than now + minAdvanceHours.
//
// If the cutoff moment falls after the end of day, the whole day is too soon
// and nothing survives. If the cutoff falls on an earlier day, every slot
// qualifies. If the cutoff falls on day itself, slots strictly before the
// cutoff's time-of-day are dropped; a slot exactly at the cutoff is kept.
func FilterByAdvanceNotice(starts []int, day time.Time, minAdvanceHours int, now time.Time) []int {
	cutoff := now.Add(time.Duration(minAdvanceHours) * time.Hour)
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
	if cutoff.After(endOfDay) {
		return nil
	}
	if !sameDate(cutoff, day) {
		return starts
	}

	cutoffMinute := minuteOf(cutoff)
	if cutoff.Second() > 0 || cutoff.Nanosecond() > 0 {
		cutoffMinute++
	}
	kept := make([]int, 0, len(starts))
	for _, s := range starts {
		if s >= cutoffMinute {
			kept = append(kept, s)
		}
	}
	return kept
}
