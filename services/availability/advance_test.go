// File: services/availability/advance_test.go
package availability

import (
	"testing"
	"time"
)

func TestFilterByAdvanceNoticeCutoffSameDay(t *testing.T) {
	d := testDay()
	starts := []int{9 * 60, 10 * 60, 11 * 60}
	now := dt(d, 8, 30)

	// 08:30 + 2h = 10:30 cutoff: 09:00 and 10:00 are too soon.
	got := FilterByAdvanceNotice(starts, d, 2, now)
	assertStarts(t, got, []int{11 * 60})
}

func TestFilterByAdvanceNoticeCutoffBeforeDay(t *testing.T) {
	d := testDay()
	starts := []int{9 * 60, 10 * 60}
	now := dt(d.AddDate(0, 0, -2), 12, 0)

	got := FilterByAdvanceNotice(starts, d, 24, now)
	assertStarts(t, got, starts)
}

func TestFilterByAdvanceNoticeCutoffPastDay(t *testing.T) {
	d := testDay()
	starts := []int{9 * 60, 23*60 + 30}
	now := dt(d, 23, 0)

	got := FilterByAdvanceNotice(starts, d, 2, now)
	assertStarts(t, got, nil)
}

func TestFilterByAdvanceNoticeSlotExactlyAtCutoffKept(t *testing.T) {
	d := testDay()
	now := dt(d, 8, 0)

	got := FilterByAdvanceNotice([]int{10 * 60}, d, 2, now)
	assertStarts(t, got, []int{10 * 60})
}

func TestFilterByAdvanceNoticeSecondsRoundUp(t *testing.T) {
	d := testDay()
	// 08:00:30 + 2h lands mid-minute; a slot at exactly 10:00 is already
	// inside the notice period.
	now := time.Date(d.Year(), d.Month(), d.Day(), 8, 0, 30, 0, d.Location())

	got := FilterByAdvanceNotice([]int{10 * 60, 10*60 + 1}, d, 2, now)
	assertStarts(t, got, []int{10*60 + 1})
}

func TestFilterByAdvanceNoticeZeroHours(t *testing.T) {
	d := testDay()
	now := dt(d, 9, 30)

	got := FilterByAdvanceNotice([]int{9 * 60, 9*60 + 30, 10 * 60}, d, 0, now)
	assertStarts(t, got, []int{9*60 + 30, 10 * 60})
}
