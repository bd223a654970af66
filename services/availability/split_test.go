// File: services/availability/split_test.go
package availability

import "testing"

func assertStarts(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSplitIntoSlotsNoBuffers(t *testing.T) {
	got := SplitIntoSlots(windows(9*60, 12*60), 60, 0, 0)
	assertStarts(t, got, []int{9 * 60, 10 * 60, 11 * 60})
}

func TestSplitIntoSlotsWithBuffers(t *testing.T) {
	// 15 before + 60 + 15 after: appointments start at cursor+15 and the
	// cursor advances by the full 90 minutes.
	got := SplitIntoSlots(windows(9*60, 12*60), 60, 15, 15)
	assertStarts(t, got, []int{9*60 + 15, 10*60 + 45})
}

func TestSplitIntoSlotsTrailingBufferMayOverhang(t *testing.T) {
	// The final after-buffer may extend past the window end; only the
	// appointment itself must fit.
	got := SplitIntoSlots(windows(9*60, 10*60), 60, 0, 30)
	assertStarts(t, got, []int{9 * 60})
}

func TestSplitIntoSlotsWindowTooSmall(t *testing.T) {
	got := SplitIntoSlots(windows(9*60, 9*60+45), 60, 0, 0)
	assertStarts(t, got, nil)

	// Before-buffer plus duration exceeding the window yields nothing.
	got = SplitIntoSlots(windows(9*60, 10*60), 60, 15, 0)
	assertStarts(t, got, nil)
}

func TestSplitIntoSlotsMultipleWindows(t *testing.T) {
	got := SplitIntoSlots(windows(9*60, 10*60, 13*60, 15*60), 60, 0, 0)
	assertStarts(t, got, []int{9 * 60, 13 * 60, 14 * 60})
}

func TestSplitIntoSlotsNonPositiveDuration(t *testing.T) {
	if got := SplitIntoSlots(windows(9*60, 17*60), 0, 0, 0); len(got) != 0 {
		t.Fatalf("expected no slots for zero duration, got %v", got)
	}
}

func TestSplitIntoSlotsNonOverlapping(t *testing.T) {
	ws := windows(8*60, 18*60)
	duration, before, after := 45, 10, 5
	got := SplitIntoSlots(ws, duration, before, after)
	for i := 1; i < len(got); i++ {
		if got[i-1]+duration+after > got[i]-before {
			t.Fatalf("slots %d and %d overlap including buffers: %v", i-1, i, got)
		}
	}
	for _, s := range got {
		if s < ws[0].Start+before || s+duration > ws[0].End {
			t.Fatalf("slot %d not contained in window with buffers: %v", s, got)
		}
	}
}
