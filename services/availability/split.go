package availability

import "slotsmith/models"

// SplitIntoSlots divides free windows into discrete appointment start times,
// returned as minutes from midnight in window order.
//
// bufferBefore is free time required before each appointment start; the
// emitted slot is the appointment start, after that buffer. Each slot
// consumes bufferBefore + duration + bufferAfter minutes of the window, so
// emitted appointments (buffers included) fit entirely inside the window and
// never overlap. Buffers are consumed capacity, not bookable slots.
func SplitIntoSlots(windows []models.FreeWindow, duration, bufferBefore, bufferAfter int) []int {
	if duration <= 0 {
		return nil
	}
	slotTotal := bufferBefore + duration + bufferAfter
	var slots []int
	for _, w := range windows {
		cursor := w.Start
		for cursor+bufferBefore+duration <= w.End {
			slots = append(slots, cursor+bufferBefore)
			cursor += slotTotal
		}
	}
	return slots
}
