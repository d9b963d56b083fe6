package input

// PointerID identifies one active graphical pointer: a touch by its id,
// or the mouse.
type PointerID struct {
	Mouse bool
	Touch int
}

// PointerSample is a pointer's surface height polled in one frame.
type PointerSample struct {
	ID PointerID
	Y  float64
}

// PointerTracker turns per-frame pointer polling into discrete events.
// A pointer held still steers once, when pressed, and again only when it
// moves.
type PointerTracker struct {
	last map[PointerID]float64
}

// NewPointerTracker creates an empty tracker.
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{last: make(map[PointerID]float64)}
}

// Moved returns the height of every pointer that is new this frame or
// changed height since the previous frame. Pointers missing from active
// are forgotten, so pressing again counts as a new event.
func (t *PointerTracker) Moved(active []PointerSample) []float64 {
	var ys []float64
	seen := make(map[PointerID]bool, len(active))
	for _, p := range active {
		seen[p.ID] = true
		if prev, ok := t.last[p.ID]; ok && prev == p.Y {
			continue
		}
		t.last[p.ID] = p.Y
		ys = append(ys, p.Y)
	}
	for id := range t.last {
		if !seen[id] {
			delete(t.last, id)
		}
	}
	return ys
}
