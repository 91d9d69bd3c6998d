package state

import "log"

// Surface receives the segments of an in-flight stroke.
type Surface interface {
	DrawSegment(from, to Point)
}

// Capturer grants a pointer exclusive delivery of its events while a
// gesture is active. Hosts whose driver already grabs the pointer during a
// drag can pass nil.
type Capturer interface {
	Capture(id PointerID)
	Release(id PointerID)
}

// Down is a pointer-down event. Client is in screen coordinates and Origin
// is the on-screen position of the surface's top-left corner.
type Down struct {
	ID     PointerID
	Client Point
	Origin Point
}

// Move is a pointer-move event. Coalesced, when the platform offers it,
// holds every high-resolution sample since the previous event in screen
// coordinates; Client is the final position.
type Move struct {
	ID        PointerID
	Client    Point
	Coalesced []Point
}

// Samples returns the pending positions of the move in arrival order.
func (m Move) Samples() []Point {
	if len(m.Coalesced) > 0 {
		return m.Coalesced
	}
	return []Point{m.Client}
}

// Phase is the gesture machine state.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Snapshot is a copy of the gesture state for inspection.
type Snapshot struct {
	Phase   Phase
	Pointer PointerID
	Last    Point
	Origin  Point
}

// Gesture turns one pointer drag at a time into connected segments on a
// Surface. All transitions are total: events for other pointers and
// redundant downs are dropped.
type Gesture struct {
	surface Surface
	capture Capturer

	phase   Phase
	pointer PointerID
	last    Point
	origin  Point

	label    string
	segments int
}

func NewGesture(s Surface, c Capturer) *Gesture {
	return &Gesture{surface: s, capture: c, pointer: NoPointer}
}

// Down starts a gesture. It reports whether the event was accepted.
func (g *Gesture) Down(ev Down) bool {
	if g.phase != Idle {
		return false // another pointer is already drawing
	}
	g.phase = Dragging
	g.pointer = ev.ID
	g.origin = ev.Origin
	g.last = ev.Client.Sub(ev.Origin)
	g.label = nextGestureID()
	g.segments = 0
	if g.capture != nil {
		g.capture.Capture(ev.ID)
	}
	log.Printf("[GESTURE] %s down pointer=%d at (%.1f, %.1f)", g.label, ev.ID, g.last.X, g.last.Y)
	return true
}

// Move extends the active stroke with every sample of ev and returns the
// number of segments drawn.
func (g *Gesture) Move(ev Move) int {
	if g.phase != Dragging || ev.ID != g.pointer {
		return 0
	}
	samples := ev.Samples()
	for _, s := range samples {
		p := s.Sub(g.origin)
		g.surface.DrawSegment(g.last, p)
		g.last = p
	}
	g.segments += len(samples)
	return len(samples)
}

// Up ends the active gesture.
func (g *Gesture) Up(id PointerID) bool { return g.end(id, "up") }

// Cancel ends the active gesture the same way Up does.
func (g *Gesture) Cancel(id PointerID) bool { return g.end(id, "cancel") }

func (g *Gesture) end(id PointerID, how string) bool {
	if g.phase != Dragging || id != g.pointer {
		return false
	}
	if g.capture != nil {
		g.capture.Release(id)
	}
	log.Printf("[GESTURE] %s %s after %d segments", g.label, how, g.segments)
	g.phase = Idle
	g.pointer = NoPointer
	g.last = Point{}
	g.origin = Point{}
	g.label = ""
	return true
}

// State returns a copy of the current state.
func (g *Gesture) State() Snapshot {
	return Snapshot{Phase: g.phase, Pointer: g.pointer, Last: g.last, Origin: g.origin}
}
