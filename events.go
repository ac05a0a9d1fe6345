package cursorfx

// Event is a notification consumed by Engine.Apply.
type Event interface {
	isEvent()
}

// PointerMoved reports the pointer at (X, Y) in viewport coordinates.
type PointerMoved struct {
	X, Y float64
}

// HoverEntered reports that Target started being hovered.
type HoverEntered struct {
	Target *Element
}

// HoverLeft reports that Target stopped being hovered.
type HoverLeft struct {
	Target *Element
}

// MutationBatch carries structural changes from the monitored scope.
type MutationBatch struct {
	Records []MutationRecord
}

// MarkersChanged adds and removes tracked marker classes, then reconciles the
// observed set against the whole document.
type MarkersChanged struct {
	Add    []string
	Remove []string
}

// FrameTick advances the engine clock to Now (milliseconds) and steps every
// active fade.
type FrameTick struct {
	Now float64
}

func (PointerMoved) isEvent()   {}
func (HoverEntered) isEvent()   {}
func (HoverLeft) isEvent()      {}
func (MutationBatch) isEvent()  {}
func (MarkersChanged) isEvent() {}
func (FrameTick) isEvent()      {}
