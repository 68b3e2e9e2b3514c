package core

// ItemID identifies one spawned veda within a level session.
// IDs are assigned in spawn order and never reused inside a level.
type ItemID int

// NoItem marks the absence of an item.
const NoItem ItemID = -1

// EventKind classifies interaction loop events.
type EventKind int

const (
	EventItemTouched EventKind = iota + 1
	EventGateReached
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventItemTouched:
		return "item_touched"
	case EventGateReached:
		return "gate_reached"
	default:
		return "unknown"
	}
}

// Event is a discrete message from the interaction loop to the progression
// state machine. Events are produced and consumed within the same tick.
type Event struct {
	Kind EventKind
	Item ItemID // Set for EventItemTouched
	Tick uint64
}

// ItemTouched creates an item touch event.
func ItemTouched(id ItemID, tick uint64) Event {
	return Event{Kind: EventItemTouched, Item: id, Tick: tick}
}

// GateReached creates a gate event.
func GateReached(tick uint64) Event {
	return Event{Kind: EventGateReached, Item: NoItem, Tick: tick}
}
