package engine

// EventKind identifies what changed in a session.
type EventKind int

const (
	EventTileToggled EventKind = iota
	EventWordSubmitted
	EventSelectionReset
	EventSessionReset
	EventStatusChanged
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventTileToggled:
		return "tile-toggled"
	case EventWordSubmitted:
		return "word-submitted"
	case EventSelectionReset:
		return "selection-reset"
	case EventSessionReset:
		return "session-reset"
	case EventStatusChanged:
		return "status-changed"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after every state change.
// Result is set only for EventWordSubmitted.
type Event struct {
	Kind   EventKind
	Tile   TileID
	Word   string
	Result *Result
	Score  int
	Status Status
}
