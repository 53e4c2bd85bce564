package project

// Op names a store operation.
type Op string

const (
	OpInsert         Op = "insert"
	OpRemove         Op = "remove"
	OpMove           Op = "move"
	OpDuplicate      Op = "duplicate"
	OpToggleCollapse Op = "toggle_collapse"
	OpSort           Op = "sort"
	OpEdit           Op = "edit"
)

// Change describes the outcome of one store operation. A caller can use it
// to refresh the affected rows or to record a single undoable step.
type Change struct {
	Op     Op     `json:"op"`
	TaskID string `json:"id,omitempty"`
	// Actual is the task's position after the operation (before it, for
	// removals).
	Actual int `json:"actual"`
	// Visible is the task's visible row after the operation, or -1 when it
	// is hidden. Removals report the row the task had before it was removed.
	Visible int `json:"visible"`
	// First and Last bound the affected actual rows, Last exclusive. For
	// removals they refer to positions before the operation.
	First int    `json:"first"`
	Last  int    `json:"last"`
	Field string `json:"field,omitempty"`
	// Detail is a short human-readable description.
	Detail string `json:"detail,omitempty"`
	// Applied is false for boundary no-ops and ignored field edits.
	Applied bool `json:"applied"`
	// Ignored holds ErrInvalidDate or ErrInvalidDuration when a field edit
	// was discarded.
	Ignored error `json:"-"`
}

// Direction is the direction of a Move.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}
