package form

// Picker identifies which sub-picker surface is logically open. The
// form allows at most one at a time; modeling this as a single tag
// (rather than one visibility flag per picker) makes the inconsistent
// "two pickers open" state unrepresentable.
type Picker int

const (
	PickerNone Picker = iota
	PickerDate
	PickerColor
	PickerTime
	PickerAlerts
)

func (p Picker) String() string {
	switch p {
	case PickerDate:
		return "date"
	case PickerColor:
		return "color"
	case PickerTime:
		return "time"
	case PickerAlerts:
		return "alerts"
	default:
		return "none"
	}
}

// PickerCoordinator tracks the active sub-picker. Opening one
// implicitly dismisses whichever was open before, with no confirmation
// and no animation awareness: rapid Open(A), Open(B) just lands on B.
type PickerCoordinator struct {
	active          Picker
	dismissKeyboard func()
}

// NewPickerCoordinator returns a coordinator with no picker open.
// dismissKeyboard, if non-nil, runs before any picker opens so the
// platform keyboard never sits under a picker sheet.
func NewPickerCoordinator(dismissKeyboard func()) *PickerCoordinator {
	return &PickerCoordinator{dismissKeyboard: dismissKeyboard}
}

// Open makes p the active picker, replacing any other. Open(PickerNone)
// is equivalent to Close.
func (c *PickerCoordinator) Open(p Picker) {
	if p == PickerNone {
		c.Close()
		return
	}
	if c.dismissKeyboard != nil {
		c.dismissKeyboard()
	}
	c.active = p
}

// Close dismisses the active picker, if any.
func (c *PickerCoordinator) Close() {
	c.active = PickerNone
}

// Active returns the currently open picker.
func (c *PickerCoordinator) Active() Picker {
	return c.active
}

// IsOpen reports whether p is the active picker.
func (c *PickerCoordinator) IsOpen(p Picker) bool {
	return c.active == p
}
