package pick_slot

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// PageRequest moves the date picker. A nil Anchor starts from the selected date, or today.
type PageRequest struct {
	Anchor    *time.Time
	Direction navigator.Direction
}

// Day is one cell of the date picker
type Day struct {
	Date     time.Time
	Past     bool
	Today    bool
	Selected bool
}

// PageResponse is a four-week page of the date picker
type PageResponse struct {
	Anchor time.Time
	Prev   time.Time
	Next   time.Time
	Days   []Day
}

// LoadRequest loads the slots of a day
type LoadRequest struct {
	Date    time.Time
	StaffID *int64
}

// SlotsResponse is the picker's current view. Superseded is set when a later request
// replaced the requested date before this one finished; Date is then the later date.
type SlotsResponse struct {
	Date       time.Time
	StaffID    *int64
	Slots      []domain.Slot
	Loading    bool
	Error      string // set when the returned day failed to load
	Superseded bool
}

// SelectRequest picks a loaded slot
type SelectRequest struct {
	Date    time.Time
	Time    types.TimeString
	StaffID *int64
}

// SelectResponse is the written slot and the step to continue with
type SelectResponse struct {
	Date    time.Time
	Time    types.TimeString
	StaffID *int64
	Next    flow.Step
}
