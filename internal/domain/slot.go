package domain

import "github.com/m04kA/SMC-BookingPortal/pkg/types"

// Slot is one bookable time of day returned by the availability API.
type Slot struct {
	Time      types.TimeString
	Available bool
	StaffIDs  []int64
	Reason    string // why the slot is unavailable, if the backend says
}

// HasStaff reports whether staffID is listed for the slot. Slots without a staff list accept anyone.
func (s *Slot) HasStaff(staffID int64) bool {
	if len(s.StaffIDs) == 0 {
		return true
	}
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
