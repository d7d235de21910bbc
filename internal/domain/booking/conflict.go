package booking

import "github.com/google/uuid"

// ApprovedSlot is the minimal projection of an approved booking needed for
// conflict detection.
type ApprovedSlot struct {
	BookingID uuid.UUID
	Slot      TimeSlot
}

// FindConflicts returns the ids of approved bookings whose slots overlap the
// candidate. excludeID skips the booking being re-validated (uuid.Nil to skip
// nothing). An empty result means the candidate may proceed.
//
// The caller is responsible for running this against the committed set of
// approved bookings under the same lock that performs the approval write;
// checking and writing are not separable steps.
func FindConflicts(candidate TimeSlot, excludeID uuid.UUID, approved []ApprovedSlot) []uuid.UUID {
	var conflicts []uuid.UUID
	for _, a := range approved {
		if a.BookingID == excludeID {
			continue
		}
		if candidate.Overlaps(a.Slot) {
			conflicts = append(conflicts, a.BookingID)
		}
	}
	return conflicts
}
