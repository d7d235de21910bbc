package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed. Terminal
// rows are retained for audit, never deleted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCanceled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the state machine edges: pending branches to
// approved or rejected, approved branches to canceled or completed. Nothing
// ever returns to pending.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCanceled || next == StatusCompleted
	default:
		return false
	}
}
