package resource

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusReserved:
		return true
	default:
		return false
	}
}
