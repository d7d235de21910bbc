package user

type Role string

const (
	// RoleMember can submit and cancel their own bookings.
	RoleMember Role = "member"
	// RoleReviewer manages resources and decides pending bookings.
	RoleReviewer Role = "reviewer"
	// RoleAdmin additionally administers the resource catalog.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleReviewer, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanReview reports whether the role may approve or reject pending bookings.
func (r Role) CanReview() bool {
	return r == RoleReviewer || r == RoleAdmin
}

// CanManageCatalog reports whether the role may create resources and toggle
// maintenance.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}
