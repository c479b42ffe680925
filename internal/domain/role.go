package domain

// Role represents the actor role attached to a proposed mutation.
type Role string

const (
	RoleDispatcher     Role = "DISPATCHER"
	RoleBookingOfficer Role = "BOOKING_OFFICER"
	RoleFieldOfficer   Role = "FIELD_OFFICER"
	RoleAccountant     Role = "ACCOUNTANT"
	RoleAdmin          Role = "ADMIN"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleDispatcher, RoleBookingOfficer, RoleFieldOfficer,
		RoleAccountant, RoleAdmin:
		return true
	}
	return false
}
