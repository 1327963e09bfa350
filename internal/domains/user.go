package domains

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is a closed classification used by the operation-permission policy.
type Role string

const (
	// RoleMember is an ordinary tenant user.
	RoleMember Role = "MEMBER"
	// RoleCompanyAdmin administers every team of their own company.
	RoleCompanyAdmin Role = "ADMIN"
	// RolePlatformStaff is not bound to a single company.
	RolePlatformStaff Role = "PLATFORM"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleCompanyAdmin, RolePlatformStaff:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is read-only from this service's perspective; users are created and
// destroyed by the identity collaborator.
type User struct {
	ID        uuid.UUID
	Name      string
	CompanyID *uuid.UUID // nil for platform staff
	Role      Role
	Qualified bool
}

// BelongsTo reports whether the user is affiliated with the given company.
// Platform staff belong to no company.
func (u *User) BelongsTo(companyID uuid.UUID) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}
