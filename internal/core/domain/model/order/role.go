package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role represents the capability of the actor requesting an order mutation,
// as resolved by the identity provider at the boundary.
type Role int

const (
	// RoleUnknown represents an unresolved or invalid role.
	RoleUnknown Role = iota

	// RoleCustomer may create orders and request cancellations on their own
	// orders. Customers never write order status directly.
	RoleCustomer

	// RoleEmployee performs operational checkpoints: confirming, packing,
	// dispatching, delivering.
	RoleEmployee

	// RoleAdmin has all employee capabilities plus direct pre-packed
	// cancellation and cancellation decisions.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleCustomer: "Customer",
		RoleEmployee: "Employee",
		RoleAdmin:    "Admin",
	}
}

// RoleFromString parses a role name as carried by the identity provider.
// Matching is exact on the canonical names "Customer", "Employee", "Admin".
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleEmployee && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsStaff reports whether the role may advance orders along the lifecycle.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}
