package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Authorization checkpoints switch over
// it exhaustively; RoleUnknown is the zero value and is never persisted.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleFreelancer
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer:   "CUSTOMER",
	RoleFreelancer: "FREELANCER",
	RoleAdmin:      "ADMIN",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return fmt.Errorf("role %d is not valid", int(r))
	}
	return nil
}

// ParseRole accepts the persisted role names. "USER" is the legacy name used for
// federated sign-ins and maps to RoleCustomer.
func ParseRole(s string) (Role, error) {
	switch s {
	case "CUSTOMER", "USER":
		return RoleCustomer, nil
	case "FREELANCER":
		return RoleFreelancer, nil
	case "ADMIN":
		return RoleAdmin, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash *string
	Image        *string
	Role         Role
	Bio          *string
	Skills       []string
	HourlyRate   *float64
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FreelancerProfile holds the fields populated by the one-time freelancer registration.
type FreelancerProfile struct {
	Bio        string
	Skills     []string
	HourlyRate float64
}
