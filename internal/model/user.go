package model

const (
	UserRoleApplicant = "applicant"
	UserRoleBusiness  = "business"
	UserRoleAdmin     = "admin"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User is a minimal profile record; authentication lives outside
// this service, so there are no credential fields here.
type User struct {
	Base
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Role      string `db:"role" json:"role"`
	Status    string `db:"status" json:"status"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
