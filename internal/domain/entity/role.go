package entity

// Role distinguishes job seekers from employers.
type Role string

const (
	RoleJobSeeker Role = "jobSeeker"
	RoleEmployer  Role = "employer"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

func (r Role) String() string { return string(r) }
