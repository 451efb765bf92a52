package domain

// Role is the resolved profile role of an authenticated caller.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleRecruiter Role = "recruiter"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleJobSeeker, RoleRecruiter:
		return Role(s), true
	}
	return "", false
}

// Identity is the verified subject of a request, before profile resolution.
type Identity struct {
	SubjectID string
	Email     string
	Claims    map[string]any
}

// Caller is an identity with its resolved profile role.
type Caller struct {
	SubjectID string
	Email     string
	Role      Role
}
