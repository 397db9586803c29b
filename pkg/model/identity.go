package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleUser    Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleUser:
		return true
	}
	return false
}

// Identity is the verified caller of a single request. It is produced by the
// credential verifier and handed to handlers as an explicit argument; it is
// never persisted and never stored in a request context.
type Identity struct {
	Subject string
	Role    Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
