package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Actor is the identity a request acts as, taken from the session snapshot
// at login time. Later edits to the stored user are not reflected until the
// next login.
type Actor struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
