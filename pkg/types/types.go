package types

// Principal é o usuário autenticado da requisição.
type Principal struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleUser      = "user"
)

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
