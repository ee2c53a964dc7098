package storage

const (
	RoleOperator   = "operator"
	RoleManagement = "management"
)

type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	OperatorID   *string `json:"operatorId,omitempty"`
}

// NewUser - данные для создания пользователя, пароль уже захеширован
type NewUser struct {
	Username     string
	PasswordHash string
	Name         string
	Role         string
	OperatorID   *string
}
