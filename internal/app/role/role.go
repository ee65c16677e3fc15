package role

// Role определяет уровень доступа пользователя в личном кабинете
type Role int

const (
	Buyer Role = iota // обычный клиент
	Manager
	Admin
)

func (r Role) String() string {
	switch r {
	case Buyer:
		return "buyer"
	case Manager:
		return "manager"
	case Admin:
		return "admin"
	}
	return "unknown"
}
