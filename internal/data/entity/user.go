package entity

type UserType string

const (
	UserTypeProfessional UserType = "PROFESSIONAL"
	UserTypeClient       UserType = "CLIENT"
)

type User struct {
	Base
	Email    string   `db:"email"`
	Name     *string  `db:"name"`
	UserType UserType `db:"user_type"`
	IsActive bool     `db:"is_active"`
}

// DisplayName is used when naming the user in notification messages.
func (u *User) DisplayName() string {
	if u != nil && u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return "Someone"
}
