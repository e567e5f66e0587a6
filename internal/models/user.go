package models

// Roles known to the service. Only RoleAdmin is checked.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that owns feedback.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(120);not null"`
	Role      string     `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Feedbacks []Feedback `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// IsAdmin reports whether the user may perform destructive operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
