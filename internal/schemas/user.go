package schemas

import "feedbox/internal/models"

// UserCreate is the body accepted when registering a user.
type UserCreate struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email,max=120"`
}

// UserUpdate is a sparse patch; nil fields are left untouched.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=120"`
}

// IsEmpty reports whether the patch carries no fields.
func (p UserUpdate) IsEmpty() bool {
	return p.Username == nil && p.Email == nil
}

// Apply copies the present fields onto u.
func (p UserUpdate) Apply(u *models.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
