package api

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
